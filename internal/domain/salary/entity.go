package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rules are the payroll policy constants applied by the engine
type Rules struct {
	SalaryPerDay             decimal.Decimal
	PaidLeaveDays            int // free paid-leave days per month
	PermissionMinutesLimit   int // free permission minutes per month
	PermissionSlotMinutes    int // minutes charged per permission-flagged day
	LateCutPercent           decimal.Decimal
	EarlyCutPercent          decimal.Decimal
	IncidentThresholdMinutes int // late/early minutes above this cost a flat cut
	BonusIfNoAbsence         decimal.Decimal
}

func DefaultRules() Rules {
	return Rules{
		SalaryPerDay:             decimal.NewFromInt(1000),
		PaidLeaveDays:            1,
		PermissionMinutesLimit:   120,
		PermissionSlotMinutes:    60,
		LateCutPercent:           decimal.NewFromInt(20),
		EarlyCutPercent:          decimal.NewFromInt(20),
		IncidentThresholdMinutes: 10,
		BonusIfNoAbsence:         decimal.NewFromInt(1000),
	}
}

// Breakdown is one user's computed salary for a month. (UserID, Month, Year) is unique.
type Breakdown struct {
	ID                   string
	UserID               string
	Month                int
	Year                 int
	TotalDays            int
	TotalPresent         int
	PaidLeave            int
	PermissionsUsed      int
	BaseSalary           decimal.Decimal
	LateDeductions       decimal.Decimal
	EarlyDeductions      decimal.Decimal
	UnpaidLeaveDeduction decimal.Decimal
	PermissionDeduction  decimal.Decimal
	TotalDeductions      decimal.Decimal
	TotalAdditions       decimal.Decimal
	FinalSalary          decimal.Decimal
	CalculatedAt         time.Time

	// Joined fields
	UserName *string
}

// Validate rejects rules the engine cannot apply
func (r Rules) Validate() error {
	switch {
	case r.SalaryPerDay.IsNegative(),
		r.LateCutPercent.IsNegative(),
		r.EarlyCutPercent.IsNegative(),
		r.BonusIfNoAbsence.IsNegative():
		return ErrInvalidRules
	case r.PaidLeaveDays < 0, r.PermissionMinutesLimit < 0, r.IncidentThresholdMinutes < 0:
		return ErrInvalidRules
	case r.PermissionSlotMinutes <= 0:
		return ErrInvalidRules
	}
	return nil
}
