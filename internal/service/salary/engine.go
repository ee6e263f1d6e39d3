package salary

import (
	"github.com/pixdot/hr-payroll-backend/internal/domain/attendance"
	"github.com/pixdot/hr-payroll-backend/internal/domain/salary"
	"github.com/shopspring/decimal"
)

var (
	hundred      = decimal.NewFromInt(100)
	sixtyMinutes = decimal.NewFromInt(60)
)

// Engine turns a month of attendance records into a salary breakdown.
// It has no side effects; ID and CalculatedAt are left for the caller.
type Engine struct {
	rules salary.Rules
}

func NewEngine(rules salary.Rules) Engine {
	return Engine{rules: rules}
}

func (e Engine) Rules() salary.Rules {
	return e.rules
}

// Calculate computes the breakdown for userID over (year, month).
// Records dated outside the month are ignored.
func (e Engine) Calculate(userID string, year, month int, records []attendance.Attendance) (salary.Breakdown, error) {
	period, err := salary.NewPeriod(year, month)
	if err != nil {
		return salary.Breakdown{}, err
	}
	r := e.rules

	lateCut := r.SalaryPerDay.Mul(r.LateCutPercent).Div(hundred)
	earlyCut := r.SalaryPerDay.Mul(r.EarlyCutPercent).Div(hundred)

	var present, permissionDays, leaveDays int
	lateDeduction, earlyDeduction := decimal.Zero, decimal.Zero

	for _, rec := range records {
		if !period.Contains(rec.Date) {
			continue
		}
		present++

		// Flat cut per incident, not scaled by minutes
		if rec.LateMinutes > r.IncidentThresholdMinutes {
			lateDeduction = lateDeduction.Add(lateCut)
		}
		if rec.EarlyMinutes > r.IncidentThresholdMinutes {
			earlyDeduction = earlyDeduction.Add(earlyCut)
		}
		if rec.PermissionUsed {
			permissionDays++
		}
		if rec.IsPaidLeave {
			leaveDays++
		}
	}

	baseSalary := r.SalaryPerDay.Mul(decimal.NewFromInt(int64(present)))

	unpaidLeaveDays := max(0, leaveDays-r.PaidLeaveDays)
	unpaidLeaveDeduction := r.SalaryPerDay.Mul(decimal.NewFromInt(int64(unpaidLeaveDays)))

	excessMinutes := max(0, permissionDays*r.PermissionSlotMinutes-r.PermissionMinutesLimit)
	permissionDeduction := decimal.NewFromInt(int64(excessMinutes)).Div(sixtyMinutes).Mul(r.SalaryPerDay).Round(2)

	bonus := decimal.Zero
	if present == period.DaysIn() && permissionDays == 0 && unpaidLeaveDays == 0 {
		bonus = r.BonusIfNoAbsence
	}

	totalDeductions := lateDeduction.Add(earlyDeduction).Add(unpaidLeaveDeduction).Add(permissionDeduction)
	finalSalary := baseSalary.Sub(totalDeductions).Add(bonus)

	return salary.Breakdown{
		UserID:               userID,
		Month:                period.Month,
		Year:                 period.Year,
		TotalDays:            period.DaysIn(),
		TotalPresent:         present,
		PaidLeave:            leaveDays,
		PermissionsUsed:      permissionDays,
		BaseSalary:           baseSalary,
		LateDeductions:       lateDeduction,
		EarlyDeductions:      earlyDeduction,
		UnpaidLeaveDeduction: unpaidLeaveDeduction,
		PermissionDeduction:  permissionDeduction,
		TotalDeductions:      totalDeductions,
		TotalAdditions:       bonus,
		FinalSalary:          finalSalary,
	}, nil
}
