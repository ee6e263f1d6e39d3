package salary

import (
	"github.com/pixdot/hr-payroll-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type BreakdownResponse struct {
	UserID               string          `json:"user_id"`
	Month                int             `json:"month"`
	Year                 int             `json:"year"`
	DaysInMonth          int             `json:"days_in_month"`
	PresentDays          int             `json:"present_days"`
	PaidLeaveUsed        int             `json:"paid_leave_used"`
	PermissionsUsed      int             `json:"permissions_used"`
	BaseSalary           decimal.Decimal `json:"base_salary"`
	LateDeductions       decimal.Decimal `json:"late_deductions"`
	EarlyDeductions      decimal.Decimal `json:"early_deductions"`
	UnpaidLeaveDeduction decimal.Decimal `json:"unpaid_leave_deduct"`
	PermissionDeduction  decimal.Decimal `json:"permission_deduct"`
	TotalDeductions      decimal.Decimal `json:"total_deductions"`
	Bonus                decimal.Decimal `json:"bonus"`
	FinalSalary          decimal.Decimal `json:"final_salary"`
	CalculatedAt         string          `json:"calculated_at"`
}

func ToBreakdownResponse(b Breakdown) BreakdownResponse {
	return BreakdownResponse{
		UserID:               b.UserID,
		Month:                b.Month,
		Year:                 b.Year,
		DaysInMonth:          b.TotalDays,
		PresentDays:          b.TotalPresent,
		PaidLeaveUsed:        b.PaidLeave,
		PermissionsUsed:      b.PermissionsUsed,
		BaseSalary:           b.BaseSalary,
		LateDeductions:       b.LateDeductions,
		EarlyDeductions:      b.EarlyDeductions,
		UnpaidLeaveDeduction: b.UnpaidLeaveDeduction,
		PermissionDeduction:  b.PermissionDeduction,
		TotalDeductions:      b.TotalDeductions,
		Bonus:                b.TotalAdditions,
		FinalSalary:          b.FinalSalary,
		CalculatedAt:         b.CalculatedAt.Format("2006-01-02 15:04:05"),
	}
}

type CalculateAllRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *CalculateAllRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.Year < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be a positive number",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkCalculationResponse struct {
	Month       int                 `json:"month"`
	Year        int                 `json:"year"`
	Calculated  int                 `json:"calculated"`
	Breakdowns  []BreakdownResponse `json:"breakdowns"`
	TotalPayout decimal.Decimal     `json:"total_payout"`
}

// ReportRequest selects a month; zero values mean the current month
type ReportRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

type ReportRow struct {
	UserID          string          `json:"user_id"`
	Name            string          `json:"name"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	Bonus           decimal.Decimal `json:"bonus"`
	FinalSalary     decimal.Decimal `json:"final_salary"`
}

type ReportResponse struct {
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Report     []ReportRow     `json:"report"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}
