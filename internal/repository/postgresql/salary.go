package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pixdot/hr-payroll-backend/internal/domain/salary"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/database"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryColumns = `id, user_id, month, year, total_days, total_present, paid_leave, permissions_used,
	base_salary, late_deductions, early_deductions, unpaid_leave_deduction, permission_deduction,
	total_deductions, total_additions, final_salary, calculated_at`

func salaryScanTargets(b *salary.Breakdown) []interface{} {
	return []interface{}{
		&b.ID, &b.UserID, &b.Month, &b.Year, &b.TotalDays, &b.TotalPresent, &b.PaidLeave, &b.PermissionsUsed,
		&b.BaseSalary, &b.LateDeductions, &b.EarlyDeductions, &b.UnpaidLeaveDeduction, &b.PermissionDeduction,
		&b.TotalDeductions, &b.TotalAdditions, &b.FinalSalary, &b.CalculatedAt,
	}
}

// Upsert implements salary.SalaryRepository.
func (r *salaryRepository) Upsert(ctx context.Context, b salary.Breakdown) (salary.Breakdown, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_breakdown (
			id, user_id, month, year, total_days, total_present, paid_leave, permissions_used,
			base_salary, late_deductions, early_deductions, unpaid_leave_deduction, permission_deduction,
			total_deductions, total_additions, final_salary, calculated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (user_id, month, year) DO UPDATE SET
			total_days = EXCLUDED.total_days,
			total_present = EXCLUDED.total_present,
			paid_leave = EXCLUDED.paid_leave,
			permissions_used = EXCLUDED.permissions_used,
			base_salary = EXCLUDED.base_salary,
			late_deductions = EXCLUDED.late_deductions,
			early_deductions = EXCLUDED.early_deductions,
			unpaid_leave_deduction = EXCLUDED.unpaid_leave_deduction,
			permission_deduction = EXCLUDED.permission_deduction,
			total_deductions = EXCLUDED.total_deductions,
			total_additions = EXCLUDED.total_additions,
			final_salary = EXCLUDED.final_salary,
			calculated_at = EXCLUDED.calculated_at
		RETURNING ` + salaryColumns

	var saved salary.Breakdown
	err := q.QueryRow(ctx, query,
		b.ID, b.UserID, b.Month, b.Year, b.TotalDays, b.TotalPresent, b.PaidLeave, b.PermissionsUsed,
		b.BaseSalary, b.LateDeductions, b.EarlyDeductions, b.UnpaidLeaveDeduction, b.PermissionDeduction,
		b.TotalDeductions, b.TotalAdditions, b.FinalSalary, b.CalculatedAt,
	).Scan(salaryScanTargets(&saved)...)
	if err != nil {
		return salary.Breakdown{}, fmt.Errorf("failed to upsert salary breakdown: %w", err)
	}

	return saved, nil
}

// GetLatestByUser implements salary.SalaryRepository.
func (r *salaryRepository) GetLatestByUser(ctx context.Context, userID string) (salary.Breakdown, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + `
		FROM salary_breakdown
		WHERE user_id = $1
		ORDER BY year DESC, month DESC
		LIMIT 1`

	var b salary.Breakdown
	err := q.QueryRow(ctx, query, userID).Scan(salaryScanTargets(&b)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Breakdown{}, salary.ErrSalaryNotFound
		}
		return salary.Breakdown{}, fmt.Errorf("failed to get salary breakdown: %w", err)
	}

	return b, nil
}

// ListByPeriod implements salary.SalaryRepository.
func (r *salaryRepository) ListByPeriod(ctx context.Context, month, year int) ([]salary.Breakdown, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.user_id, s.month, s.year, s.total_days, s.total_present, s.paid_leave, s.permissions_used,
			s.base_salary, s.late_deductions, s.early_deductions, s.unpaid_leave_deduction, s.permission_deduction,
			s.total_deductions, s.total_additions, s.final_salary, s.calculated_at,
			u.name
		FROM salary_breakdown s
		JOIN users u ON u.id = s.user_id
		WHERE s.month = $1 AND s.year = $2
		ORDER BY u.name ASC`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary breakdowns: %w", err)
	}
	defer rows.Close()

	var breakdowns []salary.Breakdown
	for rows.Next() {
		var b salary.Breakdown
		if err := rows.Scan(append(salaryScanTargets(&b), &b.UserName)...); err != nil {
			return nil, fmt.Errorf("failed to scan salary breakdown: %w", err)
		}
		breakdowns = append(breakdowns, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating salary breakdowns: %w", err)
	}

	return breakdowns, nil
}
