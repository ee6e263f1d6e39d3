package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixdot/hr-payroll-backend/internal/domain/salary"
)

// BulkCalculator is the part of salary.SalaryService the monthly job needs
type BulkCalculator interface {
	CalculateAll(ctx context.Context, year, month int) (salary.BulkCalculationResponse, error)
}

type SalaryJobs struct {
	calculator BulkCalculator
	location   *time.Location
	now        func() time.Time
}

func NewSalaryJobs(calculator BulkCalculator, location *time.Location) *SalaryJobs {
	if location == nil {
		location = time.Local
	}
	return &SalaryJobs{
		calculator: calculator,
		location:   location,
		now:        time.Now,
	}
}

func (j *SalaryJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("monthly_salary_calculation", 1*time.Hour, j.CalculatePreviousMonth)
}

// CalculatePreviousMonth closes payroll for last month. It only acts during the
// first hour of the first day of a month; recalculation is idempotent so a
// restart inside that hour is harmless.
func (j *SalaryJobs) CalculatePreviousMonth(ctx context.Context) error {
	now := j.now().In(j.location)
	if now.Day() != 1 || now.Hour() != 0 {
		return nil
	}

	period := salary.PeriodOf(now).Previous()
	slog.Info("Cron: Starting monthly salary calculation", "year", period.Year, "month", period.Month)

	result, err := j.calculator.CalculateAll(ctx, period.Year, period.Month)
	if err != nil {
		return fmt.Errorf("failed to calculate salaries for %d-%02d: %w", period.Year, period.Month, err)
	}

	slog.Info("Cron: Monthly salary calculation finished",
		"year", period.Year,
		"month", period.Month,
		"calculated", result.Calculated,
		"total_payout", result.TotalPayout.String())
	return nil
}
