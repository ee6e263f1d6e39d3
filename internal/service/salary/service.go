package salary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pixdot/hr-payroll-backend/internal/domain/attendance"
	"github.com/pixdot/hr-payroll-backend/internal/domain/salary"
	"github.com/pixdot/hr-payroll-backend/internal/domain/user"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/database"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// bulkConcurrency bounds parallel per-user calculations in CalculateAll
const bulkConcurrency = 4

type SalaryServiceImpl struct {
	transactor database.Transactor
	salary.SalaryRepository
	attendance.AttendanceRepository
	user.UserRepository
	engine   Engine
	location *time.Location
	now      func() time.Time
}

func NewSalaryService(
	transactor database.Transactor,
	salaryRepository salary.SalaryRepository,
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	engine Engine,
	location *time.Location,
) *SalaryServiceImpl {
	if location == nil {
		location = time.Local
	}
	return &SalaryServiceImpl{
		transactor:           transactor,
		SalaryRepository:     salaryRepository,
		AttendanceRepository: attendanceRepository,
		UserRepository:       userRepository,
		engine:               engine,
		location:             location,
		now:                  time.Now,
	}
}

// SetClock replaces the wall clock, used by tests
func (s *SalaryServiceImpl) SetClock(now func() time.Time) {
	s.now = now
}

// Calculate implements salary.SalaryService.
func (s *SalaryServiceImpl) Calculate(ctx context.Context, userID string, year, month int) (salary.BreakdownResponse, error) {
	period, err := salary.NewPeriod(year, month)
	if err != nil {
		return salary.BreakdownResponse{}, err
	}

	if _, err := s.UserRepository.GetByID(ctx, userID); err != nil {
		return salary.BreakdownResponse{}, err
	}

	saved, err := s.calculate(ctx, userID, period)
	if err != nil {
		return salary.BreakdownResponse{}, err
	}

	slog.Info("salary calculated", "user_id", userID, "year", year, "month", month, "final_salary", saved.FinalSalary.String())
	return salary.ToBreakdownResponse(saved), nil
}

// calculate reads the month's records, runs the engine and upserts in one transaction
func (s *SalaryServiceImpl) calculate(ctx context.Context, userID string, period salary.Period) (salary.Breakdown, error) {
	var saved salary.Breakdown
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		records, err := s.AttendanceRepository.ListByUserAndPeriod(txCtx, userID, period.FirstDay(s.location), period.LastDay(s.location))
		if err != nil {
			return err
		}

		breakdown, err := s.engine.Calculate(userID, period.Year, period.Month, records)
		if err != nil {
			return err
		}
		breakdown.ID = uuid.Must(uuid.NewV7()).String()
		breakdown.CalculatedAt = s.now().In(s.location)

		saved, err = s.SalaryRepository.Upsert(txCtx, breakdown)
		return err
	})
	if err != nil {
		return salary.Breakdown{}, fmt.Errorf("failed to calculate salary for user %s: %w", userID, err)
	}
	return saved, nil
}

// CalculateAll implements salary.SalaryService.
func (s *SalaryServiceImpl) CalculateAll(ctx context.Context, year, month int) (salary.BulkCalculationResponse, error) {
	period, err := salary.NewPeriod(year, month)
	if err != nil {
		return salary.BulkCalculationResponse{}, err
	}

	staff, err := s.UserRepository.ListByRole(ctx, user.RoleUser)
	if err != nil {
		return salary.BulkCalculationResponse{}, err
	}

	results := make([]salary.Breakdown, len(staff))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)
	for i, u := range staff {
		g.Go(func() error {
			saved, err := s.calculate(gCtx, u.ID, period)
			if err != nil {
				return err
			}
			results[i] = saved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return salary.BulkCalculationResponse{}, err
	}

	resp := salary.BulkCalculationResponse{
		Month:       period.Month,
		Year:        period.Year,
		Calculated:  len(results),
		Breakdowns:  make([]salary.BreakdownResponse, 0, len(results)),
		TotalPayout: decimal.Zero,
	}
	for _, b := range results {
		resp.Breakdowns = append(resp.Breakdowns, salary.ToBreakdownResponse(b))
		resp.TotalPayout = resp.TotalPayout.Add(b.FinalSalary)
	}

	slog.Info("bulk salary calculation finished", "year", year, "month", month, "staff_count", len(results), "total_payout", resp.TotalPayout.String())
	return resp, nil
}

// GetLatest implements salary.SalaryService.
func (s *SalaryServiceImpl) GetLatest(ctx context.Context, userID string) (salary.BreakdownResponse, error) {
	b, err := s.SalaryRepository.GetLatestByUser(ctx, userID)
	if err != nil {
		return salary.BreakdownResponse{}, err
	}
	return salary.ToBreakdownResponse(b), nil
}

// GetReport implements salary.SalaryService.
func (s *SalaryServiceImpl) GetReport(ctx context.Context, req salary.ReportRequest) (salary.ReportResponse, error) {
	current := salary.PeriodOf(s.now().In(s.location))
	if req.Month == 0 {
		req.Month = current.Month
	}
	if req.Year == 0 {
		req.Year = current.Year
	}

	period, err := salary.NewPeriod(req.Year, req.Month)
	if err != nil {
		return salary.ReportResponse{}, err
	}

	breakdowns, err := s.SalaryRepository.ListByPeriod(ctx, period.Month, period.Year)
	if err != nil {
		return salary.ReportResponse{}, err
	}

	resp := salary.ReportResponse{
		Month:      period.Month,
		Year:       period.Year,
		Report:     make([]salary.ReportRow, 0, len(breakdowns)),
		TotalSpent: decimal.Zero,
	}
	for _, b := range breakdowns {
		row := salary.ReportRow{
			UserID:          b.UserID,
			BaseSalary:      b.BaseSalary,
			TotalDeductions: b.TotalDeductions,
			Bonus:           b.TotalAdditions,
			FinalSalary:     b.FinalSalary,
		}
		if b.UserName != nil {
			row.Name = *b.UserName
		}
		resp.Report = append(resp.Report, row)
		resp.TotalSpent = resp.TotalSpent.Add(b.FinalSalary)
	}

	return resp, nil
}

var _ salary.SalaryService = (*SalaryServiceImpl)(nil)
