package salary

import "context"

type SalaryService interface {
	// Calculate computes and upserts one user's breakdown for a month
	Calculate(ctx context.Context, userID string, year, month int) (BreakdownResponse, error)

	// CalculateAll computes and upserts breakdowns for every staff member
	CalculateAll(ctx context.Context, year, month int) (BulkCalculationResponse, error)

	// GetLatest returns the most recent breakdown for a user
	GetLatest(ctx context.Context, userID string) (BreakdownResponse, error)

	// GetReport lists a month's breakdowns with the total payout
	GetReport(ctx context.Context, req ReportRequest) (ReportResponse, error)
}
