package salary

import "context"

// SalaryRepository persists computed breakdowns
type SalaryRepository interface {
	// Upsert inserts or overwrites the breakdown keyed by (user_id, month, year) atomically
	Upsert(ctx context.Context, breakdown Breakdown) (Breakdown, error)

	// GetLatestByUser returns the most recent period for a user, or ErrSalaryNotFound
	GetLatestByUser(ctx context.Context, userID string) (Breakdown, error)

	// ListByPeriod returns every breakdown of a month with UserName joined, ordered by name
	ListByPeriod(ctx context.Context, month, year int) ([]Breakdown, error)
}
