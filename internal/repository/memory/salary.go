package memory

import (
	"context"
	"sort"

	"github.com/pixdot/hr-payroll-backend/internal/domain/salary"
)

type salaryRepository struct {
	store *Store
}

// Upsert implements salary.SalaryRepository.
func (r *salaryRepository) Upsert(ctx context.Context, b salary.Breakdown) (salary.Breakdown, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, existing := range r.store.salaries {
		if existing.UserID == b.UserID && existing.Month == b.Month && existing.Year == b.Year {
			b.ID = id
			break
		}
	}
	b.UserName = nil
	if log := txLog(ctx); log != nil {
		remember(log.salaries, r.store.salaries, b.ID)
	}
	r.store.salaries[b.ID] = b
	return b, nil
}

// GetLatestByUser implements salary.SalaryRepository.
func (r *salaryRepository) GetLatestByUser(ctx context.Context, userID string) (salary.Breakdown, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var latest *salary.Breakdown
	for _, b := range r.store.salaries {
		if b.UserID != userID {
			continue
		}
		if latest == nil || b.Year > latest.Year || (b.Year == latest.Year && b.Month > latest.Month) {
			latest = &b
		}
	}
	if latest == nil {
		return salary.Breakdown{}, salary.ErrSalaryNotFound
	}
	return *latest, nil
}

// ListByPeriod implements salary.SalaryRepository.
func (r *salaryRepository) ListByPeriod(ctx context.Context, month, year int) ([]salary.Breakdown, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var breakdowns []salary.Breakdown
	for _, b := range r.store.salaries {
		if b.Month != month || b.Year != year {
			continue
		}
		if u, ok := r.store.users[b.UserID]; ok {
			name := u.Name
			b.UserName = &name
		}
		breakdowns = append(breakdowns, b)
	}
	sort.Slice(breakdowns, func(i, j int) bool {
		return nameOf(breakdowns[i]) < nameOf(breakdowns[j])
	})
	return breakdowns, nil
}

func nameOf(b salary.Breakdown) string {
	if b.UserName == nil {
		return ""
	}
	return *b.UserName
}
