package memory

import (
	"context"
	"sort"
	"time"

	"github.com/pixdot/hr-payroll-backend/internal/domain/attendance"
)

type attendanceRepository struct {
	store *Store
}

func sameDay(a, b time.Time) bool {
	return a.Format(time.DateOnly) == b.Format(time.DateOnly)
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, a := range r.store.attendance {
		if a.UserID == newAttendance.UserID && sameDay(a.Date, newAttendance.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
	}

	now := r.store.now()
	newAttendance.CreatedAt = now
	newAttendance.UpdatedAt = now
	if log := txLog(ctx); log != nil {
		remember(log.attendance, r.store.attendance, newAttendance.ID)
	}
	r.store.attendance[newAttendance.ID] = newAttendance
	return newAttendance, nil
}

// GetByUserAndDateForUpdate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, a := range r.store.attendance {
		if a.UserID == userID && sameDay(a.Date, date) {
			return a, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

// CloseSession implements attendance.AttendanceRepository.
func (r *attendanceRepository) CloseSession(ctx context.Context, id string, checkOut time.Time, earlyMinutes int) (attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a, ok := r.store.attendance[id]
	if !ok || a.CheckOut != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}

	a.CheckOut = &checkOut
	a.EarlyMinutes = earlyMinutes
	a.UpdatedAt = r.store.now()
	if log := txLog(ctx); log != nil {
		remember(log.attendance, r.store.attendance, id)
	}
	r.store.attendance[id] = a
	return a, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]attendance.Attendance, error) {
	records := r.filter(func(a attendance.Attendance) bool { return a.UserID == userID })
	sort.Slice(records, func(i, j int) bool { return records[i].Date.After(records[j].Date) })
	return records, nil
}

// ListByUserAndPeriod implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByUserAndPeriod(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	fromDay, toDay := from.Format(time.DateOnly), to.Format(time.DateOnly)
	records := r.filter(func(a attendance.Attendance) bool {
		day := a.Date.Format(time.DateOnly)
		return a.UserID == userID && day >= fromDay && day <= toDay
	})
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records, nil
}

func (r *attendanceRepository) filter(keep func(attendance.Attendance) bool) []attendance.Attendance {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var records []attendance.Attendance
	for _, a := range r.store.attendance {
		if keep(a) {
			records = append(records, a)
		}
	}
	return records
}

// PutAttendance stores a record as-is, for seeding leave and permission flags
func (s *Store) PutAttendance(a attendance.Attendance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attendance[a.ID] = a
}
