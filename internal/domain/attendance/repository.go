package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// (user_id, date) is unique at the storage layer.
type AttendanceRepository interface {
	// Create inserts a new record. A (user_id, date) conflict returns ErrAlreadyCheckedIn.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByUserAndDateForUpdate retrieves and row-locks the record for a user on a day.
	// Returns ErrAttendanceNotFound when missing. Call inside a transaction.
	GetByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (Attendance, error)

	// CloseSession writes check_out and early_minutes only while check_out is still NULL.
	// Returns ErrAlreadyCheckedOut when the guard matches no row.
	CloseSession(ctx context.Context, id string, checkOut time.Time, earlyMinutes int) (Attendance, error)

	// ListByUser returns every record of a user, newest date first
	ListByUser(ctx context.Context, userID string) ([]Attendance, error)

	// ListByUserAndPeriod returns records with from <= date <= to
	ListByUserAndPeriod(ctx context.Context, userID string, from, to time.Time) ([]Attendance, error)
}
