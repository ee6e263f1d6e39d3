package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pixdot/hr-payroll-backend/internal/domain/attendance"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `id, user_id, date, check_in, check_out, late_minutes, early_minutes,
	is_present, is_paid_leave, permission_used, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.Date, &att.CheckIn, &att.CheckOut, &att.LateMinutes, &att.EarlyMinutes,
		&att.IsPresent, &att.IsPaidLeave, &att.PermissionUsed, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (
			id, user_id, date, check_in, check_out, late_minutes, early_minutes,
			is_present, is_paid_leave, permission_used
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.UserID,
		newAttendance.Date.Format(time.DateOnly),
		newAttendance.CheckIn,
		newAttendance.CheckOut,
		newAttendance.LateMinutes,
		newAttendance.EarlyMinutes,
		newAttendance.IsPresent,
		newAttendance.IsPaidLeave,
		newAttendance.PermissionUsed,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

// GetByUserAndDateForUpdate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE user_id = $1 AND date = $2
		FOR UPDATE`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date.Format(time.DateOnly)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// CloseSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) CloseSession(ctx context.Context, id string, checkOut time.Time, earlyMinutes int) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance
		SET check_out = $1, early_minutes = $2, updated_at = NOW()
		WHERE id = $3 AND check_out IS NULL
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, checkOut, earlyMinutes, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return att, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]attendance.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE user_id = $1
		ORDER BY date DESC`

	return a.list(ctx, query, userID)
}

// ListByUserAndPeriod implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUserAndPeriod(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC`

	return a.list(ctx, query, userID, from.Format(time.DateOnly), to.Format(time.DateOnly))
}

func (a *attendanceRepository) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance: %w", err)
	}

	return attendances, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
