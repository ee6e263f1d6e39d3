package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pixdot/hr-payroll-backend/internal/domain/attendance"
)

type attendanceRepository struct {
	db *sql.DB
}

func NewAttendanceRepository(db *sql.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, user_id, date, check_in, check_out, late_minutes, early_minutes,
	is_present, is_paid_leave, permission_used, created_at, updated_at`

func scanAttendance(row rowScanner) (attendance.Attendance, error) {
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
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := q.ExecContext(ctx, query,
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
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return a.getByID(ctx, newAttendance.ID)
}

func (a *attendanceRepository) getByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRowContext(ctx, `SELECT `+attendanceColumns+` FROM attendance WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetByUserAndDateForUpdate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDateForUpdate(ctx context.Context, userID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE user_id = ? AND date = ?
		FOR UPDATE`

	att, err := scanAttendance(q.QueryRowContext(ctx, query, userID, date.Format(time.DateOnly)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
		SET check_out = ?, early_minutes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND check_out IS NULL`

	result, err := q.ExecContext(ctx, query, checkOut, earlyMinutes, id)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}

	return a.getByID(ctx, id)
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]attendance.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE user_id = ?
		ORDER BY date DESC`

	return a.list(ctx, query, userID)
}

// ListByUserAndPeriod implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUserAndPeriod(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE user_id = ? AND date BETWEEN ? AND ?
		ORDER BY date ASC`

	return a.list(ctx, query, userID, from.Format(time.DateOnly), to.Format(time.DateOnly))
}

func (a *attendanceRepository) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.QueryContext(ctx, query, args...)
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
