package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pixdot/hr-payroll-backend/internal/domain/attendance"
	"github.com/pixdot/hr-payroll-backend/internal/domain/user"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	transactor database.Transactor
	attendance.AttendanceRepository
	user.UserRepository
	policy   attendance.Policy
	location *time.Location
	now      func() time.Time
}

func NewAttendanceService(
	transactor database.Transactor,
	attendanceRepository attendance.AttendanceRepository,
	userRepository user.UserRepository,
	policy attendance.Policy,
	location *time.Location,
) *AttendanceServiceImpl {
	if location == nil {
		location = time.Local
	}
	return &AttendanceServiceImpl{
		transactor:           transactor,
		AttendanceRepository: attendanceRepository,
		UserRepository:       userRepository,
		policy:               policy,
		location:             location,
		now:                  time.Now,
	}
}

// SetClock replaces the wall clock, used by tests
func (s *AttendanceServiceImpl) SetClock(now func() time.Time) {
	s.now = now
}

func (s *AttendanceServiceImpl) localNow() time.Time {
	return s.now().In(s.location)
}

// localize moves stored instants into the configured location for display
func (s *AttendanceServiceImpl) localize(att attendance.Attendance) attendance.Attendance {
	if att.CheckIn != nil {
		t := att.CheckIn.In(s.location)
		att.CheckIn = &t
	}
	if att.CheckOut != nil {
		t := att.CheckOut.In(s.location)
		att.CheckOut = &t
	}
	return att
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	if _, err := s.UserRepository.GetByID(ctx, req.UserID); err != nil {
		return attendance.CheckInResponse{}, err
	}

	now := s.localNow()
	lateMinutes := s.policy.LateMinutes(now)

	// The (user_id, date) key decides concurrent check-ins
	var created attendance.Attendance
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.AttendanceRepository.Create(txCtx, attendance.Attendance{
			ID:          uuid.Must(uuid.NewV7()).String(),
			UserID:      req.UserID,
			Date:        attendance.DateOf(now),
			CheckIn:     &now,
			LateMinutes: lateMinutes,
			IsPresent:   true,
		})
		return err
	})
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	slog.Info("user checked in", "user_id", req.UserID, "date", now.Format(time.DateOnly), "late_minutes", lateMinutes)

	created = s.localize(created)
	return attendance.CheckInResponse{
		ID:          created.ID,
		UserID:      created.UserID,
		Date:        now.Format(time.DateOnly),
		CheckInTime: created.CheckIn.Format("15:04:05"),
		LateMinutes: created.LateMinutes,
	}, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	now := s.localNow()
	earlyMinutes := s.policy.EarlyMinutes(now)

	var closed attendance.Attendance
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		open, err := s.AttendanceRepository.GetByUserAndDateForUpdate(txCtx, req.UserID, attendance.DateOf(now))
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrNotCheckedIn
			}
			return err
		}
		if open.State() == attendance.StateCheckedOut {
			return attendance.ErrAlreadyCheckedOut
		}

		closed, err = s.AttendanceRepository.CloseSession(txCtx, open.ID, now, earlyMinutes)
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	slog.Info("user checked out", "user_id", req.UserID, "date", now.Format(time.DateOnly), "early_minutes", earlyMinutes)

	closed = s.localize(closed)
	resp := attendance.CheckOutResponse{
		ID:           closed.ID,
		UserID:       closed.UserID,
		Date:         now.Format(time.DateOnly),
		CheckOutTime: now.Format("15:04:05"),
		EarlyMinutes: closed.EarlyMinutes,
	}
	if closed.CheckIn != nil {
		resp.CheckInTime = closed.CheckIn.Format("15:04:05")
	}
	return resp, nil
}

// GetUserAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetUserAttendance(ctx context.Context, userID string) ([]attendance.AttendanceResponse, error) {
	records, err := s.AttendanceRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToAttendanceResponse(s.localize(rec)))
	}
	return responses, nil
}

var _ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)
