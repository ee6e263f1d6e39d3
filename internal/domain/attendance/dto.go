package attendance

import (
	"time"

	"github.com/pixdot/hr-payroll-backend/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	UserID string `json:"user_id"`
}

func (r *CheckInRequest) Validate() error {
	return validateUserID(r.UserID)
}

type CheckOutRequest struct {
	UserID string `json:"user_id"`
}

func (r *CheckOutRequest) Validate() error {
	return validateUserID(r.UserID)
}

func validateUserID(userID string) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(userID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	} else if !validator.IsValidUUID(userID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckInResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Date        string `json:"date"`
	CheckInTime string `json:"check_in_time"`
	LateMinutes int    `json:"late_minutes"`
}

type CheckOutResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Date         string `json:"date"`
	CheckInTime  string `json:"check_in_time"`
	CheckOutTime string `json:"check_out_time"`
	EarlyMinutes int    `json:"early_minutes"`
}

type AttendanceResponse struct {
	Date           string  `json:"date"`
	CheckInTime    *string `json:"check_in_time"`
	CheckOutTime   *string `json:"check_out_time"`
	LateMinutes    int     `json:"late_minutes"`
	EarlyMinutes   int     `json:"early_minutes"`
	IsPresent      bool    `json:"is_present"`
	IsPaidLeave    bool    `json:"is_paid_leave"`
	PermissionUsed bool    `json:"permission_used"`
}

// clockString formats a nullable instant as a time of day.
func clockString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04:05")
	return &s
}

func ToAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		Date:           a.Date.Format("2006-01-02"),
		CheckInTime:    clockString(a.CheckIn),
		CheckOutTime:   clockString(a.CheckOut),
		LateMinutes:    a.LateMinutes,
		EarlyMinutes:   a.EarlyMinutes,
		IsPresent:      a.IsPresent,
		IsPaidLeave:    a.IsPaidLeave,
		PermissionUsed: a.PermissionUsed,
	}
}
