package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens today's record for the user
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)

	// CheckOut closes today's record for the user
	CheckOut(ctx context.Context, req CheckOutRequest) (CheckOutResponse, error)

	// GetUserAttendance lists a user's records, newest first
	GetUserAttendance(ctx context.Context, userID string) ([]AttendanceResponse, error)
}
