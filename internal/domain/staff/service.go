package staff

import (
	"context"

	"github.com/pixdot/hr-payroll-backend/internal/domain/user"
)

type StaffService interface {
	// Create registers a staff member with a generated password
	Create(ctx context.Context, req CreateStaffRequest) (CreateStaffResponse, error)

	// List returns every non-admin user
	List(ctx context.Context) ([]user.ProfileResponse, error)

	// GetProfile returns a single user's profile
	GetProfile(ctx context.Context, userID string) (user.ProfileResponse, error)
}
