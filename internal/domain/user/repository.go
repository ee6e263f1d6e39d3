package user

import (
	"context"
)

type UserRepository interface {
	// GetByEmail returns ErrUserNotFound when no user has that email
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	// Create returns ErrEmailExists on a unique email violation
	Create(ctx context.Context, newUser User) (User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
}
