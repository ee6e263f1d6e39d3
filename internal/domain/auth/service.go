package auth

import (
	"context"
)

type AuthService interface {
	// Login verifies credentials and issues an access token.
	// Unknown email and wrong password both return ErrInvalidCredentials.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
