package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pixdot/hr-payroll-backend/internal/domain/auth"
	"github.com/pixdot/hr-payroll-backend/internal/domain/user"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/jwt"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/validator"
	"github.com/pixdot/hr-payroll-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "aB3xY9"

func setupAuthService(t *testing.T) (auth.AuthService, jwt.Service, user.User) {
	t.Helper()
	store := memory.NewStore()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	existing, err := store.Users().Create(context.Background(), user.User{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Name:         "Sari",
		Email:        "sari@example.com",
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
	})
	require.NoError(t, err)

	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	return NewAuthService(store.Users(), jwtService), jwtService, existing
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, jwtService, existing := setupAuthService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "sari@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, resp.User.ID)
	assert.Equal(t, "admin", resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, existing.ID, claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
}

func TestAuthService_Login_NormalizesEmail(t *testing.T) {
	svc, _, existing := setupAuthService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "  Sari@Example.com ",
		Password: testPassword,
	})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, resp.User.ID)
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	_, wrongPassword := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "sari@example.com",
		Password: "wrong-password",
	})
	_, unknownEmail := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: testPassword,
	})

	require.ErrorIs(t, wrongPassword, auth.ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, auth.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	tests := []struct {
		name  string
		req   auth.LoginRequest
		field string
	}{
		{"missing email", auth.LoginRequest{Password: testPassword}, "email"},
		{"missing password", auth.LoginRequest{Email: "sari@example.com"}, "password"},
		{"malformed email", auth.LoginRequest{Email: "sari", Password: testPassword}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}
