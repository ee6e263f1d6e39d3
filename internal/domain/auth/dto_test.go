package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRequest_Validate_NormalizesEmail(t *testing.T) {
	req := LoginRequest{Email: "  Sari@Example.COM ", Password: "aB3xY9"}

	require.NoError(t, req.Validate())
	assert.Equal(t, "sari@example.com", req.Email)
}

func TestLoginRequest_Validate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		req   LoginRequest
		field string
	}{
		{"blank email", LoginRequest{Email: "   ", Password: "secret"}, "email"},
		{"malformed email", LoginRequest{Email: " not-an-email ", Password: "secret"}, "email"},
		{"missing password", LoginRequest{Email: "sari@example.com"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
