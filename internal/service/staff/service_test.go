package staff

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pixdot/hr-payroll-backend/internal/domain/staff"
	"github.com/pixdot/hr-payroll-backend/internal/domain/user"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/validator"
	"github.com/pixdot/hr-payroll-backend/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStaffService(t *testing.T) (*StaffServiceImpl, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewStaffService(store.Transactor(), store.Users(), DefaultPasswordLength)
	svc.SetBcryptCost(bcrypt.MinCost)
	return svc, store
}

func validRequest() staff.CreateStaffRequest {
	age := 24
	batch := "2025-A"
	return staff.CreateStaffRequest{
		Name:          "Dewi Lestari",
		Email:         "Dewi@Example.com",
		Age:           &age,
		Batch:         &batch,
		MonthlySalary: decimal.NewFromInt(30000),
	}
}

func TestGeneratePassword(t *testing.T) {
	for _, length := range []int{6, 12, 32} {
		password, err := GeneratePassword(length)
		require.NoError(t, err)
		assert.Len(t, password, length)
		for _, c := range password {
			assert.True(t, strings.ContainsRune(passwordAlphabet, c), "unexpected character %q", c)
		}
	}

	a, err := GeneratePassword(16)
	require.NoError(t, err)
	b, err := GeneratePassword(16)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestStaffService_Create_Success(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestStaffService(t)

	resp, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	assert.Equal(t, "dewi@example.com", resp.Email)
	assert.Equal(t, "user", resp.Role)
	assert.Equal(t, "30000.00", resp.MonthlySalary)
	assert.Len(t, resp.GeneratedPassword, DefaultPasswordLength)

	stored, err := store.Users().GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, resp.GeneratedPassword, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(resp.GeneratedPassword)))
}

func TestStaffService_Create_JoinsCallerTransaction(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestStaffService(t)
	errAbort := errors.New("abort")

	err := store.Transactor().WithinTransaction(ctx, func(txCtx context.Context) error {
		_, err := svc.Create(txCtx, validRequest())
		require.NoError(t, err)
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	_, err = store.Users().GetByEmail(ctx, "dewi@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestStaffService_Create_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestStaffService(t)

	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	_, err = svc.Create(ctx, validRequest())
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestStaffService_Create_Validation(t *testing.T) {
	svc, _ := newTestStaffService(t)

	tests := []struct {
		name   string
		mutate func(r *staff.CreateStaffRequest)
		field  string
	}{
		{"missing name", func(r *staff.CreateStaffRequest) { r.Name = "  " }, "name"},
		{"bad email", func(r *staff.CreateStaffRequest) { r.Email = "not-an-email" }, "email"},
		{"too young", func(r *staff.CreateStaffRequest) { age := 12; r.Age = &age }, "age"},
		{"negative salary", func(r *staff.CreateStaffRequest) { r.MonthlySalary = decimal.NewFromInt(-1) }, "monthly_salary"},
		{"unknown role", func(r *staff.CreateStaffRequest) { r.Role = "owner" }, "role"},
		{"bad phone", func(r *staff.CreateStaffRequest) { phone := "12ab"; r.Phone = &phone }, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), req)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestStaffService_List_ExcludesAdmins(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestStaffService(t)

	admin := validRequest()
	admin.Email = "hr@example.com"
	admin.Role = "admin"
	_, err := svc.Create(ctx, admin)
	require.NoError(t, err)
	_, err = svc.Create(ctx, validRequest())
	require.NoError(t, err)

	profiles, err := svc.List(ctx)

	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "dewi@example.com", profiles[0].Email)
}

func TestStaffService_GetProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestStaffService(t)

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dewi Lestari", profile.Name)
	require.NotNil(t, profile.Batch)
	assert.Equal(t, "2025-A", *profile.Batch)

	_, err = svc.GetProfile(ctx, "0190a7b2-3c4d-7e5f-8a9b-0c1d2e3f4a5b")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
