package staff

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pixdot/hr-payroll-backend/internal/domain/staff"
	"github.com/pixdot/hr-payroll-backend/internal/domain/user"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

type StaffServiceImpl struct {
	user.UserRepository
	transactor     database.Transactor
	passwordLength int
	bcryptCost     int
}

func NewStaffService(transactor database.Transactor, userRepository user.UserRepository, passwordLength int) *StaffServiceImpl {
	return &StaffServiceImpl{
		UserRepository: userRepository,
		transactor:     transactor,
		passwordLength: passwordLength,
		bcryptCost:     bcrypt.DefaultCost,
	}
}

// SetBcryptCost lowers hashing cost, used by tests
func (s *StaffServiceImpl) SetBcryptCost(cost int) {
	s.bcryptCost = cost
}

func (s *StaffServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Create implements staff.StaffService.
func (s *StaffServiceImpl) Create(ctx context.Context, req staff.CreateStaffRequest) (staff.CreateStaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.CreateStaffResponse{}, err
	}

	password, err := GeneratePassword(s.passwordLength)
	if err != nil {
		return staff.CreateStaffResponse{}, err
	}
	hashed, err := s.hashPassword(password)
	if err != nil {
		return staff.CreateStaffResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created user.User
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.UserRepository.Create(txCtx, user.User{
			ID:            uuid.Must(uuid.NewV7()).String(),
			Name:          req.Name,
			Email:         req.Email,
			Phone:         req.Phone,
			Age:           req.Age,
			Batch:         req.Batch,
			MonthlySalary: req.MonthlySalary,
			PasswordHash:  hashed,
			Role:          user.Role(req.Role),
		})
		return err
	})
	if err != nil {
		return staff.CreateStaffResponse{}, err
	}

	slog.Info("staff created", "user_id", created.ID, "role", created.Role)

	return staff.CreateStaffResponse{
		ProfileResponse:   user.ToProfileResponse(created),
		GeneratedPassword: password,
	}, nil
}

// List implements staff.StaffService.
func (s *StaffServiceImpl) List(ctx context.Context) ([]user.ProfileResponse, error) {
	users, err := s.UserRepository.ListByRole(ctx, user.RoleUser)
	if err != nil {
		return nil, err
	}

	profiles := make([]user.ProfileResponse, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, user.ToProfileResponse(u))
	}
	return profiles, nil
}

// GetProfile implements staff.StaffService.
func (s *StaffServiceImpl) GetProfile(ctx context.Context, userID string) (user.ProfileResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return user.ToProfileResponse(u), nil
}

var _ staff.StaffService = (*StaffServiceImpl)(nil)
