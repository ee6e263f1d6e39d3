package staff

import (
	"strings"

	"github.com/pixdot/hr-payroll-backend/internal/domain/user"
	"github.com/pixdot/hr-payroll-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateStaffRequest struct {
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         *string         `json:"phone"`
	Age           *int            `json:"age"`
	Batch         *string         `json:"batch"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	Role          string          `json:"role"`
}

func (r *CreateStaffRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	// Name
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	// Email
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must contain 7 to 15 digits",
		})
	}

	if r.Age != nil && (*r.Age < 15 || *r.Age > 100) {
		errs = append(errs, validator.ValidationError{
			Field:   "age",
			Message: "age must be between 15 and 100",
		})
	}

	if r.Batch != nil && len(*r.Batch) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "batch",
			Message: "batch must not exceed 50 characters",
		})
	}

	if r.MonthlySalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "monthly_salary",
			Message: "monthly_salary must not be negative",
		})
	}

	// Role defaults to user
	if r.Role == "" {
		r.Role = string(user.RoleUser)
	} else if !user.IsValidRole(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, user",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateStaffResponse struct {
	user.ProfileResponse
	// GeneratedPassword is returned once and never stored in clear text
	GeneratedPassword string `json:"generated_password"`
}
