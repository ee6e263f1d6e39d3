package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin Role = "admin" // HR administrator - manages staff and payroll
	RoleUser  Role = "user"  // Staff member
)

type User struct {
	ID            string
	Name          string
	Email         string
	Phone         *string
	Age           *int
	Batch         *string
	MonthlySalary decimal.Decimal
	PasswordHash  string
	Role          Role
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAdmin checks if user administers staff and payroll
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsValidRole reports whether r is a known role
func IsValidRole(r string) bool {
	return Role(r) == RoleAdmin || Role(r) == RoleUser
}
