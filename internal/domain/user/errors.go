package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailExists             = errors.New("email already registered")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrForbiddenSubject        = errors.New("you may only access your own records")
)
