package salary

import "errors"

var (
	ErrInvalidPeriod  = errors.New("invalid salary period")
	ErrSalaryNotFound = errors.New("no salary record found")
	ErrInvalidRules   = errors.New("invalid salary rules")
)
