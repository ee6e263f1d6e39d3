package attendance

import (
	"time"
)

// State of a (user, date) attendance record
type State string

const (
	StateNone       State = "NONE"
	StateCheckedIn  State = "CHECKED_IN"
	StateCheckedOut State = "CHECKED_OUT"
)

type Attendance struct {
	ID             string
	UserID         string
	Date           time.Time // calendar day, midnight in the clock's location
	CheckIn        *time.Time
	CheckOut       *time.Time // nil until checkout
	LateMinutes    int
	EarlyMinutes   int
	IsPresent      bool
	IsPaidLeave    bool // set outside this service
	PermissionUsed bool // set outside this service
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// State derives the lifecycle state from the nullable timestamps
func (a *Attendance) State() State {
	switch {
	case a.CheckOut != nil:
		return StateCheckedOut
	case a.CheckIn != nil:
		return StateCheckedIn
	default:
		return StateNone
	}
}
