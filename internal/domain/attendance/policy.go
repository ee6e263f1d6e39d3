package attendance

import (
	"fmt"
	"time"
)

// ClockTime is a time of day without a date
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM"
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On places the clock time on the calendar day of t, in t's location
func (c ClockTime) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour, c.Minute, 0, 0, t.Location())
}

// Policy holds the daily thresholds used to derive late and early minutes.
// LateThreshold already includes the grace period after the nominal start.
type Policy struct {
	LateThreshold  ClockTime
	EarlyThreshold ClockTime
}

// DefaultPolicy is a 09:30 start with a 10 minute grace period and a 17:50 end
func DefaultPolicy() Policy {
	return Policy{
		LateThreshold:  ClockTime{Hour: 9, Minute: 40},
		EarlyThreshold: ClockTime{Hour: 17, Minute: 50},
	}
}

// LateMinutes returns whole minutes between the late threshold and checkIn, or 0
func (p Policy) LateMinutes(checkIn time.Time) int {
	threshold := p.LateThreshold.On(checkIn)
	if !checkIn.After(threshold) {
		return 0
	}
	return int(checkIn.Sub(threshold) / time.Minute)
}

// EarlyMinutes returns whole minutes between checkOut and the early threshold, or 0
func (p Policy) EarlyMinutes(checkOut time.Time) int {
	threshold := p.EarlyThreshold.On(checkOut)
	if !checkOut.Before(threshold) {
		return 0
	}
	return int(threshold.Sub(checkOut) / time.Minute)
}

// DateOf truncates t to midnight of its calendar day in its own location
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
