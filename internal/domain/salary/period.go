package salary

import "time"

// Period is a calendar month
type Period struct {
	Year  int
	Month int
}

func NewPeriod(year, month int) (Period, error) {
	if year < 1 || month < 1 || month > 12 {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Year: year, Month: month}, nil
}

// DaysIn returns the number of days in the month
func (p Period) DaysIn() int {
	return time.Date(p.Year, time.Month(p.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstDay returns midnight of the first day in loc
func (p Period) FirstDay(loc *time.Location) time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, loc)
}

// LastDay returns midnight of the last day in loc
func (p Period) LastDay(loc *time.Location) time.Time {
	return time.Date(p.Year, time.Month(p.Month), p.DaysIn(), 0, 0, 0, 0, loc)
}

// Contains reports whether the calendar date of t falls in the month
func (p Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && int(t.Month()) == p.Month
}

// Previous returns the month before p
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Year: p.Year - 1, Month: 12}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}
