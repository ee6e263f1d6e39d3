package salary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeriod(t *testing.T) {
	p, err := NewPeriod(2025, 4)
	require.NoError(t, err)
	assert.Equal(t, Period{Year: 2025, Month: 4}, p)

	for _, bad := range [][2]int{{2025, 0}, {2025, 13}, {0, 1}, {-1, 6}} {
		_, err := NewPeriod(bad[0], bad[1])
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	}
}

func TestPeriod_DaysIn(t *testing.T) {
	tests := []struct {
		year, month, days int
	}{
		{2025, 1, 31},
		{2025, 2, 28},
		{2024, 2, 29},
		{1900, 2, 28},
		{2000, 2, 29},
		{2025, 4, 30},
		{2025, 12, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.days, Period{Year: tt.year, Month: tt.month}.DaysIn(), "%d-%02d", tt.year, tt.month)
	}
}

func TestPeriod_Bounds(t *testing.T) {
	p := Period{Year: 2025, Month: 2}
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), p.FirstDay(time.UTC))
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), p.LastDay(time.UTC))

	assert.True(t, p.Contains(time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)))
}

func TestPeriod_Previous(t *testing.T) {
	assert.Equal(t, Period{Year: 2024, Month: 12}, Period{Year: 2025, Month: 1}.Previous())
	assert.Equal(t, Period{Year: 2025, Month: 3}, Period{Year: 2025, Month: 4}.Previous())
}

func TestRules_Validate(t *testing.T) {
	assert.NoError(t, DefaultRules().Validate())

	r := DefaultRules()
	r.PermissionSlotMinutes = 0
	assert.ErrorIs(t, r.Validate(), ErrInvalidRules)

	r = DefaultRules()
	r.SalaryPerDay = r.SalaryPerDay.Neg()
	assert.ErrorIs(t, r.Validate(), ErrInvalidRules)
}
