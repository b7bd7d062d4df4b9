package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"short season from March", date(2026, time.March, 1), 4, date(2026, time.July, 1)},
		{"crosses year", date(2026, time.September, 15), 6, date(2027, time.March, 15)},
		{"clamps to shorter month", date(2026, time.January, 31), 1, date(2026, time.February, 28)},
		{"clamps to leap day", date(2028, time.January, 31), 1, date(2028, time.February, 29)},
		{"clamps to 30 day month", date(2026, time.March, 31), 1, date(2026, time.April, 30)},
		{"twelve months", date(2026, time.March, 1), 12, date(2027, time.March, 1)},
		{"zero months", date(2026, time.May, 5), 0, date(2026, time.May, 5)},
		{"negative months", date(2026, time.March, 31), -1, date(2026, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.start, tt.n))
		})
	}
}

func TestAddMonthsKeepsClockAndLocation(t *testing.T) {
	loc := time.FixedZone("WAT", 3600)
	start := time.Date(2026, time.March, 1, 9, 30, 15, 0, loc)

	got := AddMonths(start, 4)

	assert.Equal(t, time.Date(2026, time.July, 1, 9, 30, 15, 0, loc), got)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, date(2026, time.March, 1).Day(), start.Day(), "input must not change")
}

func TestAddWeeksDaysHours(t *testing.T) {
	start := date(2026, time.July, 1)

	assert.Equal(t, date(2026, time.July, 22), AddWeeks(start, 3))
	assert.Equal(t, start.AddDate(0, 0, 56), AddWeeks(start, 8))
	assert.Equal(t, date(2026, time.July, 11), AddDays(start, 10))
	assert.Equal(t, date(2026, time.June, 30), AddDays(start, -1))

	dt := time.Date(2026, time.July, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.July, 2, 2, 0, 0, 0, time.UTC), AddHours(dt, 6))
}
