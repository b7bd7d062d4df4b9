package utils

import "time"

// AddMonths adds n calendar months to date. The day of month is clamped to the
// last day of the target month, so Jan 31 + 1 month is Feb 28 (or 29).
func AddMonths(date time.Time, n int) time.Time {
	year, month, day := date.Date()
	hour, min, sec := date.Clock()

	// Normalise the target month via day 1 so AddDate cannot overflow into the next month
	first := time.Date(year, month, 1, 0, 0, 0, 0, date.Location()).AddDate(0, n, 0)
	if last := daysIn(first.Year(), first.Month(), date.Location()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, hour, min, sec, date.Nanosecond(), date.Location())
}

// AddWeeks adds n weeks (7n calendar days) to date
func AddWeeks(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, 7*n)
}

// AddDays adds n calendar days to date
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// AddHours adds n hours to dateTime
func AddHours(dateTime time.Time, n int) time.Time {
	return dateTime.Add(time.Duration(n) * time.Hour)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
