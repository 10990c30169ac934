// Package dates handles the calendar dates stored as yyyy-MM-dd text.
package dates

import (
	"time"

	"gymdesk/internal/domain/apperr"
)

// Layout is the storage format for every date column.
const Layout = "2006-01-02"

// Parse reads a yyyy-MM-dd string into a UTC midnight time.
// PRE: none
// POST: Returns a validation error for anything that is not a real calendar date
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid date %q, want yyyy-MM-dd", s)
	}
	return t, nil
}

// Format writes t as yyyy-MM-dd in t's own location.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today truncates now to its calendar date, keeping the local wall-clock day.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TodayString returns the calendar date of now as yyyy-MM-dd.
func TodayString(now time.Time) string {
	return Format(Today(now))
}

// DaysBetween returns to - from in whole days.
func DaysBetween(from, to time.Time) int {
	return int(Today(to).Sub(Today(from)).Hours() / 24)
}
