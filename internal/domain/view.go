package domain

import (
	"fmt"
	"time"
)

// ViewMode is the calendar zoom level selected by the operator
type ViewMode string

const (
	ViewYear    ViewMode = "year"    // one column per day
	ViewQuarter ViewMode = "quarter" // one column per week
	ViewMonth   ViewMode = "month"   // one column per month
)

// ParseViewMode validates a view mode string
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewYear, ViewQuarter, ViewMonth:
		return ViewMode(s), nil
	case "":
		return ViewYear, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
	}
}

// DateOnly drops the clock part and returns UTC midnight of the calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey formats a date as an ISO day key
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseDateKey parses an ISO day key
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDates, key)
	}
	return t, nil
}
