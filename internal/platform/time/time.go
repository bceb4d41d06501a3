// Package time holds calendar-date helpers; deadlines are whole UTC days
package time

import (
	"time"

	perr "courtclock/internal/platform/errors"
)

// DateLayout is the wire and storage format for calendar dates
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar day, keeping the wall-clock date
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD into UTC midnight; failures are Validation errors pinned to field
func ParseDate(field, s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, perr.Validationf(field, "%s must be a date formatted YYYY-MM-DD", field)
	}
	return d, nil
}

// FormatDate renders the calendar day of t
func FormatDate(t time.Time) string { return t.Format(DateLayout) }
