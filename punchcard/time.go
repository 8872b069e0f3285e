package punchcard

import (
	"fmt"
	"time"
)

// Now returns the current time the way punches are stored: UTC, truncated to
// whole seconds so second-precision sheet formats round-trip exactly.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Normalize applies the punch storage normalization to an externally
// supplied time.
func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

var localStampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseStamp reads a user-supplied timestamp: RFC 3339, a date-time or bare
// date in the local timezone, or an HH:MM clock reading on now's day. An
// empty value means now. The result is normalized for storage.
func ParseStamp(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return Normalize(now), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return Normalize(t), nil
	}
	local := now.Local()
	for _, layout := range localStampLayouts {
		if t, err := time.ParseInLocation(layout, value, local.Location()); err == nil {
			return Normalize(t), nil
		}
	}
	if t, err := time.Parse("15:04", value); err == nil {
		at := time.Date(local.Year(), local.Month(), local.Day(),
			t.Hour(), t.Minute(), 0, 0, local.Location())
		return Normalize(at), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q", value)
}

// Stamp renders t for humans: time-of-day alone when t falls on the same
// local calendar day as now, date-qualified otherwise.
func Stamp(t, now time.Time) string {
	lt, ln := t.Local(), now.Local()
	if lt.Year() == ln.Year() && lt.YearDay() == ln.YearDay() {
		return lt.Format("15:04:05")
	}
	return lt.Format("2006-01-02 15:04:05")
}

// FormatDuration renders a duration as hours and zero-padded minutes,
// e.g. "7h05m".
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%dh%02dm", total/3600, (total%3600)/60)
}
