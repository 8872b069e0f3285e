package punchcard

import (
	"fmt"
	"strings"
	"time"
)

// Window is a half-open [From, To) query interval handed to Count.
type Window struct {
	From time.Time
	To   time.Time
}

// Range is a named query range resolved against the local calendar.
type Range int

const (
	RangeAll Range = iota
	RangeToday
	RangeYesterday
	RangeWeek
	RangeLastWeek
	RangeMonth
	RangeLastMonth
)

// ParseRange recognizes the named count ranges and their short forms, such
// as "t" for "today" or "lw" for "last week".
func ParseRange(raw string) (Range, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "all", "a":
		return RangeAll, nil
	case "today", "t":
		return RangeToday, nil
	case "yesterday", "y":
		return RangeYesterday, nil
	case "week", "this week", "thisweek", "w", "tw":
		return RangeWeek, nil
	case "last week", "lastweek", "lw":
		return RangeLastWeek, nil
	case "month", "this month", "thismonth", "m", "tm":
		return RangeMonth, nil
	case "last month", "lastmonth", "lm":
		return RangeLastMonth, nil
	default:
		return 0, fmt.Errorf("unrecognised time range %q", raw)
	}
}

func (r Range) String() string {
	switch r {
	case RangeAll:
		return "All-Time"
	case RangeToday:
		return "Today"
	case RangeYesterday:
		return "Yesterday"
	case RangeWeek:
		return "This Week"
	case RangeLastWeek:
		return "Last Week"
	case RangeMonth:
		return "This Month"
	case RangeLastMonth:
		return "Last Month"
	}
	return "Unknown"
}

// Window resolves the range against now's local calendar. Days split at
// local midnight, weeks start on Monday, and months are calendar months.
// RangeAll spans everything up to now.
func (r Range) Window(now time.Time) Window {
	local := now.Local()
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	switch r {
	case RangeToday:
		return Window{From: midnight, To: midnight.AddDate(0, 0, 1)}
	case RangeYesterday:
		return Window{From: midnight.AddDate(0, 0, -1), To: midnight}
	case RangeWeek:
		start := startOfWeek(midnight)
		return Window{From: start, To: start.AddDate(0, 0, 7)}
	case RangeLastWeek:
		start := startOfWeek(midnight).AddDate(0, 0, -7)
		return Window{From: start, To: start.AddDate(0, 0, 7)}
	case RangeMonth:
		start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, local.Location())
		return Window{From: start, To: start.AddDate(0, 1, 0)}
	case RangeLastMonth:
		end := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, local.Location())
		return Window{From: end.AddDate(0, -1, 0), To: end}
	default:
		return Window{To: now}
	}
}

func startOfWeek(midnight time.Time) time.Time {
	weekday := int(midnight.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return midnight.AddDate(0, 0, 1-weekday)
}
