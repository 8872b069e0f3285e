package view

import (
	"fmt"
	"time"

	"punch/punchcard"
)

// Viewer renders one month of a sheet. The month is given as "2006-01"; an
// empty string means the current month.
type Viewer interface {
	Do(yearMonth string) error
}

// MonthReport is the per-day breakdown the renderers share.
type MonthReport struct {
	Month time.Time // first of the month, local midnight
	Days  []DayReport
	Total time.Duration
}

// DayReport lists the periods touching one local calendar day and the time
// tracked within it. A period spanning midnight appears on every day it
// touches, while Tracked counts only each day's share.
type DayReport struct {
	Date    time.Time
	Rows    []PeriodRow
	Tracked time.Duration
}

// PeriodRow is one period as displayed on a day. Out is nil while the
// period is still being tracked.
type PeriodRow struct {
	In  time.Time
	Out *time.Time
}

// Repository assembles month reports from one subject's sheet.
type Repository interface {
	MonthReport(yearMonth string, now time.Time) (MonthReport, error)
}

func NewRepository(tracker *punchcard.Tracker, subject string) Repository {
	return &repository{tracker: tracker, subject: subject}
}

type repository struct {
	tracker *punchcard.Tracker
	subject string
}

func (r *repository) MonthReport(yearMonth string, now time.Time) (MonthReport, error) {
	monthStart, err := parseMonth(yearMonth, now)
	if err != nil {
		return MonthReport{}, err
	}
	sheet, err := r.tracker.Sheet(r.subject)
	if err != nil {
		return MonthReport{}, err
	}
	return buildMonthReport(sheet, monthStart, now)
}

func parseMonth(yearMonth string, now time.Time) (time.Time, error) {
	local := now.Local()
	if yearMonth == "" {
		return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, local.Location()), nil
	}
	t, err := time.ParseInLocation("2006-01", yearMonth, local.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, want e.g. 2024-03", yearMonth)
	}
	return t, nil
}

func buildMonthReport(sheet *punchcard.Sheet, monthStart, now time.Time) (MonthReport, error) {
	monthEnd := monthStart.AddDate(0, 1, 0)
	periods := sheet.Periods()

	report := MonthReport{Month: monthStart}
	for day := monthStart; day.Before(monthEnd); day = day.AddDate(0, 0, 1) {
		dayEnd := day.AddDate(0, 0, 1)

		dr := DayReport{Date: day}
		for _, p := range periods {
			if !touchesDay(p, day, dayEnd, now) {
				continue
			}
			dr.Rows = append(dr.Rows, PeriodRow{In: p.Start, Out: p.End})
		}

		tracked, err := sheet.Count(day, dayEnd, now)
		if err != nil {
			return MonthReport{}, err
		}
		dr.Tracked = tracked
		report.Days = append(report.Days, dr)
	}

	total, err := sheet.Count(monthStart, monthEnd, now)
	if err != nil {
		return MonthReport{}, err
	}
	report.Total = total
	return report, nil
}

// touchesDay includes periods overlapping the day, plus zero-length or
// future-dated ones that begin on it, so nothing recorded goes unlisted.
func touchesDay(p punchcard.Period, day, dayEnd, now time.Time) bool {
	if p.Overlap(day, dayEnd, now) > 0 {
		return true
	}
	return !p.Start.Before(day) && p.Start.Before(dayEnd)
}
