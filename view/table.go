package view

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"punch/punchcard"
)

type tableViewer struct {
	repo Repository
	out  io.Writer
	now  func() time.Time
}

// NewTableViewer renders month reports as a table on w.
func NewTableViewer(repo Repository, w io.Writer) Viewer {
	return &tableViewer{repo: repo, out: w, now: punchcard.Now}
}

func (t *tableViewer) Do(yearMonth string) error {
	report, err := t.repo.MonthReport(yearMonth, t.now())
	if err != nil {
		return err
	}
	buildTableWriter(report, t.out).Render()
	return nil
}

func buildTableWriter(report MonthReport, out io.Writer) table.Writer {
	tb := table.NewWriter()
	tb.SetOutputMirror(out)
	tb.AppendHeader(table.Row{"Date", "In", "Out", "Tracked"})

	for _, day := range report.Days {
		date := day.Date.Format("2006-01-02")
		tracked := formatCell(day.Tracked)

		if len(day.Rows) == 0 {
			tb.AppendRow(table.Row{date, "", "", tracked})
			continue
		}
		for _, row := range day.Rows {
			tb.AppendRow(table.Row{
				date,
				cellStamp(row.In, day.Date),
				outCell(row.Out, day.Date),
				tracked,
			})
		}
	}

	tb.AppendFooter(table.Row{"", "", "Total", formatCell(report.Total)})
	tb.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 4, AutoMerge: true},
	})
	tb.SetStyle(table.StyleRounded)
	return tb
}

func formatCell(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// cellStamp keeps in-day punches short and marks midnight spills with the date.
func cellStamp(t time.Time, day time.Time) string {
	local := t.Local()
	if local.Year() == day.Year() && local.YearDay() == day.YearDay() {
		return local.Format("15:04")
	}
	return local.Format("01-02 15:04")
}

func outCell(t *time.Time, day time.Time) string {
	if t == nil {
		return ""
	}
	return cellStamp(*t, day)
}
