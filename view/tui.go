package view

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"punch/punchcard"
)

// NewTUI returns an interactive month browser over repo. The browser is read
// only; punches are recorded with the in and out commands.
func NewTUI(repo Repository) Viewer {
	return &tui{repo: repo, now: punchcard.Now}
}

type tui struct {
	repo Repository
	now  func() time.Time

	app  *tview.Application
	next string
}

func (t *tui) Do(yearMonth string) error {
	for {
		report, err := t.repo.MonthReport(yearMonth, t.now())
		if err != nil {
			return err
		}

		t.app = tview.NewApplication()
		t.next = ""

		table := newMonthTable(report)
		header := tview.NewTextView().
			SetText(fmt.Sprintf(" %s    h/l: change month, q: quit", report.Month.Format("January 2006")))

		root := tview.NewFlex().
			SetDirection(tview.FlexRow).
			AddItem(header, 1, 1, false).
			AddItem(table, 0, 1, true)

		t.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
			switch {
			case event.Key() == tcell.KeyEscape || event.Rune() == 'q':
				t.app.Stop()
				return nil
			case event.Key() == tcell.KeyLeft || event.Rune() == 'h':
				t.next = report.Month.AddDate(0, -1, 0).Format("2006-01")
				t.app.Stop()
				return nil
			case event.Key() == tcell.KeyRight || event.Rune() == 'l':
				t.next = report.Month.AddDate(0, 1, 0).Format("2006-01")
				t.app.Stop()
				return nil
			}
			return event
		})

		if err := t.app.SetRoot(root, true).Run(); err != nil {
			return err
		}
		if t.next == "" {
			return nil
		}
		yearMonth = t.next
	}
}

func newMonthTable(report MonthReport) *tview.Table {
	table := tview.NewTable().SetBorders(true)

	table.SetCell(0, 0, headerCell("Date"))
	table.SetCell(0, 1, headerCell("In"))
	table.SetCell(0, 2, headerCell("Out"))
	table.SetCell(0, 3, headerCell("Tracked"))

	row := 1
	for _, day := range report.Days {
		table.SetCell(row, 0, dateCell(day.Date))
		table.SetCell(row, 3, timeCell(formatCell(day.Tracked)))

		if len(day.Rows) == 0 {
			table.SetCell(row, 1, timeCell(""))
			table.SetCell(row, 2, timeCell(""))
			row++
			continue
		}
		for _, pr := range day.Rows {
			table.SetCell(row, 1, timeCell(cellStamp(pr.In, day.Date)))
			table.SetCell(row, 2, timeCell(outCell(pr.Out, day.Date)))
			row++
		}
	}

	table.SetCell(row, 2, headerCell("Total"))
	table.SetCell(row, 3, headerCell(formatCell(report.Total)))

	table.SetFixed(1, 0).SetSelectable(true, false)
	return table
}

func headerCell(text string) *tview.TableCell {
	return tview.NewTableCell(text).SetAlign(tview.AlignCenter).SetSelectable(false)
}

var weekdayColors = map[time.Weekday]tcell.Color{
	time.Saturday: tcell.ColorBlue,
	time.Sunday:   tcell.ColorRed,
}

func dateCell(day time.Time) *tview.TableCell {
	color := tcell.ColorWhite
	if c, ok := weekdayColors[day.Weekday()]; ok {
		color = c
	}
	s := fmt.Sprintf(" %s (%s) ", day.Format("01/02"), day.Format("Mon"))
	return tview.NewTableCell(s).SetTextColor(color).SetAlign(tview.AlignCenter)
}

const emptyStamp = "--:--"

func timeCell(text string) *tview.TableCell {
	if text == "" {
		text = emptyStamp
	}
	return tview.NewTableCell(fmt.Sprintf("  %s  ", text)).SetAlign(tview.AlignCenter)
}
