package punchcard

import (
	"fmt"
	"time"
)

// Period is a single punch-in/punch-out interval. End is nil while the
// period is still being tracked.
type Period struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end"`
}

// Open starts a new period at start with no end yet.
func Open(start time.Time) Period {
	return Period{Start: start}
}

// Close returns a copy of the period ended at end. It fails if end precedes
// the period's start; ending a period the second it began is allowed.
func (p Period) Close(end time.Time) (Period, error) {
	if end.Before(p.Start) {
		return Period{}, fmt.Errorf("%w: end %s precedes start %s",
			ErrInvalidRange, end.Format(time.RFC3339), p.Start.Format(time.RFC3339))
	}
	e := end
	return Period{Start: p.Start, End: &e}, nil
}

// IsOpen reports whether the period is still being tracked.
func (p Period) IsOpen() bool {
	return p.End == nil
}

// EffectiveEnd is the period's end, or now for an open period.
func (p Period) EffectiveEnd(now time.Time) time.Time {
	if p.End != nil {
		return *p.End
	}
	return now
}

// Overlap reports how much of the period falls inside the window [from, to),
// with now standing in for the end of an open period. Disjoint intervals
// contribute zero; the result is never negative.
func (p Period) Overlap(from, to, now time.Time) time.Duration {
	start := p.Start
	if from.After(start) {
		start = from
	}
	end := p.EffectiveEnd(now)
	if to.Before(end) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// Equal reports whether two periods cover the same instants.
func (p Period) Equal(o Period) bool {
	if !p.Start.Equal(o.Start) {
		return false
	}
	if (p.End == nil) != (o.End == nil) {
		return false
	}
	return p.End == nil || p.End.Equal(*o.End)
}

func clonePeriod(p Period) Period {
	if p.End == nil {
		return Period{Start: p.Start}
	}
	end := *p.End
	return Period{Start: p.Start, End: &end}
}

func normalizePeriod(p Period) Period {
	q := Period{Start: Normalize(p.Start)}
	if p.End != nil {
		end := Normalize(*p.End)
		q.End = &end
	}
	return q
}
