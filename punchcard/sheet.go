package punchcard

import (
	"fmt"
	"time"
)

// TrackingState labels what the trailing period implies about a sheet.
type TrackingState string

const (
	StateEmpty    = TrackingState("empty")
	StateIdle     = TrackingState("idle")
	StateTracking = TrackingState("tracking")
)

// Status is the derived state of a sheet plus its anchor timestamp: the open
// period's start while tracking, the last punch-out while idle, and the zero
// time for a sheet with no punches at all.
type Status struct {
	State TrackingState
	At    time.Time
}

// Sheet is the ordered punch log for one tracked subject. Periods are
// appended at punch-in, so insertion order is chronological, and only the
// trailing period may be open. The sheet owns its periods; accessors hand
// out copies.
type Sheet struct {
	periods []Period
}

// NewSheet returns an empty sheet.
func NewSheet() *Sheet {
	return &Sheet{}
}

// FromPeriods builds a sheet from decoded periods, normalizing every
// timestamp to UTC whole seconds so second-precision codecs round-trip the
// sheet exactly, and enforcing the structural invariants: every period has a
// start, ends never precede their starts, starts ascend, and an open period
// may only sit in the last slot.
func FromPeriods(periods []Period) (*Sheet, error) {
	normalized := make([]Period, len(periods))
	for i, p := range periods {
		normalized[i] = normalizePeriod(p)
	}
	for i, p := range normalized {
		if p.Start.IsZero() {
			return nil, fmt.Errorf("%w: period %d has no start", ErrMalformedSheet, i)
		}
		if p.End != nil && p.End.Before(p.Start) {
			return nil, fmt.Errorf("%w: period %d ends before it starts", ErrMalformedSheet, i)
		}
		if i > 0 && p.Start.Before(normalized[i-1].Start) {
			return nil, fmt.Errorf("%w: period %d starts before period %d", ErrMalformedSheet, i, i-1)
		}
		if p.End == nil && i != len(normalized)-1 {
			return nil, fmt.Errorf("%w: open period %d is not the last", ErrMalformedSheet, i)
		}
	}
	return &Sheet{periods: normalized}, nil
}

// PunchIn opens a new period at the given time, normalized for storage. It
// fails while a period is already open, and it refuses a zero time or a
// start that would land before the previous period's start, since the log
// must stay decodable and in chronological order.
func (s *Sheet) PunchIn(at time.Time) error {
	at = Normalize(at)
	if at.IsZero() {
		return fmt.Errorf("%w: punch-in time is zero", ErrInvalidRange)
	}
	n := len(s.periods)
	if n > 0 && s.periods[n-1].End == nil {
		return fmt.Errorf("%w at %s", ErrAlreadyTracking, s.periods[n-1].Start.Format(time.RFC3339))
	}
	if n > 0 && at.Before(s.periods[n-1].Start) {
		return fmt.Errorf("%w: punch-in at %s predates the previous period",
			ErrInvalidRange, at.Format(time.RFC3339))
	}
	s.periods = append(s.periods, Open(at))
	return nil
}

// PunchOut closes the open period at the given time, normalized for storage.
// The sheet is left unchanged on failure.
func (s *Sheet) PunchOut(at time.Time) error {
	at = Normalize(at)
	n := len(s.periods)
	if n == 0 {
		return fmt.Errorf("%w, no punches recorded", ErrNotTracking)
	}
	last := s.periods[n-1]
	if last.End != nil {
		return fmt.Errorf("%w, last punched out at %s", ErrNotTracking, last.End.Format(time.RFC3339))
	}
	closed, err := last.Close(at)
	if err != nil {
		return err
	}
	s.periods[n-1] = closed
	return nil
}

// Status derives the tracking state from the trailing period.
func (s *Sheet) Status() Status {
	n := len(s.periods)
	if n == 0 {
		return Status{State: StateEmpty}
	}
	last := s.periods[n-1]
	if last.End == nil {
		return Status{State: StateTracking, At: last.Start}
	}
	return Status{State: StateIdle, At: *last.End}
}

// Count sums the tracked time falling inside [from, to), counting an open
// period as running until now. An inverted window is an error rather than
// being silently normalized; an empty window counts zero.
func (s *Sheet) Count(from, to, now time.Time) (time.Duration, error) {
	if to.Before(from) {
		return 0, fmt.Errorf("%w: window ends %s before it begins %s",
			ErrInvalidRange, to.Format(time.RFC3339), from.Format(time.RFC3339))
	}
	var total time.Duration
	for _, p := range s.periods {
		total += p.Overlap(from, to, now)
	}
	return total, nil
}

// Periods returns a copy of the punch log in chronological order.
func (s *Sheet) Periods() []Period {
	out := make([]Period, len(s.periods))
	for i, p := range s.periods {
		out[i] = clonePeriod(p)
	}
	return out
}

// Len reports the number of periods on the sheet.
func (s *Sheet) Len() int {
	return len(s.periods)
}

// Equal reports structural equality of the two period sequences.
func (s *Sheet) Equal(o *Sheet) bool {
	if len(s.periods) != len(o.periods) {
		return false
	}
	for i := range s.periods {
		if !s.periods[i].Equal(o.periods[i]) {
			return false
		}
	}
	return true
}
