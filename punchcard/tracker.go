package punchcard

import (
	"log/slog"
	"time"
)

// Tracker is the narrow interface the commands drive: load a subject's
// sheet, apply one transition or query, persist. Every call works on a
// fresh decode of the stored sheet, and a failed transition writes nothing
// back.
type Tracker struct {
	store  Store
	codec  Codec
	logger *slog.Logger
}

func NewTracker(store Store, codec Codec, logger *slog.Logger) *Tracker {
	return &Tracker{store: store, codec: codec, logger: logger}
}

func (t *Tracker) load(subject string) (*Sheet, error) {
	data, err := t.store.Load(subject)
	if err != nil {
		return nil, err
	}
	sheet, err := t.codec.Decode(data)
	if err != nil {
		return nil, err
	}
	t.logger.Debug("sheet loaded", slog.String("subject", subject), slog.Int("periods", sheet.Len()))
	return sheet, nil
}

func (t *Tracker) save(subject string, sheet *Sheet) error {
	data, err := t.codec.Encode(sheet)
	if err != nil {
		return err
	}
	if err := t.store.Save(subject, data); err != nil {
		return err
	}
	t.logger.Debug("sheet saved", slog.String("subject", subject), slog.Int("periods", sheet.Len()))
	return nil
}

// PunchIn starts tracking on the subject's sheet and returns the recorded
// start time.
func (t *Tracker) PunchIn(subject string, at time.Time) (time.Time, error) {
	sheet, err := t.load(subject)
	if err != nil {
		return time.Time{}, err
	}
	if err := sheet.PunchIn(at); err != nil {
		return time.Time{}, err
	}
	if err := t.save(subject, sheet); err != nil {
		return time.Time{}, err
	}
	periods := sheet.Periods()
	start := periods[len(periods)-1].Start
	t.logger.Debug("punched in", slog.String("subject", subject), slog.Time("at", start))
	return start, nil
}

// PunchOut stops tracking and returns the period that was closed.
func (t *Tracker) PunchOut(subject string, at time.Time) (Period, error) {
	sheet, err := t.load(subject)
	if err != nil {
		return Period{}, err
	}
	if err := sheet.PunchOut(at); err != nil {
		return Period{}, err
	}
	if err := t.save(subject, sheet); err != nil {
		return Period{}, err
	}
	periods := sheet.Periods()
	closed := periods[len(periods)-1]
	t.logger.Debug("punched out", slog.String("subject", subject), slog.Time("at", *closed.End))
	return closed, nil
}

// Status reports the subject's derived tracking state.
func (t *Tracker) Status(subject string) (Status, error) {
	sheet, err := t.load(subject)
	if err != nil {
		return Status{}, err
	}
	return sheet.Status(), nil
}

// Count totals the tracked time inside [from, to), with an open period
// running until now.
func (t *Tracker) Count(subject string, from, to, now time.Time) (time.Duration, error) {
	sheet, err := t.load(subject)
	if err != nil {
		return 0, err
	}
	return sheet.Count(from, to, now)
}

// Sheet loads the subject's sheet for read-only use.
func (t *Tracker) Sheet(subject string) (*Sheet, error) {
	return t.load(subject)
}
