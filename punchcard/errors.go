package punchcard

import "errors"

// Failure modes of the sheet state machine and codec. Callers classify with
// errors.Is; the wrapped messages carry the offending timestamps.
var (
	ErrAlreadyTracking = errors.New("already punched in")
	ErrNotTracking     = errors.New("not punched in")
	ErrInvalidRange    = errors.New("invalid time range")
	ErrMalformedSheet  = errors.New("malformed sheet")
)
