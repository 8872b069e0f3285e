package punchcard

import (
	"fmt"
	"strings"
	"time"
)

// LineCodec persists the sheet as one period per line: start and end as
// RFC 3339 stamps separated by a space, with "-" marking a period that is
// still open. Blank lines and lines starting with "#" are ignored; anything
// else that fails to parse is reported rather than dropped.
type LineCodec struct{}

const openEndMark = "-"

func (LineCodec) Name() string { return "text" }

func (LineCodec) Encode(s *Sheet) ([]byte, error) {
	var b strings.Builder
	for _, p := range s.Periods() {
		end := openEndMark
		if p.End != nil {
			end = p.End.Format(time.RFC3339)
		}
		fmt.Fprintf(&b, "%s %s\n", p.Start.Format(time.RFC3339), end)
	}
	return []byte(b.String()), nil
}

func (LineCodec) Decode(data []byte) (*Sheet, error) {
	var periods []Period
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := parsePeriodLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedSheet, i+1, err)
		}
		periods = append(periods, p)
	}
	return FromPeriods(periods)
}

func parsePeriodLine(line string) (Period, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Period{}, fmt.Errorf("want a start and an end column, got %d", len(fields))
	}
	start, err := time.Parse(time.RFC3339, fields[0])
	if err != nil {
		return Period{}, fmt.Errorf("bad start time: %v", err)
	}
	if fields[1] == openEndMark {
		return Open(start), nil
	}
	end, err := time.Parse(time.RFC3339, fields[1])
	if err != nil {
		return Period{}, fmt.Errorf("bad end time: %v", err)
	}
	return Period{Start: start, End: &end}, nil
}
