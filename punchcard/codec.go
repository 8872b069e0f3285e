package punchcard

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Codec turns a sheet into persisted bytes and back. Encoding is
// deterministic: the same sheet always yields identical bytes. Decoding nil
// or blank input yields the empty sheet, so a subject that was never saved
// loads cleanly on first run.
type Codec interface {
	Encode(*Sheet) ([]byte, error)
	Decode([]byte) (*Sheet, error)
	Name() string
}

// CodecFor resolves a codec by its configured name. The JSON codec is the
// default.
func CodecFor(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSONCodec{}, nil
	case "text":
		return LineCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown sheet format %q", name)
	}
}

// JSONCodec persists the sheet as a single JSON document.
type JSONCodec struct{}

type sheetJSON struct {
	Periods []Period `json:"periods"`
}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(s *Sheet) ([]byte, error) {
	doc := sheetJSON{Periods: s.Periods()}
	if doc.Periods == nil {
		doc.Periods = []Period{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (JSONCodec) Decode(data []byte) (*Sheet, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewSheet(), nil
	}
	var doc sheetJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSheet, err)
	}
	return FromPeriods(doc.Periods)
}
