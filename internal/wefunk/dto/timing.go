package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// TimingPayload is the normalized form of the page's `tracks` script array.
//
// The site publishes it in two shapes:
//
//	var tracks = [{"mspos": 0}, {"mspos": 93500}];
//	var tracks = {"tracks": [{"mspos": 0}, {"mspos": 93500}]};
//
// Both decode to the same Entries. Any other JSON value decodes to an empty
// payload. Entries stay raw until Entry is called, so a malformed entry only
// matters at a position that is actually read.
type TimingPayload struct {
	Entries []json.RawMessage
}

// Len returns the number of timing positions.
func (p *TimingPayload) Len() int {
	return len(p.Entries)
}

// Entry decodes the timing entry at position i.
func (p *TimingPayload) Entry(i int) (TimingEntry, error) {
	var entry TimingEntry
	if err := json.Unmarshal(p.Entries[i], &entry); err != nil {
		return TimingEntry{}, err
	}
	return entry, nil
}

// UnmarshalJSON accepts an array of entries or an object wrapping one under
// the "tracks" key.
func (p *TimingPayload) UnmarshalJSON(data []byte) error {
	p.Entries = nil

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '[':
		return json.Unmarshal(trimmed, &p.Entries)
	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return err
		}
		nested, ok := wrapper["tracks"]
		if !ok {
			return nil
		}
		if !isArray(nested) {
			return fmt.Errorf("timing payload: nested tracks is not an array")
		}
		return json.Unmarshal(nested, &p.Entries)
	default:
		return nil
	}
}

// TimingEntry is one timing position. HasOffset is false when the entry is
// not an object or carries no "mspos" key; such positions are skipped by the
// reconciler.
type TimingEntry struct {
	Offset    time.Duration
	HasOffset bool
}

// UnmarshalJSON reads the "mspos" millisecond offset. A present offset must
// be a number.
func (e *TimingEntry) UnmarshalJSON(data []byte) error {
	*e = TimingEntry{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return fmt.Errorf("timing entry: %w", err)
	}

	raw, ok := fields["mspos"]
	if !ok {
		return nil
	}
	if isNull(raw) {
		return fmt.Errorf("timing entry: mspos is null")
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return fmt.Errorf("timing entry: mspos: %w", err)
	}

	// Offsets are kept at microsecond precision.
	e.Offset = time.Duration(math.Round(ms*1000)) * time.Microsecond
	e.HasOffset = true
	return nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

func isArray(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}
