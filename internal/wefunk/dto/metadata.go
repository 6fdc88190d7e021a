package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MetadataEntry is the normalized form of one `trackextra` position.
//
// An entry is either an object or an array whose first element is the
// object:
//
//	{"a": "Artist", "t": "Title"}
//	[{"a": "Artist", "t": "Title"}]
//
// Empty arrays and any other JSON value yield an entry without metadata.
// Artist and Title are trimmed.
type MetadataEntry struct {
	Artist string
	Title  string
}

// IsEmpty reports whether the entry has neither artist nor title.
func (m MetadataEntry) IsEmpty() bool {
	return m.Artist == "" && m.Title == ""
}

type jsonMetadata struct {
	Artist json.RawMessage `json:"a"`
	Title  json.RawMessage `json:"t"`
}

// UnmarshalJSON normalizes both entry shapes.
func (m *MetadataEntry) UnmarshalJSON(data []byte) error {
	*m = MetadataEntry{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		first := bytes.TrimSpace(items[0])
		if len(first) == 0 || first[0] != '{' {
			return fmt.Errorf("metadata entry: first element is not an object")
		}
		return m.decodeObject(first)
	case '{':
		return m.decodeObject(trimmed)
	default:
		return nil
	}
}

func (m *MetadataEntry) decodeObject(data []byte) error {
	var raw jsonMetadata
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	artist, err := optionalString(raw.Artist)
	if err != nil {
		return fmt.Errorf("metadata entry: artist: %w", err)
	}
	title, err := optionalString(raw.Title)
	if err != nil {
		return fmt.Errorf("metadata entry: title: %w", err)
	}

	m.Artist = strings.TrimSpace(artist)
	m.Title = strings.TrimSpace(title)
	return nil
}

// optionalString decodes a missing or null value as "" and rejects
// non-string values.
func optionalString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}
