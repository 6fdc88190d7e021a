package model

import (
	"regexp"
	"strings"
	"time"
)

// Track is one entry of a cue sheet.
//
// Tracks are built by the reconciler and never modified afterwards.
//
// Example:
//
//	track := NewTrack(2, "Pete Rock & CL Smooth", "T.R.O.Y.", 93500*time.Millisecond)
type Track struct {
	// Number is the 1-based position of the track in its sheet.
	Number int

	// Artist is the track performer.
	Artist string

	// Title is the track title.
	Title string

	// StartsAt is the offset of the track from the start of the show.
	StartsAt time.Duration
}

// NewTrack creates a Track.
func NewTrack(number int, artist, title string, startsAt time.Duration) *Track {
	return &Track{
		Number:   number,
		Artist:   artist,
		Title:    title,
		StartsAt: startsAt,
	}
}

// sanitizeFileName removes or replaces characters that are invalid in file names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
func sanitizeFileName(name string) string {
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")

	name = regexp.MustCompile(`\.+$`).ReplaceAllString(name, "")

	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")

	name = strings.TrimRight(name, " ")

	return name
}
