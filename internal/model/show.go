package model

import (
	"fmt"
	"strings"
	"time"
)

// UnknownShowDate is used when no source yields a broadcast date.
var UnknownShowDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// ShowIdentity identifies one archived broadcast.
type ShowIdentity struct {
	// Number is the show number.
	Number int

	// Date is the broadcast date, or UnknownShowDate.
	Date time.Time

	// DateKnown is false when Date is the UnknownShowDate placeholder.
	DateKnown bool
}

// NewShowIdentity creates a ShowIdentity. A zero date is replaced with
// UnknownShowDate.
func NewShowIdentity(number int, date time.Time) ShowIdentity {
	if date.IsZero() {
		return ShowIdentity{Number: number, Date: UnknownShowDate}
	}
	return ShowIdentity{Number: number, Date: date, DateKnown: true}
}

// Year returns the four digit broadcast year.
func (s ShowIdentity) Year() string {
	return s.Date.Format("2006")
}

// MediaReference names the audio file of a show.
type MediaReference struct {
	// Filename is the media base name, e.g. "WEFUNK_Show_386_2006-12-07.mp3".
	Filename string

	// Observed is true when Filename came from the stream probe rather than
	// from SynthesizeMedia.
	Observed bool
}

// SynthesizeMedia builds the media filename the site would use for a show:
//
//	WEFUNK_Show_<number>_<YYYY-MM-DD>[_hq].mp3
//
// Shows at or above the HQ threshold carry the HQ suffix.
func SynthesizeMedia(show ShowIdentity, site SiteConfig) MediaReference {
	base := fmt.Sprintf("%s_%d_%s", site.FilenameMarker, show.Number, show.Date.Format("2006-01-02"))
	suffix := site.MediaExtension
	if show.Number >= site.HQThreshold {
		suffix = site.HQSuffix + site.MediaExtension
	}
	return MediaReference{Filename: base + suffix}
}

// CueFileName returns the cue sheet name for the media file: the media
// extension is replaced with the cue extension, or the cue extension is
// appended when the name carries another extension.
func (m MediaReference) CueFileName(site SiteConfig) string {
	name := m.Filename
	if strings.HasSuffix(name, site.MediaExtension) {
		name = strings.TrimSuffix(name, site.MediaExtension)
	}
	return sanitizeFileName(name) + site.CueExtension
}
