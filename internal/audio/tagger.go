package audio

import (
	"fmt"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/handiism/wefunk-cue/internal/model"
)

// TagEditAction defines how to handle individual ID3 tags.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value from the cue sheet.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
type TagConfig struct {
	// Title controls the TIT2 frame (sheet title).
	Title TagEditAction

	// Artist controls the TPE1 frame (sheet performer).
	Artist TagEditAction

	// Album controls the TALB frame (sheet performer).
	Album TagEditAction

	// Year controls the TYER frame.
	Year TagEditAction

	// Date controls the TDRC frame. Only written when the broadcast date
	// is known.
	Date TagEditAction

	// Genre controls the TCON frame.
	Genre TagEditAction

	// Tracklist controls a COMM frame listing every cue point.
	Tracklist TagEditAction
}

// DefaultTagConfig returns the default tag configuration: every field is
// set to TagModify.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		Title:     TagModify,
		Artist:    TagModify,
		Album:     TagModify,
		Year:      TagModify,
		Date:      TagModify,
		Genre:     TagModify,
		Tracklist: TagModify,
	}
}

// Tagger writes show metadata into the ID3 tag of a local media file.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	if err := tagger.SaveTags(mediaPath, show, sheet); err != nil {
//	    log.Printf("Failed to tag %s: %v", mediaPath, err)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes the sheet metadata to the MP3 file at path. The file
// must exist.
func (t *Tagger) SaveTags(path string, show model.ShowIdentity, sheet *model.CueSheet) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	t.updateStringTags(tag, show, sheet)

	return tag.Save()
}

func (t *Tagger) updateStringTags(tag *id3v2.Tag, show model.ShowIdentity, sheet *model.CueSheet) {
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	// Title (TIT2)
	switch t.config.Title {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		tag.SetTitle(sheet.Title)
	}

	// Artist (TPE1)
	switch t.config.Artist {
	case TagEmpty:
		tag.SetArtist("")
	case TagModify:
		tag.SetArtist(sheet.Performer)
	}

	// Album (TALB)
	switch t.config.Album {
	case TagEmpty:
		tag.SetAlbum("")
	case TagModify:
		tag.SetAlbum(sheet.Performer)
	}

	// Year (TYER) - ID3v2.3
	switch t.config.Year {
	case TagEmpty:
		tag.DeleteFrames("TYER")
	case TagModify:
		tag.DeleteFrames("TYER")
		tag.AddTextFrame("TYER", id3v2.EncodingUTF8, sheet.Year)
	}

	// Date (TDRC) - ID3v2.4
	switch t.config.Date {
	case TagEmpty:
		tag.DeleteFrames("TDRC")
	case TagModify:
		if show.DateKnown {
			tag.DeleteFrames("TDRC")
			tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, show.Date.Format("2006-01-02"))
		}
	}

	// Genre (TCON)
	switch t.config.Genre {
	case TagEmpty:
		tag.SetGenre("")
	case TagModify:
		tag.SetGenre(sheet.Genre)
	}

	// Tracklist (COMM)
	switch t.config.Tracklist {
	case TagEmpty:
		tag.DeleteFrames(tag.CommonID("Comments"))
	case TagModify:
		tag.DeleteFrames(tag.CommonID("Comments"))
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "Tracklist",
			Text:        Tracklist(sheet),
		})
	}
}

// Tracklist renders one "MM:SS:FF Artist - Title" line per track.
func Tracklist(sheet *model.CueSheet) string {
	lines := make([]string, 0, len(sheet.Tracks))
	for _, track := range sheet.Tracks {
		lines = append(lines, fmt.Sprintf("%s %s - %s", FormatIndex(track.StartsAt), track.Artist, track.Title))
	}
	return strings.Join(lines, "\n")
}
