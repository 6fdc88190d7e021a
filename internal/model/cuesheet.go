package model

// CueSheet is the reconciled track list of one show plus its sheet-level
// metadata.
//
// The sheet performs no validation; tracks are kept in the order they were
// added, which must match their Number.
type CueSheet struct {
	Genre     string
	Year      string
	Performer string
	Title     string

	// FileName is the media file the sheet indexes into.
	FileName string

	Tracks []*Track
}

// NewCueSheet creates an empty sheet for a show.
func NewCueSheet(show ShowIdentity, media MediaReference, site SiteConfig) *CueSheet {
	return &CueSheet{
		Genre:     site.Genre,
		Year:      show.Year(),
		Performer: site.Brand,
		Title:     site.SheetTitle(show.Number),
		FileName:  media.Filename,
	}
}

// AddTrack appends a track.
func (c *CueSheet) AddTrack(track *Track) {
	c.Tracks = append(c.Tracks, track)
}
