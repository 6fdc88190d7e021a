package model

import (
	"fmt"
	"strings"
	"time"
)

// SiteConfig holds everything that ties the cue sheet builder to one radio
// site: endpoint URLs, brand strings and the media naming rules.
//
// A SiteConfig is treated as immutable once built. Resolvers receive it by
// value so tests can point them at a local fixture server:
//
//	site := model.DefaultSiteConfig()
//	site.ShowURL = server.URL + "/show/"
//	site.StreamURL = server.URL + "/mirror/stream/"
type SiteConfig struct {
	// ShowURL is the show page base URL; the show number is appended.
	ShowURL string

	// StreamURL is the stream redirect base URL; the show number is appended.
	StreamURL string

	// UserAgent is sent with every request.
	UserAgent string

	// ProbeTimeout bounds the stream redirect probe.
	ProbeTimeout time.Duration

	// Brand is the show-brand performer used for the sheet, the intro and
	// every spoken segment.
	Brand string

	// Genre is written to the REM Genre line.
	Genre string

	// TitleFormat is the sheet title template. {show} is replaced with
	// the show number.
	TitleFormat string

	// FilenameMarker must appear in a probed media filename for it to be
	// accepted. It also prefixes synthesized filenames.
	FilenameMarker string

	// MediaExtension is the media file extension, including the dot.
	MediaExtension string

	// HQThreshold is the first show number published in the high quality era.
	HQThreshold int

	// HQSuffix is inserted before the extension for high quality shows.
	HQSuffix string

	// CueExtension is the extension of written cue sheets.
	CueExtension string
}

// DefaultSiteConfig returns the configuration for wefunkradio.com.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		ShowURL:        "http://www.wefunkradio.com/show/",
		StreamURL:      "https://www.wefunkradio.com/mirror/stream/",
		UserAgent:      "Mozilla/5.0",
		ProbeTimeout:   5 * time.Second,
		Brand:          "WEFUNK RADIO",
		Genre:          "HipHop",
		TitleFormat:    "WEFUNK SHOW #{show}",
		FilenameMarker: "WEFUNK_Show",
		MediaExtension: ".mp3",
		HQThreshold:    360,
		HQSuffix:       "_hq",
		CueExtension:   ".cue",
	}
}

// ShowPageURL returns the page URL for a show.
func (s SiteConfig) ShowPageURL(number int) string {
	return fmt.Sprintf("%s%d", s.ShowURL, number)
}

// StreamProbeURL returns the stream redirect URL for a show.
func (s SiteConfig) StreamProbeURL(number int) string {
	return fmt.Sprintf("%s%d", s.StreamURL, number)
}

// SheetTitle renders TitleFormat for a show.
func (s SiteConfig) SheetTitle(number int) string {
	return strings.ReplaceAll(s.TitleFormat, "{show}", fmt.Sprintf("%d", number))
}
