package wefunk

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/handiism/wefunk-cue/internal/model"
	"github.com/handiism/wefunk-cue/internal/wefunk/dto"
)

// ErrNoTrackData is returned when a show page yields no usable track list.
//
// This typically occurs when:
//   - The trackextra or tracks script assignment is missing
//   - One of the embedded payloads is not valid JSON
//   - No timing entry carries an offset
var ErrNoTrackData = errors.New("no track data on page")

const (
	introTitle   = "intro"
	unknownTitle = "Unknown"
	talkTitle    = "talk"
	talkTag      = "<strong>talk</strong>"

	playlistItemSelector = `ul[class="playlistregular"] > li`
	contentSelector      = `div[class="content"]`
)

// Script assignments end at the first semicolon.
var (
	metadataScriptRe = regexp.MustCompile(`(?s)var\s+trackextra\s*=\s*(.*?);`)
	timingScriptRe   = regexp.MustCompile(`(?s)var\s+tracks\s*=\s*(.*?);`)
)

// Reconciler merges the three track sources of a show page into one
// ordered track list:
//
//   - the `tracks` script array: millisecond offsets
//   - the `trackextra` script array: artist ("a") and title ("t")
//   - the `ul.playlistregular` list: what the site actually displays
//
// Example usage:
//
//	reconciler := NewReconciler(model.DefaultSiteConfig(), logger)
//	tracks, err := reconciler.Reconcile(page)
//	if errors.Is(err, ErrNoTrackData) {
//	    // skip the cue sheet for this show
//	}
type Reconciler struct {
	site   model.SiteConfig
	logger *zap.Logger
}

// NewReconciler creates a Reconciler. A nil logger disables diagnostics.
func NewReconciler(site model.SiteConfig, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{site: site, logger: logger}
}

type visualItem struct {
	text   string
	markup string
}

// Reconcile extracts the track list from a show page.
//
// Positions are walked in metadata order. Walking stops at the end of the
// timing array and positions without an offset are skipped. Position 0 is
// always the intro, credited to the brand. For later positions the first
// matching rule decides artist and title:
//
//  1. displayed text mentions "interview": brand / displayed text
//  2. no metadata: brand / displayed text, or "Unknown"
//  3. displayed markup carries <strong>talk</strong>: brand /
//     "talk (over Artist - Title)", or plain "talk" when the title is
//     missing, "Unknown" or equal to the displayed text
//  4. otherwise the metadata artist and title
//
// Entries are decoded only at the positions the walk reaches, so malformed
// data at the intro, past the end of the shorter array, or at an untimed
// position is ignored. Any failure at a processed position returns an error
// wrapping ErrNoTrackData and no tracks; a partial list is never returned.
func (r *Reconciler) Reconcile(page []byte) ([]*model.Track, error) {
	content := bytes.ToValidUTF8(page, nil)

	metadataMatch := metadataScriptRe.FindSubmatch(content)
	timingMatch := timingScriptRe.FindSubmatch(content)
	if metadataMatch == nil || timingMatch == nil {
		return nil, fmt.Errorf("%w: track scripts not found", ErrNoTrackData)
	}

	var metadata []json.RawMessage
	if err := json.Unmarshal(metadataMatch[1], &metadata); err != nil {
		return nil, fmt.Errorf("%w: trackextra: %w", ErrNoTrackData, err)
	}

	var timing dto.TimingPayload
	if err := json.Unmarshal(timingMatch[1], &timing); err != nil {
		return nil, fmt.Errorf("%w: tracks: %w", ErrNoTrackData, err)
	}

	visuals, err := visualItems(content)
	if err != nil {
		return nil, fmt.Errorf("%w: playlist: %w", ErrNoTrackData, err)
	}

	if len(metadata) != timing.Len() {
		r.logger.Warn("track sources disagree in length, extra positions dropped",
			zap.Int("metadata", len(metadata)),
			zap.Int("timing", timing.Len()))
	}

	tracks := make([]*model.Track, 0, len(metadata))
	for i := range metadata {
		if i >= timing.Len() {
			break
		}
		entry, err := timing.Entry(i)
		if err != nil {
			return nil, fmt.Errorf("%w: tracks[%d]: %w", ErrNoTrackData, i, err)
		}
		if !entry.HasOffset {
			r.logger.Debug("timing entry without offset skipped", zap.Int("position", i))
			continue
		}

		// Numbers follow output order, so when position 0 has no offset
		// track 1 is the first song rather than the intro.
		number := len(tracks) + 1
		if i == 0 {
			tracks = append(tracks, model.NewTrack(number, r.site.Brand, introTitle, entry.Offset))
			continue
		}

		var meta dto.MetadataEntry
		if err := json.Unmarshal(metadata[i], &meta); err != nil {
			return nil, fmt.Errorf("%w: trackextra[%d]: %w", ErrNoTrackData, i, err)
		}

		var visual visualItem
		if i < len(visuals) {
			visual = visuals[i]
		}

		artist, title := r.resolve(meta, visual)
		tracks = append(tracks, model.NewTrack(number, artist, title, entry.Offset))
	}

	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: no timed tracks", ErrNoTrackData)
	}

	return tracks, nil
}

func (r *Reconciler) resolve(meta dto.MetadataEntry, visual visualItem) (artist, title string) {
	brand := r.site.Brand

	switch {
	case strings.Contains(strings.ToLower(visual.text), "interview"):
		return brand, visual.text

	case meta.IsEmpty():
		if visual.text == "" {
			return brand, unknownTitle
		}
		return brand, visual.text

	case strings.Contains(visual.markup, talkTag):
		if meta.Title != "" && meta.Title != unknownTitle && meta.Title != visual.text {
			return brand, fmt.Sprintf("talk (over %s - %s)", meta.Artist, meta.Title)
		}
		return brand, talkTitle

	default:
		return meta.Artist, meta.Title
	}
}

// visualItems returns the displayed playlist in document order. Items
// without a content div yield an empty visualItem.
func visualItems(page []byte) ([]visualItem, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}

	var items []visualItem
	var renderErr error
	doc.Find(playlistItemSelector).EachWithBreak(func(_ int, li *goquery.Selection) bool {
		content := li.Find(contentSelector).First()
		if content.Length() == 0 {
			items = append(items, visualItem{})
			return true
		}

		markup, err := goquery.OuterHtml(content)
		if err != nil {
			renderErr = err
			return false
		}

		items = append(items, visualItem{
			text:   collapseSpace(content.Text()),
			markup: markup,
		})
		return true
	})
	if renderErr != nil {
		return nil, renderErr
	}

	return items, nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
