package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/wefunk-cue/internal/audio"
	"github.com/handiism/wefunk-cue/internal/config"
	"github.com/handiism/wefunk-cue/internal/http"
	ioutils "github.com/handiism/wefunk-cue/internal/io"
	"github.com/handiism/wefunk-cue/internal/logging"
	"github.com/handiism/wefunk-cue/internal/model"
	"github.com/handiism/wefunk-cue/internal/wefunk"
)

// ErrInvalidRange is returned when a show range is empty or starts below 1.
var ErrInvalidRange = errors.New("invalid show range")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a progress update for one show.
type ProgressEvent struct {
	Show    int
	Message string
	Level   ProgressLevel
}

// Status is the outcome of processing one show.
type Status string

const (
	// StatusSaved means a cue sheet was written.
	StatusSaved Status = "saved"

	// StatusSkipped means the show page could not be fetched.
	StatusSkipped Status = "skipped"

	// StatusNoTracks means the page held no usable track data.
	StatusNoTracks Status = "no tracks"

	// StatusWriteFailed means the cue sheet could not be written.
	StatusWriteFailed Status = "write failed"
)

// Result describes what happened to one show.
type Result struct {
	Show       int
	Date       time.Time
	DateKnown  bool
	DateSource wefunk.DateSource

	// Filename is the media filename the sheet indexes into.
	Filename string

	// FilenameObserved is true when Filename came from the stream probe.
	FilenameObserved bool

	// CuePath is the written cue sheet, empty unless Status is StatusSaved.
	CuePath string

	Tracks int
	Tagged bool
	Status Status
	Err    error
}

// Manager processes ranges of shows into cue sheets.
type Manager struct {
	settings   *config.Settings
	site       model.SiteConfig
	httpClient *http.Client
	dates      *wefunk.DateResolver
	filenames  *wefunk.FilenameResolver
	reconciler *wefunk.Reconciler
	cues       *audio.CueSheetCreator
	tagger     *audio.Tagger
	logger     *zap.Logger

	processedShows int32
	totalShows     int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new Manager. A nil logger disables diagnostics.
func NewManager(settings *config.Settings, logger *zap.Logger, onProgress func(ProgressEvent)) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	site := settings.ToSiteConfig()
	client := http.NewClient(site.UserAgent)

	return &Manager{
		settings:   settings,
		site:       site,
		httpClient: client,
		dates:      wefunk.NewDateResolver(logger),
		filenames:  wefunk.NewFilenameResolver(site, client, logger),
		reconciler: wefunk.NewReconciler(site, logger),
		cues:       audio.NewCueSheetCreator(),
		tagger:     audio.NewTagger(audio.DefaultTagConfig()),
		logger:     logger,
		onProgress: onProgress,
	}
}

// ValidateRange checks that start..end names at least one show.
func ValidateRange(start, end int) error {
	if start < 1 {
		return fmt.Errorf("start show %d: %w", start, ErrInvalidRange)
	}
	if end < start {
		return fmt.Errorf("end show %d is smaller than start %d: %w", end, start, ErrInvalidRange)
	}
	return nil
}

// PrepareOutputDir creates the output directory when it is missing and
// returns its absolute path.
func (m *Manager) PrepareOutputDir() (string, error) {
	dir := m.settings.OutputDir
	created, err := ioutils.EnsureDir(dir)
	if err != nil {
		return "", fmt.Errorf("create directory %s: %w", dir, err)
	}

	abs := ioutils.Abs(dir)
	if created {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Created directory: %s", abs), Level: LevelInfo})
	}
	return abs, nil
}

// Run processes shows start through end, one at a time, and returns a
// Result per processed show.
//
// Per-show failures never stop the range. Run returns an error only for an
// invalid range, an unusable output directory, or when ctx is cancelled; in
// the last case the results gathered so far are returned with ctx.Err().
func (m *Manager) Run(ctx context.Context, start, end int) ([]Result, error) {
	if err := ValidateRange(start, end); err != nil {
		return nil, err
	}

	dir, err := m.PrepareOutputDir()
	if err != nil {
		return nil, err
	}

	lock, err := ioutils.LockDir(dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			m.logger.Warn("release output lock", zap.Error(err))
		}
	}()

	atomic.StoreInt32(&m.totalShows, int32(end-start+1))
	atomic.StoreInt32(&m.processedShows, 0)

	results := make([]Result, 0, end-start+1)
	for number := start; number <= end; number++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, m.ProcessShow(ctx, number))
		atomic.AddInt32(&m.processedShows, 1)
	}

	return results, nil
}

// GetProgress returns how many shows of the current run are done.
func (m *Manager) GetProgress() (processed, total int32) {
	return atomic.LoadInt32(&m.processedShows), atomic.LoadInt32(&m.totalShows)
}

// ProcessShow turns one show into a cue sheet in the output directory.
//
// The page fetch and the stream probe run concurrently; everything after
// them is sequential. Failures are reported through progress events and
// the returned Result.
func (m *Manager) ProcessShow(ctx context.Context, number int) Result {
	logger := logging.WithShow(m.logger, number)
	result := Result{Show: number}
	m.progress(ProgressEvent{Show: number, Message: fmt.Sprintf("Processing Show %d...", number), Level: LevelInfo})

	var (
		page     []byte
		media    model.MediaReference
		observed bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = wefunk.FetchShowPage(gctx, m.httpClient, m.site, number)
		return err
	})
	g.Go(func() error {
		media, observed = m.filenames.Probe(gctx, number)
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Debug("show page fetch failed", zap.Error(err))
		m.progress(ProgressEvent{Show: number, Message: fmt.Sprintf("Skipped (Could not fetch page): %v", err), Level: LevelWarning})
		result.Status = StatusSkipped
		result.Err = err
		return result
	}

	dateInput := wefunk.DateInput{Page: page}
	if observed {
		dateInput.Filename = media.Filename
	}
	date, source := m.dates.Resolve(dateInput)

	show := model.NewShowIdentity(number, date)
	if source == wefunk.DateUnresolved {
		show = model.NewShowIdentity(number, time.Time{})
		m.progress(ProgressEvent{Show: number, Message: fmt.Sprintf("Date not found, using %s", model.UnknownShowDate.Format("2006-01-02")), Level: LevelWarning})
	}
	result.Date = show.Date
	result.DateKnown = show.DateKnown
	result.DateSource = source

	if !observed {
		media = model.SynthesizeMedia(show, m.site)
		logger.Debug("synthesized media filename", zap.String("filename", media.Filename))
	}
	result.Filename = media.Filename
	result.FilenameObserved = media.Observed
	m.progress(ProgressEvent{Show: number, Message: fmt.Sprintf("OK (%s)", media.Filename), Level: LevelInfo})

	tracks, err := m.reconciler.Reconcile(page)
	if err != nil {
		m.progress(ProgressEvent{Show: number, Message: fmt.Sprintf("No tracks found: %v", err), Level: LevelWarning})
		result.Status = StatusNoTracks
		result.Err = err
		return result
	}

	sheet := model.NewCueSheet(show, media, m.site)
	for _, track := range tracks {
		sheet.AddTrack(track)
	}
	result.Tracks = len(sheet.Tracks)

	cueName := media.CueFileName(m.site)
	cuePath := filepath.Join(m.settings.OutputDir, cueName)
	if err := ioutils.WriteFile(ctx, cuePath, []byte(m.cues.CreateCueSheet(sheet))); err != nil {
		m.progress(ProgressEvent{Show: number, Message: fmt.Sprintf("Could not write file: %v", err), Level: LevelError})
		result.Status = StatusWriteFailed
		result.Err = err
		return result
	}
	result.Status = StatusSaved
	result.CuePath = cuePath
	m.progress(ProgressEvent{Show: number, Message: fmt.Sprintf("[Cue] Saved to %s", cueName), Level: LevelSuccess})

	if m.settings.TagMedia {
		result.Tagged = m.tagMedia(number, show, sheet)
	}

	return result
}

func (m *Manager) tagMedia(number int, show model.ShowIdentity, sheet *model.CueSheet) bool {
	mediaPath := filepath.Join(m.settings.OutputDir, sheet.FileName)
	if !ioutils.FileExists(mediaPath) {
		m.progress(ProgressEvent{Show: number, Message: fmt.Sprintf("Media not present, not tagging: %s", sheet.FileName), Level: LevelVerbose})
		return false
	}

	if err := m.tagger.SaveTags(mediaPath, show, sheet); err != nil {
		m.progress(ProgressEvent{Show: number, Message: fmt.Sprintf("Error tagging %s: %v", sheet.FileName, err), Level: LevelWarning})
		return false
	}

	m.progress(ProgressEvent{Show: number, Message: fmt.Sprintf("Tagged %s", sheet.FileName), Level: LevelSuccess})
	return true
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
