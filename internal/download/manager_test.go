package download

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bogem/id3v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/wefunk-cue/internal/config"
	ioutils "github.com/handiism/wefunk-cue/internal/io"
	"github.com/handiism/wefunk-cue/internal/wefunk"
)

const showPage = `<html><head><title>WEFUNK Show 386 (2006-12-07)</title>
<script type="text/javascript">
var showdate = "2006-12-07";
var trackextra = [{"a":"","t":""},{"a":"Pete Rock & CL Smooth","t":"T.R.O.Y."},{"a":"","t":""}];
var tracks = [{"mspos":0},{"mspos":93500},{"mspos":361250}];
</script></head><body>
<ul class="playlistregular">
<li><div class="content">Intro</div></li>
<li><div class="content">Pete Rock &amp; CL Smooth - T.R.O.Y.</div></li>
<li><div class="content"><strong>talk</strong></div></li>
</ul></body></html>`

const undatedPage = `<html><head><title>WEFUNK Show 12</title>
<script type="text/javascript">
var trackextra = [{"a":"","t":""},{"a":"Eric B. & Rakim","t":"Paid In Full"}];
var tracks = [{"mspos":0},{"mspos":120000}];
</script></head><body>
<ul class="playlistregular">
<li><div class="content">Intro</div></li>
<li><div class="content">Eric B. &amp; Rakim - Paid In Full</div></li>
</ul></body></html>`

const emptyPage = `<html><head><title>WEFUNK Show 387 (2006-12-14)</title></head><body></body></html>`

// newFixtureSite serves:
//   - 386: dated page, stream redirects to an HQ media file
//   - 387: page without track data
//   - 12:  undated page, stream probe fails
//   - 999: redirected to the show listing
func newFixtureSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/show/", func(w http.ResponseWriter, r *http.Request) {
		switch strings.TrimPrefix(r.URL.Path, "/show/") {
		case "386":
			fmt.Fprint(w, showPage)
		case "387":
			fmt.Fprint(w, emptyPage)
		case "12":
			fmt.Fprint(w, undatedPage)
		default:
			http.Redirect(w, r, "/shows", http.StatusFound)
		}
	})
	mux.HandleFunc("/shows", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>archive</html>")
	})
	mux.HandleFunc("/mirror/stream/", func(w http.ResponseWriter, r *http.Request) {
		switch strings.TrimPrefix(r.URL.Path, "/mirror/stream/") {
		case "386":
			http.Redirect(w, r, "/media/WEFUNK_Show_386_2006-12-07_hq.mp3", http.StatusFound)
		case "387":
			http.Redirect(w, r, "/media/WEFUNK_Show_387_2006-12-14_hq.mp3", http.StatusFound)
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/media/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestSettings(t *testing.T, baseURL string) *config.Settings {
	t.Helper()
	settings := config.DefaultSettings()
	settings.OutputDir = filepath.Join(t.TempDir(), "mp3s")
	settings.Site.ShowURL = baseURL + "/show/"
	settings.Site.StreamURL = baseURL + "/mirror/stream/"
	settings.Site.ProbeTimeoutSeconds = 2
	return settings
}

type eventRecorder struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (r *eventRecorder) record(event ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) messages(level ProgressLevel) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		start, end int
		wantErr    bool
	}{
		{1, 1, false},
		{380, 390, false},
		{0, 5, true},
		{-3, 1, true},
		{10, 9, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d-%d", tt.start, tt.end), func(t *testing.T) {
			err := ValidateRange(tt.start, tt.end)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestManager_RunInvalidRangeDoesNothing(t *testing.T) {
	settings := newTestSettings(t, "http://127.0.0.1:1")
	manager := NewManager(settings, nil, nil)

	results, err := manager.Run(context.Background(), 5, 4)
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Nil(t, results)
	assert.NoDirExists(t, settings.OutputDir)
}

func TestManager_ProcessShow_Saved(t *testing.T) {
	server := newFixtureSite(t)
	settings := newTestSettings(t, server.URL)
	rec := &eventRecorder{}
	manager := NewManager(settings, nil, rec.record)

	results, err := manager.Run(context.Background(), 386, 386)
	require.NoError(t, err)
	require.Len(t, results, 1)

	result := results[0]
	assert.Equal(t, StatusSaved, result.Status)
	assert.Equal(t, "WEFUNK_Show_386_2006-12-07_hq.mp3", result.Filename)
	assert.True(t, result.FilenameObserved)
	assert.True(t, result.DateKnown)
	assert.Equal(t, wefunk.DateFromFilename, result.DateSource)
	assert.Equal(t, 3, result.Tracks)

	data, err := os.ReadFile(filepath.Join(settings.OutputDir, "WEFUNK_Show_386_2006-12-07_hq.cue"))
	require.NoError(t, err)

	expected := strings.Join([]string{
		`TITLE "WEFUNK SHOW #386"`,
		`PERFORMER "WEFUNK RADIO"`,
		`REM Year  : 2006`,
		`REM Genre : HipHop`,
		`FILE "WEFUNK_Show_386_2006-12-07_hq.mp3" MP3`,
		"\tTRACK 01 AUDIO",
		"\t\tTITLE \"intro\"",
		"\t\tPERFORMER \"WEFUNK RADIO\"",
		"\t\tINDEX 01 00:00:00",
		"\tTRACK 02 AUDIO",
		"\t\tTITLE \"T.R.O.Y.\"",
		"\t\tPERFORMER \"Pete Rock & CL Smooth\"",
		"\t\tINDEX 01 01:33:37",
		"\tTRACK 03 AUDIO",
		"\t\tTITLE \"talk\"",
		"\t\tPERFORMER \"WEFUNK RADIO\"",
		"\t\tINDEX 01 06:01:18",
	}, "\n")
	assert.Equal(t, expected, string(data))

	assert.Contains(t, rec.messages(LevelInfo), "Processing Show 386...")
	assert.Contains(t, rec.messages(LevelSuccess), "[Cue] Saved to WEFUNK_Show_386_2006-12-07_hq.cue")
}

func TestManager_Run_MixedRange(t *testing.T) {
	server := newFixtureSite(t)
	settings := newTestSettings(t, server.URL)
	rec := &eventRecorder{}
	manager := NewManager(settings, nil, rec.record)

	results, err := manager.Run(context.Background(), 386, 388)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, StatusSaved, results[0].Status)

	assert.Equal(t, StatusNoTracks, results[1].Status)
	assert.ErrorIs(t, results[1].Err, wefunk.ErrNoTrackData)
	assert.NoFileExists(t, filepath.Join(settings.OutputDir, "WEFUNK_Show_387_2006-12-14_hq.cue"))

	assert.Equal(t, StatusSkipped, results[2].Status)
	assert.ErrorIs(t, results[2].Err, wefunk.ErrShowNotFound)

	processed, total := manager.GetProgress()
	assert.Equal(t, int32(3), processed)
	assert.Equal(t, int32(3), total)

	assert.Len(t, rec.messages(LevelWarning), 2)
	assert.Contains(t, rec.messages(LevelInfo)[0], "Created directory: ")
}

func TestManager_ProcessShow_SynthesizedFilenameAndPlaceholderDate(t *testing.T) {
	server := newFixtureSite(t)
	settings := newTestSettings(t, server.URL)
	rec := &eventRecorder{}
	manager := NewManager(settings, nil, rec.record)

	results, err := manager.Run(context.Background(), 12, 12)
	require.NoError(t, err)

	result := results[0]
	assert.Equal(t, StatusSaved, result.Status)
	assert.False(t, result.DateKnown)
	assert.Equal(t, wefunk.DateUnresolved, result.DateSource)
	assert.False(t, result.FilenameObserved)
	assert.Equal(t, "WEFUNK_Show_12_1970-01-01.mp3", result.Filename)
	assert.FileExists(t, filepath.Join(settings.OutputDir, "WEFUNK_Show_12_1970-01-01.cue"))
	assert.Contains(t, rec.messages(LevelWarning), "Date not found, using 1970-01-01")

	data, err := os.ReadFile(result.CuePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "REM Year  : 1970")
}

func TestManager_Run_CancelledBetweenShows(t *testing.T) {
	server := newFixtureSite(t)
	settings := newTestSettings(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	manager := NewManager(settings, nil, func(event ProgressEvent) {
		if event.Level == LevelSuccess {
			cancel()
		}
	})

	results, err := manager.Run(ctx, 386, 390)
	assert.True(t, errors.Is(err, context.Canceled))
	require.Len(t, results, 1)
	assert.Equal(t, StatusSaved, results[0].Status)
}

func TestManager_Run_LockedOutputDir(t *testing.T) {
	server := newFixtureSite(t)
	settings := newTestSettings(t, server.URL)
	require.NoError(t, os.MkdirAll(settings.OutputDir, 0755))

	lock, err := ioutils.LockDir(settings.OutputDir)
	require.NoError(t, err)
	defer lock.Unlock()

	_, err = NewManager(settings, nil, nil).Run(context.Background(), 386, 386)
	assert.ErrorIs(t, err, ioutils.ErrDirLocked)
}

func TestManager_TagMedia(t *testing.T) {
	server := newFixtureSite(t)
	settings := newTestSettings(t, server.URL)
	settings.TagMedia = true
	require.NoError(t, os.MkdirAll(settings.OutputDir, 0755))

	mediaPath := filepath.Join(settings.OutputDir, "WEFUNK_Show_386_2006-12-07_hq.mp3")
	require.NoError(t, os.WriteFile(mediaPath, []byte{0xFF, 0xFB, 0x90, 0x64, 0x00, 0x00, 0x00, 0x00}, 0644))

	results, err := NewManager(settings, nil, nil).Run(context.Background(), 386, 386)
	require.NoError(t, err)
	assert.True(t, results[0].Tagged)

	tag, err := id3v2.Open(mediaPath, id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tag.Close()
	assert.Equal(t, "WEFUNK SHOW #386", tag.Title())
	assert.Equal(t, "WEFUNK RADIO", tag.Artist())
}

func TestManager_TagMedia_MissingFile(t *testing.T) {
	server := newFixtureSite(t)
	settings := newTestSettings(t, server.URL)
	settings.TagMedia = true
	rec := &eventRecorder{}

	results, err := NewManager(settings, nil, rec.record).Run(context.Background(), 386, 386)
	require.NoError(t, err)
	assert.False(t, results[0].Tagged)
	assert.Equal(t, StatusSaved, results[0].Status)
	assert.NotEmpty(t, rec.messages(LevelVerbose))
}

func TestManager_ProbeTimeoutDoesNotBlockFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/show/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, showPage)
	})
	mux.HandleFunc("/mirror/stream/", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	settings := newTestSettings(t, server.URL)
	settings.Site.ProbeTimeoutSeconds = 0.2

	start := time.Now()
	results, err := NewManager(settings, nil, nil).Run(context.Background(), 386, 386)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)

	result := results[0]
	assert.Equal(t, StatusSaved, result.Status)
	assert.False(t, result.FilenameObserved)
	assert.Equal(t, wefunk.DateFromShowdate, result.DateSource)
}
