package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/wefunk-cue/internal/config"
	"github.com/handiism/wefunk-cue/internal/download"
)

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_ToggleOptions(t *testing.T) {
	var m tea.Model = NewModel(config.DefaultSettings(), nil)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})

	model := m.(Model)
	assert.True(t, model.verbose)
	assert.True(t, model.tag)
	assert.Empty(t, model.textInput.Value())
}

func TestModel_InvalidRangeStaysOnInput(t *testing.T) {
	var m tea.Model = NewModel(config.DefaultSettings(), nil)

	m = typeText(m, "390-380")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	model := m.(Model)
	assert.Equal(t, StateInput, model.state)
	assert.ErrorIs(t, model.err, download.ErrInvalidRange)
	assert.Contains(t, model.View(), "invalid show range")
}

func TestModel_ProgressFiltersVerbose(t *testing.T) {
	var m tea.Model = NewModel(config.DefaultSettings(), nil)

	m, _ = m.Update(ProgressMsg{Event: download.ProgressEvent{Message: "debug detail", Level: download.LevelVerbose}})
	m, _ = m.Update(ProgressMsg{Event: download.ProgressEvent{Message: "[Cue] Saved to x.cue", Level: download.LevelSuccess}})

	model := m.(Model)
	require.Len(t, model.logs, 1)
	assert.Equal(t, "[Cue] Saved to x.cue", model.logs[0].Message)
}

func TestModel_LogTailIsBounded(t *testing.T) {
	model := NewModel(config.DefaultSettings(), nil)
	for i := 0; i < maxLogs+5; i++ {
		model.appendLog(download.ProgressEvent{Message: "line", Level: download.LevelInfo})
	}
	assert.Len(t, model.logs, maxLogs)
}

func TestModel_RunDone(t *testing.T) {
	model := NewModel(config.DefaultSettings(), nil)
	model.state = StateProcessing
	model.startRun()

	results := []download.Result{
		{Show: 1, Status: download.StatusSaved, Tagged: true},
		{Show: 2, Status: download.StatusNoTracks},
		{Show: 3, Status: download.StatusSkipped},
	}
	m, _ := model.Update(RunDoneMsg{Results: results})

	done := m.(Model)
	assert.Equal(t, StateComplete, done.state)
	view := done.View()
	assert.Contains(t, view, "Cue sheets:  1")
	assert.Contains(t, view, "Tagged:      1")

	m, _ = done.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Equal(t, StateInput, m.(Model).state)
}

func TestModel_RunDoneWithError(t *testing.T) {
	model := NewModel(config.DefaultSettings(), nil)
	model.state = StateProcessing
	model.startRun()

	m, _ := model.Update(RunDoneMsg{Err: errors.New("output directory is in use by another run")})

	failed := m.(Model)
	assert.Equal(t, StateError, failed.state)
	assert.Contains(t, failed.View(), "in use by another run")
}

func TestCountResults(t *testing.T) {
	counts := CountResults([]download.Result{
		{Status: download.StatusSaved},
		{Status: download.StatusSaved},
		{Status: download.StatusWriteFailed},
	})
	assert.Equal(t, 2, counts[download.StatusSaved])
	assert.Equal(t, 1, counts[download.StatusWriteFailed])
	assert.Zero(t, counts[download.StatusSkipped])
}

func TestPromptModel(t *testing.T) {
	var m tea.Model = NewPromptModel("Start Show", "")
	m = typeText(m, " 386 ")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	prompt := m.(PromptModel)
	assert.NotNil(t, cmd)
	assert.True(t, prompt.submitted)
	assert.Equal(t, "386", prompt.Value())

	var c tea.Model = NewPromptModel("End Show (Enter for same)", "")
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, c.(PromptModel).cancelled)
}

func TestForwardEvents(t *testing.T) {
	events := make(chan download.ProgressEvent, 1)
	ctx, cancel := context.WithCancel(context.Background())
	forward := forwardEvents(ctx, events)

	forward(download.ProgressEvent{Message: "Processing Show 1..."})
	require.Len(t, events, 1)

	cancel()
	done := make(chan struct{})
	go func() {
		forward(download.ProgressEvent{Message: "nobody is reading"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("progress callback blocked after cancellation")
	}
}
