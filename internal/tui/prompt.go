package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrPromptCancelled is returned when the user leaves a prompt with esc or
// ctrl+c.
var ErrPromptCancelled = errors.New("prompt cancelled")

// PromptModel asks a single question on one line.
type PromptModel struct {
	label     string
	textInput textinput.Model
	submitted bool
	cancelled bool
}

// NewPromptModel creates a prompt. placeholder is shown greyed out while
// the input is empty.
func NewPromptModel(label, placeholder string) PromptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 16
	ti.Width = 20
	ti.Prompt = ""

	return PromptModel{label: label, textInput: ti}
}

// Init initializes the model.
func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m PromptModel) View() string {
	if m.submitted || m.cancelled {
		return subtitleStyle.Render(m.label+": ") + m.textInput.Value() + "\n"
	}
	return subtitleStyle.Render(m.label+": ") + m.textInput.View()
}

// Value returns the trimmed answer.
func (m PromptModel) Value() string {
	return strings.TrimSpace(m.textInput.Value())
}

// Prompt runs an inline prompt and returns the answer. An empty answer is
// returned as "".
func Prompt(label, placeholder string) (string, error) {
	final, err := tea.NewProgram(NewPromptModel(label, placeholder)).Run()
	if err != nil {
		return "", err
	}

	model := final.(PromptModel)
	if model.cancelled {
		return "", ErrPromptCancelled
	}
	return model.Value(), nil
}
