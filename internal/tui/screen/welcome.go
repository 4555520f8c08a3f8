package screen

import (
	"strings"

	"github.com/alkime/coach/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	welcomeTitle = "AI-Powered Sales Training"
	welcomeBlurb = "Hone your skills with realistic scenarios, practice your pitch, " +
		"and get instant AI feedback."
)

type Welcome struct {
	keys  KeyMap
	width int
}

func NewWelcome(keys KeyMap) *Welcome {
	return &Welcome{keys: keys}
}

func (w *Welcome) Init() tea.Cmd {
	return nil
}

func (w *Welcome) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, w.keys.Start) {
			return w, emit(StartMsg{})
		}
	}

	return w, nil
}

func (w *Welcome) View() string {
	var sb strings.Builder

	sb.WriteString(style.Title.Render(welcomeTitle))
	sb.WriteString("\n\n")
	sb.WriteString(wrap(style.Subtitle, welcomeBlurb, w.width))
	sb.WriteString("\n\n")
	sb.WriteString(style.KeyHelpLine(w.keys.Start, w.keys.Quit))

	return sb.String()
}

// wrap renders text with s, word-wrapped to width when it is known.
func wrap(s lipgloss.Style, text string, width int) string {
	if width > 0 {
		s = s.Width(width)
	}

	return s.Render(text)
}
