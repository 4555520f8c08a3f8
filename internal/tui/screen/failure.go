package screen

import (
	"strings"

	"github.com/alkime/coach/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Failure shows a generation error with a retry affordance.
type Failure struct {
	keys    KeyMap
	message string
	width   int
}

func NewFailure(keys KeyMap, message string) *Failure {
	return &Failure{keys: keys, message: message}
}

func (f *Failure) Init() tea.Cmd {
	return nil
}

func (f *Failure) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, f.keys.Retry) {
			return f, emit(RetryMsg{})
		}
	}

	return f, nil
}

func (f *Failure) View() string {
	var sb strings.Builder

	sb.WriteString(style.Error.Render("Something went wrong"))
	sb.WriteString("\n\n")
	sb.WriteString(wrap(style.Subtitle, f.message, f.width))
	sb.WriteString("\n\n")
	sb.WriteString(style.KeyHelpLine(f.keys.Retry, f.keys.Quit))

	return sb.String()
}
