package screen

import (
	"github.com/alkime/coach/internal/tui/components/labeledspinner"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Loading is shown while a generation request is in flight. It accepts no
// actions.
type Loading struct {
	spinner labeledspinner.Model
}

func NewLoading(message string) *Loading {
	return &Loading{
		spinner: labeledspinner.New(spinner.Points, message).
			WithHint("This can take a little while."),
	}
}

func (l *Loading) Init() tea.Cmd {
	return l.spinner.Tick
}

func (l *Loading) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)

	return l, cmd
}

func (l *Loading) View() string {
	return l.spinner.View()
}
