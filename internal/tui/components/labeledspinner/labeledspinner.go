// Package labeledspinner renders a spinner next to a status line.
package labeledspinner

import (
	"strings"

	"github.com/alkime/coach/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is a spinner with a label and an optional hint underneath.
type Model struct {
	spinner spinner.Model
	label   string
	hint    string
}

func New(s spinner.Spinner, label string) Model {
	sp := spinner.New()
	sp.Spinner = s

	return Model{spinner: sp, label: label}
}

// WithHint sets the dimmed line rendered below the label.
func (m Model) WithHint(hint string) Model {
	m.hint = hint

	return m
}

// Relabel swaps the label without restarting the animation.
func (m Model) Relabel(label string) Model {
	m.label = label

	return m
}

func (m Model) Label() string {
	return m.label
}

// Tick starts the animation.
func (m Model) Tick() tea.Msg {
	return m.spinner.Tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)

	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.spinner.View())
	sb.WriteString(" ")
	sb.WriteString(style.Title.Render(m.label))

	if m.hint != "" {
		sb.WriteString("\n\n")
		sb.WriteString(style.Subtitle.Render(m.hint))
	}

	return sb.String()
}
