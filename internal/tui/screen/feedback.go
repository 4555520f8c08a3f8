package screen

import (
	"strings"

	"github.com/alkime/coach/internal/gateway"
	"github.com/alkime/coach/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Feedback shows the question, the submitted answer and the evaluation in a
// scrollable viewport.
type Feedback struct {
	keys     KeyMap
	scenario gateway.Scenario
	answer   string
	feedback string
	viewport viewport.Model
}

func NewFeedback(keys KeyMap, scenario gateway.Scenario, answer, feedback string) *Feedback {
	f := &Feedback{
		keys:     keys,
		scenario: scenario,
		answer:   answer,
		feedback: feedback,
		viewport: viewport.New(76, 18),
	}
	f.viewport.SetContent(f.content(f.viewport.Width))

	return f
}

func (f *Feedback) Init() tea.Cmd {
	return nil
}

func (f *Feedback) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case tea.WindowSizeMsg:
		f.resize(msg.Width, msg.Height)
		return f, nil

	case tea.KeyMsg:
		if key.Matches(msg, f.keys.Next) {
			return f, emit(NextMsg{})
		}
	}

	var cmd tea.Cmd
	f.viewport, cmd = f.viewport.Update(teaMsg)

	return f, cmd
}

func (f *Feedback) resize(width, height int) {
	const chrome = 8 // header, border and help lines

	f.viewport.Width = max(width-4, 20)
	f.viewport.Height = max(height-chrome, 5)
	f.viewport.SetContent(f.content(f.viewport.Width))
}

func (f *Feedback) content(width int) string {
	var sb strings.Builder

	sb.WriteString(style.Section.Render("SCENARIO QUESTION"))
	sb.WriteString("\n")
	sb.WriteString(wrap(style.Question, f.scenario.Question, width))
	sb.WriteString("\n\n")

	sb.WriteString(style.Section.Render("YOUR RESPONSE"))
	sb.WriteString("\n")
	sb.WriteString(wrap(style.Answer, f.answer, width))
	sb.WriteString("\n\n")

	sb.WriteString(style.Section.Render("AI FEEDBACK"))
	sb.WriteString("\n")
	sb.WriteString(RenderFeedback(f.feedback, width))

	return sb.String()
}

func (f *Feedback) View() string {
	var sb strings.Builder

	sb.WriteString(style.Viewport.Render(f.viewport.View()))
	sb.WriteString("\n")
	sb.WriteString(style.KeyHelpLine(f.keys.Next, f.keys.Quit))

	return sb.String()
}
