// Package tui is the terminal front end of the coach. The root model owns a
// trainer.Controller and swaps screen models whenever the controller's
// screen variant changes.
package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alkime/coach/internal/trainer"
	"github.com/alkime/coach/internal/tui/screen"
	"github.com/alkime/coach/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const appTitle = "Ozempic AI Sales Trainer"

type Config struct {
	Controller *trainer.Controller
	Recorder   screen.RecorderControls
	Opener     Opener

	// Cancel is called on quit.
	Cancel context.CancelFunc
}

// outcomeMsg carries a finished trainer job back into the update loop.
type outcomeMsg struct {
	outcome trainer.Outcome
}

type Model struct {
	ctx  context.Context
	conf Config
	ctl  *trainer.Controller
	keys screen.KeyMap

	variant trainer.Screen
	current tea.Model
	width   int
	height  int
}

func New(ctx context.Context, conf Config) *Model {
	return &Model{
		ctx:  ctx,
		conf: conf,
		ctl:  conf.Controller,
		keys: screen.DefaultKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.sync()
}

func (m *Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height - 2

		return m, m.forward(tea.WindowSizeMsg{Width: m.width, Height: m.height})

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) ||
			(key.Matches(msg, m.keys.Quit) && !m.typing()) {
			return m, m.quit()
		}

	case screen.StartMsg:
		return m, m.dispatch(m.ctl.Start())
	case screen.SubmitMsg:
		return m, m.dispatch(m.ctl.SubmitAnswer(msg.Answer))
	case screen.NextMsg:
		return m, m.dispatch(m.ctl.NextQuestion())
	case screen.RetryMsg:
		return m, m.dispatch(m.ctl.Retry())

	case screen.OpenMsg:
		if m.conf.Opener == nil || msg.Ref == "" {
			return m, nil
		}

		return m, m.conf.Opener.Open(msg.Ref)

	case OpenedMsg:
		if msg.Err != nil {
			slog.Error("failed to open", "ref", msg.Ref, "error", msg.Err)
		}

		return m, nil

	case outcomeMsg:
		m.ctl.Complete(msg.outcome)
		return m, m.sync()
	}

	return m, m.forward(teaMsg)
}

func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(style.Header.Render(appTitle))
	sb.WriteString("\n\n")

	if m.current != nil {
		sb.WriteString(m.current.View())
	}

	return sb.String()
}

// dispatch runs an accepted job off the update loop.
func (m *Model) dispatch(job trainer.Job, err error) tea.Cmd {
	if err != nil {
		slog.Warn("action rejected", "phase", m.ctl.Phase(), "error", err)
		return nil
	}

	ctx := m.ctx
	run := func() tea.Msg {
		return outcomeMsg{outcome: job.Run(ctx)}
	}

	return tea.Batch(run, m.sync())
}

// sync rebuilds the current screen model when the controller's variant has
// changed. Leaving the training screen drops any rehearsal take.
func (m *Model) sync() tea.Cmd {
	next := m.ctl.Screen()
	if m.current != nil && next == m.variant {
		return nil
	}

	var cmds []tea.Cmd

	if _, wasTraining := m.variant.(trainer.TrainingScreen); wasTraining {
		cmds = append(cmds, m.resetRecorder())
	}

	m.variant = next
	m.current = m.build(next)

	cmds = append(cmds, m.current.Init())
	if m.width > 0 {
		cmds = append(cmds, m.forward(tea.WindowSizeMsg{Width: m.width, Height: m.height}))
	}

	return tea.Batch(cmds...)
}

func (m *Model) build(s trainer.Screen) tea.Model {
	switch s := s.(type) {
	case trainer.TrainingScreen:
		return screen.NewTraining(m.keys, s.Scenario, m.conf.Recorder)
	case trainer.FeedbackScreen:
		return screen.NewFeedback(m.keys, s.Scenario, s.Answer, s.Feedback)
	case trainer.LoadingScreen:
		return screen.NewLoading(s.Message)
	case trainer.ErrorScreen:
		return screen.NewFailure(m.keys, s.Message)
	default:
		return screen.NewWelcome(m.keys)
	}
}

func (m *Model) forward(msg tea.Msg) tea.Cmd {
	if m.current == nil {
		return nil
	}

	var cmd tea.Cmd
	m.current, cmd = m.current.Update(msg)

	return cmd
}

// typing reports whether plain letters belong to a text input.
func (m *Model) typing() bool {
	_, ok := m.variant.(trainer.TrainingScreen)
	return ok
}

func (m *Model) resetRecorder() tea.Cmd {
	reset := m.conf.Recorder.Reset
	if reset == nil {
		return nil
	}

	return func() tea.Msg {
		reset()
		return nil
	}
}

func (m *Model) quit() tea.Cmd {
	if m.conf.Cancel != nil {
		m.conf.Cancel()
	}

	if reset := m.resetRecorder(); reset != nil {
		return tea.Sequence(reset, tea.Quit)
	}

	return tea.Quit
}
