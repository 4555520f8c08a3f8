package screen

import (
	"fmt"
	"strings"
	"time"

	"github.com/alkime/coach/internal/gateway"
	"github.com/alkime/coach/internal/recorder"
	"github.com/alkime/coach/internal/tui/components/waveform"
	"github.com/alkime/coach/internal/tui/style"
	"github.com/alkime/coach/pkg/uictl"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/stopwatch"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const emptyAnswerWarning = "Please type your answer before submitting."

// RecorderControls gives the training screen access to the rehearsal
// recorder. A zero value hides the recorder.
type RecorderControls struct {
	// Record is on while capturing. Toggle may block while a take is
	// finalized, so it is called from a command.
	Record uictl.Knob
	Size   uictl.CappedDial[int64]
	Levels uictl.Levels[int16]

	Take    func() (recorder.Take, bool)
	Message func() string
	Reset   func()
}

// Enabled reports whether a recorder is wired.
func (rc RecorderControls) Enabled() bool {
	return rc.Record != nil
}

type toggledMsg struct{}

// Training shows the scenario and collects the answer.
type Training struct {
	keys     KeyMap
	scenario gateway.Scenario
	controls RecorderControls

	answer    textarea.Model
	wave      waveform.Model
	stopwatch stopwatch.Model
	progress  progress.Model

	toggling bool
	warning  string
	width    int
}

func NewTraining(keys KeyMap, scenario gateway.Scenario, controls RecorderControls) *Training {
	ta := textarea.New()
	ta.Placeholder = "Type your answer to the doctor..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(76)
	ta.SetHeight(6)
	ta.Focus()

	return &Training{
		keys:      keys,
		scenario:  scenario,
		controls:  controls,
		answer:    ta,
		wave:      waveform.New(controls.Levels, 40, 2),
		stopwatch: stopwatch.NewWithInterval(time.Second),
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		),
	}
}

func (t *Training) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if t.controls.Enabled() {
		cmds = append(cmds, t.wave.Init())
	}

	return tea.Batch(cmds...)
}

// Answer returns the text typed so far.
func (t *Training) Answer() string {
	return t.answer.Value()
}

func (t *Training) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.answer.SetWidth(max(msg.Width-4, 20))
		t.wave.SetWidth(min(max(msg.Width-4, 10), 60))

		return t, nil

	case tea.KeyMsg:
		if cmd, handled := t.handleKey(msg); handled {
			return t, cmd
		}

	case toggledMsg:
		t.toggling = false
		if t.controls.Record.Read() {
			return t, tea.Sequence(t.stopwatch.Reset(), t.stopwatch.Start())
		}

		return t, t.stopwatch.Stop()

	case waveform.TickMsg:
		var cmd tea.Cmd
		t.wave, cmd = t.wave.Update(msg)

		if t.atCap() {
			return t, tea.Batch(cmd, t.toggle())
		}

		return t, cmd

	case stopwatch.TickMsg, stopwatch.StartStopMsg, stopwatch.ResetMsg:
		var cmd tea.Cmd
		t.stopwatch, cmd = t.stopwatch.Update(msg)

		return t, cmd
	}

	var cmd tea.Cmd
	t.answer, cmd = t.answer.Update(teaMsg)

	return t, cmd
}

func (t *Training) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, t.keys.Submit):
		answer := t.answer.Value()
		if strings.TrimSpace(answer) == "" {
			t.warning = emptyAnswerWarning
			return nil, true
		}

		t.warning = ""

		return emit(SubmitMsg{Answer: answer}), true

	case key.Matches(msg, t.keys.OpenImage):
		return emit(OpenMsg{Ref: t.scenario.ImageRef}), true

	case key.Matches(msg, t.keys.Record):
		return t.toggle(), true

	case key.Matches(msg, t.keys.Listen):
		if take, ok := t.take(); ok {
			return emit(OpenMsg{Ref: take.Ref}), true
		}

		return nil, true
	}

	return nil, false
}

func (t *Training) toggle() tea.Cmd {
	if !t.controls.Enabled() || t.toggling {
		return nil
	}

	t.toggling = true
	knob := t.controls.Record

	return func() tea.Msg {
		knob.Toggle()
		return toggledMsg{}
	}
}

// atCap reports a running recording that has filled its size cap.
func (t *Training) atCap() bool {
	if !t.controls.Enabled() || t.controls.Size == nil || t.toggling || !t.controls.Record.Read() {
		return false
	}

	current, limit := t.controls.Size.Cap()

	return limit > 0 && current >= limit
}

func (t *Training) take() (recorder.Take, bool) {
	if t.controls.Take == nil {
		return recorder.Take{}, false
	}

	return t.controls.Take()
}

func (t *Training) View() string {
	var sb strings.Builder

	sb.WriteString(style.Section.Render("SCENARIO"))
	sb.WriteString("\n")
	sb.WriteString(style.Subtitle.Render(describeImage(t.scenario.ImageRef)))
	sb.WriteString("  ")
	sb.WriteString(style.KeyHelp(t.keys.OpenImage))
	sb.WriteString("\n\n")

	sb.WriteString(style.Section.Render("DOCTOR'S QUESTION"))
	sb.WriteString("\n")
	sb.WriteString(wrap(style.Question, t.scenario.Question, t.width))
	sb.WriteString("\n\n")

	if t.controls.Enabled() {
		sb.WriteString(t.recorderView())
		sb.WriteString("\n\n")
	}

	sb.WriteString(style.Section.Render("YOUR ANSWER"))
	sb.WriteString("\n")
	sb.WriteString(t.answer.View())
	sb.WriteString("\n")

	if t.warning != "" {
		sb.WriteString(style.Warning.Render(t.warning))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")

	bindings := []key.Binding{t.keys.Submit}
	if t.controls.Enabled() {
		bindings = append(bindings, t.keys.Record)
		if _, ok := t.take(); ok {
			bindings = append(bindings, t.keys.Listen)
		}
	}

	sb.WriteString(style.KeyHelpLine(append(bindings, t.keys.ForceQuit)...))

	return sb.String()
}

func (t *Training) recorderView() string {
	var sb strings.Builder

	sb.WriteString(style.Section.Render("REHEARSE OUT LOUD"))
	sb.WriteString("\n")

	take, hasTake := t.take()

	switch {
	case t.toggling:
		sb.WriteString(style.Subtitle.Render("One moment..."))
	case t.controls.Record.Read():
		sb.WriteString(style.Recording.Render("● Recording"))
		sb.WriteString(" ")
		sb.WriteString(style.Subtitle.Render(t.stopwatch.View()))
		sb.WriteString("\n")
		sb.WriteString(t.wave.View())
	case hasTake:
		sb.WriteString(style.Success.Render("Take saved"))
		sb.WriteString(" ")
		sb.WriteString(style.Subtitle.Render(take.Duration.Round(time.Second).String()))
	default:
		sb.WriteString(style.Subtitle.Render("Practice your pitch before typing it. The take stays on this machine."))
	}

	if msg := t.message(); msg != "" {
		sb.WriteString("\n")
		sb.WriteString(style.Error.Render(msg))
	}

	if t.controls.Size != nil && t.controls.Record.Read() {
		current, limit := t.controls.Size.Cap()
		sb.WriteString("\n")
		sb.WriteString(t.progress.ViewAs(fraction(current, limit)))
		sb.WriteString(" ")
		sb.WriteString(style.Subtitle.Render(formatBytes(current, limit)))
	}

	return sb.String()
}

func (t *Training) message() string {
	if t.controls.Message == nil {
		return ""
	}

	return t.controls.Message()
}

// describeImage keeps inline data URLs from flooding the screen.
func describeImage(ref string) string {
	if !strings.HasPrefix(ref, "data:") {
		return ref
	}

	payload := ref[strings.IndexByte(ref, ',')+1:]

	return fmt.Sprintf("inline image (%d KB)", len(payload)*3/4/1024)
}

func fraction(current, limit int64) float64 {
	if limit <= 0 {
		return 0
	}

	return min(float64(current)/float64(limit), 1)
}

func formatBytes(current, limit int64) string {
	currentKB := float64(current) / 1024
	if limit <= 0 {
		return fmt.Sprintf("%.0f KB", currentKB)
	}

	return fmt.Sprintf("%.0f KB / %.0f KB", currentKB, float64(limit)/1024)
}
