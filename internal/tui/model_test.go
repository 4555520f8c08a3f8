package tui_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alkime/coach/internal/gateway"
	"github.com/alkime/coach/internal/trainer"
	"github.com/alkime/coach/internal/tui"
	"github.com/alkime/coach/internal/tui/screen"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

type fakeGateway struct {
	mu          sync.Mutex
	scenario    gateway.Scenario
	feedback    string
	scenarioErr error
	questions   []string
	answers     []string
}

func (g *fakeGateway) GenerateScenario(context.Context) (gateway.Scenario, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.scenarioErr != nil {
		return gateway.Scenario{}, &gateway.GenerationError{Op: "scenario", Err: g.scenarioErr}
	}

	return g.scenario, nil
}

func (g *fakeGateway) GetFeedback(_ context.Context, question, answer string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.questions = append(g.questions, question)
	g.answers = append(g.answers, answer)

	return g.feedback, nil
}

func (g *fakeGateway) fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.scenarioErr = err
}

type fakeOpener struct {
	mu     sync.Mutex
	opened []string
}

func (o *fakeOpener) Open(ref string) tea.Cmd {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.opened = append(o.opened, ref)

	return func() tea.Msg { return tui.OpenedMsg{Ref: ref} }
}

func (o *fakeOpener) refs() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]string(nil), o.opened...)
}

func waitFor(t *testing.T, tm *teatest.TestModel, substr string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(buf []byte) bool {
		return bytes.Contains(buf, []byte(substr))
	}, teatest.WithCheckInterval(50*time.Millisecond), teatest.WithDuration(3*time.Second))
}

func newTestModel(t *testing.T, gw *fakeGateway, conf tui.Config) (*teatest.TestModel, *trainer.Controller) {
	t.Helper()

	ctl := trainer.New(gw)
	conf.Controller = ctl
	m := tui.New(context.Background(), conf)

	return teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 40)), ctl
}

func TestModel_FullCycle(t *testing.T) {
	gw := &fakeGateway{
		scenario: gateway.Scenario{ImageRef: "img://a", Question: "Is it safe for my older patients?"},
		feedback: "**Accuracy**: well supported",
	}
	tm, ctl := newTestModel(t, gw, tui.Config{})

	waitFor(t, tm, "AI-Powered Sales Training")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	waitFor(t, tm, "Is it safe for my older patients?")
	assert.Equal(t, trainer.Training, ctl.Phase())

	tm.Type("We have strong CV outcomes data")
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlS})

	waitFor(t, tm, "AI FEEDBACK")
	assert.Equal(t, trainer.Feedback, ctl.Phase())
	assert.Equal(t, "**Accuracy**: well supported", ctl.Feedback())

	gw.mu.Lock()
	assert.Equal(t, []string{"Is it safe for my older patients?"}, gw.questions)
	assert.Equal(t, []string{"We have strong CV outcomes data"}, gw.answers)
	gw.mu.Unlock()

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}

func TestModel_FailureAndRetry(t *testing.T) {
	gw := &fakeGateway{
		scenario:    gateway.Scenario{ImageRef: "img://b", Question: "Q1"},
		scenarioErr: errors.New("quota exceeded"),
	}
	tm, ctl := newTestModel(t, gw, tui.Config{})

	tm.Send(screen.StartMsg{})
	waitFor(t, tm, trainer.ScenarioFailed)
	assert.Equal(t, trainer.Welcome, ctl.Phase())

	gw.fail(nil)
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	waitFor(t, tm, "DOCTOR'S QUESTION")
	assert.Equal(t, trainer.Training, ctl.Phase())
	assert.Empty(t, ctl.Error())

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}

func TestModel_QuitKeyTypesOnTrainingScreen(t *testing.T) {
	gw := &fakeGateway{scenario: gateway.Scenario{ImageRef: "img://c", Question: "Q1"}}
	tm, _ := newTestModel(t, gw, tui.Config{})

	tm.Send(screen.StartMsg{})
	waitFor(t, tm, "DOCTOR'S QUESTION")

	tm.Type("quick")
	waitFor(t, tm, "quick")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}

func TestModel_OpenImageAndResetOnQuit(t *testing.T) {
	gw := &fakeGateway{scenario: gateway.Scenario{ImageRef: "img://d", Question: "Q1"}}
	opener := &fakeOpener{}

	var (
		resetMu sync.Mutex
		resets  int
	)

	canceled := make(chan struct{})
	conf := tui.Config{
		Opener: opener,
		Cancel: func() { close(canceled) },
		Recorder: screen.RecorderControls{
			Reset: func() {
				resetMu.Lock()
				defer resetMu.Unlock()
				resets++
			},
		},
	}
	tm, _ := newTestModel(t, gw, conf)

	tm.Send(screen.StartMsg{})
	waitFor(t, tm, "DOCTOR'S QUESTION")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlO})
	require.Eventually(t, func() bool { return len(opener.refs()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"img://d"}, opener.refs())

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	select {
	case <-canceled:
	default:
		t.Fatal("cancel was not called on quit")
	}

	resetMu.Lock()
	defer resetMu.Unlock()
	assert.GreaterOrEqual(t, resets, 1)
}
