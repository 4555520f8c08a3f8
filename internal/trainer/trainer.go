// Package trainer sequences the coach's screens: welcome, training and
// feedback. It owns the current scenario, answer and feedback and allows at
// most one generation call at a time.
package trainer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/alkime/coach/internal/gateway"
)

// Gateway produces scenarios and feedback.
type Gateway interface {
	GenerateScenario(ctx context.Context) (gateway.Scenario, error)
	GetFeedback(ctx context.Context, question, answer string) (string, error)
}

var (
	ErrBusy              = errors.New("a request is already in progress")
	ErrInvalidTransition = errors.New("action not available on this screen")
	ErrEmptyAnswer       = errors.New("answer is empty")
	ErrNoScenario        = errors.New("no scenario loaded")
	ErrAwaitingRetry     = errors.New("an error must be retried first")
)

type jobKind int

const (
	scenarioJob jobKind = iota
	feedbackJob
)

// Job is the single gateway call an accepted action needs. Run it anywhere,
// then hand the Outcome to Complete.
type Job struct {
	seq uint64
	run func(ctx context.Context) Outcome
}

// Run performs the gateway call. It blocks until the call finishes.
func (j Job) Run(ctx context.Context) Outcome {
	return j.run(ctx)
}

// Outcome is the result of a Job.
type Outcome struct {
	seq      uint64
	kind     jobKind
	scenario gateway.Scenario
	feedback string
	Err      error
}

// Controller is the application state machine. It is safe for concurrent
// use.
type Controller struct {
	gw Gateway

	mu       sync.Mutex
	phase    Phase
	busy     bool
	loading  string
	scenario *gateway.Scenario
	answer   string
	feedback string
	errMsg   string
	seq      uint64
}

// New returns a Controller on the welcome screen.
func New(gw Gateway) *Controller {
	return &Controller{gw: gw, phase: Welcome}
}

// Start requests the first scenario.
func (c *Controller) Start() (Job, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.accept(Welcome); err != nil {
		return Job{}, err
	}

	return c.scenarioJob(), nil
}

// SubmitAnswer requests feedback on text for the current scenario.
func (c *Controller) SubmitAnswer(text string) (Job, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.accept(Training); err != nil {
		return Job{}, err
	}

	if c.scenario == nil {
		return Job{}, ErrNoScenario
	}

	if strings.TrimSpace(text) == "" {
		return Job{}, ErrEmptyAnswer
	}

	c.answer = text
	question := c.scenario.Question
	seq := c.begin(LoadingFeedback)

	return Job{seq: seq, run: func(ctx context.Context) Outcome {
		feedback, err := c.gw.GetFeedback(ctx, question, text)
		return Outcome{seq: seq, kind: feedbackJob, feedback: feedback, Err: err}
	}}, nil
}

// NextQuestion discards the current cycle and requests a new scenario.
func (c *Controller) NextQuestion() (Job, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.accept(Feedback); err != nil {
		return Job{}, err
	}

	return c.scenarioJob(), nil
}

// Retry clears the error and requests a new scenario, whatever the phase.
func (c *Controller) Retry() (Job, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return Job{}, ErrBusy
	}

	if c.errMsg == "" {
		return Job{}, ErrInvalidTransition
	}

	return c.scenarioJob(), nil
}

// Complete applies a finished job. Outcomes of superseded jobs are ignored
// and reported as false.
func (c *Controller) Complete(o Outcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.busy || o.seq != c.seq {
		slog.Debug("ignoring stale outcome", "seq", o.seq, "current", c.seq)
		return false
	}

	c.busy = false
	c.loading = ""

	if o.Err != nil {
		if o.kind == scenarioJob {
			c.errMsg = ScenarioFailed
		} else {
			c.errMsg = FeedbackFailed
		}

		slog.Error("generation failed", "phase", c.phase, "error", o.Err)

		return true
	}

	switch o.kind {
	case scenarioJob:
		sc := o.scenario
		c.scenario = &sc
		c.answer = ""
		c.feedback = ""
		c.phase = Training
	case feedbackJob:
		c.feedback = o.feedback
		c.phase = Feedback
	}

	slog.Info("phase changed", "phase", c.phase)

	return true
}

// Do runs job on the calling goroutine and applies its outcome.
func (c *Controller) Do(ctx context.Context, job Job) error {
	o := job.Run(ctx)
	c.Complete(o)

	return o.Err
}

// Screen returns the variant the UI should render.
func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.busy:
		return LoadingScreen{Message: c.loading, Phase: c.phase}
	case c.errMsg != "":
		return ErrorScreen{Message: c.errMsg, Phase: c.phase}
	}

	switch c.phase {
	case Training:
		return TrainingScreen{Scenario: *c.scenario}
	case Feedback:
		return FeedbackScreen{Scenario: *c.scenario, Answer: c.answer, Feedback: c.feedback}
	default:
		return WelcomeScreen{}
	}
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.phase
}

func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.busy
}

func (c *Controller) LoadingMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loading
}

// Error is the pending user-facing error message, or "".
func (c *Controller) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.errMsg
}

func (c *Controller) Scenario() (gateway.Scenario, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scenario == nil {
		return gateway.Scenario{}, false
	}

	return *c.scenario, true
}

func (c *Controller) Answer() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.answer
}

func (c *Controller) Feedback() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.feedback
}

// accept checks that a user action for phase may begin. Callers hold mu.
func (c *Controller) accept(phase Phase) error {
	switch {
	case c.busy:
		return ErrBusy
	case c.errMsg != "":
		return ErrAwaitingRetry
	case c.phase != phase:
		return ErrInvalidTransition
	}

	return nil
}

// begin marks the controller busy and returns the new job's sequence number.
// Callers hold mu.
func (c *Controller) begin(loading string) uint64 {
	c.seq++
	c.busy = true
	c.loading = loading
	c.errMsg = ""

	return c.seq
}

func (c *Controller) scenarioJob() Job {
	seq := c.begin(LoadingScenario)

	return Job{seq: seq, run: func(ctx context.Context) Outcome {
		sc, err := c.gw.GenerateScenario(ctx)
		return Outcome{seq: seq, kind: scenarioJob, scenario: sc, Err: err}
	}}
}
