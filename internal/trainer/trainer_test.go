package trainer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alkime/coach/internal/gateway"
	"github.com/alkime/coach/internal/trainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	scenarios []gateway.Scenario
	scenErr   error
	feedback  string
	fbErr     error

	scenarioCalls int
	feedbackCalls int
	lastQuestion  string
	lastAnswer    string
}

func (g *stubGateway) GenerateScenario(context.Context) (gateway.Scenario, error) {
	g.scenarioCalls++
	if g.scenErr != nil {
		return gateway.Scenario{}, g.scenErr
	}

	sc := g.scenarios[0]
	if len(g.scenarios) > 1 {
		g.scenarios = g.scenarios[1:]
	}

	return sc, nil
}

func (g *stubGateway) GetFeedback(_ context.Context, question, answer string) (string, error) {
	g.feedbackCalls++
	g.lastQuestion, g.lastAnswer = question, answer

	return g.feedback, g.fbErr
}

var (
	scenarioA = gateway.Scenario{ImageRef: "img://a", Question: "Q1"}
	scenarioB = gateway.Scenario{ImageRef: "img://b", Question: "Q2"}
)

func do(t *testing.T, c *trainer.Controller, job trainer.Job, err error) error {
	t.Helper()
	require.NoError(t, err)

	return c.Do(context.Background(), job)
}

// toTraining drives a fresh controller onto the training screen.
func toTraining(t *testing.T, gw *stubGateway) *trainer.Controller {
	t.Helper()

	c := trainer.New(gw)
	job, err := c.Start()
	require.NoError(t, do(t, c, job, err))
	require.Equal(t, trainer.Training, c.Phase())

	return c
}

func TestStart_Success(t *testing.T) {
	gw := &stubGateway{scenarios: []gateway.Scenario{scenarioA}}
	c := trainer.New(gw)
	assert.Equal(t, trainer.WelcomeScreen{}, c.Screen())

	job, err := c.Start()
	require.NoError(t, err)
	assert.True(t, c.Busy())
	assert.Equal(t, trainer.LoadingScenario, c.LoadingMessage())
	assert.Equal(t, trainer.LoadingScreen{Message: trainer.LoadingScenario, Phase: trainer.Welcome}, c.Screen())

	require.NoError(t, c.Do(context.Background(), job))

	assert.False(t, c.Busy())
	assert.Equal(t, trainer.Training, c.Phase())
	sc, ok := c.Scenario()
	require.True(t, ok)
	assert.Equal(t, scenarioA, sc)
	assert.Equal(t, trainer.TrainingScreen{Scenario: scenarioA}, c.Screen())
}

func TestStart_Failure(t *testing.T) {
	gw := &stubGateway{scenErr: errors.New("quota")}
	c := trainer.New(gw)

	job, err := c.Start()
	require.Error(t, do(t, c, job, err))

	assert.Equal(t, trainer.Welcome, c.Phase())
	assert.Equal(t, trainer.ScenarioFailed, c.Error())
	assert.False(t, c.Busy())
	assert.Equal(t, trainer.ErrorScreen{Message: trainer.ScenarioFailed, Phase: trainer.Welcome}, c.Screen())
}

func TestSubmitAnswer_Success(t *testing.T) {
	gw := &stubGateway{scenarios: []gateway.Scenario{scenarioA}, feedback: "**Accuracy**: ..."}
	c := toTraining(t, gw)

	job, err := c.SubmitAnswer("We have strong CV outcomes data")
	require.NoError(t, err)
	assert.Equal(t, trainer.LoadingFeedback, c.LoadingMessage())
	require.NoError(t, c.Do(context.Background(), job))

	assert.Equal(t, trainer.Feedback, c.Phase())
	assert.Equal(t, "**Accuracy**: ...", c.Feedback())
	assert.Equal(t, "Q1", gw.lastQuestion)
	assert.Equal(t, "We have strong CV outcomes data", gw.lastAnswer)
	assert.Equal(t, trainer.FeedbackScreen{
		Scenario: scenarioA,
		Answer:   "We have strong CV outcomes data",
		Feedback: "**Accuracy**: ...",
	}, c.Screen())
}

func TestSubmitAnswer_Rejections(t *testing.T) {
	gw := &stubGateway{scenarios: []gateway.Scenario{scenarioA}}

	welcome := trainer.New(gw)
	_, err := welcome.SubmitAnswer("hello")
	require.ErrorIs(t, err, trainer.ErrInvalidTransition)

	c := toTraining(t, gw)
	for _, blank := range []string{"", "   ", "\n\t"} {
		_, err := c.SubmitAnswer(blank)
		require.ErrorIs(t, err, trainer.ErrEmptyAnswer)
	}

	assert.Equal(t, 0, gw.feedbackCalls)
	assert.Equal(t, trainer.Training, c.Phase())
	assert.False(t, c.Busy())
}

func TestSubmitAnswer_Failure(t *testing.T) {
	gw := &stubGateway{scenarios: []gateway.Scenario{scenarioA}, fbErr: errors.New("timeout")}
	c := toTraining(t, gw)

	job, err := c.SubmitAnswer("answer")
	require.Error(t, do(t, c, job, err))

	assert.Equal(t, trainer.Training, c.Phase())
	assert.Equal(t, trainer.FeedbackFailed, c.Error())
	sc, _ := c.Scenario()
	assert.Equal(t, scenarioA, sc)
}

func TestNextQuestion(t *testing.T) {
	gw := &stubGateway{scenarios: []gateway.Scenario{scenarioA, scenarioB}, feedback: "fb"}
	c := toTraining(t, gw)

	_, err := c.NextQuestion()
	require.ErrorIs(t, err, trainer.ErrInvalidTransition)

	job, err := c.SubmitAnswer("answer")
	require.NoError(t, do(t, c, job, err))

	job, err = c.NextQuestion()
	require.NoError(t, do(t, c, job, err))

	assert.Equal(t, trainer.Training, c.Phase())
	sc, _ := c.Scenario()
	assert.Equal(t, scenarioB, sc)
	assert.Empty(t, c.Answer())
	assert.Empty(t, c.Feedback())
}

func TestNextQuestion_FailureKeepsFeedback(t *testing.T) {
	gw := &stubGateway{scenarios: []gateway.Scenario{scenarioA}, feedback: "fb"}
	c := toTraining(t, gw)

	job, err := c.SubmitAnswer("answer")
	require.NoError(t, do(t, c, job, err))

	gw.scenErr = errors.New("down")
	job, err = c.NextQuestion()
	require.Error(t, do(t, c, job, err))

	assert.Equal(t, trainer.Feedback, c.Phase())
	assert.Equal(t, trainer.ScenarioFailed, c.Error())
	assert.Equal(t, "fb", c.Feedback())
	assert.Equal(t, "answer", c.Answer())
}

func TestBusyRejectsEverything(t *testing.T) {
	gw := &stubGateway{scenarios: []gateway.Scenario{scenarioA}}
	c := trainer.New(gw)

	job, err := c.Start()
	require.NoError(t, err)

	_, err = c.Start()
	require.ErrorIs(t, err, trainer.ErrBusy)
	_, err = c.Retry()
	require.ErrorIs(t, err, trainer.ErrBusy)
	_, err = c.SubmitAnswer("x")
	require.ErrorIs(t, err, trainer.ErrBusy)
	_, err = c.NextQuestion()
	require.ErrorIs(t, err, trainer.ErrBusy)

	require.NoError(t, c.Do(context.Background(), job))
	assert.Equal(t, 1, gw.scenarioCalls)
}

func TestRetry(t *testing.T) {
	gw := &stubGateway{scenarios: []gateway.Scenario{scenarioA}, scenErr: errors.New("down")}
	c := trainer.New(gw)

	_, err := c.Retry()
	require.ErrorIs(t, err, trainer.ErrInvalidTransition)

	job, err := c.Start()
	require.Error(t, do(t, c, job, err))

	_, err = c.Start()
	require.ErrorIs(t, err, trainer.ErrAwaitingRetry)

	gw.scenErr = nil
	job, err = c.Retry()
	require.NoError(t, err)
	assert.Empty(t, c.Error())
	require.NoError(t, c.Do(context.Background(), job))

	assert.Equal(t, trainer.Training, c.Phase())
}

func TestRetry_AfterFeedbackFailureRequestsScenario(t *testing.T) {
	gw := &stubGateway{scenarios: []gateway.Scenario{scenarioA, scenarioB}, fbErr: errors.New("down")}
	c := toTraining(t, gw)

	job, err := c.SubmitAnswer("answer")
	require.Error(t, do(t, c, job, err))

	job, err = c.Retry()
	require.NoError(t, do(t, c, job, err))

	assert.Equal(t, 2, gw.scenarioCalls)
	assert.Equal(t, trainer.Training, c.Phase())
	sc, _ := c.Scenario()
	assert.Equal(t, scenarioB, sc)
}

func TestComplete_IgnoresStaleOutcome(t *testing.T) {
	gw := &stubGateway{scenarios: []gateway.Scenario{scenarioA, scenarioB}, scenErr: errors.New("down")}
	c := trainer.New(gw)

	first, err := c.Start()
	require.NoError(t, err)
	require.True(t, c.Complete(first.Run(context.Background())))

	gw.scenErr = nil
	second, err := c.Retry()
	require.NoError(t, err)

	// Replaying the first job's outcome must not touch the new one.
	assert.False(t, c.Complete(first.Run(context.Background())))
	assert.True(t, c.Busy())

	assert.True(t, c.Complete(second.Run(context.Background())))
	assert.False(t, c.Complete(second.Run(context.Background())))
	assert.Equal(t, trainer.Training, c.Phase())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "welcome", trainer.Welcome.String())
	assert.Equal(t, "training", trainer.Training.String())
	assert.Equal(t, "feedback", trainer.Feedback.String())
}
