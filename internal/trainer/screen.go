package trainer

import "github.com/alkime/coach/internal/gateway"

// Screen is what the UI should render right now. It is one of
// WelcomeScreen, TrainingScreen, FeedbackScreen, ErrorScreen or
// LoadingScreen.
type Screen interface {
	screen()
}

type WelcomeScreen struct{}

type TrainingScreen struct {
	Scenario gateway.Scenario
}

type FeedbackScreen struct {
	Scenario gateway.Scenario
	Answer   string
	Feedback string
}

// ErrorScreen supersedes the phase until the user retries.
type ErrorScreen struct {
	Message string
	Phase   Phase
}

// LoadingScreen overlays the phase while a job is in flight.
type LoadingScreen struct {
	Message string
	Phase   Phase
}

func (WelcomeScreen) screen()  {}
func (TrainingScreen) screen() {}
func (FeedbackScreen) screen() {}
func (ErrorScreen) screen()    {}
func (LoadingScreen) screen()  {}
