package trainer

import "fmt"

// Phase is the screen the user is on.
type Phase int

const (
	Welcome Phase = iota
	Training
	Feedback
)

func (p Phase) String() string {
	switch p {
	case Welcome:
		return "welcome"
	case Training:
		return "training"
	case Feedback:
		return "feedback"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// User-facing messages.
const (
	LoadingScenario = "Generating new training scenario..."
	LoadingFeedback = "Analyzing your response and crafting feedback..."

	ScenarioFailed = "Failed to generate a training scenario. Please try again."
	FeedbackFailed = "Failed to get feedback. Please try again."
)
