package llm

import (
	"errors"
	"fmt"
)

// Provider names accepted in Config.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

// Config selects a provider for each of the three generation concerns and
// carries per-provider credentials and models.
type Config struct {
	// Images generates the scenario picture.
	Images string
	// Questions writes the doctor's question.
	Questions string
	// Feedback evaluates the rep's answer.
	Feedback string

	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey        string
	BaseURL       string // Optional. Overrides the API endpoint.
	ImageModel    string
	QuestionModel string
	FeedbackModel string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey        string
	BaseURL       string
	ImageModel    string
	QuestionModel string
	FeedbackModel string
}

// AnthropicConfig holds Anthropic-specific configuration. Anthropic has no
// image model, so it can only serve Questions and Feedback.
type AnthropicConfig struct {
	APIKey        string
	BaseURL       string
	QuestionModel string
	FeedbackModel string
	MaxTokens     int
}

// DefaultConfig returns a Gemini-only Config with the models the coach was
// designed around.
func DefaultConfig() Config {
	return Config{
		Images:    ProviderGemini,
		Questions: ProviderGemini,
		Feedback:  ProviderGemini,
		Gemini: GeminiConfig{
			ImageModel:    "imagen-4.0-generate-001",
			QuestionModel: "gemini-2.5-flash-lite",
			FeedbackModel: "gemini-2.5-pro",
		},
		OpenAI: OpenAIConfig{
			ImageModel:    "dall-e-3",
			QuestionModel: "gpt-4o-mini",
			FeedbackModel: "gpt-4o",
		},
		Anthropic: AnthropicConfig{
			QuestionModel: "claude-haiku-4-5",
			FeedbackModel: "claude-sonnet-4-5",
			MaxTokens:     4096,
		},
	}
}

// Validate checks provider names and that every selected provider has a key.
func (c Config) Validate() error {
	if c.Images == ProviderAnthropic {
		return errors.New("anthropic cannot generate images; choose gemini, openai or mock")
	}

	var errs []error
	for concern, provider := range map[string]string{
		"images":    c.Images,
		"questions": c.Questions,
		"feedback":  c.Feedback,
	} {
		if err := c.checkKey(provider); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", concern, err))
		}
	}

	return errors.Join(errs...)
}

// Uses reports whether any concern is served by the named provider.
func (c Config) Uses(provider string) bool {
	return c.Images == provider || c.Questions == provider || c.Feedback == provider
}

func (c Config) checkKey(provider string) error {
	switch provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return errors.New("GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return errors.New("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown provider %q", provider)
	}

	return nil
}

// OverrideModels replaces the model of whichever provider serves each
// concern. Empty names leave the default in place.
func (c *Config) OverrideModels(images, questions, feedback string) {
	if images != "" {
		switch c.Images {
		case ProviderGemini:
			c.Gemini.ImageModel = images
		case ProviderOpenAI:
			c.OpenAI.ImageModel = images
		}
	}

	if questions != "" {
		switch c.Questions {
		case ProviderGemini:
			c.Gemini.QuestionModel = questions
		case ProviderOpenAI:
			c.OpenAI.QuestionModel = questions
		case ProviderAnthropic:
			c.Anthropic.QuestionModel = questions
		}
	}

	if feedback != "" {
		switch c.Feedback {
		case ProviderGemini:
			c.Gemini.FeedbackModel = feedback
		case ProviderOpenAI:
			c.OpenAI.FeedbackModel = feedback
		case ProviderAnthropic:
			c.Anthropic.FeedbackModel = feedback
		}
	}
}
