package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"google.golang.org/genai"
)

// Generators is the set of generators the coach needs, one per concern.
type Generators struct {
	Images    ImageGenerator
	Questions TextGenerator
	Feedback  TextGenerator
}

// Build validates cfg and creates the generators it selects. A single
// client is shared per provider. Every generator is wrapped with logging.
func Build(ctx context.Context, cfg Config) (Generators, error) {
	if err := cfg.Validate(); err != nil {
		return Generators{}, fmt.Errorf("invalid provider config: %w", err)
	}

	b := builder{ctx: ctx, cfg: cfg, mock: &Mock{}}

	images, err := b.images()
	if err != nil {
		return Generators{}, err
	}

	questions, err := b.text(cfg.Questions, "questions")
	if err != nil {
		return Generators{}, err
	}

	feedback, err := b.text(cfg.Feedback, "feedback")
	if err != nil {
		return Generators{}, err
	}

	return Generators{
		Images:    LoggedImages{ImageGenerator: images, Concern: "images"},
		Questions: LoggedText{TextGenerator: questions, Concern: "questions"},
		Feedback:  LoggedText{TextGenerator: feedback, Concern: "feedback"},
	}, nil
}

type builder struct {
	ctx    context.Context //nolint:containedctx // scoped to Build
	cfg    Config
	mock   *Mock
	gemini *genai.Client
	openai *openai.Client
}

func (b *builder) geminiClient() (*genai.Client, error) {
	if b.gemini != nil {
		return b.gemini, nil
	}

	client, err := NewGeminiClient(b.ctx, b.cfg.Gemini)
	if err != nil {
		return nil, err
	}

	b.gemini = client

	return client, nil
}

func (b *builder) openAIClient() (*openai.Client, error) {
	if b.openai != nil {
		return b.openai, nil
	}

	client, err := NewOpenAIClient(b.cfg.OpenAI)
	if err != nil {
		return nil, err
	}

	b.openai = client

	return client, nil
}

func (b *builder) images() (ImageGenerator, error) {
	switch b.cfg.Images {
	case ProviderGemini:
		client, err := b.geminiClient()
		if err != nil {
			return nil, err
		}

		return NewGeminiImages(client, b.cfg.Gemini.ImageModel), nil
	case ProviderOpenAI:
		client, err := b.openAIClient()
		if err != nil {
			return nil, err
		}

		return NewOpenAIImages(client, b.cfg.OpenAI.ImageModel), nil
	case ProviderMock:
		return b.mock, nil
	default:
		return nil, fmt.Errorf("provider %q cannot generate images", b.cfg.Images)
	}
}

func (b *builder) text(provider, concern string) (TextGenerator, error) {
	pick := func(question, feedback string) string {
		if concern == "feedback" {
			return feedback
		}

		return question
	}

	switch provider {
	case ProviderGemini:
		client, err := b.geminiClient()
		if err != nil {
			return nil, err
		}

		return NewGeminiText(client, pick(b.cfg.Gemini.QuestionModel, b.cfg.Gemini.FeedbackModel)), nil
	case ProviderOpenAI:
		client, err := b.openAIClient()
		if err != nil {
			return nil, err
		}

		return NewOpenAIText(client, pick(b.cfg.OpenAI.QuestionModel, b.cfg.OpenAI.FeedbackModel)), nil
	case ProviderAnthropic:
		return NewAnthropicText(b.cfg.Anthropic, pick(b.cfg.Anthropic.QuestionModel, b.cfg.Anthropic.FeedbackModel))
	case ProviderMock:
		return b.mock, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}
