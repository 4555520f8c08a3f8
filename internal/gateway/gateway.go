// Package gateway produces training scenarios and feedback by calling the
// configured generative-AI providers.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alkime/coach/internal/llm"
)

// Scenario is one generated training situation.
type Scenario struct {
	ImageRef string `json:"imageRef"`
	Question string `json:"question"`
}

// GenerationError reports any failed or unusable generation call.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Config wires the gateway's collaborators. Sink, Picker and Pack default to
// DataURLSink, RandomPicker and DefaultPack.
type Config struct {
	Images    llm.ImageGenerator
	Questions llm.TextGenerator
	Feedback  llm.TextGenerator

	Sink   ImageSink
	Picker Picker
	Pack   *PromptPack
}

// Gateway is stateless between calls and safe for concurrent use.
type Gateway struct {
	images    llm.ImageGenerator
	questions llm.TextGenerator
	feedback  llm.TextGenerator
	sink      ImageSink
	picker    Picker
	pack      PromptPack
}

// New creates a Gateway.
func New(cfg Config) (*Gateway, error) {
	if cfg.Images == nil || cfg.Questions == nil || cfg.Feedback == nil {
		return nil, errors.New("gateway requires image, question and feedback generators")
	}

	g := &Gateway{
		images:    cfg.Images,
		questions: cfg.Questions,
		feedback:  cfg.Feedback,
		sink:      cfg.Sink,
		picker:    cfg.Picker,
	}

	if g.sink == nil {
		g.sink = DataURLSink{}
	}

	if g.picker == nil {
		g.picker = RandomPicker{}
	}

	if cfg.Pack != nil {
		if err := cfg.Pack.Validate(); err != nil {
			return nil, fmt.Errorf("invalid prompt pack: %w", err)
		}

		g.pack = *cfg.Pack
	} else {
		g.pack = DefaultPack()
	}

	return g, nil
}

// GenerateScenario picks an image prompt and a question prompt independently
// and asks for one 16:9 JPEG and the doctor's question. Nothing is retried.
func (g *Gateway) GenerateScenario(ctx context.Context) (Scenario, error) {
	imagePrompt := g.pack.ImagePrompts[g.picker.Pick(len(g.pack.ImagePrompts))]
	questionPrompt := g.pack.QuestionPrompts[g.picker.Pick(len(g.pack.QuestionPrompts))]

	images, err := g.images.GenerateImages(ctx, llm.ImageRequest{
		Prompt:      imagePrompt,
		Count:       1,
		MIMEType:    "image/jpeg",
		AspectRatio: "16:9",
	})
	if err != nil {
		return Scenario{}, &GenerationError{Op: "generate scenario image", Err: err}
	}

	if len(images) == 0 || len(images[0].Data) == 0 {
		return Scenario{}, &GenerationError{Op: "generate scenario image", Err: llm.ErrEmptyResponse}
	}

	ref, err := g.sink.Put(ctx, images[0])
	if err != nil {
		return Scenario{}, &GenerationError{Op: "store scenario image", Err: err}
	}

	text, err := g.questions.GenerateText(ctx, llm.TextRequest{Prompt: questionPrompt})
	if err != nil {
		return Scenario{}, &GenerationError{Op: "generate scenario question", Err: err}
	}

	question := strings.TrimSpace(text)
	if question == "" {
		return Scenario{}, &GenerationError{Op: "generate scenario question", Err: llm.ErrEmptyResponse}
	}

	slog.Debug("scenario generated", "image_ref_len", len(ref), "question", question)

	return Scenario{ImageRef: ref, Question: question}, nil
}

// GetFeedback grades answer against question and returns the model's
// markdown unmodified.
func (g *Gateway) GetFeedback(ctx context.Context, question, answer string) (string, error) {
	text, err := g.feedback.GenerateText(ctx, llm.TextRequest{
		System: g.pack.Feedback.System,
		Prompt: g.pack.FeedbackPrompt(question, answer),
	})
	if err != nil {
		return "", &GenerationError{Op: "get feedback", Err: err}
	}

	if strings.TrimSpace(text) == "" {
		return "", &GenerationError{Op: "get feedback", Err: llm.ErrEmptyResponse}
	}

	return text, nil
}
