package main

import (
	"errors"
	"log/slog"

	"github.com/alkime/coach/internal/app"
	"github.com/alkime/coach/internal/keyring"
	"github.com/alkime/coach/internal/llm"
	"github.com/alkime/coach/internal/storage"
	"github.com/alkime/coach/internal/workdir"
)

// GenerationFlags are shared by every command that talks to a provider.
type GenerationFlags struct {
	ImageProvider    string `flag:"" default:"gemini" enum:"gemini,openai,mock" help:"Provider for scenario images"`
	QuestionProvider string `flag:"" default:"gemini" enum:"gemini,openai,anthropic,mock" help:"Provider for the doctor's question"`
	FeedbackProvider string `flag:"" default:"gemini" enum:"gemini,openai,anthropic,mock" help:"Provider for feedback"`

	ImageModel    string `flag:"" optional:"" help:"Override the image model"`
	QuestionModel string `flag:"" optional:"" help:"Override the question model"`
	FeedbackModel string `flag:"" optional:"" help:"Override the feedback model"`

	GeminiAPIKey    string `flag:"" env:"GEMINI_API_KEY" help:"Gemini API key"`
	OpenAIAPIKey    string `flag:"" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	AnthropicAPIKey string `flag:"" env:"ANTHROPIC_API_KEY" help:"Anthropic API key"`

	Prompts string `flag:"" optional:"" help:"YAML prompt pack replacing the built-in prompts"`
	Seed    uint64 `flag:"" default:"0" help:"Seed for reproducible prompt selection (0 = random)"`

	Media       string `flag:"" default:"local" enum:"inline,local,s3" help:"Where scenario images are kept"`
	MediaDir    string `flag:"" optional:"" help:"Media directory (default: ~/Documents/Alkime/Coach/media)"`
	S3Bucket    string `flag:"" env:"S3_BUCKET" help:"Bucket for --media=s3"`
	S3Prefix    string `flag:"" env:"S3_PREFIX" default:"coach" help:"Key prefix for --media=s3"`
	S3Region    string `flag:"" env:"AWS_REGION" default:"auto" help:"Region for --media=s3"`
	S3Endpoint  string `flag:"" env:"AWS_ENDPOINT_URL_S3" help:"S3-compatible endpoint"`
	S3PublicURL string `flag:"" env:"S3_PUBLIC_URL" help:"Public base URL of the bucket"`
	S3KeyID     string `flag:"" env:"AWS_ACCESS_KEY_ID" help:"S3 access key ID"`
	S3Secret    string `flag:"" env:"AWS_SECRET_ACCESS_KEY" help:"S3 secret access key"`
}

// options resolves keys (environment first, then keychain) and the media
// directory into app.Options.
func (f *GenerationFlags) options() (app.Options, error) {
	f.GeminiAPIKey = keyring.Resolve(keyring.Gemini, f.GeminiAPIKey)
	f.OpenAIAPIKey = keyring.Resolve(keyring.OpenAI, f.OpenAIAPIKey)
	f.AnthropicAPIKey = keyring.Resolve(keyring.Anthropic, f.AnthropicAPIKey)

	cfg := llm.DefaultConfig()
	cfg.Images = f.ImageProvider
	cfg.Questions = f.QuestionProvider
	cfg.Feedback = f.FeedbackProvider
	cfg.Gemini.APIKey = f.GeminiAPIKey
	cfg.OpenAI.APIKey = f.OpenAIAPIKey
	cfg.Anthropic.APIKey = f.AnthropicAPIKey
	cfg.OverrideModels(f.ImageModel, f.QuestionModel, f.FeedbackModel)

	if err := cfg.Validate(); err != nil {
		return app.Options{}, errors.Join(err,
			errors.New("set keys via environment variables or run 'coach config set-key'"))
	}

	dir, err := f.mediaDir()
	if err != nil {
		return app.Options{}, err
	}

	slog.Debug("generation configured",
		"images", cfg.Images, "questions", cfg.Questions, "feedback", cfg.Feedback, "media", f.Media)

	return app.Options{
		LLM: cfg,
		Media: app.Media{
			Store: f.Media,
			Dir:   dir,
			S3: storage.S3Config{
				Bucket:          f.S3Bucket,
				Prefix:          f.S3Prefix,
				Region:          f.S3Region,
				Endpoint:        f.S3Endpoint,
				AccessKeyID:     f.S3KeyID,
				SecretAccessKey: f.S3Secret,
				PublicURL:       f.S3PublicURL,
			},
		},
		PromptsFile: f.Prompts,
		Seed:        f.Seed,
	}, nil
}

func (f *GenerationFlags) mediaDir() (string, error) {
	if f.MediaDir != "" {
		return f.MediaDir, nil
	}

	return workdir.MediaDir()
}
