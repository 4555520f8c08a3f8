// Package config loads the HTTP server's settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alkime/coach/internal/app"
	"github.com/alkime/coach/internal/llm"
	"github.com/alkime/coach/internal/storage"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvProduction represents the production environment.
	EnvProduction = "production"

	// MediaRoute is where the server exposes locally stored media.
	MediaRoute = "/media"
)

// Config holds all server configuration.
type Config struct {
	// Server settings
	Env            string   `envconfig:"ENV" default:"development"`
	Port           string   `envconfig:"PORT" default:"8080"`
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES" default:"10.0.0.0/8,172.16.0.0/12"`

	// Security settings
	HSTSMaxAge int    `envconfig:"HSTS_MAX_AGE" default:"31536000"`
	CSPMode    string `envconfig:"CSP_MODE" default:"relaxed"`

	// Logging settings
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Generation settings
	ImageProvider    string `envconfig:"IMAGE_PROVIDER" default:"gemini"`
	QuestionProvider string `envconfig:"QUESTION_PROVIDER" default:"gemini"`
	FeedbackProvider string `envconfig:"FEEDBACK_PROVIDER" default:"gemini"`
	ImageModel       string `envconfig:"IMAGE_MODEL"`
	QuestionModel    string `envconfig:"QUESTION_MODEL"`
	FeedbackModel    string `envconfig:"FEEDBACK_MODEL"`
	GeminiAPIKey     string `envconfig:"GEMINI_API_KEY"`
	OpenAIAPIKey     string `envconfig:"OPENAI_API_KEY"`
	AnthropicAPIKey  string `envconfig:"ANTHROPIC_API_KEY"`
	PromptsFile      string `envconfig:"PROMPTS_FILE"`

	// Media settings
	MediaStore        string `envconfig:"MEDIA_STORE" default:"local"`
	MediaDir          string `envconfig:"MEDIA_DIR" default:"./media"`
	S3Bucket          string `envconfig:"S3_BUCKET"`
	S3Prefix          string `envconfig:"S3_PREFIX" default:"coach"`
	S3Region          string `envconfig:"AWS_REGION" default:"auto"`
	S3Endpoint        string `envconfig:"AWS_ENDPOINT_URL_S3"`
	S3AccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	S3PublicURL       string `envconfig:"S3_PUBLIC_URL"`
}

// LoadConfig loads configuration from .env file and environment variables.
func LoadConfig() (*Config, error) {
	// .env is optional; production sets real environment variables
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Error loading .env file", "error", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	return &cfg, nil
}

// LLM maps the generation settings onto an llm.Config.
func (c *Config) LLM() llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Images = c.ImageProvider
	cfg.Questions = c.QuestionProvider
	cfg.Feedback = c.FeedbackProvider
	cfg.Gemini.APIKey = c.GeminiAPIKey
	cfg.OpenAI.APIKey = c.OpenAIAPIKey
	cfg.Anthropic.APIKey = c.AnthropicAPIKey
	cfg.OverrideModels(c.ImageModel, c.QuestionModel, c.FeedbackModel)

	return cfg
}

// Media maps the media settings. Local media is referenced by URL so
// browsers can load it from MediaRoute.
func (c *Config) Media() app.Media {
	return app.Media{
		Store:     c.MediaStore,
		Dir:       c.MediaDir,
		URLPrefix: MediaRoute,
		S3: storage.S3Config{
			Bucket:          c.S3Bucket,
			Prefix:          c.S3Prefix,
			Region:          c.S3Region,
			Endpoint:        c.S3Endpoint,
			AccessKeyID:     c.S3AccessKeyID,
			SecretAccessKey: c.S3SecretAccessKey,
			PublicURL:       c.S3PublicURL,
		},
	}
}

// Options is everything app.NewGateway needs.
func (c *Config) Options() app.Options {
	return app.Options{
		LLM:         c.LLM(),
		Media:       c.Media(),
		PromptsFile: c.PromptsFile,
	}
}

// BuildCSP constructs the Content Security Policy for mode. Images may come
// from data URLs and, when set, the public media host.
func BuildCSP(mode, mediaHost string) string {
	imgSrc := "img-src 'self' data:"
	if mediaHost != "" {
		imgSrc += " " + strings.TrimSuffix(mediaHost, "/")
	}

	if mode == "strict" {
		return "default-src 'self'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"script-src 'self'; " +
			imgSrc + "; " +
			"connect-src 'self'; " +
			"object-src 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"
	}

	return "default-src 'self'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"script-src 'self' 'unsafe-inline'; " +
		imgSrc
}
