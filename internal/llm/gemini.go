package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// NewGeminiClient creates a Gemini API client shared by the Gemini generators.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*genai.Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	//nolint:exhaustruct // remaining client options use SDK defaults
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return client, nil
}

// GeminiImages generates images with an Imagen model.
type GeminiImages struct {
	client *genai.Client
	model  string
}

// NewGeminiImages wraps client for image generation with model.
func NewGeminiImages(client *genai.Client, model string) *GeminiImages {
	return &GeminiImages{client: client, model: model}
}

func (g *GeminiImages) GenerateImages(ctx context.Context, req ImageRequest) ([]Image, error) {
	//nolint:exhaustruct // only the fields the coach cares about
	config := &genai.GenerateImagesConfig{
		NumberOfImages: int32(req.count()), //nolint:gosec // small counts
		OutputMIMEType: req.mimeType(),
		AspectRatio:    req.AspectRatio,
	}

	resp, err := g.client.Models.GenerateImages(ctx, g.model, req.Prompt, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	images := make([]Image, 0, len(resp.GeneratedImages))
	for _, gi := range resp.GeneratedImages {
		if gi == nil || gi.Image == nil || len(gi.Image.ImageBytes) == 0 {
			continue
		}

		mime := gi.Image.MIMEType
		if mime == "" {
			mime = req.mimeType()
		}

		images = append(images, Image{Data: gi.Image.ImageBytes, MIMEType: mime})
	}

	return images, nil
}

func (g *GeminiImages) ModelID() string {
	return g.model
}

// GeminiText generates text with a Gemini model.
type GeminiText struct {
	client *genai.Client
	model  string
}

// NewGeminiText wraps client for text generation with model.
func NewGeminiText(client *genai.Client, model string) *GeminiText {
	return &GeminiText{client: client, model: model}
}

func (g *GeminiText) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	config := &genai.GenerateContentConfig{} //nolint:exhaustruct // defaults

	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens) //nolint:gosec // bounded by config
	}

	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", mapGeminiError(err)
	}

	return result.Text(), nil
}

func (g *GeminiText) ModelID() string {
	return g.model
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}

	return &ErrProviderUnavailable{Provider: ProviderGemini, Err: err}
}
