package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// NewOpenAIClient creates an OpenAI client shared by the OpenAI generators.
func NewOpenAIClient(cfg OpenAIConfig) (*openai.Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)

	return &client, nil
}

// OpenAIImages generates images with a DALL-E style model.
type OpenAIImages struct {
	client *openai.Client
	model  string
}

// NewOpenAIImages wraps client for image generation with model.
func NewOpenAIImages(client *openai.Client, model string) *OpenAIImages {
	return &OpenAIImages{client: client, model: model}
}

func (o *OpenAIImages) GenerateImages(ctx context.Context, req ImageRequest) ([]Image, error) {
	//nolint:exhaustruct // optional params left at defaults
	params := openai.ImageGenerateParams{
		Prompt:         req.Prompt,
		Model:          openai.ImageModel(o.model),
		N:              openai.Int(int64(req.count())),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
		Size:           openAISize(req.AspectRatio),
	}

	resp, err := o.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, mapOpenAIError(err)
	}

	images := make([]Image, 0, len(resp.Data))
	for _, d := range resp.Data {
		if d.B64JSON == "" {
			continue
		}

		data, err := base64.StdEncoding.DecodeString(d.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("decode image payload: %w", err)
		}

		// DALL-E only returns PNG.
		images = append(images, Image{Data: data, MIMEType: "image/png"})
	}

	return images, nil
}

func (o *OpenAIImages) ModelID() string {
	return o.model
}

// OpenAIText generates text with a chat completion model.
type OpenAIText struct {
	client *openai.Client
	model  string
}

// NewOpenAIText wraps client for text generation with model.
func NewOpenAIText(client *openai.Client, model string) *OpenAIText {
	return &OpenAIText{client: client, model: model}
}

func (o *OpenAIText) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}

	messages = append(messages, openai.UserMessage(req.Prompt))

	//nolint:exhaustruct // optional params left at defaults
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", mapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAIText) ModelID() string {
	return o.model
}

// openAISize maps an aspect ratio onto the nearest size DALL-E 3 accepts.
func openAISize(aspect string) openai.ImageGenerateParamsSize {
	parts := strings.SplitN(aspect, ":", 2)
	if len(parts) != 2 {
		return openai.ImageGenerateParamsSize1024x1024
	}

	var w, h int
	if _, err := fmt.Sscanf(parts[0]+" "+parts[1], "%d %d", &w, &h); err != nil || w == 0 || h == 0 {
		return openai.ImageGenerateParamsSize1024x1024
	}

	switch {
	case w > h:
		return openai.ImageGenerateParamsSize1792x1024
	case h > w:
		return openai.ImageGenerateParamsSize1024x1792
	default:
		return openai.ImageGenerateParamsSize1024x1024
	}
}

func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}

	return &ErrProviderUnavailable{Provider: ProviderOpenAI, Err: err}
}
