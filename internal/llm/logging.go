package llm

import (
	"context"
	"log/slog"
	"time"
)

// LoggedImages wraps an ImageGenerator and logs each call.
type LoggedImages struct {
	ImageGenerator
	Concern string
}

func (l LoggedImages) GenerateImages(ctx context.Context, req ImageRequest) ([]Image, error) {
	start := time.Now()
	images, err := l.ImageGenerator.GenerateImages(ctx, req)

	attrs := []any{
		"concern", l.Concern,
		"model", l.ModelID(),
		"duration", time.Since(start),
		"count", len(images),
	}
	if err != nil {
		slog.Error("image generation failed", append(attrs, "error", err)...)
		return nil, err
	}

	slog.Info("image generated", attrs...)

	return images, nil
}

// LoggedText wraps a TextGenerator and logs each call.
type LoggedText struct {
	TextGenerator
	Concern string
}

func (l LoggedText) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	start := time.Now()
	text, err := l.TextGenerator.GenerateText(ctx, req)

	attrs := []any{
		"concern", l.Concern,
		"model", l.ModelID(),
		"duration", time.Since(start),
		"chars", len(text),
	}
	if err != nil {
		slog.Error("text generation failed", append(attrs, "error", err)...)
		return "", err
	}

	slog.Info("text generated", attrs...)

	return text, nil
}
