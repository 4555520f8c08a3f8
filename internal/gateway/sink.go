package gateway

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/alkime/coach/internal/llm"
	"github.com/alkime/coach/internal/storage"
	"github.com/google/uuid"
)

// ImageSink turns a generated image into the opaque reference a Scenario carries.
type ImageSink interface {
	Put(ctx context.Context, img llm.Image) (string, error)
}

// DataURLSink inlines the image as a data: URL.
type DataURLSink struct{}

func (DataURLSink) Put(_ context.Context, img llm.Image) (string, error) {
	return "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data), nil
}

// StoreSink writes each image to a FileStore under scenarios/.
type StoreSink struct {
	Store storage.FileStore

	// Locate overrides Store.Locate, e.g. to return a URL the HTTP server serves.
	Locate func(path string) string
}

func (s StoreSink) Put(ctx context.Context, img llm.Image) (string, error) {
	path := fmt.Sprintf("scenarios/%s%s", uuid.NewString(), extension(img.MIMEType))
	if err := storage.Put(ctx, s.Store, path, img.Data); err != nil {
		return "", fmt.Errorf("store scenario image: %w", err)
	}

	if s.Locate != nil {
		return s.Locate(path), nil
	}

	return s.Store.Locate(path), nil
}

func extension(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
