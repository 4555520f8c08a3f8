// Package llm adapts the generative-AI services the coach talks to. Each
// provider exposes image generation, text generation, or both, behind the
// two small interfaces defined here.
package llm

import "context"

// ImageGenerator produces images from a text prompt.
type ImageGenerator interface {
	// GenerateImages returns zero or more images. Callers decide whether an
	// empty result is acceptable.
	GenerateImages(ctx context.Context, req ImageRequest) ([]Image, error)

	// ModelID returns the model identifier this generator is configured to use.
	ModelID() string
}

// TextGenerator produces text from a prompt and an optional system instruction.
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
	ModelID() string
}

// ImageRequest describes a single image-generation call.
type ImageRequest struct {
	Prompt string

	// Count is the number of images to request. Zero means one.
	Count int

	// MIMEType is the requested output encoding, e.g. "image/jpeg".
	MIMEType string

	// AspectRatio such as "16:9". Providers map it to their closest size.
	AspectRatio string
}

// Image is one generated image payload.
type Image struct {
	Data     []byte
	MIMEType string
}

// TextRequest describes a single text-generation call.
type TextRequest struct {
	// System frames the model's persona. Optional.
	System string

	Prompt string

	// MaxTokens caps the response length. Zero uses the provider default.
	MaxTokens int
}

func (r ImageRequest) count() int {
	if r.Count <= 0 {
		return 1
	}

	return r.Count
}

func (r ImageRequest) mimeType() string {
	if r.MIMEType == "" {
		return "image/jpeg"
	}

	return r.MIMEType
}
