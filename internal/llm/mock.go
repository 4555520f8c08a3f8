package llm

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
)

// Mock is an offline generator for demos and tests. It serves both images
// and text with deterministic content.
type Mock struct {
	// Err, when set, is returned from every call.
	Err error
}

func (m *Mock) GenerateImages(_ context.Context, req ImageRequest) ([]Image, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	data, err := placeholderPNG(len(req.Prompt))
	if err != nil {
		return nil, err
	}

	images := make([]Image, req.count())
	for i := range images {
		images[i] = Image{Data: data, MIMEType: "image/png"}
	}

	return images, nil
}

func (m *Mock) GenerateText(_ context.Context, req TextRequest) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}

	// Feedback prompts always carry a rubric; question prompts never do.
	if strings.Contains(req.Prompt, "Accuracy & Key Messages") {
		return mockFeedback, nil
	}

	return mockQuestion, nil
}

func (m *Mock) ModelID() string {
	return ProviderMock
}

const mockQuestion = "I've heard Ozempic causes a lot of nausea. How would you " +
	"help my patients who are worried about stomach issues?"

const mockFeedback = `**Accuracy & Key Messages:** You covered the core efficacy message.

**Addressing Concerns:** You acknowledged the doctor's worry directly.

**Clarity & Confidence:** Clear and concise.

* Mention the dose-escalation schedule.
* Offer patient support materials.`

// placeholderPNG draws a small 16:9 gradient tinted by seed.
func placeholderPNG(seed int) ([]byte, error) {
	const w, h = 64, 36

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{
				R: uint8((x * 4) % 256),     //nolint:gosec // bounded
				G: uint8((y * 7) % 256),     //nolint:gosec // bounded
				B: uint8((seed * 31) % 256), //nolint:gosec // bounded
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode placeholder: %w", err)
	}

	return buf.Bytes(), nil
}
