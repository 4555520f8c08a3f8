package gateway_test

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alkime/coach/internal/gateway"
	"github.com/alkime/coach/internal/llm"
	"github.com/alkime/coach/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImages struct {
	images  []llm.Image
	err     error
	prompts []string
	reqs    []llm.ImageRequest
}

func (f *fakeImages) GenerateImages(_ context.Context, req llm.ImageRequest) ([]llm.Image, error) {
	f.prompts = append(f.prompts, req.Prompt)
	f.reqs = append(f.reqs, req)

	return f.images, f.err
}

func (f *fakeImages) ModelID() string { return "fake-image" }

type fakeText struct {
	text string
	err  error
	reqs []llm.TextRequest
}

func (f *fakeText) GenerateText(_ context.Context, req llm.TextRequest) (string, error) {
	f.reqs = append(f.reqs, req)
	return f.text, f.err
}

func (f *fakeText) ModelID() string { return "fake-text" }

// sequencePicker returns the queued indices in order.
type sequencePicker struct{ next []int }

func (s *sequencePicker) Pick(n int) int {
	i := s.next[0]
	s.next = s.next[1:]

	return i % n
}

func jpeg() []llm.Image {
	return []llm.Image{{Data: []byte{0xff, 0xd8, 0xff}, MIMEType: "image/jpeg"}}
}

func newGateway(t *testing.T, images *fakeImages, questions, feedback *fakeText, picker gateway.Picker) *gateway.Gateway {
	t.Helper()

	g, err := gateway.New(gateway.Config{
		Images:    images,
		Questions: questions,
		Feedback:  feedback,
		Picker:    picker,
	})
	require.NoError(t, err)

	return g
}

func TestGenerateScenario(t *testing.T) {
	images := &fakeImages{images: jpeg()}
	questions := &fakeText{text: "  How does Ozempic compare on CV outcomes?\n"}
	g := newGateway(t, images, questions, &fakeText{}, gateway.FixedPicker(0))

	sc, err := g.GenerateScenario(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "How does Ozempic compare on CV outcomes?", sc.Question)
	assert.Equal(t, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8, 0xff}), sc.ImageRef)

	require.Len(t, images.reqs, 1)
	assert.Equal(t, 1, images.reqs[0].Count)
	assert.Equal(t, "image/jpeg", images.reqs[0].MIMEType)
	assert.Equal(t, "16:9", images.reqs[0].AspectRatio)
	assert.Empty(t, questions.reqs[0].System)
}

func TestGenerateScenario_FixedPickerIsDeterministic(t *testing.T) {
	g := newGateway(t, &fakeImages{images: jpeg()}, &fakeText{text: "Q1"}, &fakeText{}, gateway.FixedPicker(2))

	first, err := g.GenerateScenario(context.Background())
	require.NoError(t, err)

	second, err := g.GenerateScenario(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateScenario_PromptsChosenIndependently(t *testing.T) {
	pack := gateway.DefaultPack()
	images := &fakeImages{images: jpeg()}
	questions := &fakeText{text: "Q"}
	g := newGateway(t, images, questions, &fakeText{}, &sequencePicker{next: []int{0, 3}})

	_, err := g.GenerateScenario(context.Background())
	require.NoError(t, err)

	assert.Equal(t, pack.ImagePrompts[0], images.prompts[0])
	assert.Equal(t, pack.QuestionPrompts[3], questions.reqs[0].Prompt)
}

func TestGenerateScenario_Failures(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		images    *fakeImages
		questions *fakeText
		wantErr   error
	}{
		{"image call fails", &fakeImages{err: boom}, &fakeText{text: "Q"}, boom},
		{"zero images", &fakeImages{}, &fakeText{text: "Q"}, llm.ErrEmptyResponse},
		{"empty image payload", &fakeImages{images: []llm.Image{{MIMEType: "image/jpeg"}}}, &fakeText{text: "Q"}, llm.ErrEmptyResponse},
		{"question call fails", &fakeImages{images: jpeg()}, &fakeText{err: boom}, boom},
		{"blank question", &fakeImages{images: jpeg()}, &fakeText{text: " \n\t"}, llm.ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGateway(t, tt.images, tt.questions, &fakeText{}, gateway.FixedPicker(0))

			sc, err := g.GenerateScenario(context.Background())

			var genErr *gateway.GenerationError
			require.ErrorAs(t, err, &genErr)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, gateway.Scenario{}, sc)
		})
	}
}

func TestGenerateScenario_ImageFailureSkipsQuestion(t *testing.T) {
	questions := &fakeText{text: "Q"}
	g := newGateway(t, &fakeImages{err: errors.New("down")}, questions, &fakeText{}, nil)

	_, err := g.GenerateScenario(context.Background())

	require.Error(t, err)
	assert.Empty(t, questions.reqs)
}

func TestGetFeedback(t *testing.T) {
	const raw = "  **Accuracy**: solid.\n\n* Mention SUSTAIN-6.\n"
	feedback := &fakeText{text: raw}
	g := newGateway(t, &fakeImages{}, &fakeText{}, feedback, nil)

	question := `Is it "safe" long term?`
	answer := "We have strong CV outcomes data"

	got, err := g.GetFeedback(context.Background(), question, answer)

	require.NoError(t, err)
	assert.Equal(t, raw, got)

	require.Len(t, feedback.reqs, 1)
	req := feedback.reqs[0]
	assert.Contains(t, req.Prompt, `The doctor's question was: "Is it "safe" long term?"`)
	assert.Contains(t, req.Prompt, `The sales rep's answer was: "We have strong CV outcomes data"`)
	assert.Contains(t, req.Prompt, "**Accuracy & Key Messages**")
	assert.Contains(t, req.Prompt, "**Addressing Concerns**")
	assert.Contains(t, req.Prompt, "**Clarity & Confidence**")
	assert.True(t, strings.HasPrefix(req.System, "You are an expert sales training coach"))
}

func TestGetFeedback_Failures(t *testing.T) {
	g := newGateway(t, &fakeImages{}, &fakeText{}, &fakeText{err: errors.New("down")}, nil)
	_, err := g.GetFeedback(context.Background(), "Q", "A")

	var genErr *gateway.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "get feedback", genErr.Op)

	g = newGateway(t, &fakeImages{}, &fakeText{}, &fakeText{text: "   "}, nil)
	_, err = g.GetFeedback(context.Background(), "Q", "A")
	require.ErrorIs(t, err, llm.ErrEmptyResponse)
}

func TestNew_Validation(t *testing.T) {
	_, err := gateway.New(gateway.Config{})
	require.Error(t, err)

	_, err = gateway.New(gateway.Config{
		Images:    &fakeImages{},
		Questions: &fakeText{},
		Feedback:  &fakeText{},
		Pack:      &gateway.PromptPack{},
	})
	require.Error(t, err)
}

func TestStoreSink(t *testing.T) {
	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	g, err := gateway.New(gateway.Config{
		Images:    &fakeImages{images: []llm.Image{{Data: []byte("png"), MIMEType: "image/png"}}},
		Questions: &fakeText{text: "Q"},
		Feedback:  &fakeText{},
		Sink:      gateway.StoreSink{Store: store},
	})
	require.NoError(t, err)

	sc, err := g.GenerateScenario(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ".png", filepath.Ext(sc.ImageRef))
	data, err := os.ReadFile(sc.ImageRef)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
}

func TestStoreSink_LocateOverride(t *testing.T) {
	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	sink := gateway.StoreSink{Store: store, Locate: func(p string) string { return "/media/" + p }}
	ref, err := sink.Put(context.Background(), llm.Image{Data: []byte("x"), MIMEType: "image/jpeg"})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/media/scenarios/"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))
}

func TestPromptPack(t *testing.T) {
	pack := gateway.DefaultPack()
	assert.Len(t, pack.ImagePrompts, 4)
	assert.Len(t, pack.QuestionPrompts, 4)
	assert.NotEmpty(t, pack.Feedback.System)

	_, err := gateway.ParsePack([]byte("image_prompts: [a]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question_prompts is empty")

	path := filepath.Join(t.TempDir(), "pack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"image_prompts: [img]\nquestion_prompts: [q]\nfeedback:\n  system: s\n  rubric: r\n"), 0o600))

	loaded, err := gateway.LoadPack(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"img"}, loaded.ImagePrompts)
	assert.Equal(t, "r", loaded.Feedback.Rubric)

	_, err = gateway.LoadPack(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestPickers(t *testing.T) {
	assert.Equal(t, 1, gateway.FixedPicker(5).Pick(4))
	assert.Equal(t, 3, gateway.FixedPicker(-1).Pick(4))

	a, b := gateway.NewSeededPicker(42), gateway.NewSeededPicker(42)
	for range 20 {
		assert.Equal(t, a.Pick(4), b.Pick(4))
	}

	for range 100 {
		i := gateway.RandomPicker{}.Pick(4)
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, 4)
	}
}
