// Package app assembles the gateway from provider and media settings. Both
// the coach CLI and the HTTP server build theirs here.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alkime/coach/internal/gateway"
	"github.com/alkime/coach/internal/llm"
	"github.com/alkime/coach/internal/storage"
)

// Media store kinds.
const (
	MediaInline = "inline"
	MediaLocal  = "local"
	MediaS3     = "s3"
)

// Media says where scenario images and rehearsal takes go.
type Media struct {
	Store string
	Dir   string

	// URLPrefix makes local image references URLs under this prefix instead
	// of file paths, e.g. "/media" when the HTTP server serves Dir.
	URLPrefix string

	S3 storage.S3Config
}

type Options struct {
	LLM   llm.Config
	Media Media

	// PromptsFile replaces the embedded prompt pack.
	PromptsFile string
	// Seed makes prompt selection reproducible. Zero picks uniformly at random.
	Seed uint64
}

// OpenStore opens the configured media store. The inline kind has none.
func OpenStore(m Media) (storage.FileStore, error) {
	switch m.Store {
	case MediaInline, "":
		return nil, nil //nolint:nilnil // inline media has no store
	case MediaLocal:
		local, err := storage.NewLocal(m.Dir)
		if err != nil {
			return nil, err
		}

		return local, nil
	case MediaS3:
		bucket, err := storage.NewS3FromConfig(m.S3)
		if err != nil {
			return nil, err
		}

		return bucket, nil
	default:
		return nil, fmt.Errorf("unknown media store %q: must be inline, local or s3", m.Store)
	}
}

// Sink picks the image sink for a store opened with OpenStore.
func Sink(m Media, store storage.FileStore) gateway.ImageSink {
	if store == nil {
		return gateway.DataURLSink{}
	}

	sink := gateway.StoreSink{Store: store}
	if m.Store == MediaLocal && m.URLPrefix != "" {
		prefix := strings.TrimSuffix(m.URLPrefix, "/")
		sink.Locate = func(path string) string { return prefix + "/" + path }
	}

	return sink
}

// NewGateway builds generators, the media sink and the prompt pack. The
// returned store is nil for inline media.
func NewGateway(ctx context.Context, opts Options) (*gateway.Gateway, storage.FileStore, error) {
	gens, err := llm.Build(ctx, opts.LLM)
	if err != nil {
		return nil, nil, err
	}

	store, err := OpenStore(opts.Media)
	if err != nil {
		return nil, nil, err
	}

	cfg := gateway.Config{
		Images:    gens.Images,
		Questions: gens.Questions,
		Feedback:  gens.Feedback,
		Sink:      Sink(opts.Media, store),
	}

	if opts.PromptsFile != "" {
		pack, err := gateway.LoadPack(opts.PromptsFile)
		if err != nil {
			return nil, nil, err
		}

		cfg.Pack = &pack
	}

	if opts.Seed != 0 {
		cfg.Picker = gateway.NewSeededPicker(opts.Seed)
	}

	gw, err := gateway.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	slog.Debug("gateway ready",
		"images", opts.LLM.Images,
		"questions", opts.LLM.Questions,
		"feedback", opts.LLM.Feedback,
		"media", opts.Media.Store,
	)

	return gw, store, nil
}
