package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alkime/coach/internal/recorder"
	"github.com/alkime/coach/internal/storage"
	"github.com/google/uuid"
)

// MP3Finalizer encodes a take to MP3 and stores it under takes/.
type MP3Finalizer struct {
	Store   storage.FileStore
	Device  DeviceConfig
	Encoder EncoderConfig
}

func (f MP3Finalizer) Finalize(ctx context.Context, chunks [][]byte) (recorder.Take, error) {
	var total int64
	for _, c := range chunks {
		total += int64(len(c))
	}

	if total == 0 {
		return recorder.Take{}, errors.New("nothing was recorded")
	}

	path := fmt.Sprintf("takes/%s.mp3", uuid.NewString())

	out, err := f.Store.Write(ctx, path)
	if err != nil {
		return recorder.Take{}, fmt.Errorf("open take: %w", err)
	}

	if err := f.encode(out, chunks); err != nil {
		_ = out.Close()
		_ = f.Store.Delete(ctx, path)

		return recorder.Take{}, err
	}

	if err := out.Close(); err != nil {
		return recorder.Take{}, fmt.Errorf("close take: %w", err)
	}

	var duration time.Duration
	if bps := f.Device.BytesPerSecond(); bps > 0 {
		duration = time.Duration(total) * time.Second / time.Duration(bps)
	}

	return recorder.Take{Ref: f.Store.Locate(path), Duration: duration, Bytes: total}, nil
}

func (f MP3Finalizer) encode(out io.Writer, chunks [][]byte) error {
	conf := f.Encoder
	if conf.SampleRate == 0 {
		conf.SampleRate = f.Device.SampleRate
	}

	w, err := NewMP3Writer(conf.WithDefaults(), out)
	if err != nil {
		return err
	}

	for _, c := range chunks {
		if _, err := w.Write(c); err != nil {
			return err
		}
	}

	return w.Close()
}
