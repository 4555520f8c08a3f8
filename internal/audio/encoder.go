package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"

	mp3encoder "github.com/braheezy/shine-mp3/pkg/mp3"
)

// DefaultBufferThreshold is 4KB, 2048 mono samples or 128ms at 16kHz.
const DefaultBufferThreshold = 4096

// EncoderConfig configures MP3Writer.
type EncoderConfig struct {
	SampleRate int

	// Channels must be 1.
	Channels int

	// BufferThreshold is the number of PCM bytes accumulated before a batch
	// is encoded.
	BufferThreshold int
}

func (c EncoderConfig) Validate() error {
	if c.SampleRate <= 0 {
		return errors.New("sample rate must be positive")
	}

	if c.Channels != 1 {
		return errors.New("only mono (1 channel) is supported")
	}

	if c.BufferThreshold <= 0 {
		return errors.New("buffer threshold must be positive")
	}

	return nil
}

// WithDefaults fills zero fields.
func (c EncoderConfig) WithDefaults() EncoderConfig {
	if c.SampleRate == 0 {
		c.SampleRate = DefaultSampleRate
	}

	if c.Channels == 0 {
		c.Channels = DefaultChannels
	}

	if c.BufferThreshold == 0 {
		c.BufferThreshold = DefaultBufferThreshold
	}

	return c
}

// MP3Writer accepts S16LE mono PCM and writes MP3 frames to dst. Close
// flushes the remaining samples but does not close dst.
type MP3Writer struct {
	conf    EncoderConfig
	dst     io.Writer
	encoder *mp3encoder.Encoder
	pending []byte
}

// NewMP3Writer creates an MP3Writer.
func NewMP3Writer(conf EncoderConfig, dst io.Writer) (*MP3Writer, error) {
	if dst == nil {
		return nil, errors.New("output writer cannot be nil")
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid encoder config: %w", err)
	}

	return &MP3Writer{
		conf: conf,
		dst:  dst,
		// shine-mp3 mis-strides mono input, so encode as stereo with L=R.
		encoder: mp3encoder.NewEncoder(conf.SampleRate, 2),
		pending: make([]byte, 0, conf.BufferThreshold),
	}, nil
}

func (w *MP3Writer) Write(pcm []byte) (int, error) {
	w.pending = append(w.pending, pcm...)

	if len(w.pending) >= w.conf.BufferThreshold {
		if err := w.encode(); err != nil {
			return 0, err
		}
	}

	return len(pcm), nil
}

// Close encodes whatever is still buffered.
func (w *MP3Writer) Close() error {
	return w.encode()
}

func (w *MP3Writer) encode() error {
	// An odd trailing byte waits for the next write.
	n := len(w.pending) / bytesPerSample
	if n == 0 {
		return nil
	}

	stereo := make([]int16, n*2)
	for i := range n {
		s := int16(binary.LittleEndian.Uint16(w.pending[i*bytesPerSample:])) //nolint:gosec // S16LE reinterpretation
		stereo[i*2] = s
		stereo[i*2+1] = s
	}

	slog.Debug("encoding MP3 batch", "samples", n)

	if err := w.encoder.Write(w.dst, stereo); err != nil {
		return fmt.Errorf("failed to encode audio to MP3: %w", err)
	}

	w.pending = append(w.pending[:0], w.pending[n*bytesPerSample:]...)

	return nil
}
