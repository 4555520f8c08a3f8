package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/alkime/coach/internal/recorder"
)

// Microphone acquires the default capture device for the recorder.
type Microphone struct {
	conf      DeviceConfig
	newDevice func(DeviceConfig) Device
}

// NewMicrophone returns a Microphone backed by malgo.
func NewMicrophone(conf DeviceConfig) *Microphone {
	return &Microphone{conf: conf, newDevice: NewDevice}
}

func (m *Microphone) Acquire(ctx context.Context) (recorder.Stream, error) {
	dev := m.newDevice(m.conf)
	dataC := make(chan []byte, m.conf.Buffer)

	if err := dev.CaptureInto(ctx, dataC); err != nil {
		dev.Dealloc(ctx)
		return nil, fmt.Errorf("acquire microphone: %w", err)
	}

	return &micStream{dev: dev, dataC: dataC}, nil
}

type micStream struct {
	dev     Device
	dataC   chan []byte
	release sync.Once
}

func (s *micStream) Start(ctx context.Context) (<-chan []byte, error) {
	if err := s.dev.Start(ctx); err != nil {
		return nil, fmt.Errorf("start microphone: %w", err)
	}

	return s.dataC, nil
}

func (s *micStream) Stop(ctx context.Context) error {
	return s.dev.Stop(ctx)
}

// Release stops and frees the device, then closes the packet channel.
func (s *micStream) Release(ctx context.Context) {
	s.release.Do(func() {
		_ = s.dev.Stop(ctx)
		s.dev.Dealloc(ctx)
		close(s.dataC)
	})
}
