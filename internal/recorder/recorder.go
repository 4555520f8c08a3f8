// Package recorder manages a single microphone rehearsal session: idle,
// recording, then stopped with a playable take.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// State is the recorder lifecycle state.
type State int

const (
	Idle State = iota
	Recording
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Config struct {
	Capture   Capture
	Finalizer Finalizer

	// Meter is optional.
	Meter Meter

	// MaxBytes caps the buffered take. Chunks past the cap are dropped.
	// Zero means unlimited.
	MaxBytes int64
}

// Controller is the recorder state machine. It is safe for concurrent use.
type Controller struct {
	conf Config

	mu      sync.Mutex
	state   State
	stream  Stream
	take    *Take
	err     error
	started time.Time
	pumped  chan struct{}

	// guarded by bufMu, written by the pump goroutine
	bufMu    sync.Mutex
	chunks   [][]byte
	captured int64
}

// New creates an idle Controller.
func New(conf Config) (*Controller, error) {
	if conf.Capture == nil {
		return nil, errors.New("recorder requires a capture device")
	}

	if conf.Finalizer == nil {
		return nil, errors.New("recorder requires a finalizer")
	}

	return &Controller{conf: conf}, nil
}

// Start begins a new session. It is a no-op while already recording. A
// previous take is discarded. On failure the device is released, the error
// is kept for Err and the controller stays Idle.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.err = nil

	if c.state == Recording {
		return nil
	}

	c.discard()

	stream, err := c.conf.Capture.Acquire(ctx)
	if err != nil {
		return c.failStart(&CaptureError{Err: err})
	}

	dataC, err := stream.Start(ctx)
	if err != nil {
		stream.Release(ctx)
		return c.failStart(&CaptureError{Err: err})
	}

	c.stream = stream
	c.state = Recording
	c.started = time.Now()
	c.pumped = make(chan struct{})

	go c.pump(dataC, c.pumped)

	slog.Info("recording started")

	return nil
}

// Stop ends the session and finalizes the take. It is a no-op unless
// recording. The device is released exactly once.
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Recording {
		return nil
	}

	elapsed := time.Since(c.started)
	c.teardown(ctx)

	c.bufMu.Lock()
	chunks, captured := c.chunks, c.captured
	c.chunks = nil
	c.bufMu.Unlock()

	take, err := c.conf.Finalizer.Finalize(ctx, chunks)
	if err != nil {
		c.state = Idle
		c.err = fmt.Errorf("finalize take: %w", err)
		slog.Error("failed to finalize take", "error", err)

		return c.err
	}

	if take.Duration == 0 {
		take.Duration = elapsed
	}

	if take.Bytes == 0 {
		take.Bytes = captured
	}

	c.take = &take
	c.state = Stopped

	slog.Info("recording stopped", "duration", take.Duration, "bytes", take.Bytes)

	return nil
}

// Reset discards any take or buffered audio, releases the device if held and
// returns to Idle. Calling it repeatedly is harmless.
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Recording {
		c.teardown(ctx)
	}

	c.discard()
	c.err = nil
	c.state = Idle
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Take returns the finished take when Stopped.
func (c *Controller) Take() (Take, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.take == nil {
		return Take{}, false
	}

	return *c.take, true
}

// Err returns the last start or finalize failure, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.err
}

// Message is the user-facing text for Err, or "".
func (c *Controller) Message() string {
	err := c.Err()
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCaptureDenied):
		return DeniedMessage
	default:
		return "Could not save the recording. Please try again."
	}
}

// BytesCaptured is the size of the session so far, including dropped chunks.
func (c *Controller) BytesCaptured() int64 {
	c.bufMu.Lock()
	defer c.bufMu.Unlock()

	return c.captured
}

// Full reports whether the MaxBytes cap has been reached.
func (c *Controller) Full() bool {
	return c.conf.MaxBytes > 0 && c.BytesCaptured() >= c.conf.MaxBytes
}

// MaxBytes returns the configured cap.
func (c *Controller) MaxBytes() int64 {
	return c.conf.MaxBytes
}

// Elapsed is the time since recording started, or the take duration.
func (c *Controller) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.state == Recording:
		return time.Since(c.started)
	case c.take != nil:
		return c.take.Duration
	default:
		return 0
	}
}

func (c *Controller) pump(dataC <-chan []byte, done chan<- struct{}) {
	defer close(done)

	for chunk := range dataC {
		c.bufMu.Lock()
		if c.conf.MaxBytes == 0 || c.captured+int64(len(chunk)) <= c.conf.MaxBytes {
			c.chunks = append(c.chunks, chunk)
		}
		c.captured += int64(len(chunk))
		c.bufMu.Unlock()

		if c.conf.Meter != nil {
			c.conf.Meter.Write(chunk)
		}
	}
}

// teardown stops and releases the stream and waits for the pump to drain.
// Callers hold mu.
func (c *Controller) teardown(ctx context.Context) {
	if err := c.stream.Stop(ctx); err != nil {
		slog.Warn("failed to stop capture stream", "error", err)
	}

	c.stream.Release(ctx)
	c.stream = nil

	<-c.pumped
	c.pumped = nil
}

func (c *Controller) discard() {
	c.take = nil

	c.bufMu.Lock()
	c.chunks = nil
	c.captured = 0
	c.bufMu.Unlock()
}

func (c *Controller) failStart(err error) error {
	c.state = Idle
	c.err = err
	slog.Warn("recording could not start", "error", err)

	return err
}
