package recorder

import (
	"context"
	"errors"
	"time"
)

// Capture requests access to a microphone. Acquire may fail when the user
// or the OS denies access or no device is present.
type Capture interface {
	Acquire(ctx context.Context) (Stream, error)
}

// Stream is an acquired capture device.
//
// Start begins delivery of PCM chunks on the returned channel. Stop halts
// delivery. Release frees the device and closes the channel if it is still
// open; it must be safe to call after Stop.
type Stream interface {
	Start(ctx context.Context) (<-chan []byte, error)
	Stop(ctx context.Context) error
	Release(ctx context.Context)
}

// Finalizer turns the captured chunks into a single playable take.
type Finalizer interface {
	Finalize(ctx context.Context, chunks [][]byte) (Take, error)
}

// Meter observes every captured chunk, e.g. to draw a waveform.
type Meter interface {
	Write(chunk []byte)
}

// Take is a finished rehearsal recording. It stays on this machine.
type Take struct {
	// Ref is an opaque reference a local player can open.
	Ref      string
	Duration time.Duration
	Bytes    int64
}

// ErrCaptureDenied is wrapped by CaptureError when the device could not be
// acquired or started.
var ErrCaptureDenied = errors.New("microphone access denied")

// DeniedMessage is shown to the user when capture cannot start.
const DeniedMessage = "Microphone access was denied. Please enable it in your system settings."

// CaptureError reports a failed attempt to start recording.
type CaptureError struct {
	Err error
}

func (e *CaptureError) Error() string {
	return "capture: " + e.Err.Error()
}

func (e *CaptureError) Unwrap() []error { return []error{ErrCaptureDenied, e.Err} }
