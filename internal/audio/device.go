package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alkime/coach/pkg/channels"
	"github.com/alkime/coach/pkg/collections"
	"github.com/gen2brain/malgo"
)

// Device is a capture device backed by miniaudio.
type Device interface {
	// CaptureInto initializes the device so that, once started, sampled
	// bytes are delivered into dataC.
	CaptureInto(ctx context.Context, dataC chan []byte) error

	Start(ctx context.Context) error
	// Stop is a no-op if the device has been deallocated.
	Stop(ctx context.Context) error
	IsStarted() bool

	// Dealloc frees the device. Safe to call more than once.
	Dealloc(ctx context.Context)
}

var errNotAllocated = errors.New("device not allocated; call CaptureInto first")

type device struct {
	conf DeviceConfig

	mgCtx    *malgo.AllocatedContext
	mgDevice *malgo.Device
}

// NewDevice returns an unallocated malgo capture device.
func NewDevice(conf DeviceConfig) Device {
	return &device{conf: conf}
}

func (d *device) CaptureInto(_ context.Context, dataC chan []byte) error {
	if dataC == nil {
		return errors.New("data channel is nil")
	}

	mgCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	devCnf := malgo.DefaultDeviceConfig(malgo.Capture)
	devCnf.Capture.Format = d.conf.Format
	devCnf.Capture.Channels = uint32(d.conf.Channels) //nolint:gosec // small
	devCnf.SampleRate = uint32(d.conf.SampleRate)     //nolint:gosec // small

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, samples []byte, _ uint32) {
			// miniaudio reuses its buffer after the callback returns.
			packet := make([]byte, len(samples))
			copy(packet, samples)

			if err := channels.SendNonBlock(dataC, packet); err != nil {
				slog.Debug("dropped capture packet", "bytes", len(packet), "error", err)
			}
		},
	}

	mgDevice, err := malgo.InitDevice(mgCtx.Context, devCnf, callbacks)
	if err != nil {
		uninitializeContext(mgCtx)
		return fmt.Errorf("failed to initialize malgo device: %w", err)
	}

	d.mgCtx, d.mgDevice = mgCtx, mgDevice

	return nil
}

func (d *device) Start(_ context.Context) error {
	if d.mgDevice == nil {
		return errNotAllocated
	}

	if d.mgDevice.IsStarted() {
		return nil
	}

	if err := d.mgDevice.Start(); err != nil {
		return fmt.Errorf("failed to start malgo device: %w", err)
	}

	return nil
}

func (d *device) Stop(_ context.Context) error {
	if d.mgDevice == nil || !d.mgDevice.IsStarted() {
		return nil
	}

	if err := d.mgDevice.Stop(); err != nil {
		return fmt.Errorf("failed to stop malgo device: %w", err)
	}

	return nil
}

func (d *device) IsStarted() bool {
	return d.mgDevice != nil && d.mgDevice.IsStarted()
}

func (d *device) Dealloc(_ context.Context) {
	if d.mgDevice == nil {
		return
	}

	d.mgDevice.Uninit()
	uninitializeContext(d.mgCtx)
	d.mgDevice = nil
	d.mgCtx = nil
}

// Info describes one capture device.
type Info struct {
	Name      string
	IsDefault bool
	Formats   []string
}

// EnumerateDevices lists the available capture devices.
func EnumerateDevices() ([]Info, error) {
	mgCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	defer uninitializeContext(mgCtx)

	captureDevices, err := mgCtx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("failed to get capture devices: %w", err)
	}

	return collections.Apply(captureDevices, toInfo), nil
}

func toInfo(mdi malgo.DeviceInfo) Info {
	formats := make([]string, 0, mdi.FormatCount)
	for i, f := range mdi.Formats {
		if i >= int(mdi.FormatCount) {
			break
		}

		formats = append(formats, fmt.Sprintf("%d-byte x%d @ %dHz",
			malgo.SampleSizeInBytes(f.Format), f.Channels, f.SampleRate))
	}

	return Info{
		Name:      mdi.Name(),
		IsDefault: mdi.IsDefault != 0,
		Formats:   formats,
	}
}

func uninitializeContext(mgCtx *malgo.AllocatedContext) {
	if mgCtx == nil {
		return
	}

	if err := mgCtx.Uninit(); err != nil {
		slog.Error("failed to uninitialize malgo context", "error", err)
	}

	mgCtx.Free()
}
