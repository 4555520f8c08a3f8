package audio

import (
	"github.com/gen2brain/malgo"
)

const (
	// DefaultSampleRate is plenty for speech and keeps takes small.
	DefaultSampleRate = 16000
	// DefaultChannels is mono.
	DefaultChannels = 1
	// bytesPerSample for S16LE.
	bytesPerSample = 2
)

// DeviceConfig describes the capture format. Only S16LE is supported by the
// encoder and the level meter.
type DeviceConfig struct {
	Format     malgo.FormatType
	Channels   int
	SampleRate int

	// Buffer is the capacity of the packet channel between the audio
	// callback and the recorder.
	Buffer int
}

// DefaultDeviceConfig is 16kHz mono S16LE.
func DefaultDeviceConfig() DeviceConfig {
	return DeviceConfig{
		Format:     malgo.FormatS16,
		Channels:   DefaultChannels,
		SampleRate: DefaultSampleRate,
		Buffer:     64,
	}
}

// BytesPerSecond is the raw PCM data rate.
func (c DeviceConfig) BytesPerSecond() int {
	return c.SampleRate * c.Channels * bytesPerSample
}
