package audio

import (
	"encoding/binary"
	"sync"
)

// LevelMeter keeps the most recent samples of a capture for the waveform.
// It is written by the recorder's pump and read by the UI.
type LevelMeter struct {
	mu      sync.RWMutex
	samples []int16
	head    int
	count   int
	window  int
}

// NewLevelMeter keeps capacity samples and reports the last window of them
// from Read.
func NewLevelMeter(capacity, window int) *LevelMeter {
	return &LevelMeter{samples: make([]int16, capacity), window: window}
}

// Write appends S16LE samples, overwriting the oldest when full.
func (m *LevelMeter) Write(chunk []byte) {
	m.WriteSamples(BytesToInt16(chunk))
}

func (m *LevelMeter) WriteSamples(samples []int16) {
	if len(samples) == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	capacity := len(m.samples)
	for _, s := range samples {
		m.samples[m.head] = s
		m.head = (m.head + 1) % capacity

		if m.count < capacity {
			m.count++
		}
	}
}

// Read returns the last window samples, oldest first.
func (m *LevelMeter) Read() []int16 {
	return m.Last(m.window)
}

// Last returns up to n of the most recent samples, oldest first.
func (m *LevelMeter) Last(n int) []int16 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.count == 0 || n <= 0 {
		return nil
	}

	n = min(n, m.count)
	capacity := len(m.samples)
	start := (m.head - n + capacity) % capacity

	out := make([]int16, n)
	for i := range n {
		out[i] = m.samples[(start+i)%capacity]
	}

	return out
}

// Reset forgets all samples.
func (m *LevelMeter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.head, m.count = 0, 0
}

func (m *LevelMeter) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.count
}

// BytesToInt16 decodes S16LE bytes. A trailing odd byte is ignored.
func BytesToInt16(data []byte) []int16 {
	n := len(data) / bytesPerSample
	if n == 0 {
		return nil
	}

	samples := make([]int16, n)
	for i := range n {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*bytesPerSample:])) //nolint:gosec // S16LE reinterpretation
	}

	return samples
}
