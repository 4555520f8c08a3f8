package gateway

import (
	"math/rand/v2"
	"sync"
)

// Picker chooses an index in [0, n). n is always positive.
type Picker interface {
	Pick(n int) int
}

// RandomPicker picks uniformly at random.
type RandomPicker struct{}

func (RandomPicker) Pick(n int) int {
	return rand.IntN(n) //nolint:gosec // prompt selection is not security sensitive
}

// FixedPicker always picks the same index, wrapped into range.
type FixedPicker int

func (f FixedPicker) Pick(n int) int {
	i := int(f) % n
	if i < 0 {
		i += n
	}

	return i
}

// SeededPicker yields a reproducible pseudo-random sequence.
type SeededPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededPicker creates a picker whose sequence is determined by seed.
func NewSeededPicker(seed uint64) *SeededPicker {
	return &SeededPicker{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint:gosec // reproducibility wanted
	}
}

func (s *SeededPicker) Pick(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.IntN(n)
}
