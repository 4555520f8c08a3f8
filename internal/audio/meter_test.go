package audio_test

import (
	"context"
	"testing"
	"time"

	"github.com/alkime/coach/internal/audio"
	"github.com/stretchr/testify/require"
)

func TestLevelMeter_Write(t *testing.T) {
	t.Parallel()

	m := audio.NewLevelMeter(10, 4)
	m.Write([]byte{0x01, 0x00, 0x02, 0x00, 0x03, 0x00})

	require.Equal(t, []int16{1, 2, 3}, m.Read())
	require.Equal(t, 3, m.Count())
}

func TestLevelMeter_Wraparound(t *testing.T) {
	t.Parallel()

	m := audio.NewLevelMeter(5, 5)
	m.WriteSamples([]int16{1, 2, 3, 4, 5, 6, 7})

	require.Equal(t, []int16{3, 4, 5, 6, 7}, m.Read())
	require.Equal(t, []int16{6, 7}, m.Last(2))
	require.Equal(t, 5, m.Count())
}

func TestLevelMeter_EmptyAndReset(t *testing.T) {
	t.Parallel()

	m := audio.NewLevelMeter(5, 5)
	m.WriteSamples(nil)
	require.Nil(t, m.Read())

	m.WriteSamples([]int16{1, 2})
	require.Nil(t, m.Last(0))
	require.Nil(t, m.Last(-1))

	m.Reset()
	require.Zero(t, m.Count())
	require.Nil(t, m.Read())
}

func TestLevelMeter_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	m := audio.NewLevelMeter(1000, 100)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	go func() {
		for ctx.Err() == nil {
			m.Write([]byte{0x01, 0x00, 0xFF, 0xFF})
		}
	}()

	for ctx.Err() == nil {
		_ = m.Read()
	}
}

func TestBytesToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []byte
		expected []int16
	}{
		{"empty", []byte{}, nil},
		{"single sample", []byte{0x00, 0x01}, []int16{256}},
		{"negative", []byte{0xFF, 0xFF}, []int16{-1}},
		{"max negative", []byte{0x00, 0x80}, []int16{-32768}},
		{"odd byte count truncates", []byte{0x01, 0x00, 0x02}, []int16{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, audio.BytesToInt16(tt.input))
		})
	}
}
