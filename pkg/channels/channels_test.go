package channels_test

import (
	"sync"
	"testing"

	"github.com/alkime/coach/pkg/channels"
	"github.com/stretchr/testify/assert"
)

func TestSendNonBlock(t *testing.T) {
	t.Run("buffered channel with capacity", func(t *testing.T) {
		ch := make(chan []byte, 2)
		assert.NoError(t, channels.SendNonBlock(ch, []byte{1, 2}))
		assert.Equal(t, []byte{1, 2}, <-ch)
	})

	t.Run("full buffered channel", func(t *testing.T) {
		ch := make(chan int, 1)
		ch <- 1
		assert.ErrorIs(t, channels.SendNonBlock(ch, 42), channels.ErrChannelFull)
	})

	t.Run("unbuffered with no receiver", func(t *testing.T) {
		ch := make(chan int)
		assert.ErrorIs(t, channels.SendNonBlock(ch, 42), channels.ErrChannelFull)
	})

	t.Run("closed channel keeps buffered data", func(t *testing.T) {
		ch := make(chan int, 2)
		ch <- 1
		close(ch)

		assert.ErrorIs(t, channels.SendNonBlock(ch, 42), channels.ErrChannelClosed)
		assert.Equal(t, 1, <-ch)
	})
}

// A producer racing a consumer that closes the channel must never panic.
func TestSendNonBlock_RacingClose(t *testing.T) {
	ch := make(chan int, 4)

	var wg sync.WaitGroup
	wg.Go(func() {
		for i := range 1000 {
			_ = channels.SendNonBlock(ch, i)
		}
	})

	close(ch)
	wg.Wait()

	for range ch {
	}
}
