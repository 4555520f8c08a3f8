// Package channels holds small helpers for sending from callbacks that must
// never block, such as audio device callbacks.
package channels

import "errors"

var (
	ErrChannelClosed = errors.New("channel closed")
	ErrChannelFull   = errors.New("channel full")
)

// SendNonBlock attempts to send msg without blocking. A full channel gives
// ErrChannelFull; a closed one gives ErrChannelClosed instead of a panic, so
// producers may race with the consumer closing the channel.
func SendNonBlock[T any](ch chan<- T, msg T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrChannelClosed
		}
	}()

	select {
	case ch <- msg:
		return nil
	default:
		return ErrChannelFull
	}
}
