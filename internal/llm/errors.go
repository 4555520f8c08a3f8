package llm

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyResponse indicates the provider answered successfully but returned
// no usable content.
var ErrEmptyResponse = errors.New("empty response from provider")

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down, unreachable or
// rejected the request.
type ErrProviderUnavailable struct {
	Provider string
	Err      error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider unavailable: %v", e.Provider, e.Err)
	}

	return e.Provider + " provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }
