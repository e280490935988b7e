package providers

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitError captures rate limit responses from the upstream API.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// NotFoundError marks a lookup for a game id the upstream does not know.
// The web layer maps it to a distinct not-found affordance.
type NotFoundError struct {
	Provider string
	GameID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: game %s not found", e.Provider, e.GameID)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}
