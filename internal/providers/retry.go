package providers

import (
	"context"
	"log/slog"
	"time"

	"playbud-discovery/internal/domain/games"
	"playbud-discovery/internal/domain/refdata"
	"playbud-discovery/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a DataProvider with retry/backoff on the read
// paths. JoinGame is deliberately passed through untouched: the booking
// workflow owns submit-once semantics and surfaces failures to the user.
type retryingProvider struct {
	inner       DataProvider
	logger      *slog.Logger
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingProvider wraps the given provider with read retries. If
// maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, maxAttempts int, backoff time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) ListGames(ctx context.Context, limit int) ([]games.Record, error) {
	return retry(ctx, r, "list games", func() ([]games.Record, error) {
		return r.inner.ListGames(ctx, limit)
	})
}

func (r *retryingProvider) GetGame(ctx context.Context, id string) (games.Record, error) {
	return retry(ctx, r, "get game", func() (games.Record, error) {
		return r.inner.GetGame(ctx, id)
	})
}

func (r *retryingProvider) FetchReferenceData(ctx context.Context) (refdata.Set, error) {
	return retry(ctx, r, "fetch reference data", func() (refdata.Set, error) {
		return r.inner.FetchReferenceData(ctx)
	})
}

// JoinGame is never retried.
func (r *retryingProvider) JoinGame(ctx context.Context, gameID, notes, accessToken string) (games.Booking, error) {
	return r.inner.JoinGame(ctx, gameID, notes, accessToken)
}

func retry[T any](ctx context.Context, r *retryingProvider, op string, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		// Missing games are a definitive answer, not a transient fault.
		if IsNotFound(err) {
			return zero, err
		}
		if attempt == r.maxAttempts {
			break
		}

		r.logWarn(ctx, "provider retry", "op", op, "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		delay := r.backoffFn(attempt)
		if rl, ok := AsRateLimitError(err); ok && rl.RetryAfter > delay {
			delay = rl.RetryAfter
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	r.logWarn(ctx, "provider call failed", "op", op, "attempts", r.maxAttempts, "err", lastErr)
	return zero, lastErr
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		logger.Warn(msg, args...)
	}
}
