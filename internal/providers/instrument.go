package providers

import (
	"context"
	"time"

	"playbud-discovery/internal/domain/games"
	"playbud-discovery/internal/domain/refdata"

	"playbud-discovery/internal/metrics"
)

// instrumentedProvider records per-call metrics for every provider
// operation, including rate limit hits with their Retry-After.
type instrumentedProvider struct {
	inner    DataProvider
	name     string
	recorder *metrics.Recorder
}

// NewInstrumentedProvider wraps a provider with metrics recording. A nil
// recorder returns the provider unchanged.
func NewInstrumentedProvider(inner DataProvider, name string, recorder *metrics.Recorder) DataProvider {
	if recorder == nil {
		return inner
	}
	return &instrumentedProvider{inner: inner, name: name, recorder: recorder}
}

func (p *instrumentedProvider) ListGames(ctx context.Context, limit int) ([]games.Record, error) {
	start := time.Now()
	records, err := p.inner.ListGames(ctx, limit)
	p.record(start, err)
	return records, err
}

func (p *instrumentedProvider) GetGame(ctx context.Context, id string) (games.Record, error) {
	start := time.Now()
	rec, err := p.inner.GetGame(ctx, id)
	p.record(start, err)
	return rec, err
}

func (p *instrumentedProvider) FetchReferenceData(ctx context.Context) (refdata.Set, error) {
	start := time.Now()
	set, err := p.inner.FetchReferenceData(ctx)
	p.record(start, err)
	return set, err
}

func (p *instrumentedProvider) JoinGame(ctx context.Context, gameID, notes, accessToken string) (games.Booking, error) {
	start := time.Now()
	booking, err := p.inner.JoinGame(ctx, gameID, notes, accessToken)
	p.record(start, err)
	return booking, err
}

func (p *instrumentedProvider) record(start time.Time, err error) {
	p.recorder.RecordProviderAttempt(p.name, time.Since(start), err)
	if rl, ok := AsRateLimitError(err); ok {
		p.recorder.RecordRateLimit(p.name, rl.RetryAfter)
	}
}
