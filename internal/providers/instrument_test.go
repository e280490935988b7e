package providers

import (
	"context"
	"testing"
	"time"

	"playbud-discovery/internal/metrics"
)

func TestInstrumentedProviderRecordsAttempts(t *testing.T) {
	rec := metrics.NewRecorder()
	inner := &scriptedProvider{}
	provider := NewInstrumentedProvider(inner, "playbud", rec)

	if _, err := provider.ListGames(context.Background(), 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := provider.GetGame(context.Background(), "g-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := provider.FetchReferenceData(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := provider.JoinGame(context.Background(), "g-1", "", "tok"); err == nil {
		t.Fatal("expected join error from stub")
	}

	if got := rec.ProviderCalls("playbud"); got != 4 {
		t.Fatalf("expected 4 calls recorded, got %d", got)
	}
	if got := rec.ProviderErrors("playbud"); got != 1 {
		t.Fatalf("expected 1 error recorded, got %d", got)
	}
}

func TestInstrumentedProviderRecordsRateLimits(t *testing.T) {
	rec := metrics.NewRecorder()
	inner := &scriptedProvider{
		listErrs: []error{&RateLimitError{Provider: "playbud", RetryAfter: 3 * time.Second}},
	}
	provider := NewInstrumentedProvider(inner, "playbud", rec)

	if _, err := provider.ListGames(context.Background(), 10); err == nil {
		t.Fatal("expected rate limit error")
	}
	if got := rec.RateLimitHits("playbud"); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
	if got := rec.LastRetryAfter("playbud"); got != 3*time.Second {
		t.Fatalf("unexpected retry-after: %v", got)
	}
}

func TestInstrumentedProviderNilRecorderPassthrough(t *testing.T) {
	inner := &scriptedProvider{}
	if got := NewInstrumentedProvider(inner, "playbud", nil); got != DataProvider(inner) {
		t.Fatal("expected inner provider returned unchanged")
	}
}
