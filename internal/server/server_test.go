package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"playbud-discovery/internal/config"
)

func testConfig() config.Config {
	cfg := config.Load()
	cfg.Provider = "fixture"
	cfg.Port = "0"
	cfg.Metrics.Enabled = false
	cfg.PollInterval = time.Hour
	return cfg
}

func TestNewServerWiresFixtureProvider(t *testing.T) {
	s := New(testConfig(), nil)

	if s.Handler() == nil {
		t.Fatal("expected handler wired")
	}
	if s.poller == nil || s.store == nil || s.service == nil {
		t.Fatal("expected core components wired")
	}
}

func TestServerServesSpotsAfterRefresh(t *testing.T) {
	s := New(testConfig(), nil)

	if err := s.poller.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/spots", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Count == 0 {
		t.Fatal("expected fixture spots visible")
	}
}

func TestServerReadyReflectsPoller(t *testing.T) {
	s := New(testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before first poll, got %d", rec.Code)
	}

	if err := s.poller.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after successful poll, got %d", rec.Code)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	s := New(testConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down after cancel")
	}
}

func TestProviderNameDefaults(t *testing.T) {
	if got := providerName(""); got != "playbud" {
		t.Fatalf("expected playbud default, got %s", got)
	}
	if got := providerName("Fixture"); got != "fixture" {
		t.Fatalf("expected lower-cased name, got %s", got)
	}
}
