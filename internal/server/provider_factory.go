package server

import (
	"log/slog"
	"strings"

	"playbud-discovery/internal/config"
	"playbud-discovery/internal/metrics"
	"playbud-discovery/internal/providers"
	"playbud-discovery/internal/providers/fixture"
	"playbud-discovery/internal/providers/playbud"
)

// providerFactory assembles the data provider with shared wrappers
// (metrics instrumentation + read retries).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	base := selectProvider(cfg)
	name := providerName(cfg.Provider)
	instrumented := providers.NewInstrumentedProvider(base, name, f.metrics)
	return providers.NewRetryingProvider(instrumented, f.logger, cfg.Playbud.MaxAttempts, cfg.Playbud.RetryBackoff)
}

func selectProvider(cfg config.Config) providers.DataProvider {
	switch strings.ToLower(cfg.Provider) {
	case "fixture":
		return fixture.New()
	default:
		return playbud.NewClient(playbud.Config{
			BaseURL: cfg.Playbud.BaseURL,
			APIKey:  cfg.Playbud.APIKey,
		})
	}
}

// authProvider returns the identity endpoints for the configured provider.
// The fixture provider has no auth surface, so sessions fall back to the
// real client even in fixture mode.
func authProvider(cfg config.Config) providers.AuthProvider {
	return playbud.NewClient(playbud.Config{
		BaseURL: cfg.Playbud.BaseURL,
		APIKey:  cfg.Playbud.APIKey,
	})
}

func providerName(raw string) string {
	if raw == "" {
		return "playbud"
	}
	return strings.ToLower(raw)
}
