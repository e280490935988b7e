package config

import "time"

const (
	envPlaybudBaseURL      = "PLAYBUD_BASE_URL"
	envPlaybudAPIKey       = "PLAYBUD_API_KEY"
	envPlaybudMaxAttempts  = "PLAYBUD_MAX_ATTEMPTS"
	envPlaybudRetryBackoff = "PLAYBUD_RETRY_BACKOFF"

	defaultPlaybudBaseURL     = "http://localhost:8000/api"
	defaultPlaybudMaxAttempts = 3
	defaultPlaybudBackoff     = 500 * Duration(time.Millisecond)
)

// PlaybudConfig controls how we talk to the PlayBud API.
type PlaybudConfig struct {
	BaseURL      string
	APIKey       string
	MaxAttempts  int
	RetryBackoff Duration
}

func loadPlaybud() PlaybudConfig {
	return PlaybudConfig{
		BaseURL:      envOrDefault(envPlaybudBaseURL, defaultPlaybudBaseURL),
		APIKey:       envOrDefault(envPlaybudAPIKey, ""),
		MaxAttempts:  intEnvOrDefault(envPlaybudMaxAttempts, defaultPlaybudMaxAttempts),
		RetryBackoff: durationEnvOrDefault(envPlaybudRetryBackoff, defaultPlaybudBackoff),
	}
}
