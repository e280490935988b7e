package playbud

import (
	"net/http"
	"strings"
	"time"
)

const (
	providerName       = "playbud"
	defaultBaseURL     = "http://localhost:8000/api"
	defaultHTTPTimeout = 10 * time.Second
	defaultListLimit   = 50
	maxErrorBodyBytes  = 512
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

func resolveListLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}
