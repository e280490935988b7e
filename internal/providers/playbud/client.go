package playbud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"playbud-discovery/internal/domain/games"
	"playbud-discovery/internal/domain/refdata"
	"playbud-discovery/internal/providers"
)

// Config controls how the client reaches the PlayBud API.
type Config struct {
	BaseURL string
	// APIKey is an optional service-level bearer token applied when a call
	// has no per-request access token.
	APIKey     string
	HTTPClient *http.Client
}

// Client talks to the PlayBud REST API: reference data, game listing and
// detail, join submission, and the auth endpoints the session layer uses.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
}

var _ providers.DataProvider = (*Client)(nil)
var _ providers.AuthProvider = (*Client)(nil)

// NewClient constructs a PlayBud API client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// FetchReferenceData retrieves all four lookup tables in a single request.
func (c *Client) FetchReferenceData(ctx context.Context) (refdata.Set, error) {
	var set refdata.Set
	if err := c.do(ctx, http.MethodGet, "/reference-data", nil, "", &set); err != nil {
		return refdata.Set{}, err
	}
	return set, nil
}

// ListGames retrieves the public game listing. Status filtering is the
// caller's concern; the upstream returns every listable record.
func (c *Client) ListGames(ctx context.Context, limit int) ([]games.Record, error) {
	path := "/games/?limit=" + strconv.Itoa(resolveListLimit(limit))
	var records []games.Record
	if err := c.do(ctx, http.MethodGet, path, nil, "", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetGame retrieves a single game record.
func (c *Client) GetGame(ctx context.Context, id string) (games.Record, error) {
	var record games.Record
	err := c.do(ctx, http.MethodGet, "/games/"+url.PathEscape(id), nil, "", &record)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return games.Record{}, &providers.NotFoundError{Provider: providerName, GameID: id}
		}
		return games.Record{}, err
	}
	return record, nil
}

// JoinGame submits a join request for the bearer of accessToken. Notes are
// optional; an empty string is sent as null.
func (c *Client) JoinGame(ctx context.Context, gameID, notes, accessToken string) (games.Booking, error) {
	payload := joinRequest{GameID: gameID}
	if notes != "" {
		payload.Notes = &notes
	}

	var booking games.Booking
	path := "/games/" + url.PathEscape(gameID) + "/join"
	if err := c.do(ctx, http.MethodPost, path, payload, accessToken, &booking); err != nil {
		return games.Booking{}, err
	}
	return booking, nil
}

// Me returns the identity behind an access token.
func (c *Client) Me(ctx context.Context, accessToken string) (providers.AuthUser, error) {
	var user providers.AuthUser
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, accessToken, &user); err != nil {
		return providers.AuthUser{}, err
	}
	return user, nil
}

// RefreshToken exchanges a refresh token for a fresh token pair.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (providers.TokenPair, error) {
	var pair providers.TokenPair
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", refreshRequest{RefreshToken: refreshToken}, "", &pair); err != nil {
		return providers.TokenPair{}, err
	}
	return pair, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("playbud: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token == "" {
		token = c.apiKey
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Message:    extractErrorMessage(resp.Body),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: extractErrorMessage(resp.Body)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("playbud: decode response: %w", err)
	}
	return nil
}

// extractErrorMessage pulls the human-readable message out of an upstream
// error body: JSON detail/message first, raw text as a fallback.
func extractErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var parsed errorBody
	if json.Unmarshal(raw, &parsed) == nil {
		if parsed.Detail != "" {
			return parsed.Detail
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}
