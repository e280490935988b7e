package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdiscovery "playbud-discovery/internal/app/discovery"
	"playbud-discovery/internal/booking"
	"playbud-discovery/internal/domain/games"
	"playbud-discovery/internal/poller"
	"playbud-discovery/internal/providers"
	"playbud-discovery/internal/session"
	"playbud-discovery/internal/store"
	"playbud-discovery/internal/teststubs"
	"playbud-discovery/internal/testutil"
)

func strptr(s string) *string { return &s }

type fakeRefresher struct {
	status     poller.Status
	refreshErr error
	refreshed  int
}

func (f *fakeRefresher) Refresh(ctx context.Context) error {
	f.refreshed++
	return f.refreshErr
}

func (f *fakeRefresher) Status() poller.Status { return f.status }

type fixture struct {
	handler *Handler
	store   *store.MemoryStore
	joiner  *teststubs.StubJoiner
	auth    *teststubs.StubAuth
	poller  *fakeRefresher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := store.NewMemoryStore()
	st.SetReference(testutil.ReferenceSet(), time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC))

	football := testutil.ConfirmedGame("g-2")
	football.Name = "Sunday Football"
	football.Venue = "Pitch 2"
	football.SportCode = "FOOTBALL"
	football.Date = "2100-04-08"
	football.StartTime = "10:00"
	football.EndTime = "11:00"
	football.Players = 10
	st.SetGames([]games.Record{testutil.ConfirmedGame("g-1"), football})

	svc := appdiscovery.NewService(st, time.UTC)
	auth := &teststubs.StubAuth{
		User: providers.AuthUser{ID: "u-9", Name: strptr("Ada Lovelace"), Email: "ada@example.com"},
	}
	sessions := session.NewManager(auth, nil)
	joiner := &teststubs.StubJoiner{Booking: games.Booking{ID: "b-1", GameID: "g-1", UserID: "u-9"}}
	fetcher := &teststubs.StubGameFetcher{
		Record: games.Record{
			ID: "g-1", Name: "Evening Badminton", Venue: "Court 1", CitySlug: "london",
			SportCode: "BADMINTON", Date: "2100-04-07", StartTime: "18:00", EndTime: "19:00",
			Players: 4, ParticipantUserIDs: []string{"u-9"}, Status: games.StatusConfirmed,
		},
	}
	workflow := booking.NewWorkflow(sessions, joiner, fetcher, nil, nil)
	refresher := &fakeRefresher{status: poller.Status{LastSuccess: time.Now()}}

	handler := New(Config{LoginURL: "/login"}, svc, workflow, sessions, st, refresher, nil, nil)
	return &fixture{handler: handler, store: st, joiner: joiner, auth: auth, poller: refresher}
}

func doRequest(t *testing.T, h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestReferenceDataEndpoint(t *testing.T) {
	f := newFixture(t)
	rec := doRequest(t, f.handler, http.MethodGet, "/api/reference-data", "", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp referenceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Cities, 1)
	assert.Len(t, resp.Sports, 2)
	require.NotNil(t, resp.FetchedAt)
}

func TestSpotsEndpointAppliesFilters(t *testing.T) {
	f := newFixture(t)
	rec := doRequest(t, f.handler, http.MethodGet, "/api/spots?sport=badminton", "", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp spotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "g-1", resp.Spots[0].ID)
	// Absent sport param would mean "all"; present values are upper-cased.
	assert.Equal(t, "BADMINTON", resp.Applied.Sport)
	assert.Equal(t, "london", resp.Applied.City)
}

func TestSpotsEndpointUnfiltered(t *testing.T) {
	f := newFixture(t)
	rec := doRequest(t, f.handler, http.MethodGet, "/api/spots", "", "")

	var resp spotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "all", resp.Applied.Sport)
}

func TestSpotByIDEndpoint(t *testing.T) {
	f := newFixture(t)

	rec := doRequest(t, f.handler, http.MethodGet, "/api/spots/g-1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Evening Badminton")

	rec = doRequest(t, f.handler, http.MethodGet, "/api/spots/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJoinWithoutTokenReturnsLoginAffordance(t *testing.T) {
	f := newFixture(t)
	rec := doRequest(t, f.handler, http.MethodPost, "/api/spots/g-1/join", "", "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp authRequiredResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/login", resp.LoginURL)
	assert.Equal(t, "/spots/g-1", resp.From)
	assert.Equal(t, 0, f.joiner.Calls())
}

func TestJoinSubmitsAndReturnsRefreshedSpot(t *testing.T) {
	f := newFixture(t)
	rec := doRequest(t, f.handler, http.MethodPost, "/api/spots/g-1/join", "acc", `{"note":"see you there"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp joinResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "b-1", resp.Booking.ID)
	assert.Equal(t, booking.PhaseJoined, resp.Phase)
	assert.True(t, resp.Refreshed)
	assert.Equal(t, 3, resp.Spot.SlotsLeft)

	require.Equal(t, 1, f.joiner.Calls())
	assert.Equal(t, "Name: Ada Lovelace | Email: ada@example.com | Note: see you there", f.joiner.Notes[0])
	assert.Equal(t, "acc", f.joiner.Tokens[0])

	// The refreshed roster lands in the snapshot immediately.
	stored, ok := f.store.GetGame("g-1")
	require.True(t, ok)
	assert.True(t, stored.HasParticipant("u-9"))
}

func TestJoinUpstreamRejectionPassesMessageThrough(t *testing.T) {
	f := newFixture(t)
	f.joiner.Err = errors.New("Game is full")

	rec := doRequest(t, f.handler, http.MethodPost, "/api/spots/g-1/join", "acc", "")

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Game is full")
}

func TestJoinInvalidTokenReturnsLoginAffordance(t *testing.T) {
	f := newFixture(t)
	f.auth.MeErr = errors.New("invalid token")

	rec := doRequest(t, f.handler, http.MethodPost, "/api/spots/g-1/join", "bad", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, f.joiner.Calls())
}

func TestJoinUnknownSpotIs404(t *testing.T) {
	f := newFixture(t)
	rec := doRequest(t, f.handler, http.MethodPost, "/api/spots/nope/join", "acc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRefreshEndpointTriggersPoller(t *testing.T) {
	f := newFixture(t)
	rec := doRequest(t, f.handler, http.MethodPost, "/api/refresh", "", "")

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, f.poller.refreshed)

	f.poller.refreshErr = errors.New("upstream down")
	rec = doRequest(t, f.handler, http.MethodPost, "/api/refresh", "", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHealthAndReadiness(t *testing.T) {
	f := newFixture(t)

	rec := doRequest(t, f.handler, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, f.handler, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	f.poller.status = poller.Status{}
	rec = doRequest(t, f.handler, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestIDEchoedOnResponse(t *testing.T) {
	f := newFixture(t)

	rec := doRequest(t, f.handler, http.MethodGet, "/health", "", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	assert.Equal(t, "req-42", rr.Header().Get("X-Request-ID"))
}
