package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"playbud-discovery/internal/booking"
	"playbud-discovery/internal/discovery"
	"playbud-discovery/internal/domain/games"
	"playbud-discovery/internal/domain/refdata"
	"playbud-discovery/internal/domain/spots"
	"playbud-discovery/internal/logging"
	"playbud-discovery/internal/providers"
	"playbud-discovery/internal/providers/playbud"
)

type referenceResponse struct {
	Cities    []refdata.City `json:"cities"`
	Sports    []refdata.Item `json:"sports"`
	Abilities []refdata.Item `json:"abilities"`
	Genders   []refdata.Item `json:"genders"`
	FetchedAt *time.Time     `json:"fetched_at,omitempty"`
}

type spotsResponse struct {
	Count   int             `json:"count"`
	Spots   []spots.Spot    `json:"spots"`
	Applied discovery.State `json:"applied"`
}

type joinRequest struct {
	Note string `json:"note"`
}

type joinResponse struct {
	Booking games.Booking `json:"booking"`
	Spot    spots.Spot    `json:"spot"`
	Phase   booking.Phase `json:"phase"`
	// Refreshed is false when the roster shown is the optimistic local view.
	Refreshed bool `json:"refreshed"`
}

type authRequiredResponse struct {
	Error    string `json:"error"`
	LoginURL string `json:"login_url"`
	From     string `json:"from"`
}

func (h *Handler) handleReferenceData(w http.ResponseWriter, r *http.Request) {
	set, fetchedAt := h.svc.Reference()

	resp := referenceResponse{
		Cities:    set.Cities,
		Sports:    set.Sports,
		Abilities: set.Abilities,
		Genders:   set.Genders,
	}
	if !fetchedAt.IsZero() {
		resp.FetchedAt = &fetchedAt
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSpots(w http.ResponseWriter, r *http.Request) {
	state := discovery.StateFromQuery(r.URL.Query())
	visible, applied := h.svc.Visible(state)

	respondJSON(w, http.StatusOK, spotsResponse{
		Count:   len(visible),
		Spots:   visible,
		Applied: applied,
	})
}

func (h *Handler) handleSpotByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "spotID")
	spot, ok := h.svc.SpotByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, "spot not found")
		return
	}
	respondJSON(w, http.StatusOK, spot)
}

func (h *Handler) handleJoin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "spotID")
	from := "/spots/" + id

	rec, ok := h.svc.RecordByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, "spot not found")
		return
	}

	if err := h.ensureSession(w, r, from); err != nil {
		return
	}

	var body joinRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeJSON(r, &body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	result, err := h.workflow.Submit(r.Context(), rec, body.Note)
	if err != nil {
		h.respondJoinError(w, r, err, from)
		return
	}

	if result.Refreshed && h.records != nil {
		// Land the server-confirmed roster without waiting for the next poll.
		h.records.UpsertGame(result.Record)
	}

	respondJSON(w, http.StatusOK, joinResponse{
		Booking:   result.Booking,
		Spot:      h.svc.SpotFor(result.Record),
		Phase:     h.workflow.Phase(id),
		Refreshed: result.Refreshed,
	})
}

// ensureSession resolves the bearer token into the active identity. A
// missing token or a failed lookup writes the 401 affordance and reports an
// error so the handler stops.
func (h *Handler) ensureSession(w http.ResponseWriter, r *http.Request, from string) error {
	token := bearerToken(r)
	if token == "" {
		h.respondAuthRequired(w, from)
		return booking.ErrUnauthenticated
	}

	if ident, ok := h.sessions.Current(); ok && ident.AccessToken == token {
		return nil
	}
	if _, err := h.sessions.Init(r.Context(), token, ""); err != nil {
		logging.Error(logging.FromContext(r.Context(), h.logger), "session init failed", err)
		h.respondAuthRequired(w, from)
		return err
	}
	return nil
}

func (h *Handler) respondJoinError(w http.ResponseWriter, r *http.Request, err error, from string) {
	var authErr *booking.AuthRequiredError
	if errors.As(err, &authErr) {
		h.respondAuthRequired(w, authErr.From)
		return
	}
	if errors.Is(err, booking.ErrJoinInFlight) {
		respondError(w, http.StatusConflict, "join already in progress")
		return
	}
	if providers.IsNotFound(err) {
		respondError(w, http.StatusNotFound, "spot not found")
		return
	}

	// Upstream messages pass through verbatim so the caller can show them.
	status := http.StatusBadGateway
	var apiErr *playbud.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		status = apiErr.StatusCode
	}
	logging.Error(logging.FromContext(r.Context(), h.logger), "join rejected", err)
	respondError(w, status, err.Error())
}

func (h *Handler) respondAuthRequired(w http.ResponseWriter, from string) {
	respondJSON(w, http.StatusUnauthorized, authRequiredResponse{
		Error:    "sign in required",
		LoginURL: h.cfg.LoginURL,
		From:     from,
	})
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if h.poller == nil {
		respondError(w, http.StatusServiceUnavailable, "refresh unavailable")
		return
	}
	if err := h.poller.Refresh(r.Context()); err != nil {
		respondError(w, http.StatusBadGateway, "refresh failed")
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "refreshed"})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.poller == nil {
		respondError(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	status := h.poller.Status()
	if !status.IsReady() {
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":               "not ready",
			"consecutive_failures": status.ConsecutiveFailures,
			"last_error":           status.LastError,
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
