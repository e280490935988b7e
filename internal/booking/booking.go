package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"playbud-discovery/internal/domain/games"
	"playbud-discovery/internal/logging"
	"playbud-discovery/internal/metrics"
	"playbud-discovery/internal/providers"
	"playbud-discovery/internal/session"
)

// Phase is the join lifecycle of a single game for the current identity.
type Phase string

const (
	PhaseNotJoined Phase = "not_joined"
	PhaseJoining   Phase = "joining"
	PhaseJoined    Phase = "joined"
)

// ErrUnauthenticated marks a join attempt without an active identity.
var ErrUnauthenticated = errors.New("booking: sign in required")

// ErrJoinInFlight marks a second submit while one is already running.
var ErrJoinInFlight = errors.New("booking: join already in progress")

// AuthRequiredError wraps ErrUnauthenticated with the path to return to
// after login.
type AuthRequiredError struct {
	From string
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("booking: sign in required (from %s)", e.From)
}

func (e *AuthRequiredError) Unwrap() error { return ErrUnauthenticated }

// IdentityProvider supplies the identity a join is submitted on behalf of.
// Injected explicitly so the workflow never reaches for ambient auth state.
type IdentityProvider interface {
	Current() (session.Identity, bool)
}

// Result is the outcome of a successful submit.
type Result struct {
	Booking games.Booking
	Record  games.Record
	// Refreshed is false when the post-join re-fetch failed and Record is
	// the optimistic local view instead of the server roster.
	Refreshed bool
}

// Workflow owns the join lifecycle: auth precondition, single submission,
// optimistic roster update and the sequenced re-fetch that replaces it.
// The submitter is called at most once per Submit; retries are deliberately
// not layered over joins.
type Workflow struct {
	identity IdentityProvider
	joiner   providers.JoinSubmitter
	fetcher  providers.GameFetcher
	logger   *slog.Logger
	metrics  *metrics.Recorder

	mu     sync.Mutex
	phases map[string]Phase
}

// NewWorkflow constructs a Workflow with its collaborators.
func NewWorkflow(identity IdentityProvider, joiner providers.JoinSubmitter, fetcher providers.GameFetcher, logger *slog.Logger, recorder *metrics.Recorder) *Workflow {
	return &Workflow{
		identity: identity,
		joiner:   joiner,
		fetcher:  fetcher,
		logger:   logger,
		metrics:  recorder,
		phases:   make(map[string]Phase),
	}
}

// Begin checks the preconditions for joining rec and returns the phase the
// caller should render. A record whose roster already contains the current
// user is reported joined without any submission.
func (w *Workflow) Begin(rec games.Record, returnTo string) (Phase, error) {
	ident, ok := w.identity.Current()
	if !ok {
		w.record(metrics.JoinResultUnauthorized, 0)
		return PhaseNotJoined, &AuthRequiredError{From: returnTo}
	}

	if rec.HasParticipant(ident.UserID) {
		w.setPhase(rec.ID, PhaseJoined)
		return PhaseJoined, nil
	}
	if w.phase(rec.ID) == PhaseJoining {
		return PhaseJoining, nil
	}
	w.setPhase(rec.ID, PhaseNotJoined)
	return PhaseNotJoined, nil
}

// Submit joins rec on behalf of the current identity. On success the
// returned record carries the updated roster: the server's view when the
// re-fetch succeeds, otherwise the optimistic local append. On failure the
// phase reverts and the upstream error is returned unchanged.
func (w *Workflow) Submit(ctx context.Context, rec games.Record, note string) (Result, error) {
	ident, ok := w.identity.Current()
	if !ok {
		w.record(metrics.JoinResultUnauthorized, 0)
		return Result{}, &AuthRequiredError{From: "/spots/" + rec.ID}
	}
	if rec.HasParticipant(ident.UserID) {
		w.setPhase(rec.ID, PhaseJoined)
		return Result{Record: rec, Refreshed: true}, nil
	}

	if !w.beginSubmit(rec.ID) {
		return Result{}, ErrJoinInFlight
	}

	start := time.Now()
	notes := AssembleNotes(ident.DisplayName(), ident.Email, note)

	booking, err := w.joiner.JoinGame(ctx, rec.ID, notes, ident.AccessToken)
	if err != nil {
		w.setPhase(rec.ID, PhaseNotJoined)
		w.record(metrics.JoinResultFailed, time.Since(start))
		w.logError("join failed", err, logging.FieldGameID, rec.ID)
		return Result{}, err
	}

	w.setPhase(rec.ID, PhaseJoined)
	w.record(metrics.JoinResultJoined, time.Since(start))
	w.logInfo("join succeeded", logging.FieldGameID, rec.ID)

	result := Result{
		Booking: booking,
		Record:  optimisticJoin(rec, ident),
	}

	// Sequenced after the join so the server-confirmed roster replaces the
	// optimistic view. A refresh failure is not a join failure.
	if w.fetcher != nil {
		refreshed, fetchErr := w.fetcher.GetGame(ctx, rec.ID)
		if fetchErr != nil {
			w.logError("post-join refresh failed", fetchErr, logging.FieldGameID, rec.ID)
			return result, nil
		}
		result.Record = refreshed
		result.Refreshed = true
	}
	return result, nil
}

// Phase reports the current phase for a game id.
func (w *Workflow) Phase(gameID string) Phase {
	return w.phase(gameID)
}

// AssembleNotes builds the organiser-facing note from identity and free
// text. Empty parts are skipped.
func AssembleNotes(name, email, note string) string {
	parts := make([]string, 0, 3)
	if name != "" {
		parts = append(parts, "Name: "+name)
	}
	if email != "" {
		parts = append(parts, "Email: "+email)
	}
	if note = strings.TrimSpace(note); note != "" {
		parts = append(parts, "Note: "+note)
	}
	return strings.Join(parts, " | ")
}

// optimisticJoin appends the identity to the roster so the caller can render
// the join immediately, before the server view arrives.
func optimisticJoin(rec games.Record, ident session.Identity) games.Record {
	if rec.HasParticipant(ident.UserID) {
		return rec
	}
	roster := make([]games.Participant, len(rec.Participants), len(rec.Participants)+1)
	copy(roster, rec.Participants)
	p := games.Participant{ID: ident.UserID}
	if name := ident.DisplayName(); name != "" {
		p.Name = &name
	}
	rec.Participants = append(roster, p)
	rec.ParticipantUserIDs = append(append([]string(nil), rec.ParticipantUserIDs...), ident.UserID)
	return rec
}

func (w *Workflow) beginSubmit(gameID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phases[gameID] == PhaseJoining {
		return false
	}
	w.phases[gameID] = PhaseJoining
	return true
}

func (w *Workflow) setPhase(gameID string, p Phase) {
	w.mu.Lock()
	w.phases[gameID] = p
	w.mu.Unlock()
}

func (w *Workflow) phase(gameID string) Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.phases[gameID]; ok {
		return p
	}
	return PhaseNotJoined
}

func (w *Workflow) record(result string, d time.Duration) {
	if w.metrics != nil {
		w.metrics.RecordJoinOutcome(result, d)
	}
}

func (w *Workflow) logInfo(msg string, args ...any) {
	if w.logger != nil {
		w.logger.Info(msg, args...)
	}
}

func (w *Workflow) logError(msg string, err error, args ...any) {
	if w.logger != nil {
		w.logger.Error(msg, append(args, "error", err)...)
	}
}
