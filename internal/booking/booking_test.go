package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"playbud-discovery/internal/domain/games"
	"playbud-discovery/internal/session"
	"playbud-discovery/internal/teststubs"
)

type stubIdentity struct {
	ident session.Identity
	ok    bool
}

func (s *stubIdentity) Current() (session.Identity, bool) {
	return s.ident, s.ok
}

func signedIn() *stubIdentity {
	return &stubIdentity{
		ident: session.Identity{
			SessionID:   "sess-1",
			UserID:      "u-9",
			Name:        "Ada Lovelace",
			Email:       "ada@example.com",
			AccessToken: "acc",
		},
		ok: true,
	}
}

func TestBeginUnauthenticatedCarriesReturnPath(t *testing.T) {
	w := NewWorkflow(&stubIdentity{}, &teststubs.StubJoiner{}, nil, nil, nil)

	_, err := w.Begin(games.Record{ID: "g-1"}, "/spots/g-1")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	var authErr *AuthRequiredError
	if !errors.As(err, &authErr) || authErr.From != "/spots/g-1" {
		t.Fatalf("expected return path preserved, got %+v", authErr)
	}
}

func TestBeginAlreadyOnRosterIsJoined(t *testing.T) {
	w := NewWorkflow(signedIn(), &teststubs.StubJoiner{}, nil, nil, nil)
	rec := games.Record{ID: "g-1", ParticipantUserIDs: []string{"u-9"}}

	phase, err := w.Begin(rec, "/spots/g-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if phase != PhaseJoined {
		t.Fatalf("expected joined phase, got %s", phase)
	}
}

func TestSubmitJoinsOnceAndRefreshes(t *testing.T) {
	joiner := &teststubs.StubJoiner{Booking: games.Booking{ID: "b-1", GameID: "g-1"}}
	fetcher := &teststubs.StubGameFetcher{
		Record: games.Record{ID: "g-1", ParticipantUserIDs: []string{"u-1", "u-9"}},
	}
	w := NewWorkflow(signedIn(), joiner, fetcher, nil, nil)

	rec := games.Record{ID: "g-1", ParticipantUserIDs: []string{"u-1"}}
	res, err := w.Submit(context.Background(), rec, "bringing a spare racket")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if joiner.Calls() != 1 {
		t.Fatalf("expected exactly one submission, got %d", joiner.Calls())
	}
	if !res.Refreshed {
		t.Fatal("expected server roster after refresh")
	}
	if len(res.Record.ParticipantUserIDs) != 2 {
		t.Fatalf("expected refreshed roster, got %+v", res.Record)
	}
	if w.Phase("g-1") != PhaseJoined {
		t.Fatalf("expected joined phase, got %s", w.Phase("g-1"))
	}

	wantNotes := "Name: Ada Lovelace | Email: ada@example.com | Note: bringing a spare racket"
	if joiner.Notes[0] != wantNotes {
		t.Fatalf("unexpected notes: %q", joiner.Notes[0])
	}
	if joiner.Tokens[0] != "acc" {
		t.Fatalf("expected identity token used, got %q", joiner.Tokens[0])
	}
}

func TestSubmitFailureRevertsPhase(t *testing.T) {
	joiner := &teststubs.StubJoiner{Err: errors.New("Game is full")}
	w := NewWorkflow(signedIn(), joiner, nil, nil, nil)

	rec := games.Record{ID: "g-1"}
	_, err := w.Submit(context.Background(), rec, "")
	if err == nil || err.Error() != "Game is full" {
		t.Fatalf("expected upstream error verbatim, got %v", err)
	}
	if w.Phase("g-1") != PhaseNotJoined {
		t.Fatalf("expected phase reverted, got %s", w.Phase("g-1"))
	}
}

func TestSubmitFallsBackToOptimisticRosterWhenRefreshFails(t *testing.T) {
	joiner := &teststubs.StubJoiner{Booking: games.Booking{ID: "b-1"}}
	fetcher := &teststubs.StubGameFetcher{Err: errors.New("upstream down")}
	w := NewWorkflow(signedIn(), joiner, fetcher, nil, nil)

	rec := games.Record{ID: "g-1", Participants: []games.Participant{{ID: "u-1"}}}
	res, err := w.Submit(context.Background(), rec, "")
	if err != nil {
		t.Fatalf("join should succeed despite refresh failure: %v", err)
	}
	if res.Refreshed {
		t.Fatal("expected optimistic roster flagged")
	}
	if !res.Record.HasParticipant("u-9") {
		t.Fatalf("expected optimistic participant appended: %+v", res.Record)
	}
	if len(res.Record.Participants) != 2 {
		t.Fatalf("expected roster of 2, got %+v", res.Record.Participants)
	}
}

func TestSubmitIdempotentWhenAlreadyOnRoster(t *testing.T) {
	joiner := &teststubs.StubJoiner{}
	w := NewWorkflow(signedIn(), joiner, nil, nil, nil)

	rec := games.Record{ID: "g-1", ParticipantUserIDs: []string{"u-9"}}
	res, err := w.Submit(context.Background(), rec, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if joiner.Calls() != 0 {
		t.Fatalf("expected no submission for existing participant, got %d", joiner.Calls())
	}
	if !res.Refreshed {
		t.Fatal("expected record reported as authoritative")
	}
}

func TestSubmitRejectsConcurrentJoin(t *testing.T) {
	block := make(chan struct{})
	joiner := &teststubs.StubJoiner{BlockCh: block}
	w := NewWorkflow(signedIn(), joiner, nil, nil, nil)

	rec := games.Record{ID: "g-1"}
	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background(), rec, "")
		done <- err
	}()

	// Wait for the first submit to take the joining phase.
	for w.Phase("g-1") != PhaseJoining {
		time.Sleep(time.Millisecond)
	}

	if _, err := w.Submit(context.Background(), rec, ""); !errors.Is(err, ErrJoinInFlight) {
		t.Fatalf("expected ErrJoinInFlight, got %v", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
}

func TestSubmitUnauthenticated(t *testing.T) {
	w := NewWorkflow(&stubIdentity{}, &teststubs.StubJoiner{}, nil, nil, nil)
	_, err := w.Submit(context.Background(), games.Record{ID: "g-1"}, "")
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAssembleNotes(t *testing.T) {
	cases := []struct {
		name, email, note, want string
	}{
		{"Ada", "ada@example.com", "hi", "Name: Ada | Email: ada@example.com | Note: hi"},
		{"Ada", "", "", "Name: Ada"},
		{"", "ada@example.com", "", "Email: ada@example.com"},
		{"", "", "  trimmed  ", "Note: trimmed"},
		{"", "", "", ""},
	}
	for _, tc := range cases {
		if got := AssembleNotes(tc.name, tc.email, tc.note); got != tc.want {
			t.Errorf("AssembleNotes(%q,%q,%q) = %q, want %q", tc.name, tc.email, tc.note, got, tc.want)
		}
	}
}
