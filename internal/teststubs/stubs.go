package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"playbud-discovery/internal/domain/games"
	"playbud-discovery/internal/domain/refdata"
	"playbud-discovery/internal/providers"
)

// StubSource is a test double for the poller's upstream source.
type StubSource struct {
	Games  []games.Record
	Ref    refdata.Set
	Err    error
	RefErr error
	Calls  atomic.Int32
	Notify chan struct{}
}

// ListGames returns configured records and error while tracking calls.
func (s *StubSource) ListGames(ctx context.Context, limit int) ([]games.Record, error) {
	_ = ctx
	_ = limit
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Games, s.Err
}

// FetchReferenceData returns the configured reference set.
func (s *StubSource) FetchReferenceData(ctx context.Context) (refdata.Set, error) {
	_ = ctx
	if s.RefErr != nil {
		return refdata.Set{}, s.RefErr
	}
	return s.Ref, nil
}

// StubJoiner is a test double for providers.JoinSubmitter.
type StubJoiner struct {
	mu       sync.Mutex
	Booking  games.Booking
	Err      error
	GameIDs  []string
	Notes    []string
	Tokens   []string
	BlockCh  chan struct{} // when set, JoinGame waits on it before returning
	CallsVal int
}

// JoinGame records the submission and returns the configured result.
func (s *StubJoiner) JoinGame(ctx context.Context, gameID, notes, accessToken string) (games.Booking, error) {
	if s.BlockCh != nil {
		select {
		case <-s.BlockCh:
		case <-ctx.Done():
			return games.Booking{}, ctx.Err()
		}
	}
	s.mu.Lock()
	s.CallsVal++
	s.GameIDs = append(s.GameIDs, gameID)
	s.Notes = append(s.Notes, notes)
	s.Tokens = append(s.Tokens, accessToken)
	s.mu.Unlock()
	return s.Booking, s.Err
}

// Calls returns how many submissions were recorded.
func (s *StubJoiner) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.CallsVal
}

// StubGameFetcher is a test double for providers.GameFetcher.
type StubGameFetcher struct {
	Record games.Record
	Err    error
	Calls  atomic.Int32
}

// GetGame returns the configured record regardless of id.
func (s *StubGameFetcher) GetGame(ctx context.Context, id string) (games.Record, error) {
	_ = ctx
	_ = id
	s.Calls.Add(1)
	if s.Err != nil {
		return games.Record{}, s.Err
	}
	return s.Record, nil
}

// StubAuth is a test double for providers.AuthProvider.
type StubAuth struct {
	User       providers.AuthUser
	MeErr      error
	Pair       providers.TokenPair
	RefreshErr error
	MeCalls    atomic.Int32
}

// Me returns the configured user.
func (s *StubAuth) Me(ctx context.Context, accessToken string) (providers.AuthUser, error) {
	_ = ctx
	_ = accessToken
	s.MeCalls.Add(1)
	if s.MeErr != nil {
		return providers.AuthUser{}, s.MeErr
	}
	return s.User, nil
}

// RefreshToken returns the configured token pair.
func (s *StubAuth) RefreshToken(ctx context.Context, refreshToken string) (providers.TokenPair, error) {
	_ = ctx
	_ = refreshToken
	if s.RefreshErr != nil {
		return providers.TokenPair{}, s.RefreshErr
	}
	return s.Pair, nil
}
