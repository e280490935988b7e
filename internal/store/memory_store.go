package store

import (
	"sync"
	"time"

	"playbud-discovery/internal/domain/games"
	"playbud-discovery/internal/domain/refdata"
)

// MemoryStore keeps a thread-safe snapshot of game records and reference
// lookups in memory. Records are replaced wholesale on every poll; there is
// no persistence across restarts.
type MemoryStore struct {
	mu        sync.RWMutex
	games     map[string]games.Record
	order     []string
	reference refdata.Set
	lookups   refdata.Lookups
	refAt     time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]games.Record),
	}
}

// ListGames returns a copy of the current records in upstream order.
func (s *MemoryStore) ListGames() []games.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]games.Record, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.games[id])
	}
	return result
}

// GetGame retrieves a record by ID.
func (s *MemoryStore) GetGame(id string) (games.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.games[id]
	return rec, ok
}

// SetGames replaces the existing records with a new snapshot.
func (s *MemoryStore) SetGames(records []games.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]games.Record, len(records))
	s.order = make([]string, 0, len(records))
	for _, rec := range records {
		if _, seen := s.games[rec.ID]; !seen {
			s.order = append(s.order, rec.ID)
		}
		s.games[rec.ID] = rec
	}
}

// UpsertGame replaces a single record in place, keeping listing order. Used
// after a join re-fetch so the roster update lands without waiting for the
// next poll.
func (s *MemoryStore) UpsertGame(rec games.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.games[rec.ID]; !seen {
		s.order = append(s.order, rec.ID)
	}
	s.games[rec.ID] = rec
}

// SetReference replaces the reference snapshot and rebuilds its indexes.
func (s *MemoryStore) SetReference(set refdata.Set, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reference = set
	s.lookups = refdata.NewLookups(set)
	s.refAt = at
}

// Reference returns the raw reference snapshot and when it was fetched.
func (s *MemoryStore) Reference() (refdata.Set, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.reference, s.refAt
}

// Lookups returns the indexed view of the reference snapshot. The zero
// Lookups is safe to use before the first fetch completes.
func (s *MemoryStore) Lookups() refdata.Lookups {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lookups
}
