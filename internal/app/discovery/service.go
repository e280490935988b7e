package discovery

import (
	"time"

	"playbud-discovery/internal/discovery"
	"playbud-discovery/internal/domain/games"
	"playbud-discovery/internal/domain/refdata"
	"playbud-discovery/internal/domain/spots"
)

// Store defines the contract for reading the polled snapshot.
type Store interface {
	ListGames() []games.Record
	GetGame(id string) (games.Record, bool)
	Lookups() refdata.Lookups
	Reference() (refdata.Set, time.Time)
}

// Service turns the raw polled snapshot into presentation-ready spots and
// runs the filter pipeline over them. Normalization happens per query so
// every response reflects the freshest lookups.
type Service struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

// NewService constructs a Service with the provided Store. A nil location
// falls back to the process-local zone, matching how start times are shown.
func NewService(store Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store: store,
		loc:   loc,
		now:   time.Now,
	}
}

// Spots returns every confirmed game as a spot, in upstream listing order.
func (s *Service) Spots() []spots.Spot {
	records := s.store.ListGames()
	lookups := s.store.Lookups()

	out := make([]spots.Spot, 0, len(records))
	for _, rec := range records {
		if rec.Status != games.StatusConfirmed {
			continue
		}
		out = append(out, spots.Normalize(rec, lookups, s.loc))
	}
	return out
}

// Visible applies the filter state over the normalized listing. The state's
// city is seeded from reference data first, so a fresh session sees its
// default city rather than an unfiltered world view.
func (s *Service) Visible(st discovery.State) ([]spots.Spot, discovery.State) {
	lookups := s.store.Lookups()
	st = st.WithDefaultCity(lookups)

	cityLabel, _ := lookups.CityLabel(st.City)
	return discovery.Apply(s.Spots(), st, cityLabel, s.now()), st
}

// SpotByID returns the normalized view of one confirmed game.
func (s *Service) SpotByID(id string) (spots.Spot, bool) {
	rec, ok := s.RecordByID(id)
	if !ok {
		return spots.Spot{}, false
	}
	return spots.Normalize(rec, s.store.Lookups(), s.loc), true
}

// SpotFor normalizes an already-held record with the current lookups. Used
// after a join so the response reflects the updated roster rather than the
// stored snapshot.
func (s *Service) SpotFor(rec games.Record) spots.Spot {
	return spots.Normalize(rec, s.store.Lookups(), s.loc)
}

// RecordByID returns the raw confirmed record, for callers that need the
// roster rather than the view model.
func (s *Service) RecordByID(id string) (games.Record, bool) {
	rec, ok := s.store.GetGame(id)
	if !ok || rec.Status != games.StatusConfirmed {
		return games.Record{}, false
	}
	return rec, true
}

// Reference exposes the raw reference snapshot for the reference endpoint.
func (s *Service) Reference() (refdata.Set, time.Time) {
	return s.store.Reference()
}

// Lookups exposes the indexed reference view.
func (s *Service) Lookups() refdata.Lookups {
	return s.store.Lookups()
}
