package testutil

import (
	"io"
	"log/slog"
	"time"

	"playbud-discovery/internal/domain/games"
	"playbud-discovery/internal/domain/refdata"
)

// NowAt returns a clock frozen at the given instant.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// SilentLogger returns a logger that discards everything, for tests that
// exercise logging paths without asserting on output.
func SilentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func strptr(s string) *string { return &s }

// ReferenceSet returns the canonical two-city reference tables used across
// package tests.
func ReferenceSet() refdata.Set {
	return refdata.Set{
		Cities: []refdata.City{
			{ID: "c1", Name: "London", Slug: "london", CenterLat: 51.509865, CenterLng: -0.118092, RadiusKm: 25},
			{ID: "c2", Name: "Manchester", Slug: "manchester", CenterLat: 53.480759, CenterLng: -2.242631, RadiusKm: 20},
		},
		Sports: []refdata.Item{
			{ID: "s1", Name: "Badminton", Slug: "badminton", Code: strptr("BADMINTON")},
			{ID: "s2", Name: "Football", Slug: "football", Code: strptr("FOOTBALL")},
		},
		Abilities: []refdata.Item{
			{ID: "a1", Name: "Beginner", Slug: "beginner"},
			{ID: "a2", Name: "Intermediate", Slug: "intermediate"},
		},
		Genders: []refdata.Item{
			{ID: "g1", Name: "Mixed", Slug: "mixed"},
			{ID: "g2", Name: "Female", Slug: "female"},
		},
	}
}

// ConfirmedGame returns a future-dated confirmed record with sensible
// defaults that individual tests override as needed.
func ConfirmedGame(id string) games.Record {
	return games.Record{
		ID:        id,
		Name:      "Evening Badminton",
		Venue:     "Court 1",
		CitySlug:  "london",
		SportCode: "BADMINTON",
		Date:      "2100-04-07",
		StartTime: "18:00",
		EndTime:   "19:00",
		Skill:     "beginner",
		Gender:    "mixed",
		Players:   4,
		Status:    games.StatusConfirmed,
	}
}
