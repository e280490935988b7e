package fixture

import (
	"context"
	"time"

	"playbud-discovery/internal/domain/games"
	"playbud-discovery/internal/domain/refdata"
	"playbud-discovery/internal/providers"
)

// Provider returns a static set of games and reference tables useful for
// local development and bootstrapping without the upstream API.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

func strptr(s string) *string { return &s }

func floatptr(f float64) *float64 { return &f }

// ListGames returns a deterministic set of future-dated confirmed games.
func (p *Provider) ListGames(ctx context.Context, limit int) ([]games.Record, error) {
	_ = ctx

	base := p.now().AddDate(0, 0, 1)
	day1 := base.Format("2006-01-02")
	day2 := base.AddDate(0, 0, 2).Format("2006-01-02")

	list := []games.Record{
		{
			ID:                 "fixture-1",
			OrganiserID:        "org-1",
			Name:               "Casual Badminton Doubles",
			Venue:              "Islington Sports Centre",
			CitySlug:           "london",
			SportCode:          "BADMINTON",
			Date:               day1,
			StartTime:          "18:30",
			EndTime:            "20:00",
			Skill:              "intermediate",
			Gender:             "mixed",
			Players:            8,
			Description:        strptr("Friendly doubles, all welcome.\nShuttles provided."),
			Price:              floatptr(5.50),
			Frequency:          "weekly",
			ParticipantUserIDs: []string{"u-1", "u-2", "u-3"},
			Status:             games.StatusConfirmed,
		},
		{
			ID:          "fixture-2",
			OrganiserID: "org-2",
			Name:        "Sunday 5-a-side",
			Venue:       "Victoria Park Pitches",
			CitySlug:    "london",
			SportCode:   "FOOTBALL",
			Date:        day2,
			StartTime:   "10:00",
			EndTime:     "11:00",
			Skill:       "beginner",
			Gender:      "mixed",
			Players:     10,
			Participants: []games.Participant{
				{ID: "u-4", Name: strptr("Sam Archer")},
				{ID: "u-5"},
			},
			Status: games.StatusConfirmed,
		},
		{
			ID:          "fixture-3",
			OrganiserID: "org-1",
			Name:        "Pending Tennis Singles",
			Venue:       "Clissold Park Courts",
			CitySlug:    "london",
			SportCode:   "TENNIS",
			Date:        day1,
			StartTime:   "09:00",
			EndTime:     "10:30",
			Skill:       "advanced",
			Gender:      "female",
			Players:     2,
			Status:      games.StatusPending,
		},
	}

	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// GetGame looks up a fixture game by id.
func (p *Provider) GetGame(ctx context.Context, id string) (games.Record, error) {
	list, _ := p.ListGames(ctx, 0)
	for _, rec := range list {
		if rec.ID == id {
			return rec, nil
		}
	}
	return games.Record{}, &providers.NotFoundError{Provider: "fixture", GameID: id}
}

// FetchReferenceData returns a deterministic reference set.
func (p *Provider) FetchReferenceData(ctx context.Context) (refdata.Set, error) {
	_ = ctx
	return refdata.Set{
		Cities: []refdata.City{
			{ID: "city-1", Name: "London", Slug: "london", CenterLat: 51.509865, CenterLng: -0.118092, RadiusKm: 25},
			{ID: "city-2", Name: "Manchester", Slug: "manchester", CenterLat: 53.480759, CenterLng: -2.242631, RadiusKm: 20},
		},
		Sports: []refdata.Item{
			{ID: "sport-1", Name: "Badminton", Slug: "badminton", Code: strptr("BADMINTON")},
			{ID: "sport-2", Name: "Football", Slug: "football", Code: strptr("FOOTBALL")},
			{ID: "sport-3", Name: "Tennis", Slug: "tennis", Code: strptr("TENNIS")},
		},
		Abilities: []refdata.Item{
			{ID: "ability-1", Name: "Beginner", Slug: "beginner"},
			{ID: "ability-2", Name: "Intermediate", Slug: "intermediate"},
			{ID: "ability-3", Name: "Advanced", Slug: "advanced"},
		},
		Genders: []refdata.Item{
			{ID: "gender-1", Name: "Mixed", Slug: "mixed"},
			{ID: "gender-2", Name: "Female", Slug: "female"},
			{ID: "gender-3", Name: "Male", Slug: "male"},
		},
	}, nil
}

// JoinGame records nothing; it returns a synthetic booking receipt so the
// booking workflow can be exercised end to end against fixtures.
func (p *Provider) JoinGame(ctx context.Context, gameID, notes, accessToken string) (games.Booking, error) {
	if _, err := p.GetGame(ctx, gameID); err != nil {
		return games.Booking{}, err
	}
	booking := games.Booking{
		ID:       "booking-" + gameID,
		GameID:   gameID,
		UserID:   "fixture-user",
		JoinedAt: p.now().UTC().Format(time.RFC3339),
	}
	if notes != "" {
		booking.Notes = &notes
	}
	return booking, nil
}
