package spots

import (
	"fmt"
	"time"
)

// Player is a materialized roster entry ready for display.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Initials  string `json:"initials"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Spot is the denormalized, presentation-ready view of a game record used by
// the discovery and detail surfaces. Spots are rebuilt from records and
// lookups on every query and never mutated in place.
type Spot struct {
	ID                 string    `json:"id"`
	SportCode          string    `json:"sportCode"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Address            string    `json:"address"`
	City               string    `json:"city"`
	Lat                float64   `json:"lat"`
	Lng                float64   `json:"lng"`
	StartTime          time.Time `json:"startTime"`
	EndTime            time.Time `json:"endTime"`
	DurationMinutes    int       `json:"durationMinutes"`
	Capacity           int       `json:"capacity"`
	SlotsLeft          int       `json:"slotsLeft"`
	IsPaid             bool      `json:"isPaid"`
	PriceCents         int       `json:"priceCents,omitempty"`
	Currency           string    `json:"currency,omitempty"`
	HostName           string    `json:"hostName"`
	HostHandle         string    `json:"hostHandle"`
	SkillLevel         string    `json:"skillLevel"`
	AbilityLevel       string    `json:"abilityLevel"`
	Gender             string    `json:"gender"`
	DescriptionPoints  []string  `json:"descriptionPoints"`
	ExtraNotes         []string  `json:"extraNotes"`
	Rules              []string  `json:"rules"`
	LocationNotes      []string  `json:"locationNotes"`
	CancellationPolicy string    `json:"cancellationPolicy"`
	Players            []Player  `json:"players"`
}

// PriceLabel renders the display price: "Free" for unpaid spots, otherwise
// whole currency units, e.g. "£15".
func (s Spot) PriceLabel() string {
	if !s.IsPaid || s.PriceCents == 0 {
		return "Free"
	}
	return fmt.Sprintf("£%d", s.PriceCents/100)
}

// HasFiniteCoordinate reports whether the spot can be placed on a map.
func (s Spot) HasFiniteCoordinate() bool {
	return isFinite(s.Lng) && isFinite(s.Lat)
}
