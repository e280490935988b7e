package discovery

import "playbud-discovery/internal/domain/refdata"

// DateBucket is a coarse temporal filter category.
type DateBucket string

const (
	DateAny   DateBucket = "any"
	DateToday DateBucket = "today"
	DateWeek  DateBucket = "week"
	DateNow   DateBucket = "now"
)

// ParseDateBucket maps a raw value onto a known bucket, defaulting to any.
func ParseDateBucket(raw string) DateBucket {
	switch DateBucket(raw) {
	case DateToday, DateWeek, DateNow:
		return DateBucket(raw)
	default:
		return DateAny
	}
}

// All is the sentinel selection meaning "no constraint" for the sport,
// ability and gender filters.
const All = "all"

// State is the full filter selection for the discovery view. The filter
// engine owns it exclusively; it lives for the page session only.
type State struct {
	City          string     `json:"city"`
	Sport         string     `json:"sport"`
	Ability       string     `json:"ability"`
	Gender        string     `json:"gender"`
	Date          DateBucket `json:"date"`
	ShowFullGames bool       `json:"showFullGames"`
}

// DefaultState mirrors the initial selection before reference data arrives:
// no city, everything else unconstrained.
func DefaultState() State {
	return State{
		City:    "",
		Sport:   All,
		Ability: All,
		Gender:  All,
		Date:    DateAny,
	}
}

// WithDefaultCity seeds the city selection from reference data: an already
// valid selection is kept, anything else snaps to the first reference city.
func (s State) WithDefaultCity(lookups refdata.Lookups) State {
	if s.City != "" {
		if _, ok := lookups.City(s.City); ok {
			return s
		}
	}
	if slug, ok := lookups.DefaultCitySlug(); ok {
		s.City = slug
	}
	return s
}
