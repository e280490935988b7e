package spots

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	"playbud-discovery/internal/domain/games"
	"playbud-discovery/internal/domain/refdata"
	"playbud-discovery/internal/timeutil"
)

var lineBreaks = regexp.MustCompile(`\n+`)

// Normalize maps a raw game record into a presentation-ready Spot using the
// given lookup tables. Timestamps are built in loc (time.Local when nil).
//
// The function is total: every missing or malformed field degrades to a
// defined default instead of failing. Unresolvable codes pass through raw
// (sport codes upper-cased) so a stale or empty lookup set is tolerated.
func Normalize(rec games.Record, lookups refdata.Lookups, loc *time.Location) Spot {
	lng, lat := DefaultCenterLng, DefaultCenterLat
	cityLabel := rec.CitySlug
	city, cityKnown := lookups.City(rec.CitySlug)
	if cityKnown {
		lng, lat = city.CenterLng, city.CenterLat
		cityLabel = city.Name
	}

	sportCode := strings.ToUpper(rec.SportCode)
	if sportCode == "" {
		sportCode = defaultSportCode
	}
	sportLabel, ok := lookups.Sport(rec.SportCode)
	if !ok {
		sportLabel = sportCode
	}

	abilityLabel := resolveLabel(lookups.Ability, rec.Skill, defaultAbilityLabel)
	genderLabel := resolveLabel(lookups.Gender, rec.Gender, defaultGenderLabel)

	start := timeutil.CombineDateTime(rec.Date, rec.StartTime, loc)
	end := timeutil.CombineDateTime(rec.Date, rec.EndTime, loc)
	duration := int(math.Round(end.Sub(start).Minutes()))
	if duration < 0 {
		duration = 0
	}

	priceCents := 0
	if rec.Price != nil {
		priceCents = int(math.Round(*rec.Price * 100))
	}
	isPaid := priceCents != 0

	players := materializePlayers(rec)
	slotsLeft := rec.Players - len(players)
	if slotsLeft < 0 {
		slotsLeft = 0
	}

	description := trimmedOr(rec.Description, "")
	locationNotes := []string{defaultLocationNote}
	if cityKnown {
		locationNotes = []string{fmt.Sprintf("Happening in %s", city.Name)}
	}

	extraNotes := []string{}
	if rec.TeamSheet {
		extraNotes = append(extraNotes, teamSheetNote)
	}

	hostName := defaultHostName
	if sportLabel != "" {
		hostName = sportLabel + " Host"
	}

	spot := Spot{
		ID:                 rec.ID,
		SportCode:          sportCode,
		Title:              rec.Name,
		Description:        description,
		Address:            rec.Venue,
		City:               cityLabel,
		Lat:                lat,
		Lng:                lng,
		StartTime:          start,
		EndTime:            end,
		DurationMinutes:    duration,
		Capacity:           rec.Players,
		SlotsLeft:          slotsLeft,
		IsPaid:             isPaid,
		PriceCents:         priceCents,
		HostName:           hostName,
		HostHandle:         hostHandle,
		SkillLevel:         abilityLabel,
		AbilityLevel:       abilityLabel,
		Gender:             genderLabel,
		DescriptionPoints:  bulletsOr(rec.Description, defaultDescriptionPoints),
		ExtraNotes:         extraNotes,
		Rules:              bulletsOr(rec.Rules, defaultRules),
		LocationNotes:      locationNotes,
		CancellationPolicy: rec.Cancellation,
		Players:            players,
	}

	if spot.Description == "" {
		spot.Description = defaultDescription
	}
	if spot.CancellationPolicy == "" {
		spot.CancellationPolicy = defaultCancellationPolicy
	}
	if isPaid {
		spot.Currency = "GBP"
	}
	return spot
}

func resolveLabel(resolve func(string) (string, bool), code, fallback string) string {
	if label, ok := resolve(code); ok {
		return label
	}
	if code != "" {
		return code
	}
	return fallback
}

// materializePlayers prefers the rich roster and synthesizes placeholder
// entries from the bare id list when the roster is absent.
func materializePlayers(rec games.Record) []Player {
	if len(rec.Participants) > 0 {
		players := make([]Player, 0, len(rec.Participants))
		for i, p := range rec.Participants {
			name := trimmedOr(p.Name, "")
			player := Player{
				ID:        p.ID,
				Name:      name,
				Initials:  Initials(name, fmt.Sprintf("P%d", i+1)),
				AvatarURL: trimmedOr(p.AvatarURL, ""),
			}
			if player.Name == "" {
				player.Name = fmt.Sprintf("Player %d", i+1)
			}
			players = append(players, player)
		}
		return players
	}

	players := make([]Player, 0, len(rec.ParticipantUserIDs))
	for i, id := range rec.ParticipantUserIDs {
		players = append(players, Player{
			ID:       id,
			Name:     fmt.Sprintf("Player %d", i+1),
			Initials: fmt.Sprintf("P%d", i+1),
		})
	}
	return players
}

// Initials derives a 1-2 letter monogram from a display name, falling back to
// the given placeholder when no letters can be extracted.
func Initials(name, fallback string) string {
	initials := make([]rune, 0, 2)
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			initials = append(initials, unicode.ToUpper(r))
			break
		}
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return fallback
	}
	return string(initials)
}

// bulletsOr splits free text into trimmed non-empty lines, substituting the
// default set when the source field is blank.
func bulletsOr(text *string, defaults []string) []string {
	clean := trimmedOr(text, "")
	if clean == "" {
		out := make([]string, len(defaults))
		copy(out, defaults)
		return out
	}

	lines := lineBreaks.Split(clean, -1)
	bullets := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			bullets = append(bullets, trimmed)
		}
	}
	if len(bullets) == 0 {
		out := make([]string, len(defaults))
		copy(out, defaults)
		return out
	}
	return bullets
}

func trimmedOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	if trimmed := strings.TrimSpace(*value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
