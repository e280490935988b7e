package discovery

import (
	"net/url"
	"strings"
)

// Query parameter names understood by the discovery surface. Only the sport
// parameter is kept bidirectionally in sync with the filter state; the rest
// exist for deep links into the JSON API.
const (
	ParamCity     = "city"
	ParamSport    = "sport"
	ParamAbility  = "ability"
	ParamGender   = "gender"
	ParamDate     = "date"
	ParamShowFull = "show_full"
)

// SportFromQuery reads the sport selection from a query string. Absence maps
// to the "all" sentinel; present values are normalized to upper case.
func SportFromQuery(values url.Values) string {
	raw := strings.TrimSpace(values.Get(ParamSport))
	if raw == "" {
		return All
	}
	return strings.ToUpper(raw)
}

// ApplySportToQuery writes a sport selection back to a query string, removing
// the parameter entirely for the "all" sentinel.
func ApplySportToQuery(values url.Values, sport string) {
	if sport == "" || sport == All {
		values.Del(ParamSport)
		return
	}
	values.Set(ParamSport, sport)
}

// StateFromQuery builds a full filter state from request parameters,
// defaulting every absent selection.
func StateFromQuery(values url.Values) State {
	st := DefaultState()
	st.Sport = SportFromQuery(values)
	if city := strings.TrimSpace(values.Get(ParamCity)); city != "" {
		st.City = city
	}
	if ability := strings.TrimSpace(values.Get(ParamAbility)); ability != "" {
		st.Ability = ability
	}
	if gender := strings.TrimSpace(values.Get(ParamGender)); gender != "" {
		st.Gender = gender
	}
	st.Date = ParseDateBucket(strings.TrimSpace(values.Get(ParamDate)))
	switch strings.ToLower(strings.TrimSpace(values.Get(ParamShowFull))) {
	case "1", "true", "yes":
		st.ShowFullGames = true
	}
	return st
}
