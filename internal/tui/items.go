package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"playbud-discovery/internal/discovery"
	"playbud-discovery/internal/domain/refdata"
	"playbud-discovery/internal/domain/spots"
)

var errSpotGone = errors.New("this spot is no longer available")

type spotItem struct {
	spot spots.Spot
}

func (s spotItem) Title() string {
	return fmt.Sprintf("%s  %s", s.spot.StartTime.Format("Mon 02 Jan 15:04"), s.spot.Title)
}

func (s spotItem) Description() string {
	parts := []string{s.spot.Address}
	if s.spot.City != "" {
		parts = append(parts, s.spot.City)
	}
	if s.spot.SlotsLeft <= 0 {
		parts = append(parts, "Full")
	} else {
		parts = append(parts, fmt.Sprintf("%d spots left", s.spot.SlotsLeft))
	}
	parts = append(parts, s.spot.PriceLabel())
	return strings.Join(parts, " • ")
}

func (s spotItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{
		s.spot.Title, s.spot.SportCode, s.spot.City, s.spot.Address, s.spot.AbilityLevel,
	}, " "))
}

func buildSpotItems(visible []spots.Spot) []list.Item {
	items := make([]list.Item, 0, len(visible))
	for _, spot := range visible {
		items = append(items, spotItem{spot: spot})
	}
	return items
}

// sportOptions is the cycling order for the sport filter: the "all"
// sentinel followed by every reference sport's match key.
func sportOptions(set refdata.Set) []string {
	options := []string{discovery.All}
	for _, sport := range set.Sports {
		options = append(options, itemKey(sport))
	}
	return options
}

func citySlugs(set refdata.Set) []string {
	slugs := make([]string, 0, len(set.Cities))
	for _, city := range set.Cities {
		slugs = append(slugs, city.Slug)
	}
	return slugs
}

// itemKey mirrors how game records reference a lookup row: the explicit
// code when present, otherwise the upper-cased slug.
func itemKey(item refdata.Item) string {
	if item.Code != nil && *item.Code != "" {
		return *item.Code
	}
	return strings.ToUpper(item.Slug)
}

// nextOption advances to the option after current, wrapping around. An
// unknown current value restarts at the first option.
func nextOption(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	for i, option := range options {
		if option == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func nextDateBucket(current discovery.DateBucket) discovery.DateBucket {
	switch current {
	case discovery.DateAny:
		return discovery.DateToday
	case discovery.DateToday:
		return discovery.DateWeek
	case discovery.DateWeek:
		return discovery.DateNow
	default:
		return discovery.DateAny
	}
}

func caseInsensitiveFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	lower := make([]string, len(targets))
	for i, t := range targets {
		lower[i] = strings.ToLower(t)
	}
	return list.DefaultFilter(term, lower)
}
