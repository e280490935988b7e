package geomap

import (
	"sort"
	"strings"

	"playbud-discovery/internal/domain/spots"
)

// LngLat is a geographic coordinate pair in Mapbox order.
type LngLat struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Marker is the visual pin for one spot.
type Marker struct {
	ID       string `json:"id"`
	Position LngLat `json:"position"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Delta is the explicit reconciliation result between two marker sets. A
// renderer applies removals, then additions, then updates; the layer itself
// never reaches into a rendering framework's lifecycle.
type Delta struct {
	Added   []Marker `json:"added"`
	Removed []string `json:"removed"`
	Updated []Marker `json:"updated"`
}

// Empty reports whether the delta changes nothing.
func (d Delta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Updated) == 0
}

// MarkerForSpot builds the marker representation of a spot. The second
// return is false when the spot has no finite coordinate and must be skipped.
func MarkerForSpot(spot spots.Spot) (Marker, bool) {
	if !spot.HasFiniteCoordinate() {
		return Marker{}, false
	}
	return Marker{
		ID:       spot.ID,
		Position: LngLat{Lng: spot.Lng, Lat: spot.Lat},
		Label:    markerLabel(spot.SportCode),
	}, true
}

// markerLabel is the 1-2 character pin text derived from the sport code.
func markerLabel(sportCode string) string {
	code := strings.ToUpper(strings.TrimSpace(sportCode))
	if code == "" {
		return "SP"
	}
	runes := []rune(code)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}

// Reconcile computes the delta that transforms the previous marker set into
// the desired one. Markers present in both sets are reported as updates only
// when their position, label or selection emphasis changed.
func Reconcile(prev map[string]Marker, desired []Marker) Delta {
	var delta Delta
	seen := make(map[string]bool, len(desired))

	for _, marker := range desired {
		seen[marker.ID] = true
		existing, ok := prev[marker.ID]
		if !ok {
			delta.Added = append(delta.Added, marker)
			continue
		}
		if existing != marker {
			delta.Updated = append(delta.Updated, marker)
		}
	}

	for id := range prev {
		if !seen[id] {
			delta.Removed = append(delta.Removed, id)
		}
	}
	sort.Strings(delta.Removed)
	return delta
}
