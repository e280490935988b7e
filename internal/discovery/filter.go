package discovery

import (
	"strings"
	"time"

	"playbud-discovery/internal/domain/spots"
	"playbud-discovery/internal/timeutil"
)

// Apply returns the subset of spots visible under the given filter state,
// preserving input order. cityLabel is the resolved display name of the
// selected city; pass "" when no city is selected so the city rule is
// skipped. The function is pure and idempotent.
//
// A spot is visible iff every rule holds:
//  1. full sessions are shown, or slots remain
//  2. sport matches (or "all")
//  3. city label matches case-insensitively (when a city is selected)
//  4. the selected ability is a case-insensitive substring of the spot's
//     ability descriptor (deliberately loose; descriptors can be combined
//     strings like "Beginner / casual")
//  5. gender matches case-insensitively (or "all")
//  6. the spot starts strictly after now
//  7. the start falls inside the selected date bucket
func Apply(all []spots.Spot, st State, cityLabel string, now time.Time) []spots.Spot {
	startOfToday := timeutil.StartOfDay(now)
	endOfToday := startOfToday.AddDate(0, 0, 1)
	endOfWeek := startOfToday.AddDate(0, 0, 7)

	visible := make([]spots.Spot, 0, len(all))
	for _, spot := range all {
		if !st.ShowFullGames && spot.SlotsLeft <= 0 {
			continue
		}
		if st.Sport != All && spot.SportCode != st.Sport {
			continue
		}
		if cityLabel != "" && !strings.EqualFold(spot.City, cityLabel) {
			continue
		}
		if st.Ability != All {
			if !strings.Contains(strings.ToLower(spot.AbilityLevel), strings.ToLower(st.Ability)) {
				continue
			}
		}
		if st.Gender != All && !strings.EqualFold(spot.Gender, st.Gender) {
			continue
		}

		// Past-start sessions are never listed, regardless of bucket.
		if !spot.StartTime.After(now) {
			continue
		}

		switch st.Date {
		case DateToday:
			if spot.StartTime.Before(startOfToday) || !spot.StartTime.Before(endOfToday) {
				continue
			}
		case DateWeek:
			if spot.StartTime.Before(startOfToday) || !spot.StartTime.Before(endOfWeek) {
				continue
			}
		case DateNow:
			if now.Before(spot.StartTime) || now.After(spot.EndTime) {
				continue
			}
		}

		visible = append(visible, spot)
	}
	return visible
}

// ReconcileSelection keeps the selected spot id when it is still visible and
// otherwise snaps to the first visible spot ("" when the set is empty). The
// selection pointer must never reference a spot outside the visible set.
func ReconcileSelection(visible []spots.Spot, selectedID string) string {
	for _, spot := range visible {
		if spot.ID == selectedID {
			return selectedID
		}
	}
	if len(visible) == 0 {
		return ""
	}
	return visible[0].ID
}
