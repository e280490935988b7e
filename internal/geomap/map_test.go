package geomap

import (
	"math"
	"testing"

	"playbud-discovery/internal/domain/spots"
)

func spotAt(id string, lng, lat float64) spots.Spot {
	return spots.Spot{ID: id, SportCode: "BADMINTON", Lng: lng, Lat: lat}
}

func enabledMap() *Map {
	return New(Config{AccessToken: "pk.test"})
}

func TestSyncSpotsSkipsNonFiniteCoordinates(t *testing.T) {
	m := enabledMap()
	list := []spots.Spot{
		spotAt("s1", -0.1, 51.5),
		spotAt("s2", math.NaN(), 51.5),
		spotAt("s3", -2.2, 53.4),
		spotAt("s4", math.Inf(1), 53.4),
		spotAt("s5", -1.9, 52.5),
	}

	delta := m.SyncSpots(list)

	if len(delta.Added) != 3 {
		t.Fatalf("expected 3 markers (5 spots, 2 non-finite), got %d", len(delta.Added))
	}
	if len(m.Markers()) != 3 {
		t.Fatalf("expected 3 markers retained, got %d", len(m.Markers()))
	}
}

func TestSyncSpotsFitsBoundsWhenMarkersPlaced(t *testing.T) {
	m := enabledMap()
	m.SyncSpots([]spots.Spot{spotAt("s1", -0.2, 51.4), spotAt("s2", 0.0, 51.6)})

	view := m.View()
	if math.Abs(view.Center.Lng-(-0.1)) > 1e-9 || math.Abs(view.Center.Lat-51.5) > 1e-9 {
		t.Fatalf("expected bounds midpoint center, got %+v", view.Center)
	}
	if view.Zoom > fitMaxZoom {
		t.Fatalf("zoom must respect the ceiling, got %f", view.Zoom)
	}
}

func TestSyncSpotsSinglePointHitsZoomCeiling(t *testing.T) {
	m := enabledMap()
	m.SyncSpots([]spots.Spot{spotAt("s1", -0.1, 51.5)})

	if got := m.View().Zoom; got != fitMaxZoom {
		t.Fatalf("single marker must cap at max zoom, got %f", got)
	}
}

func TestSyncSpotsEmptySetEasesToDefaultCenter(t *testing.T) {
	custom := LngLat{Lng: -2.242631, Lat: 53.480759}
	m := New(Config{AccessToken: "pk.test", DefaultCenter: &custom})

	delta := m.SyncSpots(nil)
	if !delta.Empty() {
		t.Fatalf("expected empty delta, got %+v", delta)
	}
	view := m.View()
	if view.Center != custom || view.Zoom != emptySetZoom {
		t.Fatalf("expected default-center view, got %+v", view)
	}
}

func TestSyncSpotsComputesRemovals(t *testing.T) {
	m := enabledMap()
	m.SyncSpots([]spots.Spot{spotAt("s1", -0.1, 51.5), spotAt("s2", -0.2, 51.6)})

	delta := m.SyncSpots([]spots.Spot{spotAt("s2", -0.2, 51.6), spotAt("s3", -0.3, 51.7)})

	if len(delta.Added) != 1 || delta.Added[0].ID != "s3" {
		t.Fatalf("expected s3 added, got %+v", delta.Added)
	}
	if len(delta.Removed) != 1 || delta.Removed[0] != "s1" {
		t.Fatalf("expected s1 removed, got %+v", delta.Removed)
	}
	if len(delta.Updated) != 0 {
		t.Fatalf("unchanged marker must not update, got %+v", delta.Updated)
	}
}

func TestSelectRaisesZoomButNeverLowers(t *testing.T) {
	m := enabledMap()
	m.SyncSpots([]spots.Spot{spotAt("s1", -0.1, 51.5), spotAt("s2", 5.0, 45.0)})

	m.Select("s1")
	if got := m.View().Zoom; got < selectMinZoom {
		t.Fatalf("selection must raise zoom to at least %f, got %f", selectMinZoom, got)
	}

	// A single tightly-fit marker sits above the selection floor already;
	// selecting it must not zoom back out.
	m2 := enabledMap()
	m2.SyncSpots([]spots.Spot{spotAt("s1", -0.1, 51.5)})
	before := m2.View().Zoom // fitMaxZoom
	m2.Select("s1")
	if got := m2.View().Zoom; got != before {
		t.Fatalf("already-closer zoom must be kept, got %f want %f", got, before)
	}
}

func TestSelectUpdatesEmphasis(t *testing.T) {
	m := enabledMap()
	m.SyncSpots([]spots.Spot{spotAt("s1", -0.1, 51.5), spotAt("s2", -0.2, 51.6)})

	delta := m.Select("s2")
	if len(delta.Updated) != 1 || !delta.Updated[0].Selected || delta.Updated[0].ID != "s2" {
		t.Fatalf("expected s2 emphasized, got %+v", delta.Updated)
	}

	delta = m.Select("s1")
	if len(delta.Updated) != 2 {
		t.Fatalf("expected emphasis swap on two markers, got %+v", delta.Updated)
	}
	for _, marker := range delta.Updated {
		if marker.ID == "s1" && !marker.Selected {
			t.Fatal("s1 should be selected")
		}
		if marker.ID == "s2" && marker.Selected {
			t.Fatal("s2 should be de-emphasized")
		}
	}
}

func TestSelectionSurvivesSync(t *testing.T) {
	m := enabledMap()
	m.SyncSpots([]spots.Spot{spotAt("s1", -0.1, 51.5), spotAt("s2", -0.2, 51.6)})
	m.Select("s2")

	m.SyncSpots([]spots.Spot{spotAt("s2", -0.2, 51.6)})
	for _, marker := range m.Markers() {
		if marker.ID == "s2" && !marker.Selected {
			t.Fatal("selection emphasis must survive a sync")
		}
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	m := enabledMap()
	m.SyncSpots([]spots.Spot{spotAt("s1", -0.1, 51.5)})

	delta := m.Close()
	if len(delta.Removed) != 1 {
		t.Fatalf("expected marker release on close, got %+v", delta)
	}
	if m.Enabled() {
		t.Fatal("closed map must not report enabled")
	}
	if !m.SyncSpots([]spots.Spot{spotAt("s2", -0.2, 51.6)}).Empty() {
		t.Fatal("closed map must ignore syncs")
	}
	if !m.Close().Empty() {
		t.Fatal("second close must be a no-op")
	}
}

func TestDegradedModeWithoutToken(t *testing.T) {
	m := New(Config{})
	if m.Enabled() {
		t.Fatal("tokenless map must be degraded")
	}
	if !m.SyncSpots([]spots.Spot{spotAt("s1", -0.1, 51.5)}).Empty() {
		t.Fatal("degraded map must not create markers")
	}
	if !m.Select("s1").Empty() {
		t.Fatal("degraded map must not emphasize markers")
	}
	if PlaceholderMessage == "" {
		t.Fatal("placeholder message must be available to render")
	}
}

func TestMarkerLabel(t *testing.T) {
	cases := map[string]string{
		"BADMINTON": "BA",
		"football":  "FO",
		"x":         "X",
		"":          "SP",
		"  ":        "SP",
	}
	for input, want := range cases {
		if got := markerLabel(input); got != want {
			t.Fatalf("markerLabel(%q) expected %q, got %q", input, want, got)
		}
	}
}

func TestAverageCenterFallbacks(t *testing.T) {
	fallback := DefaultCenter

	if got := AverageCenter(nil, fallback); got != fallback {
		t.Fatalf("empty set must fall back, got %+v", got)
	}

	withNaN := []spots.Spot{spotAt("s1", math.NaN(), 51.5)}
	if got := AverageCenter(withNaN, fallback); got != fallback {
		t.Fatalf("non-finite average must fall back, got %+v", got)
	}

	list := []spots.Spot{spotAt("s1", -0.2, 51.4), spotAt("s2", 0.0, 51.6)}
	got := AverageCenter(list, fallback)
	if math.Abs(got.Lng-(-0.1)) > 1e-9 || math.Abs(got.Lat-51.5) > 1e-9 {
		t.Fatalf("unexpected average: %+v", got)
	}
}

func TestReconcileDetectsPositionChange(t *testing.T) {
	prev := map[string]Marker{
		"s1": {ID: "s1", Position: LngLat{Lng: -0.1, Lat: 51.5}, Label: "BA"},
	}
	desired := []Marker{{ID: "s1", Position: LngLat{Lng: -0.3, Lat: 51.5}, Label: "BA"}}

	delta := Reconcile(prev, desired)
	if len(delta.Updated) != 1 || len(delta.Added) != 0 || len(delta.Removed) != 0 {
		t.Fatalf("expected a single update, got %+v", delta)
	}
}
