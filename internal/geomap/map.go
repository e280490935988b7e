package geomap

import (
	"math"

	"playbud-discovery/internal/domain/spots"
)

// View tuning mirrors the discovery map: generous fit padding, a zoom
// ceiling so a single marker never fills the screen, and a floor applied
// when flying to a selection.
const (
	initialZoom      = 10.0
	emptySetZoom     = 11.0
	selectMinZoom    = 12.0
	fitMaxZoom       = 14.0
	fitPadding       = 80
	defaultViewportW = 800
	defaultViewportH = 600
)

// DefaultCenter is the London fallback shared with the normalizer.
var DefaultCenter = LngLat{Lng: spots.DefaultCenterLng, Lat: spots.DefaultCenterLat}

// PlaceholderMessage is rendered instead of a map when no access token is
// configured. Degraded mode is a supported state, not an error.
const PlaceholderMessage = "Map unavailable. Set MAPBOX_ACCESS_TOKEN to view nearby games on the map."

// Config controls map construction.
type Config struct {
	// AccessToken enables the map; empty means degraded placeholder mode.
	AccessToken string
	// DefaultCenter overrides the London fallback recenter target.
	DefaultCenter *LngLat
	// Viewport dimensions in pixels, used for bounds-fit zoom math.
	ViewportW int
	ViewportH int
}

// View is the camera state a renderer should show.
type View struct {
	Center LngLat  `json:"center"`
	Zoom   float64 `json:"zoom"`
}

// Map keeps one marker per visible spot and owns the marker lifecycle. All
// interaction from outside goes through spot ids; nothing else may mutate
// the marker set.
type Map struct {
	enabled       bool
	closed        bool
	view          View
	markers       map[string]Marker
	selected      string
	defaultCenter LngLat
	viewportW     int
	viewportH     int
}

// New builds a map in the configured mode. Without an access token the map
// is degraded: Enabled reports false, sync and select become no-ops and the
// caller should render PlaceholderMessage instead.
func New(cfg Config) *Map {
	center := DefaultCenter
	if cfg.DefaultCenter != nil {
		center = *cfg.DefaultCenter
	}
	w, h := cfg.ViewportW, cfg.ViewportH
	if w <= 0 {
		w = defaultViewportW
	}
	if h <= 0 {
		h = defaultViewportH
	}
	return &Map{
		enabled:       cfg.AccessToken != "",
		view:          View{Center: center, Zoom: initialZoom},
		markers:       make(map[string]Marker),
		defaultCenter: center,
		viewportW:     w,
		viewportH:     h,
	}
}

// Enabled reports whether a real map is active (token configured, not torn
// down).
func (m *Map) Enabled() bool { return m.enabled && !m.closed }

// View returns the current camera state.
func (m *Map) View() View { return m.view }

// SelectedID returns the currently emphasized marker id.
func (m *Map) SelectedID() string { return m.selected }

// Markers returns a snapshot copy of the current marker set.
func (m *Map) Markers() []Marker {
	out := make([]Marker, 0, len(m.markers))
	for _, marker := range m.markers {
		out = append(out, marker)
	}
	return out
}

// SyncSpots reconciles the marker set against the given spot list. Spots
// without a finite coordinate are skipped, never an error. When at least one
// marker is placed the camera fits the bounding box of all markers; an empty
// set eases back to the default center.
func (m *Map) SyncSpots(list []spots.Spot) Delta {
	if !m.Enabled() {
		return Delta{}
	}

	desired := make([]Marker, 0, len(list))
	var bounds Bounds
	for _, spot := range list {
		marker, ok := MarkerForSpot(spot)
		if !ok {
			continue
		}
		marker.Selected = marker.ID == m.selected
		desired = append(desired, marker)
		bounds.Extend(marker.Position)
	}

	delta := Reconcile(m.markers, desired)

	m.markers = make(map[string]Marker, len(desired))
	for _, marker := range desired {
		m.markers[marker.ID] = marker
	}

	if bounds.IsEmpty() {
		m.view = View{Center: m.defaultCenter, Zoom: emptySetZoom}
		return delta
	}
	m.view = View{
		Center: bounds.Center(),
		Zoom:   zoomForBounds(bounds, m.viewportW, m.viewportH, fitPadding, fitMaxZoom),
	}
	return delta
}

// Select emphasizes the marker for the given spot id and flies the camera
// toward it, raising the zoom to at least the selection floor but never
// zooming back out. Passing an unknown id clears the emphasis.
func (m *Map) Select(id string) Delta {
	if !m.Enabled() {
		return Delta{}
	}

	var delta Delta
	for markerID, marker := range m.markers {
		selected := markerID == id
		if marker.Selected == selected {
			continue
		}
		marker.Selected = selected
		m.markers[markerID] = marker
		delta.Updated = append(delta.Updated, marker)
	}
	m.selected = id

	if target, ok := m.markers[id]; ok {
		m.view = View{
			Center: target.Position,
			Zoom:   math.Max(m.view.Zoom, selectMinZoom),
		}
	}
	return delta
}

// Close releases every marker and marks the map destroyed. Further calls are
// no-ops; a closed map never leaks marker state.
func (m *Map) Close() Delta {
	if m.closed {
		return Delta{}
	}
	m.closed = true

	delta := Reconcile(m.markers, nil)
	m.markers = map[string]Marker{}
	m.selected = ""
	return delta
}
