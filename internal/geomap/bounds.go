package geomap

import (
	"math"

	"playbud-discovery/internal/domain/spots"
)

// Bounds is a geographic bounding box.
type Bounds struct {
	SW  LngLat
	NE  LngLat
	set bool
}

// Extend grows the bounds to include the given coordinate.
func (b *Bounds) Extend(p LngLat) {
	if !b.set {
		b.SW, b.NE = p, p
		b.set = true
		return
	}
	b.SW.Lng = math.Min(b.SW.Lng, p.Lng)
	b.SW.Lat = math.Min(b.SW.Lat, p.Lat)
	b.NE.Lng = math.Max(b.NE.Lng, p.Lng)
	b.NE.Lat = math.Max(b.NE.Lat, p.Lat)
}

// Center is the midpoint of the box.
func (b Bounds) Center() LngLat {
	return LngLat{
		Lng: (b.SW.Lng + b.NE.Lng) / 2,
		Lat: (b.SW.Lat + b.NE.Lat) / 2,
	}
}

// IsEmpty reports whether nothing was ever added to the box.
func (b Bounds) IsEmpty() bool { return !b.set }

// AverageCenter is the arithmetic mean of the spot coordinates, falling back
// when the set is empty or the averages come out non-finite.
func AverageCenter(list []spots.Spot, fallback LngLat) LngLat {
	if len(list) == 0 {
		return fallback
	}
	var sumLng, sumLat float64
	for _, s := range list {
		sumLng += s.Lng
		sumLat += s.Lat
	}
	avg := LngLat{Lng: sumLng / float64(len(list)), Lat: sumLat / float64(len(list))}
	if !finite(avg.Lng) || !finite(avg.Lat) {
		return fallback
	}
	return avg
}

// zoomForBounds computes the highest zoom at which the box fits the viewport
// with the given padding, capped at maxZoom. Uses web-mercator math against
// a 512px world tile. A degenerate (single point) box maxes out.
func zoomForBounds(b Bounds, viewportW, viewportH, padding int, maxZoom float64) float64 {
	const worldPx = 512.0

	usableW := float64(viewportW - 2*padding)
	usableH := float64(viewportH - 2*padding)
	if usableW <= 0 || usableH <= 0 {
		return maxZoom
	}

	lngFraction := (b.NE.Lng - b.SW.Lng) / 360
	latFraction := (mercatorLat(b.NE.Lat) - mercatorLat(b.SW.Lat)) / math.Pi

	zoom := maxZoom
	if lngFraction > 0 {
		zoom = math.Min(zoom, math.Log2(usableW/(worldPx*lngFraction)))
	}
	if latFraction > 0 {
		zoom = math.Min(zoom, math.Log2(usableH/(worldPx*latFraction)))
	}
	if zoom < 0 {
		return 0
	}
	return zoom
}

func mercatorLat(lat float64) float64 {
	rad := lat * math.Pi / 180
	return math.Log(math.Tan(math.Pi/4 + rad/2))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
