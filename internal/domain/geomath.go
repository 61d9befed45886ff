package domain

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// Bounding-box span thresholds (degrees) and the zoom step each maps to.
// Tuned for a slippy-map widget; treat as configuration defaults, not
// projection-derived values.
const (
	spanContinent = 10.0
	spanCountry   = 5.0
	spanRegion    = 1.0
	spanCity      = 0.1

	zoomContinent = 6
	zoomCountry   = 8
	zoomRegion    = 10
	zoomCity      = 12
	zoomStreet    = 14
)

// Distance returns the haversine great-circle distance between two points
// in kilometers. Symmetric, and zero for identical points.
func Distance(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Bounds returns the smallest axis-aligned rectangle containing the given
// points, taking the max/min independently per axis. An empty input yields
// a degenerate box at the origin.
func Bounds(points []Coordinate) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}

	box := BoundingBox{Northeast: points[0], Southwest: points[0]}
	for _, p := range points[1:] {
		box.Northeast.Lat = math.Max(box.Northeast.Lat, p.Lat)
		box.Northeast.Lng = math.Max(box.Northeast.Lng, p.Lng)
		box.Southwest.Lat = math.Min(box.Southwest.Lat, p.Lat)
		box.Southwest.Lng = math.Min(box.Southwest.Lng, p.Lng)
	}
	return box
}

// ZoomLevel maps a bounding box onto a map zoom step using the larger of
// the two spans. Larger spans never yield a higher zoom.
func ZoomLevel(box BoundingBox) int {
	latSpan := box.Northeast.Lat - box.Southwest.Lat
	lngSpan := box.Northeast.Lng - box.Southwest.Lng
	span := math.Max(latSpan, lngSpan)

	switch {
	case span > spanContinent:
		return zoomContinent
	case span > spanCountry:
		return zoomCountry
	case span > spanRegion:
		return zoomRegion
	case span > spanCity:
		return zoomCity
	default:
		return zoomStreet
	}
}
