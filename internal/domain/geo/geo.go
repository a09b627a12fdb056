package geo

import (
	"fmt"
	"math"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain"
)

// EarthRadiusMeters is the mean radius of Earth used for Haversine distance.
// The store backends use the same spherical approximation, so distance
// ordering here matches an indexed spatial query.
const EarthRadiusMeters = 6_371_000.0

// Point is a WGS84 coordinate pair in GeoJSON axis order (longitude first).
type Point struct {
	Lng float64
	Lat float64
}

// Path is an ordered sequence of at least two points (a GeoJSON LineString).
type Path []Point

// ValidatePoint checks the coordinate-range invariant: lng in [-180,180],
// lat in [-90,90]. Non-finite values are rejected.
func ValidatePoint(p Point) error {
	if math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) || math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) {
		return fmt.Errorf("%w: non-finite coordinate (%v, %v)", domain.ErrInvalidGeometry, p.Lng, p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of [-180,180]", domain.ErrInvalidGeometry, p.Lng)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of [-90,90]", domain.ErrInvalidGeometry, p.Lat)
	}
	return nil
}

// ValidateCoords checks a raw coordinate slice as produced by JSON input.
// Exactly two elements, then the ValidatePoint invariant.
func ValidateCoords(coords []float64) (Point, error) {
	if len(coords) != 2 {
		return Point{}, fmt.Errorf("%w: expected [lng, lat], got %d coordinates", domain.ErrInvalidGeometry, len(coords))
	}
	p := Point{Lng: coords[0], Lat: coords[1]}
	if err := ValidatePoint(p); err != nil {
		return Point{}, err
	}
	return p, nil
}

// ValidatePath checks every vertex and requires at least two of them.
func ValidatePath(path Path) error {
	if len(path) < 2 {
		return fmt.Errorf("%w: path needs at least 2 vertices, got %d", domain.ErrInvalidGeometry, len(path))
	}
	for i, p := range path {
		if err := ValidatePoint(p); err != nil {
			return fmt.Errorf("vertex %d: %w", i, err)
		}
	}
	return nil
}

// Haversine returns the great-circle distance in meters between two points.
func Haversine(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// Ring is a closed polygon boundary: first and last vertex are equal.
type Ring []Point

// BoxRing builds the closed 5-vertex ring for an axis-aligned bounding box.
func BoxRing(minLng, minLat, maxLng, maxLat float64) Ring {
	return Ring{
		{Lng: minLng, Lat: minLat},
		{Lng: maxLng, Lat: minLat},
		{Lng: maxLng, Lat: maxLat},
		{Lng: minLng, Lat: maxLat},
		{Lng: minLng, Lat: minLat},
	}
}

// Contains reports whether p lies within or on the boundary of the ring,
// using the even-odd ray-casting rule with an explicit edge check so that
// boundary points count as inside.
func (r Ring) Contains(p Point) bool {
	n := len(r)
	if n < 4 {
		return false
	}
	inside := false
	for i := 0; i < n-1; i++ {
		a, b := r[i], r[i+1]
		if onSegment(p, a, b) {
			return true
		}
		if (a.Lat > p.Lat) != (b.Lat > p.Lat) {
			x := a.Lng + (p.Lat-a.Lat)/(b.Lat-a.Lat)*(b.Lng-a.Lng)
			if p.Lng < x {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(p, a, b Point) bool {
	cross := (b.Lng-a.Lng)*(p.Lat-a.Lat) - (b.Lat-a.Lat)*(p.Lng-a.Lng)
	if math.Abs(cross) > 1e-12 {
		return false
	}
	return p.Lng >= math.Min(a.Lng, b.Lng) && p.Lng <= math.Max(a.Lng, b.Lng) &&
		p.Lat >= math.Min(a.Lat, b.Lat) && p.Lat <= math.Max(a.Lat, b.Lat)
}
