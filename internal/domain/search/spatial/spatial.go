// Package spatial models the spatial strategy of a search request: none,
// radius-from-point, or bounding-box containment. Exactly one variant is
// active per request.
package spatial

import (
	"fmt"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/geo"
)

// Hard result ceilings per strategy. Client limits above these are clamped,
// never rejected.
const (
	// MaxRadiusResults bounds a radius search.
	MaxRadiusResults = 200
	// MaxBoxResults bounds a bounding-box search, which is typically a
	// viewport enumeration and so allowed a higher ceiling.
	MaxBoxResults = 1000
)

// Strategy tags the active spatial variant.
type Strategy string

const (
	StrategyNone   Strategy = "none"
	StrategyRadius Strategy = "radius"
	StrategyBox    Strategy = "box"
)

// Query is a validated spatial predicate. The zero value is the filter-only
// strategy (no geometric constraint, no geometric ordering).
type Query struct {
	strategy     Strategy
	center       geo.Point
	radiusMeters float64
	minLng       float64
	minLat       float64
	maxLng       float64
	maxLat       float64
}

// None returns the filter-only query.
func None() Query {
	return Query{strategy: StrategyNone}
}

// RadiusFromPoint builds a radius query around center. The radius arrives in
// kilometers from the caller and is stored in meters. The center is validated
// defensively: it is externally supplied input.
func RadiusFromPoint(center geo.Point, radiusKm float64) (Query, error) {
	if err := geo.ValidatePoint(center); err != nil {
		return Query{}, err
	}
	if radiusKm <= 0 {
		return Query{}, fmt.Errorf("%w: radius must be positive, got %v km", domain.ErrInvalidRange, radiusKm)
	}
	return Query{
		strategy:     StrategyRadius,
		center:       center,
		radiusMeters: radiusKm * 1000,
	}, nil
}

// BoundingBox builds a containment query for the closed box polygon. Corner
// coordinates are validated; a degenerate box (min above max on either axis)
// is legal and yields an empty result set downstream.
func BoundingBox(minLng, minLat, maxLng, maxLat float64) (Query, error) {
	for _, p := range []geo.Point{{Lng: minLng, Lat: minLat}, {Lng: maxLng, Lat: maxLat}} {
		if err := geo.ValidatePoint(p); err != nil {
			return Query{}, err
		}
	}
	return Query{
		strategy: StrategyBox,
		minLng:   minLng,
		minLat:   minLat,
		maxLng:   maxLng,
		maxLat:   maxLat,
	}, nil
}

// Strategy returns the active variant tag.
func (q Query) Strategy() Strategy {
	if q.strategy == "" {
		return StrategyNone
	}
	return q.strategy
}

// Center returns the radius-search center point.
func (q Query) Center() geo.Point { return q.center }

// RadiusMeters returns the search radius in meters.
func (q Query) RadiusMeters() float64 { return q.radiusMeters }

// Ring returns the closed 5-vertex polygon of a box query.
func (q Query) Ring() geo.Ring {
	return geo.BoxRing(q.minLng, q.minLat, q.maxLng, q.maxLat)
}

// Degenerate reports whether a box query can match nothing.
func (q Query) Degenerate() bool {
	return q.strategy == StrategyBox && (q.minLng > q.maxLng || q.minLat > q.maxLat)
}

// Cap returns the hard result ceiling for the strategy, or 0 when the
// strategy imposes none.
func (q Query) Cap() int {
	switch q.Strategy() {
	case StrategyRadius:
		return MaxRadiusResults
	case StrategyBox:
		return MaxBoxResults
	}
	return 0
}

// ClampLimit applies the strategy cap to a requested limit. A non-positive
// limit means "as many as the cap allows".
func (q Query) ClampLimit(limit int) int {
	cap := q.Cap()
	if cap == 0 {
		return limit
	}
	if limit <= 0 || limit > cap {
		return cap
	}
	return limit
}
