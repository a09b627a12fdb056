// Package entity defines the searchable travel-domain record. Entities are
// written by the ingestion path and read-only to the search core.
package entity

import (
	"time"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/geo"
)

// Kind enumerates the entity kinds served by the search core.
type Kind string

const (
	KindRestaurant Kind = "restaurant"
	KindTrain      Kind = "train"
	KindCab        Kind = "cab"
	KindPlace      Kind = "place"
)

// IsValid reports whether k is a known entity kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindRestaurant, KindTrain, KindCab, KindPlace:
		return true
	}
	return false
}

// Window is a single availability interval. An entity is "open now" when the
// current instant falls inside at least one window, boundaries inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// Covers reports whether t lies inside the window.
func (w Window) Covers(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Entity is a searchable record. The primary Point is optional: trains and
// user-history rows often carry only a Route or no geometry at all.
type Entity struct {
	ID      string
	Kind    Kind
	Name    string
	Slug    string
	City    string
	Country string

	Location *geo.Point
	Route    geo.Path

	Cuisines []string
	Dietary  []string
	Features []string

	Price       float64
	Rating      float64
	ReviewCount int64
	Popularity  int64
	ViewCount   int64

	Active       bool
	Availability []Window
	CreatedAt    time.Time

	// Metadata is a bounded key-value extension map of primitive string
	// values; it is carried opaquely and never interpreted by the core.
	Metadata map[string]string
}

// HasLocation reports whether the entity carries a valid primary point.
func (e *Entity) HasLocation() bool {
	return e.Location != nil && geo.ValidatePoint(*e.Location) == nil
}

// HasRoute reports whether the entity carries a valid path geometry.
func (e *Entity) HasRoute() bool {
	return geo.ValidatePath(e.Route) == nil
}

// OpenAt reports whether any availability window covers t. An entity with
// no windows is never "open now" but matches when the filter is absent.
func (e *Entity) OpenAt(t time.Time) bool {
	for _, w := range e.Availability {
		if w.Covers(t) {
			return true
		}
	}
	return false
}
