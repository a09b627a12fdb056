package naveeka

import (
	"time"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/entity"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/geo"
	domfacet "github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/facet"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/page"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/result"
	reviewuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/review"
)

// Entity kinds.
const (
	KindRestaurant = "restaurant"
	KindTrain      = "train"
	KindCab        = "cab"
	KindPlace      = "place"
)

// Sort orders for List queries.
type Sort string

const (
	SortRatingDesc Sort = Sort(page.SortRatingDesc)
	SortPriceAsc   Sort = Sort(page.SortPriceAsc)
	SortPriceDesc  Sort = Sort(page.SortPriceDesc)
	SortNewest     Sort = Sort(page.SortNewest)
	SortPopularity Sort = Sort(page.SortPopularity)
)

// Point is a WGS84 coordinate (longitude first).
type Point struct {
	Lng float64
	Lat float64
}

// Window is a UTC availability interval, inclusive on both ends.
type Window struct {
	Start time.Time
	End   time.Time
}

// Entity is a searchable travel entity.
type Entity struct {
	ID      string
	Kind    string
	Name    string
	Slug    string
	City    string
	Country string

	Location *Point
	Route    []Point

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
	Metadata     map[string]string
}

// Filter narrows search results. Zero values mean "no constraint".
type Filter struct {
	Kind    string
	City    string
	Country string

	Cuisines []string // any-of
	Features []string // any-of
	Dietary  []string // all-of

	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64

	OpenNow    bool
	ActiveOnly bool
}

// Query describes a paginated List request.
type Query struct {
	Filter Filter
	Sort   Sort
	Page   int
	Limit  int
}

// Hit is a single search result, optionally with a distance.
type Hit struct {
	Entity         Entity
	DistanceMeters *float64
}

// Page is one page of List results.
type Page struct {
	Items   []Entity
	Page    int
	Limit   int
	Total   int
	HasMore bool
}

// Bucket is one facet value with its entity count.
type Bucket struct {
	Value string
	Count int
}

// PriceRange is the min/max price over the filtered population.
type PriceRange struct {
	Min float64
	Max float64
}

// Facets holds per-category buckets and the price envelope.
type Facets struct {
	Categories map[string][]Bucket
	Price      PriceRange
}

// Review is an accepted review submission.
type Review struct {
	ID        string
	EntityID  string
	Rating    float64
	Text      string
	CreatedAt time.Time
}

// --- domain conversions ---

func filterOptions(f Filter) filter.Options {
	return filter.Options{
		Kind:       f.Kind,
		City:       f.City,
		Country:    f.Country,
		Cuisines:   f.Cuisines,
		Features:   f.Features,
		Dietary:    f.Dietary,
		MinPrice:   f.MinPrice,
		MaxPrice:   f.MaxPrice,
		MinRating:  f.MinRating,
		OpenNow:    f.OpenNow,
		ActiveOnly: f.ActiveOnly,
	}
}

func entityFromDomain(e entity.Entity) Entity {
	out := Entity{
		ID:          e.ID,
		Kind:        string(e.Kind),
		Name:        e.Name,
		Slug:        e.Slug,
		City:        e.City,
		Country:     e.Country,
		Cuisines:    e.Cuisines,
		Dietary:     e.Dietary,
		Features:    e.Features,
		Price:       e.Price,
		Rating:      e.Rating,
		ReviewCount: e.ReviewCount,
		Popularity:  e.Popularity,
		ViewCount:   e.ViewCount,
		Active:      e.Active,
		CreatedAt:   e.CreatedAt,
		Metadata:    e.Metadata,
	}
	if e.Location != nil {
		out.Location = &Point{Lng: e.Location.Lng, Lat: e.Location.Lat}
	}
	for _, p := range e.Route {
		out.Route = append(out.Route, Point{Lng: p.Lng, Lat: p.Lat})
	}
	for _, w := range e.Availability {
		out.Availability = append(out.Availability, Window{Start: w.Start, End: w.End})
	}
	return out
}

func entityToDomain(e Entity) entity.Entity {
	out := entity.Entity{
		ID:          e.ID,
		Kind:        entity.Kind(e.Kind),
		Name:        e.Name,
		Slug:        e.Slug,
		City:        e.City,
		Country:     e.Country,
		Cuisines:    e.Cuisines,
		Dietary:     e.Dietary,
		Features:    e.Features,
		Price:       e.Price,
		Rating:      e.Rating,
		ReviewCount: e.ReviewCount,
		Popularity:  e.Popularity,
		ViewCount:   e.ViewCount,
		Active:      e.Active,
		CreatedAt:   e.CreatedAt,
		Metadata:    e.Metadata,
	}
	if e.Location != nil {
		out.Location = &geo.Point{Lng: e.Location.Lng, Lat: e.Location.Lat}
	}
	for _, p := range e.Route {
		out.Route = append(out.Route, geo.Point{Lng: p.Lng, Lat: p.Lat})
	}
	for _, w := range e.Availability {
		out.Availability = append(out.Availability, entity.Window{Start: w.Start, End: w.End})
	}
	return out
}

func entitiesFromDomain(entities []entity.Entity) []Entity {
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		out = append(out, entityFromDomain(e))
	}
	return out
}

func hitsFromDomain(hits []result.Hit) []Hit {
	out := make([]Hit, 0, len(hits))
	for i := range hits {
		h := Hit{Entity: entityFromDomain(hits[i].Entity())}
		if d := hits[i].DistanceMeters(); d != nil {
			meters := *d
			h.DistanceMeters = &meters
		}
		out = append(out, h)
	}
	return out
}

func pageFromDomain(p result.Page) Page {
	return Page{
		Items:   entitiesFromDomain(p.Items()),
		Page:    p.Page(),
		Limit:   p.Limit(),
		Total:   p.Total(),
		HasMore: p.HasMore(),
	}
}

func facetsFromDomain(r domfacet.Result) Facets {
	categories := make(map[string][]Bucket, len(r.Categories()))
	for field, buckets := range r.Categories() {
		bs := make([]Bucket, 0, len(buckets))
		for _, b := range buckets {
			bs = append(bs, Bucket{Value: b.Value, Count: b.Count})
		}
		categories[field] = bs
	}
	return Facets{
		Categories: categories,
		Price:      PriceRange{Min: r.Price().Min, Max: r.Price().Max},
	}
}

func reviewFromDomain(r reviewuc.Review) Review {
	return Review{
		ID:        r.ID,
		EntityID:  r.EntityID,
		Rating:    r.Rating,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
	}
}
