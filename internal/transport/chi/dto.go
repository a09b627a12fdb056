package chi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/entity"
	domfacet "github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/facet"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/result"
)

// pointDTO is a GeoJSON-style lng/lat pair.
type pointDTO struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// entityDTO is the wire shape of an entity.
type entityDTO struct {
	ID           string            `json:"id"`
	Kind         string            `json:"kind"`
	Name         string            `json:"name"`
	Slug         string            `json:"slug,omitempty"`
	City         string            `json:"city,omitempty"`
	Country      string            `json:"country,omitempty"`
	Location     *pointDTO         `json:"location,omitempty"`
	Route        []pointDTO        `json:"route,omitempty"`
	Cuisines     []string          `json:"cuisines,omitempty"`
	Dietary      []string          `json:"dietary,omitempty"`
	Features     []string          `json:"features,omitempty"`
	Price        float64           `json:"price"`
	Rating       float64           `json:"rating"`
	ReviewCount  int64             `json:"reviewCount"`
	Popularity   int64             `json:"popularity"`
	ViewCount    int64             `json:"viewCount"`
	Active       bool              `json:"active"`
	CreatedAt    time.Time         `json:"createdAt"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	DistanceM    *float64          `json:"distanceMeters,omitempty"`
	Availability []windowDTO       `json:"availability,omitempty"`
}

type windowDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// pageDTO is the paginated listing envelope.
type pageDTO struct {
	Items   []entityDTO `json:"items"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
	Total   int         `json:"total"`
	HasMore bool        `json:"hasMore"`
}

// hitsDTO is the spatial result envelope.
type hitsDTO struct {
	Items []entityDTO `json:"items"`
}

// facetsDTO is the facet aggregation envelope.
type facetsDTO struct {
	Categories map[string][]bucketDTO `json:"categories"`
	Price      priceRangeDTO          `json:"price"`
}

type bucketDTO struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type priceRangeDTO struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// reviewRequestDTO is the review submission body.
type reviewRequestDTO struct {
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
}

type reviewDTO struct {
	ID        string    `json:"id"`
	EntityID  string    `json:"entityId"`
	Rating    float64   `json:"rating"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type viewsDTO struct {
	Views int64 `json:"views"`
}

// errorDTO is the uniform error body.
type errorDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func entityToDTO(e entity.Entity) entityDTO {
	dto := entityDTO{
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
		dto.Location = &pointDTO{Lng: e.Location.Lng, Lat: e.Location.Lat}
	}
	for _, p := range e.Route {
		dto.Route = append(dto.Route, pointDTO{Lng: p.Lng, Lat: p.Lat})
	}
	for _, w := range e.Availability {
		dto.Availability = append(dto.Availability, windowDTO{Start: w.Start, End: w.End})
	}
	return dto
}

func hitToDTO(h result.Hit) entityDTO {
	dto := entityToDTO(h.Entity())
	dto.DistanceM = h.DistanceMeters()
	return dto
}

func hitsToDTO(hits []result.Hit) hitsDTO {
	items := make([]entityDTO, 0, len(hits))
	for _, h := range hits {
		items = append(items, hitToDTO(h))
	}
	return hitsDTO{Items: items}
}

func pageToDTO(p result.Page) pageDTO {
	items := make([]entityDTO, 0, len(p.Items()))
	for _, e := range p.Items() {
		items = append(items, entityToDTO(e))
	}
	return pageDTO{
		Items:   items,
		Page:    p.Page(),
		Limit:   p.Limit(),
		Total:   p.Total(),
		HasMore: p.HasMore(),
	}
}

func facetsToDTO(r domfacet.Result) facetsDTO {
	categories := make(map[string][]bucketDTO, len(r.Categories()))
	for name, buckets := range r.Categories() {
		out := make([]bucketDTO, 0, len(buckets))
		for _, b := range buckets {
			out = append(out, bucketDTO{Value: b.Value, Count: b.Count})
		}
		categories[name] = out
	}
	return facetsDTO{
		Categories: categories,
		Price:      priceRangeDTO{Min: r.Price().Min, Max: r.Price().Max},
	}
}

// filterOptionsFromQuery reads the recognized filter surface off the query
// string. Category params accept repetition and comma-separated lists; the
// compiler splits both.
func filterOptionsFromQuery(r *http.Request) filter.Options {
	q := r.URL.Query()
	opts := filter.Options{
		Kind:       q.Get("kind"),
		City:       q.Get("city"),
		Country:    q.Get("country"),
		Cuisines:   q["cuisines"],
		Dietary:    q["dietary"],
		Features:   q["features"],
		MinPrice:   floatParam(q.Get("minPrice")),
		MaxPrice:   floatParam(q.Get("maxPrice")),
		MinRating:  floatParam(q.Get("minRating")),
		OpenNow:    boolParam(q.Get("openNow")),
		ActiveOnly: boolParam(q.Get("activeOnly")),
	}
	return opts
}

func floatParam(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func boolParam(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}

func intParam(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
