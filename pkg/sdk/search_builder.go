package naveeka

import "context"

// SearchBuilder is a fluent builder for entity queries.
type SearchBuilder struct {
	svc *SearchService

	f     Filter
	sort  Sort
	page  int
	limit int

	// Geo parameters.
	hasCenter bool
	lng, lat  float64
	radiusKm  float64

	hasBox                         bool
	minLng, minLat, maxLng, maxLat float64
}

// Query starts a fluent query against the entity index.
func (s *SearchService) Query() *SearchBuilder {
	return &SearchBuilder{svc: s}
}

// Kind restricts results to one entity kind.
func (b *SearchBuilder) Kind(kind string) *SearchBuilder {
	b.f.Kind = kind
	return b
}

// City restricts results to one city.
func (b *SearchBuilder) City(city string) *SearchBuilder {
	b.f.City = city
	return b
}

// Country restricts results to one country code.
func (b *SearchBuilder) Country(country string) *SearchBuilder {
	b.f.Country = country
	return b
}

// Cuisines matches entities with any of the given cuisines.
func (b *SearchBuilder) Cuisines(cuisines ...string) *SearchBuilder {
	b.f.Cuisines = cuisines
	return b
}

// Features matches entities with any of the given features.
func (b *SearchBuilder) Features(features ...string) *SearchBuilder {
	b.f.Features = features
	return b
}

// Dietary matches entities carrying all of the given dietary tags.
func (b *SearchBuilder) Dietary(tags ...string) *SearchBuilder {
	b.f.Dietary = tags
	return b
}

// PriceBetween bounds the price range, inclusive.
func (b *SearchBuilder) PriceBetween(min, max float64) *SearchBuilder {
	b.f.MinPrice = &min
	b.f.MaxPrice = &max
	return b
}

// MinRating sets the minimum aggregate rating.
func (b *SearchBuilder) MinRating(rating float64) *SearchBuilder {
	b.f.MinRating = &rating
	return b
}

// OpenNow keeps only entities available at query time.
func (b *SearchBuilder) OpenNow() *SearchBuilder {
	b.f.OpenNow = true
	return b
}

// ActiveOnly keeps only active entities.
func (b *SearchBuilder) ActiveOnly() *SearchBuilder {
	b.f.ActiveOnly = true
	return b
}

// Near sets the geographic center and radius in kilometers.
func (b *SearchBuilder) Near(lng, lat, radiusKm float64) *SearchBuilder {
	b.hasCenter = true
	b.lng, b.lat, b.radiusKm = lng, lat, radiusKm
	return b
}

// WithinBox restricts results to a bounding box.
func (b *SearchBuilder) WithinBox(minLng, minLat, maxLng, maxLat float64) *SearchBuilder {
	b.hasBox = true
	b.minLng, b.minLat, b.maxLng, b.maxLat = minLng, minLat, maxLng, maxLat
	return b
}

// Sort sets the sort order for list queries. Geo queries always sort
// by distance.
func (b *SearchBuilder) Sort(sort Sort) *SearchBuilder {
	b.sort = sort
	return b
}

// Page sets the page number for list queries.
func (b *SearchBuilder) Page(page int) *SearchBuilder {
	b.page = page
	return b
}

// Limit sets the maximum number of results.
func (b *SearchBuilder) Limit(n int) *SearchBuilder {
	b.limit = n
	return b
}

// Do executes the query. Radius queries return hits with distances,
// box and list queries without.
func (b *SearchBuilder) Do(ctx context.Context) ([]Hit, error) {
	switch {
	case b.hasCenter:
		return b.svc.Near(ctx, b.f, b.lng, b.lat, b.radiusKm, b.limit)
	case b.hasBox:
		return b.svc.Within(ctx, b.f, b.minLng, b.minLat, b.maxLng, b.maxLat, b.limit)
	default:
		pg, err := b.svc.List(ctx, Query{Filter: b.f, Sort: b.sort, Page: b.page, Limit: b.limit})
		if err != nil {
			return nil, err
		}
		hits := make([]Hit, 0, len(pg.Items))
		for _, e := range pg.Items {
			hits = append(hits, Hit{Entity: e})
		}
		return hits, nil
	}
}

// DoPage executes the query as a paginated list, ignoring any geo
// constraints set on the builder.
func (b *SearchBuilder) DoPage(ctx context.Context) (Page, error) {
	return b.svc.List(ctx, Query{Filter: b.f, Sort: b.sort, Page: b.page, Limit: b.limit})
}
