package naveeka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/page"
	geojsonuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/geojson"
)

// SearchService runs entity queries.
type SearchService struct {
	svc searchUseCase
	obs *observer
}

// List returns one page of entities matching the query, sorted and
// paginated. Page and limit are clamped to sane bounds server-side.
func (s *SearchService) List(ctx context.Context, q Query) (_ Page, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.list", start, err) }()

	pg, err := s.svc.List(ctx, filterOptions(q.Filter), page.Sort(q.Sort), q.Page, q.Limit)
	if err != nil {
		return Page{}, err
	}
	return pageFromDomain(pg), nil
}

// Near returns entities within radiusKm of the center, nearest first,
// each carrying its distance in meters. A non-positive limit uses the
// server-side cap.
func (s *SearchService) Near(ctx context.Context, f Filter, lng, lat, radiusKm float64, limit int) (_ []Hit, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.near", start, err) }()

	hits, err := s.svc.Near(ctx, filterOptions(f), lng, lat, radiusKm, limit)
	if err != nil {
		return nil, err
	}
	return hitsFromDomain(hits), nil
}

// Within returns entities inside the bounding box. Results carry no
// distance. A non-positive limit uses the server-side cap.
func (s *SearchService) Within(ctx context.Context, f Filter, minLng, minLat, maxLng, maxLat float64, limit int) (_ []Hit, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.within", start, err) }()

	hits, err := s.svc.Within(ctx, filterOptions(f), minLng, minLat, maxLng, maxLat, limit)
	if err != nil {
		return nil, err
	}
	return hitsFromDomain(hits), nil
}

// Get fetches a single entity by ID.
func (s *SearchService) Get(ctx context.Context, id string) (_ Entity, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.get", start, err) }()

	e, err := s.svc.Get(ctx, id)
	if err != nil {
		return Entity{}, err
	}
	return entityFromDomain(e), nil
}

// GetBySlug fetches a single entity by its URL slug.
func (s *SearchService) GetBySlug(ctx context.Context, slug string) (_ Entity, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.get_by_slug", start, err) }()

	e, err := s.svc.GetBySlug(ctx, slug)
	if err != nil {
		return Entity{}, err
	}
	return entityFromDomain(e), nil
}

// GeoJSON runs a List query and renders the page as a GeoJSON
// FeatureCollection. Entities without geometry are skipped.
func (s *SearchService) GeoJSON(ctx context.Context, q Query) (_ []byte, err error) {
	start := time.Now()
	defer func() { s.obs.observe("search.geojson", start, err) }()

	pg, err := s.svc.List(ctx, filterOptions(q.Filter), page.Sort(q.Sort), q.Page, q.Limit)
	if err != nil {
		return nil, err
	}
	return json.Marshal(geojsonuc.Project(pg.Items()))
}
