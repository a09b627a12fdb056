// Package search implements the listing and spatial query use cases:
// filtered paginated listings, radius search, and polygon containment.
package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/entity"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/geo"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/page"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/result"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/spatial"
)

// Service handles entity search: listings, radius, and polygon queries.
type Service struct {
	repo     Repository
	compiler *filter.Compiler
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo, compiler: filter.NewCompiler()}
}

// NewWithCompiler creates a search service with a custom filter compiler.
// Used by tests to pin the openNow clock.
func NewWithCompiler(repo Repository, c *filter.Compiler) *Service {
	return &Service{repo: repo, compiler: c}
}

// List returns one page of the filtered, ordered population. The total in
// the returned page counts the whole filtered population, so it is identical
// for every window over unchanged data. Fetch and count run concurrently.
func (s *Service) List(ctx context.Context, opts filter.Options, sort page.Sort, pageNum, limit int) (
	result.Page, error,
) {
	spec := s.compiler.Compile(opts)
	req := page.NewRequest(pageNum, limit)

	var (
		items []entity.Entity
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		es, err := s.repo.Find(gctx, spec, sort.Keys(), req.Offset(), req.Limit())
		if err != nil {
			return fmt.Errorf("find: %w", err)
		}
		items = es
		return nil
	})
	g.Go(func() error {
		n, err := s.repo.Count(gctx, spec)
		if err != nil {
			return fmt.Errorf("count: %w", err)
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return result.Page{}, err
	}

	return result.NewPage(items, req.Page(), req.Limit(), total), nil
}

// Near returns entities within radiusKm of (lng, lat) in ascending distance
// order, each hit annotated with its distance in meters.
func (s *Service) Near(ctx context.Context, opts filter.Options, lng, lat, radiusKm float64, limit int) (
	[]result.Hit, error,
) {
	q, err := spatial.RadiusFromPoint(geo.Point{Lng: lng, Lat: lat}, radiusKm)
	if err != nil {
		return nil, err
	}

	hits, err := s.repo.Near(ctx, s.compiler.Compile(opts), q.Center(), q.RadiusMeters(), q.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("near: %w", err)
	}
	return hits, nil
}

// Within returns entities whose point lies inside or on the bounding box.
// A degenerate box (zero width or height) is legal and matches only points
// exactly on it.
func (s *Service) Within(ctx context.Context, opts filter.Options, minLng, minLat, maxLng, maxLat float64, limit int) (
	[]result.Hit, error,
) {
	q, err := spatial.BoundingBox(minLng, minLat, maxLng, maxLat)
	if err != nil {
		return nil, err
	}
	// An inverted box (min above max on either axis) matches nothing; the
	// reversed ring would otherwise still contain interior points.
	if q.Degenerate() {
		return []result.Hit{}, nil
	}

	items, err := s.repo.Within(ctx, s.compiler.Compile(opts), q.Ring(), q.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("within: %w", err)
	}
	hits := make([]result.Hit, 0, len(items))
	for _, e := range items {
		hits = append(hits, result.NewHit(e))
	}
	return hits, nil
}

// Get returns an entity by ID.
func (s *Service) Get(ctx context.Context, id string) (entity.Entity, error) {
	return s.repo.Get(ctx, id)
}

// GetBySlug returns an entity by its unique slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (entity.Entity, error) {
	return s.repo.GetBySlug(ctx, slug)
}
