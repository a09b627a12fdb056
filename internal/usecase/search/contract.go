package search

import (
	"context"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/entity"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/geo"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/page"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/result"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	Find(ctx context.Context, spec filter.Spec, keys []page.Key, offset, limit int) ([]entity.Entity, error)
	Count(ctx context.Context, spec filter.Spec) (int, error)
	Near(ctx context.Context, spec filter.Spec, center geo.Point, radiusMeters float64, limit int) ([]result.Hit, error)
	Within(ctx context.Context, spec filter.Spec, ring geo.Ring, limit int) ([]entity.Entity, error)
	Get(ctx context.Context, id string) (entity.Entity, error)
	GetBySlug(ctx context.Context, slug string) (entity.Entity, error)
}
