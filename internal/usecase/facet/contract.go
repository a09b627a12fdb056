package facet

import (
	"context"

	domfacet "github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/facet"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
)

// Repository defines the aggregation contract for facets.
type Repository interface {
	GroupCount(ctx context.Context, spec filter.Spec, field string) ([]domfacet.Bucket, error)
	PriceRange(ctx context.Context, spec filter.Spec) (domfacet.PriceRange, error)
}
