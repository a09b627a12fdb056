// Package facet implements the facet aggregation use case: per-category
// value counts plus the price range over one filtered population.
package facet

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	domfacet "github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/facet"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
)

// CategoryFields are the tag dimensions aggregated for every facet request.
var CategoryFields = []string{
	filter.FieldCuisines,
	filter.FieldDietary,
	filter.FieldFeatures,
}

// Service computes facet summaries.
type Service struct {
	repo     Repository
	compiler *filter.Compiler
}

// New creates a facet service.
func New(repo Repository) *Service {
	return &Service{repo: repo, compiler: filter.NewCompiler()}
}

// Aggregate computes every category dimension and the price range over the
// population matching opts, concurrently. All dimensions reflect the same
// spec; any failed dimension fails the whole result so a partial summary is
// never served.
func (s *Service) Aggregate(ctx context.Context, opts filter.Options) (domfacet.Result, error) {
	spec := s.compiler.Compile(opts)

	var (
		mu         sync.Mutex
		categories = make(map[string][]domfacet.Bucket, len(CategoryFields))
		price      domfacet.PriceRange
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, field := range CategoryFields {
		field := field
		g.Go(func() error {
			buckets, err := s.repo.GroupCount(gctx, spec, field)
			if err != nil {
				return fmt.Errorf("facet %s: %w", field, err)
			}
			mu.Lock()
			categories[field] = buckets
			mu.Unlock()
			return nil
		})
	}
	g.Go(func() error {
		pr, err := s.repo.PriceRange(gctx, spec)
		if err != nil {
			return fmt.Errorf("facet price: %w", err)
		}
		mu.Lock()
		price = pr
		mu.Unlock()
		return nil
	})
	if err := g.Wait(); err != nil {
		return domfacet.Result{}, err
	}

	return domfacet.NewResult(categories, price), nil
}
