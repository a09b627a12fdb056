package naveeka

import (
	"context"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/entity"
	domfacet "github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/facet"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/page"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/result"
	reviewuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/review"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	listFn      func(ctx context.Context, opts filter.Options, sort page.Sort, pageNum, limit int) (result.Page, error)
	nearFn      func(ctx context.Context, opts filter.Options, lng, lat, radiusKm float64, limit int) ([]result.Hit, error)
	withinFn    func(ctx context.Context, opts filter.Options, minLng, minLat, maxLng, maxLat float64, limit int) ([]result.Hit, error)
	getFn       func(ctx context.Context, id string) (entity.Entity, error)
	getBySlugFn func(ctx context.Context, slug string) (entity.Entity, error)
}

func (m *mockSearchUC) List(
	ctx context.Context, opts filter.Options, sort page.Sort, pageNum, limit int,
) (result.Page, error) {
	return m.listFn(ctx, opts, sort, pageNum, limit)
}

func (m *mockSearchUC) Near(
	ctx context.Context, opts filter.Options, lng, lat, radiusKm float64, limit int,
) ([]result.Hit, error) {
	return m.nearFn(ctx, opts, lng, lat, radiusKm, limit)
}

func (m *mockSearchUC) Within(
	ctx context.Context, opts filter.Options, minLng, minLat, maxLng, maxLat float64, limit int,
) ([]result.Hit, error) {
	return m.withinFn(ctx, opts, minLng, minLat, maxLng, maxLat, limit)
}

func (m *mockSearchUC) Get(ctx context.Context, id string) (entity.Entity, error) {
	return m.getFn(ctx, id)
}

func (m *mockSearchUC) GetBySlug(ctx context.Context, slug string) (entity.Entity, error) {
	return m.getBySlugFn(ctx, slug)
}

// --- facetUseCase mock ---

type mockFacetUC struct {
	aggregateFn func(ctx context.Context, opts filter.Options) (domfacet.Result, error)
}

func (m *mockFacetUC) Aggregate(ctx context.Context, opts filter.Options) (domfacet.Result, error) {
	return m.aggregateFn(ctx, opts)
}

// --- reviewUseCase mock ---

type mockReviewUC struct {
	addFn        func(ctx context.Context, entityID string, rating float64, text string) (reviewuc.Review, error)
	recordViewFn func(ctx context.Context, entityID string) (int64, error)
}

func (m *mockReviewUC) Add(
	ctx context.Context, entityID string, rating float64, text string,
) (reviewuc.Review, error) {
	return m.addFn(ctx, entityID, rating, text)
}

func (m *mockReviewUC) RecordView(ctx context.Context, entityID string) (int64, error) {
	return m.recordViewFn(ctx, entityID)
}
