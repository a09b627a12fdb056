package search

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/entity"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/geo"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/page"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/result"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/spatial"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	findFn      func(ctx context.Context, spec filter.Spec, keys []page.Key, offset, limit int) ([]entity.Entity, error)
	countFn     func(ctx context.Context, spec filter.Spec) (int, error)
	nearFn      func(ctx context.Context, spec filter.Spec, center geo.Point, radiusMeters float64, limit int) ([]result.Hit, error)
	withinFn    func(ctx context.Context, spec filter.Spec, ring geo.Ring, limit int) ([]entity.Entity, error)
	getFn       func(ctx context.Context, id string) (entity.Entity, error)
	getBySlugFn func(ctx context.Context, slug string) (entity.Entity, error)
}

func (m *mockRepo) Find(ctx context.Context, spec filter.Spec, keys []page.Key, offset, limit int) ([]entity.Entity, error) {
	if m.findFn != nil {
		return m.findFn(ctx, spec, keys, offset, limit)
	}
	return nil, nil
}

func (m *mockRepo) Count(ctx context.Context, spec filter.Spec) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, spec)
	}
	return 0, nil
}

func (m *mockRepo) Near(ctx context.Context, spec filter.Spec, center geo.Point, radiusMeters float64, limit int) ([]result.Hit, error) {
	if m.nearFn != nil {
		return m.nearFn(ctx, spec, center, radiusMeters, limit)
	}
	return nil, nil
}

func (m *mockRepo) Within(ctx context.Context, spec filter.Spec, ring geo.Ring, limit int) ([]entity.Entity, error) {
	if m.withinFn != nil {
		return m.withinFn(ctx, spec, ring, limit)
	}
	return nil, nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (entity.Entity, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return entity.Entity{}, domain.ErrNotFound
}

func (m *mockRepo) GetBySlug(ctx context.Context, slug string) (entity.Entity, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return entity.Entity{}, domain.ErrNotFound
}

func testEntities(n int) []entity.Entity {
	out := make([]entity.Entity, n)
	for i := range out {
		out[i] = entity.Entity{ID: string(rune('a' + i)), Kind: entity.KindPlace, Active: true}
	}
	return out
}

// --- List ---

func TestList_PaginatesAndCounts(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	repo.findFn = func(_ context.Context, _ filter.Spec, keys []page.Key, offset, limit int) ([]entity.Entity, error) {
		wantKeys := []page.Key{
			{Field: page.FieldRating, Desc: true},
			{Field: page.FieldPopularity, Desc: true},
		}
		if !reflect.DeepEqual(keys, wantKeys) {
			t.Errorf("sort keys = %v", keys)
		}
		if offset != 20 || limit != 20 {
			t.Errorf("window = %d/%d", offset, limit)
		}
		return testEntities(20), nil
	}
	repo.countFn = func(_ context.Context, _ filter.Spec) (int, error) { return 45, nil }

	pg, err := svc.List(context.Background(), filter.Options{}, page.SortRatingDesc, 2, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pg.Page() != 2 || pg.Limit() != 20 || pg.Total() != 45 {
		t.Errorf("page meta = %d/%d/%d", pg.Page(), pg.Limit(), pg.Total())
	}
	if !pg.HasMore() {
		t.Error("expected more pages: 40 of 45 seen")
	}
}

func TestList_ClampsPageInputs(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	repo.findFn = func(_ context.Context, _ filter.Spec, _ []page.Key, offset, limit int) ([]entity.Entity, error) {
		if offset != 0 {
			t.Errorf("offset = %d, want 0 for clamped page", offset)
		}
		if limit != page.MaxLimit {
			t.Errorf("limit = %d, want max %d", limit, page.MaxLimit)
		}
		return nil, nil
	}

	if _, err := svc.List(context.Background(), filter.Options{}, page.SortPopularity, -3, 10_000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestList_CompilesOptions(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	minRating := 4.0
	assertSpec := func(spec filter.Spec) {
		if got := spec.Matches()[filter.FieldKind]; got != "restaurant" {
			t.Errorf("kind match = %q", got)
		}
		if rg, ok := spec.Ranges()[filter.FieldRating]; !ok || rg.Min() == nil || *rg.Min() != 4.0 {
			t.Errorf("rating range missing or wrong: %+v", rg)
		}
	}
	repo.findFn = func(_ context.Context, spec filter.Spec, _ []page.Key, _, _ int) ([]entity.Entity, error) {
		assertSpec(spec)
		return nil, nil
	}
	repo.countFn = func(_ context.Context, spec filter.Spec) (int, error) {
		assertSpec(spec)
		return 0, nil
	}

	_, err := svc.List(context.Background(),
		filter.Options{Kind: "restaurant", MinRating: &minRating}, page.SortPopularity, 1, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestList_CountErrorFailsPage(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	boom := errors.New("timeout")
	repo.countFn = func(_ context.Context, _ filter.Spec) (int, error) { return 0, boom }

	_, err := svc.List(context.Background(), filter.Options{}, page.SortPopularity, 1, 20)
	if !errors.Is(err, boom) {
		t.Fatalf("expected count error, got %v", err)
	}
}

// --- Near ---

func TestNear_PassesRadiusAndCap(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	repo.nearFn = func(_ context.Context, _ filter.Spec, center geo.Point, radiusMeters float64, limit int) ([]result.Hit, error) {
		if center.Lng != 73.8278 || center.Lat != 15.4989 {
			t.Errorf("center = %+v", center)
		}
		if radiusMeters != 5000 {
			t.Errorf("radius = %v m", radiusMeters)
		}
		if limit != spatial.MaxRadiusResults {
			t.Errorf("limit = %d, want cap %d", limit, spatial.MaxRadiusResults)
		}
		return []result.Hit{result.NewHitWithDistance(entity.Entity{ID: "a"}, 120)}, nil
	}

	hits, err := svc.Near(context.Background(), filter.Options{}, 73.8278, 15.4989, 5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected one hit")
	}
}

func TestNear_InvalidCenter(t *testing.T) {
	svc := New(&mockRepo{})

	_, err := svc.Near(context.Background(), filter.Options{}, 73.8, 91, 5, 20)
	if !errors.Is(err, domain.ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestNear_InvalidRadius(t *testing.T) {
	svc := New(&mockRepo{})

	_, err := svc.Near(context.Background(), filter.Options{}, 73.8, 15.5, -1, 20)
	if !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

// --- Within ---

func TestWithin_WrapsHits(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	repo.withinFn = func(_ context.Context, _ filter.Spec, ring geo.Ring, limit int) ([]entity.Entity, error) {
		if len(ring) != 5 {
			t.Errorf("ring has %d vertices, want closed 5", len(ring))
		}
		if limit != 50 {
			t.Errorf("limit = %d", limit)
		}
		return testEntities(2), nil
	}

	hits, err := svc.Within(context.Background(), filter.Options{}, 73.7, 15.4, 74.0, 15.6, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected two hits")
	}
	if hits[0].DistanceMeters() != nil {
		t.Error("box hits must not carry distances")
	}
}

func TestWithin_InvalidCorner(t *testing.T) {
	svc := New(&mockRepo{})

	_, err := svc.Within(context.Background(), filter.Options{}, -181, 15.4, 74.0, 15.6, 20)
	if !errors.Is(err, domain.ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestWithin_ZeroAreaBoxIsLegal(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	called := false
	repo.withinFn = func(_ context.Context, _ filter.Spec, _ geo.Ring, _ int) ([]entity.Entity, error) {
		called = true
		return nil, nil
	}

	hits, err := svc.Within(context.Background(), filter.Options{}, 73.8, 15.5, 73.8, 15.5, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("zero-area box should still query the store")
	}
	if len(hits) != 0 {
		t.Errorf("hits = %d", len(hits))
	}
}

func TestWithin_InvertedBoxIsEmpty(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	repo.withinFn = func(_ context.Context, _ filter.Spec, _ geo.Ring, _ int) ([]entity.Entity, error) {
		t.Error("inverted box must not reach the store")
		return nil, nil
	}

	for _, box := range [][4]float64{
		{74.0, 15.4, 73.7, 15.6}, // minLng > maxLng
		{73.7, 15.6, 74.0, 15.4}, // minLat > maxLat
	} {
		hits, err := svc.Within(context.Background(), filter.Options{}, box[0], box[1], box[2], box[3], 20)
		if err != nil {
			t.Fatalf("box %v: unexpected error: %v", box, err)
		}
		if len(hits) != 0 {
			t.Errorf("box %v: hits = %d, want 0", box, len(hits))
		}
	}
}

// --- lookup ---

func TestGet_NotFound(t *testing.T) {
	svc := New(&mockRepo{})

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
