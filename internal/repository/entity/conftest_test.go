package entity

import (
	"context"
	"testing"
	"time"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/db"
	domentity "github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/entity"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/geo"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	putFn       func(ctx context.Context, records []db.Record) error
	getFn       func(ctx context.Context, key string) (db.Record, error)
	setFieldsFn func(ctx context.Context, key string, fields map[string]string) error
	incrFieldFn func(ctx context.Context, key, field string, delta int64) (int64, error)
	delFn       func(ctx context.Context, key string) error
	findFn      func(ctx context.Context, q db.FindQuery) ([]db.Record, error)
	countFn     func(ctx context.Context, q db.CountQuery) (int, error)
	nearFn      func(ctx context.Context, q db.NearQuery) ([]db.RecordWithDistance, error)
	withinFn    func(ctx context.Context, q db.PolygonQuery) ([]db.Record, error)
	aggregateFn func(ctx context.Context, p db.Plan) ([]db.AggRow, error)

	aggregateCalls int
}

func (m *mockStore) Put(ctx context.Context, records []db.Record) error {
	if m.putFn != nil {
		return m.putFn(ctx, records)
	}
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (db.Record, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return db.Record{}, db.ErrKeyNotFound
}

func (m *mockStore) SetFields(ctx context.Context, key string, fields map[string]string) error {
	if m.setFieldsFn != nil {
		return m.setFieldsFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) IncrField(ctx context.Context, key, field string, delta int64) (int64, error) {
	if m.incrFieldFn != nil {
		return m.incrFieldFn(ctx, key, field, delta)
	}
	return delta, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Find(ctx context.Context, q db.FindQuery) ([]db.Record, error) {
	if m.findFn != nil {
		return m.findFn(ctx, q)
	}
	return nil, nil
}

func (m *mockStore) Count(ctx context.Context, q db.CountQuery) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, q)
	}
	return 0, nil
}

func (m *mockStore) Near(ctx context.Context, q db.NearQuery) ([]db.RecordWithDistance, error) {
	if m.nearFn != nil {
		return m.nearFn(ctx, q)
	}
	return nil, nil
}

func (m *mockStore) Within(ctx context.Context, q db.PolygonQuery) ([]db.Record, error) {
	if m.withinFn != nil {
		return m.withinFn(ctx, q)
	}
	return nil, nil
}

func (m *mockStore) Aggregate(ctx context.Context, p db.Plan) ([]db.AggRow, error) {
	m.aggregateCalls++
	if m.aggregateFn != nil {
		return m.aggregateFn(ctx, p)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func testEntity(t *testing.T) domentity.Entity {
	t.Helper()
	return domentity.Entity{
		ID:          "r-1",
		Kind:        domentity.KindRestaurant,
		Name:        "Spice Route",
		Slug:        "spice-route",
		City:        "Panjim",
		Country:     "IN",
		Location:    &geo.Point{Lng: 73.8278, Lat: 15.4989},
		Cuisines:    []string{"goan", "seafood"},
		Dietary:     []string{"vegetarian"},
		Features:    []string{"outdoor seating"},
		Price:       650,
		Rating:      4.5,
		ReviewCount: 120,
		Popularity:  980,
		ViewCount:   4400,
		Active:      true,
		Availability: []domentity.Window{
			{Start: time.Unix(1_700_000_000, 0).UTC(), End: time.Unix(1_700_030_000, 0).UTC()},
		},
		CreatedAt: time.Unix(1_690_000_000, 0).UTC(),
		Metadata:  map[string]string{"phone": "+91-832-5550100"},
	}
}
