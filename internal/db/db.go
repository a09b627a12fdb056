// Package db defines the backend-agnostic store contract: typed query
// structs for search operations, a small aggregation plan representation,
// and the Store facade implemented by each backend executor.
package db

import (
	"context"
	"time"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/geo"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	RecordStore
	Searcher
	Aggregator
	// EnsureIndex creates the entity search index when missing.
	EnsureIndex(ctx context.Context) error
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Record is one stored entity row: a stable key plus flat string fields.
// The repository layer owns the mapping to and from domain entities.
type Record struct {
	Key    string
	Fields map[string]string
}

// RecordWithDistance annotates a record with its great-circle distance from
// a radius-search center, in meters.
type RecordWithDistance struct {
	Record
	DistanceMeters float64
}

// RecordStore provides the entity write path (ingestion, counters, rating
// aggregates). Search operations never mutate records.
type RecordStore interface {
	Put(ctx context.Context, records []Record) error
	Get(ctx context.Context, key string) (Record, error)
	SetFields(ctx context.Context, key string, fields map[string]string) error
	IncrField(ctx context.Context, key, field string, delta int64) (int64, error)
	Del(ctx context.Context, key string) error
}

// SortKey is one resolved sort dimension for a find query.
type SortKey struct {
	Field string
	Desc  bool
}

// FindQuery is a filtered, ordered, windowed listing.
type FindQuery struct {
	Filters filter.Spec
	Sort    []SortKey
	Offset  int
	Limit   int
}

// CountQuery counts the filtered population independently of any window.
type CountQuery struct {
	Filters filter.Spec
}

// NearQuery matches records within RadiusMeters of Center. Backends must
// return results in ascending distance order with the computed distance
// attached, using the shared spherical-earth metric.
type NearQuery struct {
	Filters      filter.Spec
	Center       geo.Point
	RadiusMeters float64
	Limit        int
}

// PolygonQuery matches records whose point lies within or on the boundary
// of the closed ring.
type PolygonQuery struct {
	Filters filter.Spec
	Ring    geo.Ring
	Limit   int
}

// Searcher executes spatial and scalar entity queries.
type Searcher interface {
	Find(ctx context.Context, q FindQuery) ([]Record, error)
	Count(ctx context.Context, q CountQuery) (int, error)
	Near(ctx context.Context, q NearQuery) ([]RecordWithDistance, error)
	Within(ctx context.Context, q PolygonQuery) ([]Record, error)
}

// AggRow is one output row of an aggregation plan: column name to value.
type AggRow map[string]string

// Aggregator compiles and executes an aggregation Plan natively.
type Aggregator interface {
	Aggregate(ctx context.Context, p Plan) ([]AggRow, error)
}
