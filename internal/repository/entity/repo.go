// Package entity adapts the record store to the domain: it owns the
// Entity <-> db.Record codec, key construction, and the short-lived facet
// cache in front of aggregation queries.
package entity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/db"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain"
	domentity "github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/entity"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/geo"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/facet"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/page"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/result"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/metrics"
)

// DefaultFacetTTL bounds how stale cached facet aggregates may get.
const DefaultFacetTTL = 30 * time.Second

// store is the consumer interface over the record store (ISP).
type store interface {
	db.RecordStore
	db.Searcher
	db.Aggregator
}

// Repo implements the search, facet and ingestion repository contracts on
// top of a record store backend.
type Repo struct {
	store     store
	keyPrefix string
	facets    *gocache.Cache
}

// Option configures a Repo.
type Option func(*Repo)

// WithKeyPrefix overrides the record key namespace.
func WithKeyPrefix(prefix string) Option {
	return func(r *Repo) { r.keyPrefix = prefix }
}

// WithFacetTTL overrides the facet cache expiry.
func WithFacetTTL(ttl time.Duration) Option {
	return func(r *Repo) { r.facets = gocache.New(ttl, 2*ttl) }
}

// New creates an entity repository.
func New(s store, opts ...Option) *Repo {
	r := &Repo{
		store:     s,
		keyPrefix: db.DefaultKeyPrefix,
		facets:    gocache.New(DefaultFacetTTL, 2*DefaultFacetTTL),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Find returns one page of entities matching spec in the given order.
func (r *Repo) Find(ctx context.Context, spec filter.Spec, keys []page.Key, offset, limit int) (
	[]domentity.Entity, error,
) {
	sortKeys := make([]db.SortKey, len(keys))
	for i, k := range keys {
		sortKeys[i] = db.SortKey{Field: k.Field, Desc: k.Desc}
	}
	records, err := r.store.Find(ctx, db.FindQuery{
		Filters: spec,
		Sort:    sortKeys,
		Offset:  offset,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("find entities: %w", err)
	}
	return fromRecords(records), nil
}

// Count returns the matching population size independently of paging.
func (r *Repo) Count(ctx context.Context, spec filter.Spec) (int, error) {
	n, err := r.store.Count(ctx, db.CountQuery{Filters: spec})
	if err != nil {
		return 0, fmt.Errorf("count entities: %w", err)
	}
	return n, nil
}

// Near returns entities within radiusMeters of center in ascending distance
// order, each hit carrying its computed distance.
func (r *Repo) Near(ctx context.Context, spec filter.Spec, center geo.Point, radiusMeters float64, limit int) (
	[]result.Hit, error,
) {
	records, err := r.store.Near(ctx, db.NearQuery{
		Filters:      spec,
		Center:       center,
		RadiusMeters: radiusMeters,
		Limit:        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("near search: %w", err)
	}
	hits := make([]result.Hit, 0, len(records))
	for _, rec := range records {
		hits = append(hits, result.NewHitWithDistance(fromRecord(rec.Record), rec.DistanceMeters))
	}
	return hits, nil
}

// Within returns entities whose point lies inside or on the ring.
func (r *Repo) Within(ctx context.Context, spec filter.Spec, ring geo.Ring, limit int) (
	[]domentity.Entity, error,
) {
	records, err := r.store.Within(ctx, db.PolygonQuery{Filters: spec, Ring: ring, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("within search: %w", err)
	}
	return fromRecords(records), nil
}

// GroupCount returns per-value counts for a tag field over the filtered
// population, served from the facet cache when fresh.
func (r *Repo) GroupCount(ctx context.Context, spec filter.Spec, field string) ([]facet.Bucket, error) {
	key := "group:" + field + ":" + specFingerprint(spec)
	if cached, ok := r.facets.Get(key); ok {
		metrics.FacetCacheHitsTotal.WithLabelValues("hit").Inc()
		return cached.([]facet.Bucket), nil
	}
	metrics.FacetCacheHitsTotal.WithLabelValues("miss").Inc()

	plan := db.NewPlan().
		Match(spec).
		GroupBy(field, db.Count("count")).
		Sort("count", true).
		MustBuild()
	rows, err := r.store.Aggregate(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("group count %s: %w", field, err)
	}

	buckets := make([]facet.Bucket, 0, len(rows))
	for _, row := range rows {
		n, err := strconv.Atoi(row["count"])
		if err != nil {
			return nil, fmt.Errorf("group count %s: bad count %q: %w", field, row["count"], err)
		}
		buckets = append(buckets, facet.Bucket{Value: row[field], Count: n})
	}
	r.facets.SetDefault(key, buckets)
	return buckets, nil
}

// PriceRange returns the min and max price over the filtered population,
// served from the facet cache when fresh. An empty population yields the
// zero range.
func (r *Repo) PriceRange(ctx context.Context, spec filter.Spec) (facet.PriceRange, error) {
	key := "price:" + specFingerprint(spec)
	if cached, ok := r.facets.Get(key); ok {
		metrics.FacetCacheHitsTotal.WithLabelValues("hit").Inc()
		return cached.(facet.PriceRange), nil
	}
	metrics.FacetCacheHitsTotal.WithLabelValues("miss").Inc()

	plan := db.NewPlan().
		Match(spec).
		GroupBy("", db.Min(db.FieldPrice, "min_price"), db.Max(db.FieldPrice, "max_price")).
		MustBuild()
	rows, err := r.store.Aggregate(ctx, plan)
	if err != nil {
		return facet.PriceRange{}, fmt.Errorf("price range: %w", err)
	}

	var pr facet.PriceRange
	if len(rows) > 0 {
		pr.Min = parseFloat(rows[0]["min_price"])
		pr.Max = parseFloat(rows[0]["max_price"])
	}
	r.facets.SetDefault(key, pr)
	return pr, nil
}

// Get returns an entity by ID.
func (r *Repo) Get(ctx context.Context, id string) (domentity.Entity, error) {
	rec, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domentity.Entity{}, domain.ErrNotFound
		}
		return domentity.Entity{}, fmt.Errorf("get entity %s: %w", id, err)
	}
	return fromRecord(rec), nil
}

// GetBySlug returns an entity by its unique slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (domentity.Entity, error) {
	records, err := r.store.Find(ctx, db.FindQuery{
		Filters: filter.MatchOnly(db.FieldSlug, slug),
		Limit:   1,
	})
	if err != nil {
		return domentity.Entity{}, fmt.Errorf("get entity by slug %s: %w", slug, err)
	}
	if len(records) == 0 {
		return domentity.Entity{}, domain.ErrNotFound
	}
	return fromRecord(records[0]), nil
}

// Put upserts entities. Geometry is assumed validated by the caller.
func (r *Repo) Put(ctx context.Context, entities []domentity.Entity) error {
	if len(entities) == 0 {
		return nil
	}
	records := make([]db.Record, len(entities))
	for i, e := range entities {
		records[i] = toRecord(e, r.keyPrefix)
	}
	if err := r.store.Put(ctx, records); err != nil {
		return fmt.Errorf("put %d entities: %w", len(records), err)
	}
	return nil
}

// Del removes an entity by ID.
func (r *Repo) Del(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete entity %s: %w", id, err)
	}
	return nil
}

// UpdateRating writes a recomputed rating aggregate.
func (r *Repo) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int64) error {
	err := r.store.SetFields(ctx, r.key(id), map[string]string{
		db.FieldRating:      formatFloat(rating),
		db.FieldReviewCount: strconv.FormatInt(reviewCount, 10),
	})
	if err != nil {
		return fmt.Errorf("update rating %s: %w", id, err)
	}
	return nil
}

// IncrView bumps the view counter and returns the new value.
func (r *Repo) IncrView(ctx context.Context, id string) (int64, error) {
	n, err := r.store.IncrField(ctx, r.key(id), db.FieldViewCount, 1)
	if err != nil {
		return 0, fmt.Errorf("incr views %s: %w", id, err)
	}
	return n, nil
}

func (r *Repo) key(id string) string {
	return r.keyPrefix + id
}

func fromRecords(records []db.Record) []domentity.Entity {
	entities := make([]domentity.Entity, 0, len(records))
	for _, rec := range records {
		entities = append(entities, fromRecord(rec))
	}
	return entities
}

// specFingerprint renders a spec deterministically for cache keying.
func specFingerprint(spec filter.Spec) string {
	var b strings.Builder
	writeSorted := func(prefix string, m map[string][]string) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			vals := append([]string(nil), m[k]...)
			sort.Strings(vals)
			b.WriteString(prefix)
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(strings.Join(vals, "|"))
			b.WriteString(";")
		}
	}

	matchKeys := make([]string, 0, len(spec.Matches()))
	for k := range spec.Matches() {
		matchKeys = append(matchKeys, k)
	}
	sort.Strings(matchKeys)
	for _, k := range matchKeys {
		b.WriteString("m:" + k + "=" + spec.Matches()[k] + ";")
	}
	writeSorted("any:", spec.AnyOf())
	writeSorted("all:", spec.AllOf())

	rangeKeys := make([]string, 0, len(spec.Ranges()))
	for k := range spec.Ranges() {
		rangeKeys = append(rangeKeys, k)
	}
	sort.Strings(rangeKeys)
	for _, k := range rangeKeys {
		rg := spec.Ranges()[k]
		b.WriteString("r:" + k + "=")
		if rg.Min() != nil {
			b.WriteString(formatFloat(*rg.Min()))
		}
		b.WriteString("..")
		if rg.Max() != nil {
			b.WriteString(formatFloat(*rg.Max()))
		}
		b.WriteString(";")
	}
	if at := spec.OpenAt(); at != nil {
		b.WriteString("open:" + strconv.FormatInt(at.Unix(), 10) + ";")
	}
	if spec.ActiveOnly() {
		b.WriteString("active;")
	}
	return b.String()
}
