// Package memory implements the db.Store contract in process, with exact
// matching semantics. It backs tests and local development, and serves as
// the reference executor the redis backend is checked against.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/db"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/geo"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store holds records in memory. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records map[string]*record
}

// record caches parsed views of the raw fields so predicates and sorting
// avoid re-parsing per query.
type record struct {
	key      string
	fields   map[string]string
	tags     map[string][]string
	numerics map[string]float64
	location *geo.Point
	windows  []db.Window
	active   bool
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{records: make(map[string]*record)}
}

func parseRecord(rec db.Record) *record {
	r := &record{
		key:      rec.Key,
		fields:   rec.Fields,
		tags:     make(map[string][]string),
		numerics: make(map[string]float64),
	}
	for _, f := range []string{db.FieldCuisines, db.FieldDietary, db.FieldFeatures} {
		r.tags[f] = db.SplitTags(rec.Fields[f])
	}
	for _, f := range []string{
		db.FieldPrice, db.FieldRating, db.FieldReviewCount,
		db.FieldPopularity, db.FieldViewCount, db.FieldCreatedAt,
	} {
		if v, err := strconv.ParseFloat(rec.Fields[f], 64); err == nil {
			r.numerics[f] = v
		}
	}
	if p, ok := db.DecodeLocation(rec.Fields[db.FieldLocation]); ok {
		r.location = &p
	}
	r.windows = db.DecodeWindows(rec.Fields[db.FieldAvailability])
	r.active = rec.Fields[db.FieldActive] == "1"
	return r
}

func (r *record) matches(spec filter.Spec) bool {
	for field, want := range spec.Matches() {
		if r.fields[field] != want {
			return false
		}
	}
	for field, accepted := range spec.AnyOf() {
		if !intersects(r.tags[field], accepted) {
			return false
		}
	}
	for field, required := range spec.AllOf() {
		if !containsAll(r.tags[field], required) {
			return false
		}
	}
	for field, rng := range spec.Ranges() {
		if !rng.Matches(r.numerics[field]) {
			return false
		}
	}
	if spec.ActiveOnly() && !r.active {
		return false
	}
	if at := spec.OpenAt(); at != nil {
		if !db.CoversAny(r.windows, at.Unix()) {
			return false
		}
	}
	return true
}

func intersects(have, accepted []string) bool {
	for _, a := range accepted {
		for _, h := range have {
			if a == h {
				return true
			}
		}
	}
	return false
}

func containsAll(have, required []string) bool {
	for _, req := range required {
		found := false
		for _, h := range have {
			if req == h {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func toRecords(recs []*record) []db.Record {
	out := make([]db.Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, db.Record{Key: r.key, Fields: r.fields})
	}
	return out
}

func (s *Store) filtered(spec filter.Spec) []*record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*record
	for _, r := range s.records {
		if r.matches(spec) {
			out = append(out, r)
		}
	}
	// Map iteration order is random; pin a base order before sorting so
	// pages are reproducible across calls.
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

// Find applies the filter, sort keys, and window.
func (s *Store) Find(_ context.Context, q db.FindQuery) ([]db.Record, error) {
	recs := s.filtered(q.Filters)

	keys := q.Sort
	sort.SliceStable(recs, func(i, j int) bool {
		for _, k := range keys {
			a, b := recs[i].numerics[k.Field], recs[j].numerics[k.Field]
			if a == b {
				continue
			}
			if k.Desc {
				return a > b
			}
			return a < b
		}
		return false
	})

	if q.Offset >= len(recs) {
		return nil, nil
	}
	recs = recs[q.Offset:]
	if q.Limit > 0 && len(recs) > q.Limit {
		recs = recs[:q.Limit]
	}
	return toRecords(recs), nil
}

// Count returns the filtered population size.
func (s *Store) Count(_ context.Context, q db.CountQuery) (int, error) {
	return len(s.filtered(q.Filters)), nil
}

// Near returns records within the radius, ascending by haversine distance.
func (s *Store) Near(_ context.Context, q db.NearQuery) ([]db.RecordWithDistance, error) {
	if q.RadiusMeters <= 0 || q.Limit <= 0 {
		return nil, fmt.Errorf("radius and limit must be positive")
	}
	var out []db.RecordWithDistance
	for _, r := range s.filtered(q.Filters) {
		if r.location == nil {
			continue
		}
		d := geo.Haversine(q.Center, *r.location)
		if d > q.RadiusMeters {
			continue
		}
		out = append(out, db.RecordWithDistance{
			Record:         db.Record{Key: r.key, Fields: r.fields},
			DistanceMeters: d,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceMeters < out[j].DistanceMeters
	})
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Within returns records whose point lies within or on the ring boundary.
func (s *Store) Within(_ context.Context, q db.PolygonQuery) ([]db.Record, error) {
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	var out []*record
	for _, r := range s.filtered(q.Filters) {
		if r.location == nil || !q.Ring.Contains(*r.location) {
			continue
		}
		out = append(out, r)
		if len(out) == q.Limit {
			break
		}
	}
	return toRecords(out), nil
}

// Aggregate evaluates the plan directly over the filtered population.
func (s *Store) Aggregate(_ context.Context, p db.Plan) ([]db.AggRow, error) {
	group := p.Group()
	recs := s.filtered(p.Match())

	if group.GroupField == "" {
		return aggregateWhole(recs, group)
	}
	return aggregateByTag(recs, p, group)
}

func aggregateWhole(recs []*record, group db.Stage) ([]db.AggRow, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	row := db.AggRow{}
	for _, red := range group.Reducers {
		switch red.Kind {
		case db.ReduceCount:
			row[red.As] = strconv.Itoa(len(recs))
		case db.ReduceMin, db.ReduceMax:
			v := recs[0].numerics[red.Field]
			for _, r := range recs[1:] {
				n := r.numerics[red.Field]
				if (red.Kind == db.ReduceMin && n < v) || (red.Kind == db.ReduceMax && n > v) {
					v = n
				}
			}
			row[red.As] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return nil, fmt.Errorf("unsupported reducer kind %d", red.Kind)
		}
	}
	return []db.AggRow{row}, nil
}

func aggregateByTag(recs []*record, p db.Plan, group db.Stage) ([]db.AggRow, error) {
	if len(group.Reducers) != 1 || group.Reducers[0].Kind != db.ReduceCount {
		return nil, fmt.Errorf("tag grouping supports a single count reducer")
	}
	countCol := group.Reducers[0].As

	counts := make(map[string]int)
	for _, r := range recs {
		for _, tag := range r.tags[group.GroupField] {
			counts[tag]++
		}
	}

	rows := make([]db.AggRow, 0, len(counts))
	for tag, n := range counts {
		rows = append(rows, db.AggRow{group.GroupField: tag, countCol: strconv.Itoa(n)})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i][group.GroupField] < rows[j][group.GroupField]
	})
	if st, ok := p.SortStage(); ok {
		sortRows(rows, st)
	}
	if n := p.LimitN(); n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

func sortRows(rows []db.AggRow, st db.Stage) {
	less := func(i, j int) bool {
		a, b := rows[i][st.SortColumn], rows[j][st.SortColumn]
		af, aErr := strconv.ParseFloat(a, 64)
		bf, bErr := strconv.ParseFloat(b, 64)
		if aErr == nil && bErr == nil {
			return af < bf
		}
		return a < b
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if st.SortDesc {
			return less(j, i)
		}
		return less(i, j)
	})
}

// Put stores records, replacing existing ones.
func (s *Store) Put(_ context.Context, records []db.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		s.records[rec.Key] = parseRecord(rec)
	}
	return nil
}

// Get reads one record by key.
func (s *Store) Get(_ context.Context, key string) (db.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[key]
	if !ok {
		return db.Record{}, db.ErrKeyNotFound
	}
	return db.Record{Key: r.key, Fields: r.fields}, nil
}

// SetFields updates a subset of a record's fields.
func (s *Store) SetFields(_ context.Context, key string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[key]
	if !ok {
		return db.ErrKeyNotFound
	}
	merged := make(map[string]string, len(r.fields)+len(fields))
	for k, v := range r.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	s.records[key] = parseRecord(db.Record{Key: key, Fields: merged})
	return nil
}

// IncrField atomically increments a numeric field and returns the new value.
func (s *Store) IncrField(_ context.Context, key, field string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[key]
	if !ok {
		return 0, db.ErrKeyNotFound
	}
	cur, _ := strconv.ParseInt(r.fields[field], 10, 64)
	cur += delta
	merged := make(map[string]string, len(r.fields))
	for k, v := range r.fields {
		merged[k] = v
	}
	merged[field] = strconv.FormatInt(cur, 10)
	s.records[key] = parseRecord(db.Record{Key: key, Fields: merged})
	return cur, nil
}

// Del removes a record.
func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return db.ErrKeyNotFound
	}
	delete(s.records, key)
	return nil
}

// Ping always succeeds: there is no connection to lose.
func (s *Store) Ping(context.Context) error { return nil }

// EnsureIndex is a no-op: the memory store evaluates queries directly.
func (s *Store) EnsureIndex(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady returns immediately: the store is always ready.
func (s *Store) WaitForReady(context.Context, time.Duration) error { return nil }
