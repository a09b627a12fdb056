package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/db"
)

// maxGroupValues guards the per-value count fan-out: a tag vocabulary larger
// than this is truncated rather than scanned unbounded.
const maxGroupValues = 256

// Aggregate compiles an aggregation plan natively. Whole-population plans
// (GroupBy "") map to a single FT.AGGREGATE with reducers. Per-tag grouping
// enumerates the tag vocabulary with FT.TAGVALS and issues one count query
// per value: FT.AGGREGATE GROUPBY over a hash TAG attribute groups by the
// raw joined field value, which is wrong for multi-tag records.
func (s *Store) Aggregate(ctx context.Context, p db.Plan) ([]db.AggRow, error) {
	group := p.Group()
	if group.GroupField == "" {
		return s.aggregateWhole(ctx, p, group)
	}
	return s.aggregateByTag(ctx, p, group)
}

func (s *Store) aggregateWhole(ctx context.Context, p db.Plan, group db.Stage) ([]db.AggRow, error) {
	args := []string{s.indexName, filterOrAll(p.Match()), "GROUPBY", "0"}
	for _, r := range group.Reducers {
		switch r.Kind {
		case db.ReduceCount:
			args = append(args, "REDUCE", "COUNT", "0", "AS", r.As)
		case db.ReduceMin:
			args = append(args, "REDUCE", "MIN", "1", "@"+r.Field, "AS", r.As)
		case db.ReduceMax:
			args = append(args, "REDUCE", "MAX", "1", "@"+r.Field, "AS", r.As)
		default:
			return nil, fmt.Errorf("unsupported reducer kind %d", r.Kind)
		}
	}
	args = append(args, "DIALECT", "2")

	cmd := s.b().Arbitrary("FT.AGGREGATE").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	rows, err := parseAggregateRows(raw)
	if err != nil {
		return nil, err
	}
	out := make([]db.AggRow, len(rows))
	for i, r := range rows {
		out[i] = db.AggRow(r)
	}
	return out, nil
}

func (s *Store) aggregateByTag(ctx context.Context, p db.Plan, group db.Stage) ([]db.AggRow, error) {
	if len(group.Reducers) != 1 || group.Reducers[0].Kind != db.ReduceCount {
		return nil, fmt.Errorf("tag grouping supports a single count reducer")
	}
	countCol := group.Reducers[0].As

	tagsCmd := s.b().Arbitrary("FT.TAGVALS").Args(s.indexName, group.GroupField).Build()
	rawTags, err := s.do(ctx, tagsCmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpTagVals, Err: err}
	}
	if len(rawTags) > maxGroupValues {
		rawTags = rawTags[:maxGroupValues]
	}

	base := buildFilter(p.Match())
	rows := make([]db.AggRow, 0, len(rawTags))
	for _, tag := range rawTags {
		queryStr := buildTagFilter(group.GroupField, tag)
		if base != "" {
			queryStr = base + " " + queryStr
		}
		cmd := s.b().Arbitrary("FT.SEARCH").
			Args(s.indexName, queryStr, "LIMIT", "0", "0", "DIALECT", "2").
			Build()
		raw, err := s.do(ctx, cmd).ToArray()
		if err != nil {
			return nil, &db.Error{Op: db.OpSearch, Err: err}
		}
		if len(raw) == 0 {
			continue
		}
		n, err := raw[0].AsInt64()
		if err != nil {
			return nil, fmt.Errorf("parse group count: %w", err)
		}
		if n == 0 {
			continue
		}
		rows = append(rows, db.AggRow{group.GroupField: tag, countCol: strconv.FormatInt(n, 10)})
	}

	if st, ok := p.SortStage(); ok {
		sortRows(rows, st)
	}
	if n := p.LimitN(); n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

// sortRows orders aggregation rows by a produced column, numerically when
// both values parse as numbers.
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
