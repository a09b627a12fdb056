package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/db"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
)

// distCol is the synthesized distance column in Near aggregations.
const distCol = "dist"

// Find runs a filtered, ordered, windowed listing via FT.AGGREGATE.
// FT.SEARCH only sorts by a single attribute; the multi-key sort strategies
// need an aggregation SORTBY.
func (s *Store) Find(ctx context.Context, q db.FindQuery) ([]db.Record, error) {
	args := []string{s.indexName, filterOrAll(q.Filters), "LOAD", "*"}

	if len(q.Sort) > 0 {
		args = append(args, "SORTBY", strconv.Itoa(len(q.Sort)*2))
		for _, k := range q.Sort {
			dir := "ASC"
			if k.Desc {
				dir = "DESC"
			}
			args = append(args, "@"+k.Field, dir)
		}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, "LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(limit), "DIALECT", "2")

	cmd := s.b().Arbitrary("FT.AGGREGATE").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	rows, err := parseAggregateRows(raw)
	if err != nil {
		return nil, err
	}

	records := make([]db.Record, 0, len(rows))
	for _, fields := range rows {
		records = append(records, db.Record{Key: s.key(fields[db.FieldID]), Fields: fields})
	}
	return dropNotOpen(records, q.Filters), nil
}

// Count returns the filtered population size via FT.SEARCH LIMIT 0 0.
func (s *Store) Count(ctx context.Context, q db.CountQuery) (int, error) {
	cmd := s.b().Arbitrary("FT.SEARCH").
		Args(s.indexName, filterOrAll(q.Filters), "LIMIT", "0", "0", "DIALECT", "2").
		Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Err: err}
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

// Near matches records inside the radius via the GEO attribute and sorts by
// distance inside the engine via FT.AGGREGATE. An FT.SEARCH with a plain
// LIMIT would window an arbitrary in-radius subset and could silently drop
// the nearest records.
func (s *Store) Near(ctx context.Context, q db.NearQuery) ([]db.RecordWithDistance, error) {
	if q.RadiusMeters <= 0 {
		return nil, fmt.Errorf("radius must be positive")
	}
	limit := q.Limit
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	geoPart := fmt.Sprintf("@%s:[%g %g %g m]", db.FieldLocation, q.Center.Lng, q.Center.Lat, q.RadiusMeters)
	queryStr := geoPart
	if f := buildFilter(q.Filters); f != "" {
		queryStr = f + " " + geoPart
	}

	cmd := s.b().Arbitrary("FT.AGGREGATE").
		Args(s.indexName, queryStr,
			"LOAD", "*",
			"APPLY", fmt.Sprintf("geodistance(@%s, %g, %g)", db.FieldLocation, q.Center.Lng, q.Center.Lat),
			"AS", distCol,
			"SORTBY", "2", "@"+distCol, "ASC",
			"LIMIT", "0", strconv.Itoa(limit),
			"DIALECT", "2").
		Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	rows, err := parseAggregateRows(raw)
	if err != nil {
		return nil, err
	}

	out := make([]db.RecordWithDistance, 0, len(rows))
	for _, fields := range rows {
		if !openAtCovered(fields, q.Filters) {
			continue
		}
		d, err := strconv.ParseFloat(fields[distCol], 64)
		if err != nil {
			continue
		}
		out = append(out, db.RecordWithDistance{
			Record:         db.Record{Key: s.key(fields[db.FieldID]), Fields: fields},
			DistanceMeters: d,
		})
	}
	return out, nil
}

// Within matches records whose point lies within the polygon via the
// GEOSHAPE attribute (WKT, dialect 3).
func (s *Store) Within(ctx context.Context, q db.PolygonQuery) ([]db.Record, error) {
	limit := q.Limit
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	shapePart := fmt.Sprintf("@%s:[WITHIN $poly]", db.FieldGeom)
	queryStr := shapePart
	if f := buildFilter(q.Filters); f != "" {
		queryStr = f + " " + shapePart
	}

	cmd := s.b().Arbitrary("FT.SEARCH").
		Args(s.indexName, queryStr,
			"PARAMS", "2", "poly", db.EncodeWKTPolygon(q.Ring),
			"LIMIT", "0", strconv.Itoa(limit),
			"DIALECT", "3").
		Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	records, err := parseSearchResult(raw)
	if err != nil {
		return nil, err
	}
	return dropNotOpen(records, q.Filters), nil
}

// openAtCovered reports whether the record's decoded window list covers the
// spec's openAt instant. The indexed envelope prefilter admits false
// positives for multi-window entities; the window list decides.
func openAtCovered(fields map[string]string, spec filter.Spec) bool {
	at := spec.OpenAt()
	if at == nil {
		return true
	}
	return db.CoversAny(db.DecodeWindows(fields[db.FieldAvailability]), at.Unix())
}

func dropNotOpen(records []db.Record, spec filter.Spec) []db.Record {
	if spec.OpenAt() == nil {
		return records
	}
	out := records[:0]
	for _, rec := range records {
		if openAtCovered(rec.Fields, spec) {
			out = append(out, rec)
		}
	}
	return out
}

// parseSearchResult parses a RESP2 FT.SEARCH reply without scores:
// [total, key1, fields1, key2, fields2, ...].
func parseSearchResult(raw []rueidis.RedisMessage) ([]db.Record, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	records := make([]db.Record, 0, total)
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		fields, err := parseFieldPairs(raw[i+1])
		if err != nil {
			continue
		}
		records = append(records, db.Record{Key: key, Fields: fields})
	}
	return records, nil
}

// parseAggregateRows parses a RESP2 FT.AGGREGATE reply:
// [groupCount, row1, row2, ...] with each row a flat name/value array.
func parseAggregateRows(raw []rueidis.RedisMessage) ([]map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	rows := make([]map[string]string, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		fields, err := parseFieldPairs(raw[i])
		if err != nil {
			continue
		}
		rows = append(rows, fields)
	}
	return rows, nil
}

func parseFieldPairs(msg rueidis.RedisMessage) (map[string]string, error) {
	arr, err := msg.ToArray()
	if err != nil {
		return nil, fmt.Errorf("parse field array: %w", err)
	}
	fields := make(map[string]string, len(arr)/2)
	for j := 0; j+1 < len(arr); j += 2 {
		name, err := arr[j].ToString()
		if err != nil {
			continue
		}
		value, err := arr[j+1].ToString()
		if err != nil {
			continue
		}
		fields[name] = value
	}
	return fields, nil
}
