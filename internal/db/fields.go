package db

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/geo"
)

// Record field names. Scalar and tag names deliberately match the filter and
// sort field constants in the domain packages, so specs compile to backend
// queries without a translation table.
const (
	FieldID          = "id"
	FieldKind        = "kind"
	FieldName        = "name"
	FieldSlug        = "slug"
	FieldCity        = "city"
	FieldCountry     = "country"
	FieldCuisines    = "cuisines"
	FieldDietary     = "dietary"
	FieldFeatures    = "features"
	FieldPrice       = "price"
	FieldRating      = "rating"
	FieldReviewCount = "review_count"
	FieldPopularity  = "popularity"
	FieldViewCount   = "view_count"
	FieldActive      = "active"
	FieldCreatedAt   = "created_at"
	// FieldLocation holds "lng,lat" (the GEO index attribute format).
	FieldLocation = "location"
	// FieldGeom holds the same point as WKT "POINT (lng lat)" for the
	// GEOSHAPE polygon-containment attribute.
	FieldGeom = "geom"
	// FieldRoute holds the path geometry as a JSON [[lng,lat],...] array.
	FieldRoute = "route"
	// FieldAvailability holds open windows as JSON [[startUnix,endUnix],...].
	FieldAvailability = "availability"
	// FieldOpenStart / FieldOpenEnd hold the availability envelope (earliest
	// window start, latest window end) as indexable numerics. Backends that
	// cannot index the window list push the envelope down and post-filter
	// exact window membership on fetched records.
	FieldOpenStart = "open_start"
	FieldOpenEnd   = "open_end"
	// FieldMetadata holds the bounded key-value extension map as JSON.
	FieldMetadata = "metadata"

	// TagSeparator joins multi-value tag fields in a record.
	TagSeparator = ","

	// DefaultKeyPrefix namespaces entity record keys. The repository builds
	// keys with it and backends reconstruct keys from search results with
	// the same prefix.
	DefaultKeyPrefix = "entity:"
)

// JoinTags encodes a tag set into its stored form.
func JoinTags(values []string) string {
	return strings.Join(values, TagSeparator)
}

// SplitTags decodes a stored tag field. Empty input yields nil.
func SplitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, TagSeparator)
}

// EncodeLocation encodes a point into the "lng,lat" GEO attribute form.
func EncodeLocation(p geo.Point) string {
	return strconv.FormatFloat(p.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
}

// DecodeLocation parses a stored "lng,lat" value.
func DecodeLocation(raw string) (geo.Point, bool) {
	lngStr, latStr, ok := strings.Cut(raw, ",")
	if !ok {
		return geo.Point{}, false
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return geo.Point{}, false
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return geo.Point{}, false
	}
	return geo.Point{Lng: lng, Lat: lat}, true
}

// Window is one stored availability interval in unix seconds.
type Window struct {
	Start int64
	End   int64
}

// EncodeWindows encodes availability windows as JSON [[start,end],...].
func EncodeWindows(windows []Window) string {
	pairs := make([][2]int64, len(windows))
	for i, w := range windows {
		pairs[i] = [2]int64{w.Start, w.End}
	}
	raw, _ := json.Marshal(pairs)
	return string(raw)
}

// DecodeWindows parses a stored availability field. Malformed input yields
// nil (treated as "no windows").
func DecodeWindows(raw string) []Window {
	if raw == "" {
		return nil
	}
	var pairs [][2]int64
	if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
		return nil
	}
	windows := make([]Window, len(pairs))
	for i, p := range pairs {
		windows[i] = Window{Start: p[0], End: p[1]}
	}
	return windows
}

// CoversAny reports whether at unix second t lies inside any window.
func CoversAny(windows []Window, t int64) bool {
	for _, w := range windows {
		if t >= w.Start && t <= w.End {
			return true
		}
	}
	return false
}

// EncodeWKTPoint encodes a point as WKT for the GEOSHAPE attribute.
func EncodeWKTPoint(p geo.Point) string {
	return "POINT (" + strconv.FormatFloat(p.Lng, 'f', -1, 64) + " " +
		strconv.FormatFloat(p.Lat, 'f', -1, 64) + ")"
}

// EncodeWKTPolygon encodes a closed ring as a WKT POLYGON.
func EncodeWKTPolygon(ring geo.Ring) string {
	var b strings.Builder
	b.WriteString("POLYGON ((")
	for i, p := range ring {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(p.Lng, 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(p.Lat, 'f', -1, 64))
	}
	b.WriteString("))")
	return b.String()
}
