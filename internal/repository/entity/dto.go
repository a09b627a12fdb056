package entity

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/db"
	domentity "github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/entity"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/geo"
)

// toRecord flattens an entity into store fields. The point is written twice:
// once in GEO form for radius predicates and once as WKT for polygon
// containment.
func toRecord(e domentity.Entity, keyPrefix string) db.Record {
	fields := map[string]string{
		db.FieldID:          e.ID,
		db.FieldKind:        string(e.Kind),
		db.FieldName:        e.Name,
		db.FieldSlug:        e.Slug,
		db.FieldCity:        e.City,
		db.FieldCountry:     e.Country,
		db.FieldCuisines:    db.JoinTags(e.Cuisines),
		db.FieldDietary:     db.JoinTags(e.Dietary),
		db.FieldFeatures:    db.JoinTags(e.Features),
		db.FieldPrice:       formatFloat(e.Price),
		db.FieldRating:      formatFloat(e.Rating),
		db.FieldReviewCount: strconv.FormatInt(e.ReviewCount, 10),
		db.FieldPopularity:  strconv.FormatInt(e.Popularity, 10),
		db.FieldViewCount:   strconv.FormatInt(e.ViewCount, 10),
		db.FieldActive:      boolFlag(e.Active),
		db.FieldCreatedAt:   strconv.FormatInt(e.CreatedAt.Unix(), 10),
	}

	if e.Location != nil {
		fields[db.FieldLocation] = db.EncodeLocation(*e.Location)
		fields[db.FieldGeom] = db.EncodeWKTPoint(*e.Location)
	}
	if len(e.Route) >= 2 {
		fields[db.FieldRoute] = encodeRoute(e.Route)
	}
	if len(e.Availability) > 0 {
		windows := make([]db.Window, len(e.Availability))
		envStart, envEnd := e.Availability[0].Start.Unix(), e.Availability[0].End.Unix()
		for i, w := range e.Availability {
			windows[i] = db.Window{Start: w.Start.Unix(), End: w.End.Unix()}
			if windows[i].Start < envStart {
				envStart = windows[i].Start
			}
			if windows[i].End > envEnd {
				envEnd = windows[i].End
			}
		}
		fields[db.FieldAvailability] = db.EncodeWindows(windows)
		fields[db.FieldOpenStart] = strconv.FormatInt(envStart, 10)
		fields[db.FieldOpenEnd] = strconv.FormatInt(envEnd, 10)
	}
	if len(e.Metadata) > 0 {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			fields[db.FieldMetadata] = string(raw)
		}
	}

	return db.Record{Key: keyPrefix + e.ID, Fields: fields}
}

// fromRecord rebuilds an entity from store fields. Unparseable optional
// fields degrade to their zero values rather than failing the read.
func fromRecord(rec db.Record) domentity.Entity {
	f := rec.Fields
	e := domentity.Entity{
		ID:          f[db.FieldID],
		Kind:        domentity.Kind(f[db.FieldKind]),
		Name:        f[db.FieldName],
		Slug:        f[db.FieldSlug],
		City:        f[db.FieldCity],
		Country:     f[db.FieldCountry],
		Cuisines:    db.SplitTags(f[db.FieldCuisines]),
		Dietary:     db.SplitTags(f[db.FieldDietary]),
		Features:    db.SplitTags(f[db.FieldFeatures]),
		Price:       parseFloat(f[db.FieldPrice]),
		Rating:      parseFloat(f[db.FieldRating]),
		ReviewCount: parseInt(f[db.FieldReviewCount]),
		Popularity:  parseInt(f[db.FieldPopularity]),
		ViewCount:   parseInt(f[db.FieldViewCount]),
		Active:      f[db.FieldActive] == "1",
	}

	if ts := parseInt(f[db.FieldCreatedAt]); ts != 0 {
		e.CreatedAt = time.Unix(ts, 0).UTC()
	}
	if p, ok := db.DecodeLocation(f[db.FieldLocation]); ok {
		e.Location = &p
	}
	e.Route = decodeRoute(f[db.FieldRoute])
	for _, w := range db.DecodeWindows(f[db.FieldAvailability]) {
		e.Availability = append(e.Availability, domentity.Window{
			Start: time.Unix(w.Start, 0).UTC(),
			End:   time.Unix(w.End, 0).UTC(),
		})
	}
	if raw := f[db.FieldMetadata]; raw != "" {
		var meta map[string]string
		if err := json.Unmarshal([]byte(raw), &meta); err == nil {
			e.Metadata = meta
		}
	}
	return e
}

func encodeRoute(path geo.Path) string {
	coords := make([][2]float64, len(path))
	for i, p := range path {
		coords[i] = [2]float64{p.Lng, p.Lat}
	}
	raw, _ := json.Marshal(coords)
	return string(raw)
}

func decodeRoute(raw string) geo.Path {
	if raw == "" {
		return nil
	}
	var coords [][2]float64
	if err := json.Unmarshal([]byte(raw), &coords); err != nil {
		return nil
	}
	path := make(geo.Path, len(coords))
	for i, c := range coords {
		path[i] = geo.Point{Lng: c[0], Lat: c[1]}
	}
	return path
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
