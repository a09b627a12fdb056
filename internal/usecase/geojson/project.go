// Package geojson projects search results into GeoJSON feature collections
// for map rendering. Entities without geometry are skipped, not errored:
// a mixed result set still yields a valid collection.
package geojson

import (
	"github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/entity"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/result"
)

// Project converts entities to a feature collection. Located entities become
// Point features, routed entities LineString features; an entity carrying
// both geometries yields one feature of each.
func Project(entities []entity.Entity) *geomjson.FeatureCollection {
	fc := &geomjson.FeatureCollection{Features: []*geomjson.Feature{}}
	for i := range entities {
		fc.Features = append(fc.Features, features(&entities[i])...)
	}
	return fc
}

// ProjectHits converts distance-annotated hits to a feature collection,
// carrying the distance as a feature property when present.
func ProjectHits(hits []result.Hit) *geomjson.FeatureCollection {
	fc := &geomjson.FeatureCollection{Features: []*geomjson.Feature{}}
	for i := range hits {
		e := hits[i].Entity()
		for _, f := range features(&e) {
			if d := hits[i].DistanceMeters(); d != nil {
				f.Properties["distance_m"] = *d
			}
			fc.Features = append(fc.Features, f)
		}
	}
	return fc
}

func features(e *entity.Entity) []*geomjson.Feature {
	var out []*geomjson.Feature
	if e.HasLocation() {
		out = append(out, feature(e,
			geom.NewPointFlat(geom.XY, []float64{e.Location.Lng, e.Location.Lat})))
	}
	if e.HasRoute() {
		flat := make([]float64, 0, 2*len(e.Route))
		for _, p := range e.Route {
			flat = append(flat, p.Lng, p.Lat)
		}
		out = append(out, feature(e, geom.NewLineStringFlat(geom.XY, flat)))
	}
	return out
}

func feature(e *entity.Entity, g geom.T) *geomjson.Feature {
	return &geomjson.Feature{
		ID:         e.ID,
		Geometry:   g,
		Properties: properties(e),
	}
}

// properties emits the fixed subset map clients render in popups. The full
// entity stays behind the detail endpoint.
func properties(e *entity.Entity) map[string]interface{} {
	return map[string]interface{}{
		"kind":    string(e.Kind),
		"name":    e.Name,
		"slug":    e.Slug,
		"city":    e.City,
		"country": e.Country,
		"price":   e.Price,
		"rating":  e.Rating,
	}
}
