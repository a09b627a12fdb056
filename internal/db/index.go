package db

import (
	"errors"
	"strings"
)

// IndexFieldType enumerates supported FT index field types.
type IndexFieldType string

const (
	IndexFieldTag      IndexFieldType = "TAG"
	IndexFieldNumeric  IndexFieldType = "NUMERIC"
	IndexFieldText     IndexFieldType = "TEXT"
	IndexFieldGeo      IndexFieldType = "GEO"
	IndexFieldGeoShape IndexFieldType = "GEOSHAPE"
)

// IndexField is one attribute in an FT index schema.
type IndexField struct {
	Name             string
	Type             IndexFieldType
	TagSeparator     string
	TagCaseSensitive bool
	Sortable         bool
}

// IndexDefinition describes an FT index over hash-stored records.
type IndexDefinition struct {
	Name     string
	Prefixes []string
	Fields   []IndexField
}

// Validate checks structural invariants of the definition.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if len(idx.Fields) == 0 {
		return errors.New("index needs at least one field")
	}
	seen := make(map[string]struct{}, len(idx.Fields))
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("index field name is required")
		}
		if _, dup := seen[f.Name]; dup {
			return errors.New("duplicate index field " + f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// String returns a debug representation resembling the FT.CREATE command.
func (idx *IndexDefinition) String() string {
	parts := []string{"FT.CREATE", idx.Name, "ON", "HASH"}
	if len(idx.Prefixes) > 0 {
		parts = append(parts, "PREFIX")
		parts = append(parts, idx.Prefixes...)
	}
	parts = append(parts, "SCHEMA")
	for i := range idx.Fields {
		f := &idx.Fields[i]
		parts = append(parts, f.Name, string(f.Type))
		if f.Sortable {
			parts = append(parts, "SORTABLE")
		}
	}
	return strings.Join(parts, " ")
}

// IndexBuilder is a fluent builder for FT index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an FT index definition over hash records.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{def: IndexDefinition{Name: name}}
}

// Prefix adds key prefixes to the index.
func (b *IndexBuilder) Prefix(prefixes ...string) *IndexBuilder {
	b.def.Prefixes = append(b.def.Prefixes, prefixes...)
	return b
}

// Tag adds a TAG field with the record tag separator.
func (b *IndexBuilder) Tag(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name:         name,
		Type:         IndexFieldTag,
		TagSeparator: TagSeparator,
	})
	return b
}

// Numeric adds a NUMERIC field.
func (b *IndexBuilder) Numeric(name string, sortable bool) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name:     name,
		Type:     IndexFieldNumeric,
		Sortable: sortable,
	})
	return b
}

// Text adds a TEXT field.
func (b *IndexBuilder) Text(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Type: IndexFieldText})
	return b
}

// Geo adds a GEO field (point, "lng,lat" form; radius predicates).
func (b *IndexBuilder) Geo(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Type: IndexFieldGeo})
	return b
}

// GeoShape adds a GEOSHAPE field (WKT form; polygon containment predicates).
func (b *IndexBuilder) GeoShape(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Type: IndexFieldGeoShape})
	return b
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	return &b.def, nil
}

// MustBuild calls Build and panics on error.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// EntityIndex is the canonical search index over entity records.
func EntityIndex(name string, keyPrefix string) *IndexDefinition {
	return NewIndex(name).
		Prefix(keyPrefix).
		Tag(FieldKind).
		Tag(FieldSlug).
		Tag(FieldCity).
		Tag(FieldCountry).
		Tag(FieldCuisines).
		Tag(FieldDietary).
		Tag(FieldFeatures).
		Tag(FieldActive).
		Numeric(FieldPrice, true).
		Numeric(FieldRating, true).
		Numeric(FieldPopularity, true).
		Numeric(FieldViewCount, true).
		Numeric(FieldCreatedAt, true).
		Numeric(FieldOpenStart, false).
		Numeric(FieldOpenEnd, false).
		Geo(FieldLocation).
		GeoShape(FieldGeom).
		MustBuild()
}
