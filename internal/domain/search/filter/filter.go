// Package filter compiles loosely-typed query options into a normalized,
// backend-agnostic predicate bundle (the Spec).
package filter

import (
	"math"
	"strings"
	"time"
)

// Entity field names referenced by compiled predicates. Backends map these
// to their own column or index attribute names.
const (
	FieldKind     = "kind"
	FieldCity     = "city"
	FieldCountry  = "country"
	FieldCuisines = "cuisines"
	FieldDietary  = "dietary"
	FieldFeatures = "features"
	FieldPrice    = "price"
	FieldRating   = "rating"
)

// Range is a numeric interval with optional inclusive bounds. A nil side is
// unbounded. Min greater than Max is legal and matches nothing.
type Range struct {
	min *float64
	max *float64
}

// Min returns the inclusive lower bound, nil when unbounded.
func (r Range) Min() *float64 { return r.min }

// Max returns the inclusive upper bound, nil when unbounded.
func (r Range) Max() *float64 { return r.max }

// Matches reports whether v satisfies the range.
func (r Range) Matches(v float64) bool {
	if r.min != nil && v < *r.min {
		return false
	}
	if r.max != nil && v > *r.max {
		return false
	}
	return true
}

// Spec is the compiled predicate bundle. Built fresh per request, never
// persisted. The zero value matches everything.
type Spec struct {
	matches    map[string]string
	anyOf      map[string][]string
	allOf      map[string][]string
	ranges     map[string]Range
	openAt     *time.Time
	activeOnly bool
}

// Matches returns the exact-match predicates (field -> value).
func (s Spec) Matches() map[string]string { return s.matches }

// AnyOf returns the set-membership predicates (field -> accepted values).
func (s Spec) AnyOf() map[string][]string { return s.anyOf }

// AllOf returns the set-containment predicates (field -> required values).
func (s Spec) AllOf() map[string][]string { return s.allOf }

// Ranges returns the numeric range predicates (field -> interval).
func (s Spec) Ranges() map[string]Range { return s.ranges }

// OpenAt returns the instant the availability-overlap predicate is evaluated
// against, nil when openNow was not requested.
func (s Spec) OpenAt() *time.Time { return s.openAt }

// ActiveOnly reports whether inactive entities are excluded.
func (s Spec) ActiveOnly() bool { return s.activeOnly }

// IsEmpty reports whether the spec constrains nothing.
func (s Spec) IsEmpty() bool {
	return len(s.matches) == 0 && len(s.anyOf) == 0 && len(s.allOf) == 0 &&
		len(s.ranges) == 0 && s.openAt == nil && !s.activeOnly
}

// MatchOnly builds a spec with a single exact-match predicate. Used by
// lookup paths (slug resolution) that bypass the option compiler.
func MatchOnly(field, value string) Spec {
	return Spec{matches: map[string]string{field: value}}
}

// Options is the recognized raw query surface. Category fields accept both
// repeated values and comma-separated lists; the compiler splits and trims.
// Nil numeric pointers mean "no constraint".
type Options struct {
	Kind    string
	City    string
	Country string

	Cuisines []string // any-of
	Features []string // any-of
	Dietary  []string // all-of

	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64

	OpenNow    bool
	ActiveOnly bool
}

// Compiler turns Options into a Spec. The clock is injectable so the
// openNow predicate is testable against a fixed instant.
type Compiler struct {
	now func() time.Time
}

// NewCompiler creates a compiler evaluating openNow against the wall clock.
func NewCompiler() *Compiler {
	return &Compiler{now: func() time.Time { return time.Now().UTC() }}
}

// NewCompilerAt creates a compiler with a fixed clock.
func NewCompilerAt(now func() time.Time) *Compiler {
	return &Compiler{now: now}
}

// Compile normalizes opts into a Spec. Pure transformation: empty inputs are
// omitted (filter absent, never "match nothing"), non-finite numeric bounds
// are dropped as "no constraint", and min > max is passed through so the
// backend yields an empty result set rather than an error.
func (c *Compiler) Compile(opts Options) Spec {
	s := Spec{activeOnly: opts.ActiveOnly}

	putMatch := func(field, value string) {
		if value = strings.TrimSpace(value); value == "" {
			return
		}
		if s.matches == nil {
			s.matches = make(map[string]string)
		}
		s.matches[field] = value
	}
	putMatch(FieldKind, opts.Kind)
	putMatch(FieldCity, opts.City)
	putMatch(FieldCountry, opts.Country)

	if vals := SplitValues(opts.Cuisines); len(vals) > 0 {
		s.anyOf = map[string][]string{FieldCuisines: vals}
	}
	if vals := SplitValues(opts.Features); len(vals) > 0 {
		if s.anyOf == nil {
			s.anyOf = make(map[string][]string)
		}
		s.anyOf[FieldFeatures] = vals
	}
	if vals := SplitValues(opts.Dietary); len(vals) > 0 {
		s.allOf = map[string][]string{FieldDietary: vals}
	}

	if r, ok := newRange(opts.MinPrice, opts.MaxPrice); ok {
		s.ranges = map[string]Range{FieldPrice: r}
	}
	if r, ok := newRange(opts.MinRating, nil); ok {
		if s.ranges == nil {
			s.ranges = make(map[string]Range)
		}
		s.ranges[FieldRating] = r
	}

	if opts.OpenNow {
		at := c.now()
		s.openAt = &at
	}
	return s
}

// newRange drops non-finite bounds and reports whether any bound survives.
func newRange(min, max *float64) (Range, bool) {
	var r Range
	if min != nil && isFinite(*min) {
		v := *min
		r.min = &v
	}
	if max != nil && isFinite(*max) {
		v := *max
		r.max = &v
	}
	return r, r.min != nil || r.max != nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SplitValues flattens raw inputs into a set of trimmed, non-empty strings,
// splitting each element on commas. Duplicates are dropped, first occurrence
// order is kept.
func SplitValues(raw []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			v := strings.TrimSpace(part)
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
