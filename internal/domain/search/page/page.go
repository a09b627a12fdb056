// Package page models pagination windows and named sort strategies.
package page

// Pagination defaults and the hard listing cap. Spatial strategies carry
// their own ceilings (see the spatial package).
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Sortable field names. Backends map these to their own attribute names.
const (
	FieldRating     = "rating"
	FieldPopularity = "popularity"
	FieldPrice      = "price"
	FieldCreatedAt  = "created_at"
	FieldViewCount  = "view_count"
)

// Request is a normalized pagination window. Construct via NewRequest so the
// page and limit invariants hold.
type Request struct {
	page  int
	limit int
}

// NewRequest clamps page and limit into range: page >= 1, limit in
// [1, MaxLimit]. Out-of-range values are coerced to the documented defaults
// rather than rejected.
func NewRequest(page, limit int) Request {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Request{page: page, limit: limit}
}

// Page returns the 1-based page number.
func (r Request) Page() int { return r.page }

// Limit returns the page size.
func (r Request) Limit() int { return r.limit }

// Offset returns the number of items to skip: (page-1) * limit.
func (r Request) Offset() int { return (r.page - 1) * r.limit }

// Sort is a named ordering strategy, never a raw field list.
type Sort string

const (
	SortRatingDesc Sort = "rating_desc"
	SortPriceAsc   Sort = "price_asc"
	SortPriceDesc  Sort = "price_desc"
	SortNewest     Sort = "newest"
	SortPopularity Sort = "popularity"
)

// Key is one resolved sort dimension.
type Key struct {
	Field string
	Desc  bool
}

// Keys resolves the strategy to its ordered key list. Ties within the first
// key break on the second; unknown strategies fall back to popularity. The
// resulting order is stable across calls against unchanged data.
func (s Sort) Keys() []Key {
	switch s {
	case SortRatingDesc:
		return []Key{{Field: FieldRating, Desc: true}, {Field: FieldPopularity, Desc: true}}
	case SortPriceAsc:
		return []Key{{Field: FieldPrice}, {Field: FieldPopularity, Desc: true}}
	case SortPriceDesc:
		return []Key{{Field: FieldPrice, Desc: true}, {Field: FieldPopularity, Desc: true}}
	case SortNewest:
		return []Key{{Field: FieldCreatedAt, Desc: true}}
	default:
		return []Key{{Field: FieldPopularity, Desc: true}, {Field: FieldViewCount, Desc: true}}
	}
}
