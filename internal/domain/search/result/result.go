package result

import "github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/entity"

// Hit is a single search hit, optionally carrying the computed great-circle
// distance when the request used a radius strategy.
type Hit struct {
	entity         entity.Entity
	distanceMeters *float64
}

// NewHit creates a hit without distance.
func NewHit(e entity.Entity) Hit {
	return Hit{entity: e}
}

// NewHitWithDistance creates a hit annotated with its distance from the
// search center, in meters.
func NewHitWithDistance(e entity.Entity, meters float64) Hit {
	return Hit{entity: e, distanceMeters: &meters}
}

// Entity returns the matched record.
func (h *Hit) Entity() entity.Entity { return h.entity }

// DistanceMeters returns the distance from the search center, nil when the
// request had no radius strategy.
func (h *Hit) DistanceMeters() *float64 { return h.distanceMeters }

// Page is one window of a paginated listing. HasMore is always derived,
// never stored.
type Page struct {
	items []entity.Entity
	page  int
	limit int
	total int
}

// NewPage assembles a page window from an independent fetch and count.
func NewPage(items []entity.Entity, pageNum, limit, total int) Page {
	return Page{items: items, page: pageNum, limit: limit, total: total}
}

// Items returns the windowed records.
func (p Page) Items() []entity.Entity { return p.items }

// Page returns the 1-based page number.
func (p Page) Page() int { return p.page }

// Limit returns the page size.
func (p Page) Limit() int { return p.limit }

// Total returns the full filtered population size.
func (p Page) Total() int { return p.total }

// HasMore reports whether records exist past this window:
// offset + len(items) < total.
func (p Page) HasMore() bool {
	return (p.page-1)*p.limit+len(p.items) < p.total
}
