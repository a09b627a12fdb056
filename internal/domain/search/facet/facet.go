// Package facet models grouped-count summaries over a filtered population.
package facet

import "sort"

// TopN caps the bucket list per facet dimension.
const TopN = 25

// Bucket is one distinct value and its occurrence count. An entity with
// multiple tags contributes to multiple buckets, so bucket counts per
// dimension may sum to more than the population size.
type Bucket struct {
	Value string
	Count int
}

// PriceRange is the numeric summary facet. An empty population yields the
// zero range {0,0} rather than a null.
type PriceRange struct {
	Min float64
	Max float64
}

// Result maps facet dimension names to their ordered bucket lists, plus the
// price range summary. Consistent with exactly one FilterSpec; per-dimension
// filter removal is composed by the caller.
type Result struct {
	categories map[string][]Bucket
	price      PriceRange
}

// NewResult normalizes raw bucket lists: sorted by descending count with
// value as the tiebreak, truncated to TopN per dimension.
func NewResult(categories map[string][]Bucket, price PriceRange) Result {
	normalized := make(map[string][]Bucket, len(categories))
	for name, buckets := range categories {
		normalized[name] = TopBuckets(buckets)
	}
	return Result{categories: normalized, price: price}
}

// Categories returns the per-dimension bucket lists.
func (r Result) Categories() map[string][]Bucket { return r.categories }

// Price returns the price range summary.
func (r Result) Price() PriceRange { return r.price }

// TopBuckets sorts buckets by descending count (value ascending on ties) and
// truncates to TopN. The input slice is not modified.
func TopBuckets(buckets []Bucket) []Bucket {
	out := make([]Bucket, len(buckets))
	copy(out, buckets)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > TopN {
		out = out[:TopN]
	}
	return out
}
