package facet

import (
	"fmt"
	"testing"
)

func TestTopBuckets_Order(t *testing.T) {
	got := TopBuckets([]Bucket{
		{Value: "goan", Count: 3},
		{Value: "seafood", Count: 9},
		{Value: "cafe", Count: 3},
		{Value: "north-indian", Count: 5},
	})
	want := []Bucket{
		{Value: "seafood", Count: 9},
		{Value: "north-indian", Count: 5},
		{Value: "cafe", Count: 3}, // count tie broken by value
		{Value: "goan", Count: 3},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestTopBuckets_Truncation(t *testing.T) {
	in := make([]Bucket, TopN+10)
	for i := range in {
		in[i] = Bucket{Value: fmt.Sprintf("v%03d", i), Count: len(in) - i}
	}
	got := TopBuckets(in)
	if len(got) != TopN {
		t.Fatalf("len = %d, want %d", len(got), TopN)
	}
	if got[0].Count != len(in) {
		t.Errorf("first bucket count = %d, want %d", got[0].Count, len(in))
	}
	if len(in) != TopN+10 {
		t.Error("input must not be truncated in place")
	}
}

func TestNewResult(t *testing.T) {
	r := NewResult(map[string][]Bucket{
		"cuisines": {{Value: "a", Count: 1}, {Value: "b", Count: 2}},
	}, PriceRange{Min: 100, Max: 900})

	buckets := r.Categories()["cuisines"]
	if len(buckets) != 2 || buckets[0].Value != "b" {
		t.Errorf("buckets not normalized: %v", buckets)
	}
	if r.Price() != (PriceRange{Min: 100, Max: 900}) {
		t.Errorf("price = %+v", r.Price())
	}
}

func TestPriceRange_ZeroOnEmpty(t *testing.T) {
	r := NewResult(nil, PriceRange{})
	if r.Price() != (PriceRange{}) {
		t.Errorf("empty population should keep the zero range, got %+v", r.Price())
	}
}
