package page

import "testing"

func TestNewRequest(t *testing.T) {
	tests := []struct {
		name            string
		page, limit     int
		wantPage        int
		wantLimit       int
		wantOffset      int
	}{
		{"defaults", 0, 0, 1, 20, 0},
		{"negative coerced", -3, -1, 1, 20, 0},
		{"limit capped", 1, 500, 1, 100, 0},
		{"second page", 2, 10, 2, 10, 10},
		{"deep page", 7, 25, 7, 25, 150},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRequest(tc.page, tc.limit)
			if r.Page() != tc.wantPage || r.Limit() != tc.wantLimit || r.Offset() != tc.wantOffset {
				t.Errorf("got page=%d limit=%d offset=%d, want %d/%d/%d",
					r.Page(), r.Limit(), r.Offset(), tc.wantPage, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}

func TestSortKeys(t *testing.T) {
	tests := []struct {
		sort Sort
		want []Key
	}{
		{SortRatingDesc, []Key{{FieldRating, true}, {FieldPopularity, true}}},
		{SortPriceAsc, []Key{{FieldPrice, false}, {FieldPopularity, true}}},
		{SortPriceDesc, []Key{{FieldPrice, true}, {FieldPopularity, true}}},
		{SortNewest, []Key{{FieldCreatedAt, true}}},
		{SortPopularity, []Key{{FieldPopularity, true}, {FieldViewCount, true}}},
		{Sort(""), []Key{{FieldPopularity, true}, {FieldViewCount, true}}},
		{Sort("bogus"), []Key{{FieldPopularity, true}, {FieldViewCount, true}}},
	}
	for _, tc := range tests {
		t.Run(string(tc.sort), func(t *testing.T) {
			got := tc.sort.Keys()
			if len(got) != len(tc.want) {
				t.Fatalf("Keys() = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("Keys() = %v, want %v", got, tc.want)
				}
			}
		})
	}
}
