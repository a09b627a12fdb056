package result

import (
	"testing"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/entity"
)

func entities(n int) []entity.Entity {
	out := make([]entity.Entity, n)
	for i := range out {
		out[i] = entity.Entity{ID: string(rune('a' + i))}
	}
	return out
}

func TestPage_HasMore(t *testing.T) {
	tests := []struct {
		name               string
		items, page, limit int
		total              int
		want               bool
	}{
		{"first of many", 20, 1, 20, 45, true},
		{"middle page", 20, 2, 20, 45, true},
		{"last partial page", 5, 3, 20, 45, false},
		{"exact fit last page", 20, 2, 20, 40, false},
		{"empty population", 0, 1, 20, 0, false},
		{"page past the end", 0, 9, 20, 45, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPage(entities(tc.items), tc.page, tc.limit, tc.total)
			if got := p.HasMore(); got != tc.want {
				t.Errorf("HasMore() = %v, want %v (offset=%d items=%d total=%d)",
					got, tc.want, (tc.page-1)*tc.limit, tc.items, tc.total)
			}
		})
	}
}

func TestHit_Distance(t *testing.T) {
	h := NewHit(entity.Entity{ID: "x"})
	if h.DistanceMeters() != nil {
		t.Error("plain hit should have nil distance")
	}
	h = NewHitWithDistance(entity.Entity{ID: "y"}, 1234.5)
	if h.DistanceMeters() == nil || *h.DistanceMeters() != 1234.5 {
		t.Errorf("distance = %v, want 1234.5", h.DistanceMeters())
	}
	if h.Entity().ID != "y" {
		t.Errorf("entity id = %q", h.Entity().ID)
	}
}
