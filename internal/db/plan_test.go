package db

import (
	"testing"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
)

func TestPlanBuilder_Valid(t *testing.T) {
	p, err := NewPlan().
		Match(filter.Spec{}).
		GroupBy(FieldCuisines, Count("count")).
		Sort("count", true).
		Limit(25).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Group().GroupField != FieldCuisines {
		t.Errorf("group field = %q", p.Group().GroupField)
	}
	if st, ok := p.SortStage(); !ok || st.SortColumn != "count" || !st.SortDesc {
		t.Errorf("sort stage = %+v ok=%v", st, ok)
	}
	if p.LimitN() != 25 {
		t.Errorf("limit = %d", p.LimitN())
	}
}

func TestPlanBuilder_WholePopulation(t *testing.T) {
	p, err := NewPlan().
		GroupBy("", Min(FieldPrice, "min"), Max(FieldPrice, "max")).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Group().GroupField != "" || len(p.Group().Reducers) != 2 {
		t.Errorf("group stage = %+v", p.Group())
	}
	if _, ok := p.SortStage(); ok {
		t.Error("no sort stage expected")
	}
	if p.LimitN() != 0 {
		t.Errorf("limit = %d, want unlimited", p.LimitN())
	}
}

func TestPlanBuilder_Invalid(t *testing.T) {
	tests := []struct {
		name string
		b    *PlanBuilder
	}{
		{"no group", NewPlan().Match(filter.Spec{})},
		{"group without reducers", NewPlan().GroupBy(FieldCuisines)},
		{"two groups", NewPlan().GroupBy("", Count("a")).GroupBy("", Count("b"))},
		{"match after group", NewPlan().GroupBy("", Count("a")).Match(filter.Spec{})},
		{"sort before group", NewPlan().Sort("count", true).GroupBy("", Count("a"))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.b.Build(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
