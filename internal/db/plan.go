package db

import (
	"errors"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
)

// StageKind tags an aggregation plan stage.
type StageKind int

const (
	// StageMatch narrows the population with a filter spec.
	StageMatch StageKind = iota
	// StageGroupBy groups by a field (empty field groups the whole
	// population into one row) and applies reducers.
	StageGroupBy
	// StageSort orders output rows by a produced column.
	StageSort
	// StageLimit truncates output rows.
	StageLimit
)

// ReduceKind tags a group reducer.
type ReduceKind int

const (
	ReduceCount ReduceKind = iota
	ReduceMin
	ReduceMax
)

// Reducer is one aggregate computation within a GroupBy stage. As names the
// output column.
type Reducer struct {
	Kind  ReduceKind
	Field string
	As    string
}

// Stage is one tagged plan step. Only the members of the active kind are set.
type Stage struct {
	Kind StageKind

	Filters filter.Spec // StageMatch

	GroupField string    // StageGroupBy; "" groups everything
	Reducers   []Reducer // StageGroupBy

	SortColumn string // StageSort
	SortDesc   bool   // StageSort

	N int // StageLimit
}

// Plan is an ordered stage list describing what to aggregate, not how.
// Backend executors compile it to native queries.
type Plan struct {
	Stages []Stage
}

// PlanBuilder builds aggregation plans fluently.
type PlanBuilder struct {
	plan Plan
}

// NewPlan starts an aggregation plan.
func NewPlan() *PlanBuilder {
	return &PlanBuilder{}
}

// Match appends a filter stage.
func (b *PlanBuilder) Match(spec filter.Spec) *PlanBuilder {
	b.plan.Stages = append(b.plan.Stages, Stage{Kind: StageMatch, Filters: spec})
	return b
}

// GroupBy appends a grouping stage.
func (b *PlanBuilder) GroupBy(field string, reducers ...Reducer) *PlanBuilder {
	b.plan.Stages = append(b.plan.Stages, Stage{Kind: StageGroupBy, GroupField: field, Reducers: reducers})
	return b
}

// Sort appends a sort stage over an output column.
func (b *PlanBuilder) Sort(column string, desc bool) *PlanBuilder {
	b.plan.Stages = append(b.plan.Stages, Stage{Kind: StageSort, SortColumn: column, SortDesc: desc})
	return b
}

// Limit appends a truncation stage.
func (b *PlanBuilder) Limit(n int) *PlanBuilder {
	b.plan.Stages = append(b.plan.Stages, Stage{Kind: StageLimit, N: n})
	return b
}

// Build validates and returns the plan: exactly one GroupBy, Match only
// before it, Sort/Limit only after.
func (b *PlanBuilder) Build() (Plan, error) {
	groupAt := -1
	for i, st := range b.plan.Stages {
		switch st.Kind {
		case StageGroupBy:
			if groupAt >= 0 {
				return Plan{}, errors.New("plan: multiple group stages")
			}
			if len(st.Reducers) == 0 {
				return Plan{}, errors.New("plan: group stage needs at least one reducer")
			}
			groupAt = i
		case StageMatch:
			if groupAt >= 0 {
				return Plan{}, errors.New("plan: match stage after group stage")
			}
		case StageSort, StageLimit:
			if groupAt < 0 {
				return Plan{}, errors.New("plan: sort/limit stage before group stage")
			}
		}
	}
	if groupAt < 0 {
		return Plan{}, errors.New("plan: missing group stage")
	}
	return b.plan, nil
}

// MustBuild calls Build and panics on error. For statically known plans.
func (b *PlanBuilder) MustBuild() Plan {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}

// Match returns the filter spec of the plan's match stages combined with
// later stages untouched. Backends call helpers below instead of walking
// stages themselves.
func (p Plan) Match() filter.Spec {
	for _, st := range p.Stages {
		if st.Kind == StageMatch {
			return st.Filters
		}
	}
	return filter.Spec{}
}

// Group returns the plan's group stage.
func (p Plan) Group() Stage {
	for _, st := range p.Stages {
		if st.Kind == StageGroupBy {
			return st
		}
	}
	return Stage{Kind: StageGroupBy}
}

// SortStage returns the plan's sort stage and whether one exists.
func (p Plan) SortStage() (Stage, bool) {
	for _, st := range p.Stages {
		if st.Kind == StageSort {
			return st, true
		}
	}
	return Stage{}, false
}

// LimitN returns the plan's row limit, 0 when unlimited.
func (p Plan) LimitN() int {
	for _, st := range p.Stages {
		if st.Kind == StageLimit {
			return st.N
		}
	}
	return 0
}

// Count builds a COUNT reducer.
func Count(as string) Reducer {
	return Reducer{Kind: ReduceCount, As: as}
}

// Min builds a MIN reducer over field.
func Min(field, as string) Reducer {
	return Reducer{Kind: ReduceMin, Field: field, As: as}
}

// Max builds a MAX reducer over field.
func Max(field, as string) Reducer {
	return Reducer{Kind: ReduceMax, Field: field, As: as}
}
