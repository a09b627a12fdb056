package naveeka

import (
	"context"
	"time"
)

// ReviewService submits reviews and records views.
type ReviewService struct {
	svc reviewUseCase
	obs *observer
}

// Add submits a review for an entity. The rating must lie in [1.0, 5.0];
// the entity's aggregate rating is updated with a count-weighted average.
func (r *ReviewService) Add(ctx context.Context, entityID string, rating float64, text string) (_ Review, err error) {
	start := time.Now()
	defer func() { r.obs.observe("reviews.add", start, err) }()

	rev, err := r.svc.Add(ctx, entityID, rating, text)
	if err != nil {
		return Review{}, err
	}
	return reviewFromDomain(rev), nil
}

// RecordView increments the entity's view counter and returns the new total.
func (r *ReviewService) RecordView(ctx context.Context, entityID string) (_ int64, err error) {
	start := time.Now()
	defer func() { r.obs.observe("reviews.record_view", start, err) }()

	return r.svc.RecordView(ctx, entityID)
}
