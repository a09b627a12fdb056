// Package review implements the engagement write path: review submissions
// that fold into the entity's rating aggregate, and view counting that feeds
// the trending sort.
package review

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain"
)

// Rating bounds for a submitted review.
const (
	MinRating = 1.0
	MaxRating = 5.0
)

// Review is an accepted submission. Only the aggregate is folded into the
// searchable entity; the review body is returned to the caller for
// downstream storage.
type Review struct {
	ID        string
	EntityID  string
	Rating    float64
	Text      string
	CreatedAt time.Time
}

// Service handles review submissions and view counting.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a review service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// NewAt creates a review service with a fixed clock for tests.
func NewAt(repo Repository, now func() time.Time) *Service {
	return &Service{repo: repo, now: now}
}

// Add accepts a review and recomputes the entity's rating aggregate
// count-weighted: newAvg = (avg*count + rating) / (count + 1). The incoming
// rating never overwrites the average outright.
func (s *Service) Add(ctx context.Context, entityID string, rating float64, text string) (Review, error) {
	if rating < MinRating || rating > MaxRating {
		return Review{}, fmt.Errorf("%w: rating %v outside [%v, %v]",
			domain.ErrInvalidRange, rating, MinRating, MaxRating)
	}

	e, err := s.repo.Get(ctx, entityID)
	if err != nil {
		return Review{}, err
	}

	count := e.ReviewCount
	newAvg := (e.Rating*float64(count) + rating) / float64(count+1)
	if err := s.repo.UpdateRating(ctx, entityID, newAvg, count+1); err != nil {
		return Review{}, fmt.Errorf("fold review into aggregate: %w", err)
	}

	return Review{
		ID:        uuid.NewString(),
		EntityID:  entityID,
		Rating:    rating,
		Text:      text,
		CreatedAt: s.now(),
	}, nil
}

// RecordView bumps the entity's view counter and returns the new total.
// The counter is the secondary key of the trending sort.
func (s *Service) RecordView(ctx context.Context, entityID string) (int64, error) {
	if _, err := s.repo.Get(ctx, entityID); err != nil {
		return 0, err
	}
	n, err := s.repo.IncrView(ctx, entityID)
	if err != nil {
		return 0, fmt.Errorf("record view: %w", err)
	}
	return n, nil
}
