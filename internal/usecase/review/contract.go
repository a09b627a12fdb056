package review

import (
	"context"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/entity"
)

// Repository defines the storage contract for rating aggregates and view
// counters.
type Repository interface {
	Get(ctx context.Context, id string) (entity.Entity, error)
	UpdateRating(ctx context.Context, id string, rating float64, reviewCount int64) error
	IncrView(ctx context.Context, id string) (int64, error)
}
