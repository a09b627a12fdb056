// Package seed implements bulk entity ingestion: validate, assign
// identifiers, and write through the store's pipelined hash path.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/entity"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/geo"
)

// Repository defines the storage contract for seeding.
type Repository interface {
	Put(ctx context.Context, entities []entity.Entity) error
}

// Service handles bulk ingestion.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a seed service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// NewAt creates a seed service with a fixed clock for tests.
func NewAt(repo Repository, now func() time.Time) *Service {
	return &Service{repo: repo, now: now}
}

// Seed validates and writes entities. Geometry is validated before any
// write; one invalid entity rejects the whole batch so a partial seed never
// lands. Entities without an ID get one assigned; a zero CreatedAt is
// stamped with the current instant. The returned slice carries the assigned
// values.
func (s *Service) Seed(ctx context.Context, entities []entity.Entity) ([]entity.Entity, error) {
	out := make([]entity.Entity, len(entities))
	for i, e := range entities {
		if err := validate(&e); err != nil {
			return nil, fmt.Errorf("entity %d (%s): %w", i, e.Name, err)
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = s.now()
		}
		out[i] = e
	}

	if err := s.repo.Put(ctx, out); err != nil {
		return nil, fmt.Errorf("seed %d entities: %w", len(out), err)
	}
	return out, nil
}

func validate(e *entity.Entity) error {
	if !e.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidRange, e.Kind)
	}
	if e.Name == "" {
		return fmt.Errorf("%w: empty name", domain.ErrInvalidRange)
	}
	if e.Location != nil {
		if err := geo.ValidatePoint(*e.Location); err != nil {
			return err
		}
	}
	if len(e.Route) > 0 {
		if err := geo.ValidatePath(e.Route); err != nil {
			return err
		}
	}
	return nil
}
