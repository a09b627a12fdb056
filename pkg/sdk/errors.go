package naveeka

import "github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound         = domain.ErrNotFound
	ErrInvalidGeometry  = domain.ErrInvalidGeometry
	ErrInvalidRange     = domain.ErrInvalidRange
	ErrStoreUnavailable = domain.ErrStoreUnavailable
)
