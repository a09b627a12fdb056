package domain

import "errors"

var (
	// ErrNotFound signals that an identifier or slug has no matching entity.
	// List and detail flows treat this as an expected outcome, not a failure.
	ErrNotFound = errors.New("not found")
	// ErrInvalidGeometry signals coordinates outside the valid range or a
	// structurally malformed point or path. The only hard-rejection input error.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrInvalidRange signals a non-finite or malformed numeric filter input.
	// The compiler coerces these to "no constraint"; the sentinel exists for
	// callers that want to surface the coercion.
	ErrInvalidRange = errors.New("invalid range")
	// ErrStoreUnavailable signals an unreachable persistence layer. Retryable
	// infrastructure failure, propagated rather than masked.
	ErrStoreUnavailable = errors.New("store unavailable")
)
