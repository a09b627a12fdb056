package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker checks that the entity search index exists and is usable.
type IndexChecker interface {
	EnsureIndex(ctx context.Context) error
}
