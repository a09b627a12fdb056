// Package redis implements the db.Store contract on Redis Stack via rueidis,
// compiling queries to FT.SEARCH / FT.AGGREGATE over hash-stored records.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for a Redis store.
type Config struct {
	Addrs     []string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
	IndexName string
}

// Store implements db.Store via rueidis for Redis Stack 7.2+.
type Store struct {
	client    rueidis.Client
	keyPrefix string
	indexName string
}

// NewStore creates a Redis store via rueidis.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
		AlwaysRESP2:  true, // FT.SEARCH result parsing expects RESP2 array format
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return newStore(client, cfg), nil
}

func newStore(client rueidis.Client, cfg Config) *Store {
	keyPrefix := cfg.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = db.DefaultKeyPrefix
	}
	indexName := cfg.IndexName
	if indexName == "" {
		indexName = "idx:entities"
	}
	return &Store{client: client, keyPrefix: keyPrefix, indexName: indexName}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", db.ErrUnavailable)
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// EnsureIndex creates the entity index when it does not exist yet.
func (s *Store) EnsureIndex(ctx context.Context) error {
	def := db.EntityIndex(s.indexName, s.keyPrefix)

	probe := s.b().Arbitrary("FT.INFO").Args(def.Name).Build()
	if err := s.do(ctx, probe).Error(); err == nil {
		return nil
	} else if !isRedisErr(err, "unknown index name") {
		return &db.Error{Op: db.OpIndexInfo, Err: err}
	}

	args := buildCreateArgs(def)
	cmd := s.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return nil
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

func buildCreateArgs(idx *db.IndexDefinition) []string {
	args := []string{idx.Name, "ON", "HASH"}
	if len(idx.Prefixes) > 0 {
		args = append(args, "PREFIX", fmt.Sprint(len(idx.Prefixes)))
		args = append(args, idx.Prefixes...)
	}
	args = append(args, "SCHEMA")
	for i := range idx.Fields {
		f := &idx.Fields[i]
		args = append(args, f.Name, string(f.Type))
		if f.Type == db.IndexFieldTag && f.TagSeparator != "" {
			args = append(args, "SEPARATOR", f.TagSeparator)
		}
		if f.Sortable {
			args = append(args, "SORTABLE")
		}
	}
	return args
}

func (s *Store) key(id string) string {
	return s.keyPrefix + id
}

func (s *Store) do(ctx context.Context, cmd rueidis.Completed) rueidis.RedisResult {
	return s.client.Do(ctx, cmd)
}

func (s *Store) b() rueidis.Builder {
	return s.client.B()
}

func isRedisErr(err error, sub string) bool {
	return err != nil && containsIgnoreCase(err.Error(), sub)
}

func containsIgnoreCase(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
