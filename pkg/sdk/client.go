package naveeka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/db"
	dbMemory "github.com/VishwanathArchakMR/Naveeka-sub002/internal/db/memory"
	dbRedis "github.com/VishwanathArchakMR/Naveeka-sub002/internal/db/redis"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/entity"
	domfacet "github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/facet"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/filter"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/page"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/domain/search/result"
	entityrepo "github.com/VishwanathArchakMR/Naveeka-sub002/internal/repository/entity"
	facetuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/facet"
	healthuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/health"
	reviewuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/review"
	searchuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/search"
	seeduc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/seed"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can substitute the services.
type searchUseCase interface {
	List(ctx context.Context, opts filter.Options, sort page.Sort, pageNum, limit int) (result.Page, error)
	Near(ctx context.Context, opts filter.Options, lng, lat, radiusKm float64, limit int) ([]result.Hit, error)
	Within(ctx context.Context, opts filter.Options, minLng, minLat, maxLng, maxLat float64, limit int) ([]result.Hit, error)
	Get(ctx context.Context, id string) (entity.Entity, error)
	GetBySlug(ctx context.Context, slug string) (entity.Entity, error)
}

type facetUseCase interface {
	Aggregate(ctx context.Context, opts filter.Options) (domfacet.Result, error)
}

type reviewUseCase interface {
	Add(ctx context.Context, entityID string, rating float64, text string) (reviewuc.Review, error)
	RecordView(ctx context.Context, entityID string) (int64, error)
}

type seedUseCase interface {
	Seed(ctx context.Context, entities []entity.Entity) ([]entity.Entity, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the Naveeka SDK entry point.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	facetSvc  facetUseCase
	reviewSvc reviewUseCase
	seedSvc   seedUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Naveeka Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("naveeka: database driver required (use WithRedis or WithMemory)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("naveeka: database not ready: %w", err)
	}
	if err := store.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("naveeka: ensure index: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "redis":
		if len(cfg.addrs) == 0 {
			return nil, errors.New("naveeka: redis address required")
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.addrs,
			Username:  cfg.username,
			Password:  cfg.password,
			DB:        cfg.db,
			KeyPrefix: cfg.keyPrefix,
			IndexName: cfg.indexName,
		})
		if err != nil {
			return nil, fmt.Errorf("naveeka: create redis store: %w", err)
		}
		return s, nil
	case "memory":
		return dbMemory.NewStore(), nil
	default:
		return nil, fmt.Errorf("naveeka: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	var repoOpts []entityrepo.Option
	if cfg.keyPrefix != "" {
		repoOpts = append(repoOpts, entityrepo.WithKeyPrefix(cfg.keyPrefix))
	}
	if cfg.facetTTL > 0 {
		repoOpts = append(repoOpts, entityrepo.WithFacetTTL(cfg.facetTTL))
	}
	repo := entityrepo.New(store, repoOpts...)

	return &Client{
		store:     store,
		searchSvc: searchuc.New(repo),
		facetSvc:  facetuc.New(repo),
		reviewSvc: reviewuc.New(repo),
		seedSvc:   seeduc.New(repo),
		healthSvc: healthuc.New(store, store),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search returns the entity search service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc, obs: c.obs}
}

// Reviews returns the review submission service.
func (c *Client) Reviews() *ReviewService {
	return &ReviewService{svc: c.reviewSvc, obs: c.obs}
}

// Facets aggregates category counts and the price range over the
// population matching the filter.
func (c *Client) Facets(ctx context.Context, f Filter) (_ Facets, err error) {
	start := time.Now()
	defer func() { c.obs.observe("facets", start, err) }()

	res, err := c.facetSvc.Aggregate(ctx, filterOptions(f))
	if err != nil {
		return Facets{}, err
	}
	return facetsFromDomain(res), nil
}

// Seed validates and stores a batch of entities. The whole batch is
// rejected if any entity fails validation. Returned entities carry the
// assigned IDs and creation timestamps.
func (c *Client) Seed(ctx context.Context, entities []Entity) (_ []Entity, err error) {
	start := time.Now()
	defer func() { c.obs.observe("seed", start, err) }()

	in := make([]entity.Entity, 0, len(entities))
	for _, e := range entities {
		in = append(in, entityToDomain(e))
	}
	out, err := c.seedSvc.Seed(ctx, in)
	if err != nil {
		return nil, err
	}
	return entitiesFromDomain(out), nil
}
