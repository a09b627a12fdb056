package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/config"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/db"
	dbMemory "github.com/VishwanathArchakMR/Naveeka-sub002/internal/db/memory"
	dbRedis "github.com/VishwanathArchakMR/Naveeka-sub002/internal/db/redis"
	logpkg "github.com/VishwanathArchakMR/Naveeka-sub002/internal/logger"
	entityrepo "github.com/VishwanathArchakMR/Naveeka-sub002/internal/repository/entity"
	chiTransport "github.com/VishwanathArchakMR/Naveeka-sub002/internal/transport/chi"
	facetuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/facet"
	healthuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/health"
	reviewuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/review"
	searchuc "github.com/VishwanathArchakMR/Naveeka-sub002/internal/usecase/search"
	"github.com/VishwanathArchakMR/Naveeka-sub002/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting naveeka search API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Create database store based on driver
	var store db.Store
	switch cfg.Database.Driver {
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Database.Addrs,
			Username:  cfg.Database.Username,
			Password:  cfg.Database.Password,
			DB:        cfg.Database.DB,
			KeyPrefix: cfg.Search.KeyPrefix,
			IndexName: cfg.Search.IndexName,
		})
	case "memory":
		store = dbMemory.NewStore()
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database, then make sure the search index exists
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	if err := store.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure search index", zap.Error(err))
	}
	logger.Info("Connected to database, index ready")

	// Repositories and use case services — composition root
	repo := entityrepo.New(store,
		entityrepo.WithKeyPrefix(cfg.Search.KeyPrefix),
		entityrepo.WithFacetTTL(time.Duration(cfg.Search.FacetTTLSec)*time.Second),
	)
	searchSvc := searchuc.New(repo)
	facetSvc := facetuc.New(repo)
	reviewSvc := reviewuc.New(repo)
	healthSvc := healthuc.New(store, store)

	server := chiTransport.NewServer(searchSvc, facetSvc, reviewSvc, healthSvc, logger, cfg.Auth.APIKeys)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
