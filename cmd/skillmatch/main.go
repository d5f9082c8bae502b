package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"skillmatch/internal/api"
	"skillmatch/internal/api/middleware"
	"skillmatch/internal/config"
	"skillmatch/internal/logger"
	"skillmatch/internal/models"
	"skillmatch/internal/persistence"
	"skillmatch/internal/seed"
	"skillmatch/internal/state"
	"skillmatch/internal/storage"
	"skillmatch/internal/storage/memory"
	"skillmatch/internal/storage/redis"
	"skillmatch/internal/storage/sqlstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting skillmatch",
		zap.String("log_level", cfg.LogLevel),
		zap.String("storage", cfg.StorageBackend),
		zap.String("namespace", cfg.StorageNamespace),
	)

	medium, counter, closeMedium, err := openMedium(cfg, log)
	if err != nil {
		log.Fatal("failed to open storage", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}
	defer closeMedium()

	svc := persistence.New(medium, log.Named("persistence"), persistence.WithNamespace(cfg.StorageNamespace))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.DemoRecruiterID != "" {
		seedDemoJobs(ctx, svc, cfg, log)
	}

	hookOpts := []state.Option{state.WithMinLoadDelay(cfg.SimpleLoadDelay)}
	workspace := state.NewWorkspace(
		medium,
		cfg.StorageNamespace,
		rand.New(rand.NewSource(time.Now().UnixNano())),
		log.Named("workspace"),
		hookOpts...,
	)
	workspace.Start(ctx)

	handler := api.NewHandler(svc, workspace, cfg.StorageTimeout, log.Named("api"), hookOpts...)
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      api.NewRouter(handler, counter, cfg.RateLimitPerMinute, log.Named("http")),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-sigChan:
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("http server stopped with error", zap.Error(err))
	}

	cancel()

	log.Info("shutting down gracefully...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down http server", zap.Error(err))
	}

	log.Info("skillmatch stopped")
}

// openMedium picks the storage backend. Only Redis provides a rate limit
// counter.
func openMedium(cfg *config.Config, log *zap.Logger) (storage.Medium, middleware.Counter, func() error, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		log.Info("connecting to Redis...")
		m, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.StorageNamespace, log.Named("redis"))
		if err != nil {
			return nil, nil, nil, err
		}
		return m, m, m.Close, nil

	case config.BackendPostgres:
		log.Info("connecting to PostgreSQL...")
		m, err := sqlstore.New(sqlstore.DriverPostgres, cfg.PostgresDSN, cfg.StorageNamespace, log.Named("sql"))
		if err != nil {
			return nil, nil, nil, err
		}
		return m, nil, m.Close, nil

	case config.BackendSQLite:
		log.Info("opening SQLite database...", zap.String("path", cfg.SQLitePath))
		m, err := sqlstore.New(sqlstore.DriverSQLite, cfg.SQLitePath, cfg.StorageNamespace, log.Named("sql"))
		if err != nil {
			return nil, nil, nil, err
		}
		return m, nil, m.Close, nil

	default:
		m := memory.New()
		return m, nil, m.Close, nil
	}
}

func seedDemoJobs(ctx context.Context, svc *persistence.Service, cfg *config.Config, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, cfg.StorageTimeout)
	defer cancel()

	jobs := state.NewJobs(svc, log.Named("seed"))
	jobs.Mount(ctx, state.Identity{UserID: cfg.DemoRecruiterID, Role: models.RoleRecruiter, Company: cfg.DemoCompany})
	if len(jobs.Items()) > 0 {
		return
	}

	for _, posting := range seed.Jobs(cfg.DemoRecruiterID, cfg.DemoCompany) {
		if err := jobs.SaveItem(ctx, posting); err != nil {
			log.Warn("failed to seed demo job", zap.String("job_id", posting.ID), zap.Error(err))
			return
		}
	}

	log.Info("seeded demo jobs", zap.String("recruiter_id", cfg.DemoRecruiterID))
}
