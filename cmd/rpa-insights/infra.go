package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/SKpacteazy/rpa-insights-backend/config"
	"github.com/SKpacteazy/rpa-insights-backend/internal/bootstrap"
)

// infra owns the process-wide connections. Commands close it on exit.
type infra struct {
	db    *sql.DB
	redis redis.UniversalClient
}

// connectInfra opens the database pool and, when the run lease is enabled,
// a Redis client.
func connectInfra(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*infra, error) {
	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{DBConfig: cfg.Postgres, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	in := &infra{db: db}

	if !cfg.IsLeaseEnabled() {
		return in, nil
	}
	in.redis, err = bootstrap.ConnectRedis(ctx, bootstrap.DatabaseConfig{RedisConfig: cfg.Redis, Logger: logger})
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close db: %w", closeErr))
		}
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return in, nil
}

// migrateOnStart applies migrations when DB_RUN_MIGRATIONS_ON_START is set.
func (in *infra) migrateOnStart(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	if !cfg.Postgres.RunMigrationsOnStart {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		return nil
	}
	_, err := bootstrap.RunMigrations(ctx, in.db, logger)
	return err
}

func (in *infra) close(ctx context.Context, logger *slog.Logger) {
	if in == nil {
		return
	}
	if in.redis != nil {
		if err := in.redis.Close(); err != nil {
			logger.WarnContext(ctx, "redis close failed", "error", err)
		}
	}
	if in.db != nil {
		if err := in.db.Close(); err != nil {
			logger.WarnContext(ctx, "db close failed", "error", err)
		}
	}
}

// newServices connects infrastructure and wires the sync engine.
func newServices(ctx context.Context, opts *rootOptions) (*infra, bootstrap.ServiceContainer, error) {
	in, err := connectInfra(ctx, &opts.cfg, opts.logger)
	if err != nil {
		return nil, bootstrap.ServiceContainer{}, err
	}
	if err := in.migrateOnStart(ctx, &opts.cfg, opts.logger); err != nil {
		in.close(ctx, opts.logger)
		return nil, bootstrap.ServiceContainer{}, err
	}

	svcs, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &opts.cfg,
		DB:          in.db,
		RedisClient: in.redis,
		Logger:      opts.logger,
	})
	if err != nil {
		in.close(ctx, opts.logger)
		return nil, bootstrap.ServiceContainer{}, err
	}
	return in, svcs, nil
}
