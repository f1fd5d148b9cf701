package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/redis/go-redis/v9"

	"github.com/SKpacteazy/rpa-insights-backend/config"
	"github.com/SKpacteazy/rpa-insights-backend/internal/data"
)

const pingTimeout = 5 * time.Second

// DatabaseConfig contains configuration for database connections.
type DatabaseConfig struct {
	DBConfig    config.DBConfig
	RedisConfig config.RedisConfig
	Logger      *slog.Logger
}

// DSN builds the PostgreSQL connection string from cfg.
func DSN(cfg config.DBConfig) string {
	// url.URL handles special characters in credentials.
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	q := u.Query()
	q.Set("sslmode", cfg.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// ConnectDB opens the shared PostgreSQL pool and waits for the server to
// answer, retrying up to ConnectAttempts times.
func ConnectDB(ctx context.Context, cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", DSN(cfg.DBConfig))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBConfig.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DBConfig.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConfig.ConnMaxLifetime)

	if pingErr := waitForDB(ctx, db, cfg); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close database connection: %w", closeErr))
		}
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.InfoContext(ctx, "database connected",
			"host", cfg.DBConfig.Host,
			"port", cfg.DBConfig.Port,
			"database", cfg.DBConfig.Name,
		)
	}

	return db, nil
}

func waitForDB(ctx context.Context, db *sql.DB, cfg DatabaseConfig) error {
	attempts := max(cfg.DBConfig.ConnectAttempts, 1)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = db.PingContext(pctx)
		cancel()
		if err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		if cfg.Logger != nil {
			cfg.Logger.WarnContext(ctx, "database not ready, retrying",
				"attempt", attempt,
				"max_attempts", attempts,
				"retry_in", cfg.DBConfig.ConnectRetryDelay,
				"error", err,
			)
		}
		timer := time.NewTimer(cfg.DBConfig.ConnectRetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(err, ctx.Err())
		case <-timer.C:
		}
	}
	return fmt.Errorf("after %d attempts: %w", attempts, err)
}

// ConnectRedis establishes a connection to Redis for the scheduler run lease.
//
//nolint:ireturn // the lease store accepts any redis.UniversalClient.
func ConnectRedis(ctx context.Context, cfg DatabaseConfig) (redis.UniversalClient, error) {
	opts, err := redisOptions(cfg.RedisConfig)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if pingErr := client.Ping(pctx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if cfg.Logger != nil {
		// Log connection without credentials
		cfg.Logger.InfoContext(ctx, "redis connected", "addr", opts.Addr, "db", opts.DB)
	}

	return client, nil
}

// redisOptions accepts either host:port or a redis:// / rediss:// URL.
// Password and DB from the config apply when the URL does not carry them.
func redisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, errors.New("redis configuration requires a URI")
	}

	if !isRedisURL(uri) {
		return &redis.Options{
			Addr:     uri,
			Password: cfg.Password,
			DB:       cfg.DB,
		}, nil
	}

	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.Password == "" {
		opts.Password = cfg.Password
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	return opts, nil
}

func isRedisURL(value string) bool {
	return strings.HasPrefix(value, "redis://") || strings.HasPrefix(value, "rediss://")
}

// RunMigrations applies pending schema migrations and logs the versions applied.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) ([]string, error) {
	applied, err := data.RunMigrations(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if logger != nil {
		if len(applied) == 0 {
			logger.InfoContext(ctx, "database schema up to date")
		} else {
			logger.InfoContext(ctx, "database migrations completed", "applied", applied)
		}
	}

	return applied, nil
}
