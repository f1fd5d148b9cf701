package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - database.go: PostgreSQL pool and Redis lease store
//   - upstream.go: orchestrator HTTP client behaviour
//   - sync.go: extraction windows, page sizes and persistence batching
//   - schedule.go: in-process scheduler modes, intervals and retries
//   - observability.go: metrics push and failure notifications
//
// Upstream credentials are not read from the environment. They live in the
// uipath_configuration table and are loaded at the start of every run.
type AppConfig struct {
	// IsDev enables text logging at debug level.
	// Set DEV=true or APP_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	Upstream UpstreamConfig `envPrefix:"UPSTREAM_"`
	Sync     SyncConfig     `envPrefix:"SYNC_"`
	Schedule ScheduleConfig `envPrefix:"SCHEDULE_"`

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Postgres.Sanitize()
	c.Upstream.Sanitize()
	c.Sync.Sanitize()
	c.Schedule.Sanitize()
	c.Observability.Sanitize()

	c.detectDevMode()
}

// detectDevMode falls back to APP_ENV when DEV is unset.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		appEnv := strings.ToLower(os.Getenv("APP_ENV"))
		c.IsDev = appEnv == "development" || appEnv == "dev"
	}
}

// GetScheduledModes returns the sync modes the scheduler should run.
func (c *AppConfig) GetScheduledModes() ([]SyncMode, error) {
	return ParseModes(c.Schedule.Modes)
}

// IsLeaseEnabled reports whether scheduled runs should be guarded by a Redis lease.
func (c *AppConfig) IsLeaseEnabled() bool {
	return c.Redis.Enabled && strings.TrimSpace(c.Redis.URI) != ""
}
