package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"rpa_insights"`
	Password string `env:"PASSWORD"                envDefault:"rpa_insights"`
	Name     string `env:"NAME"                    envDefault:"rpa_insights"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`

	// Pool sizing. The pool is process-wide and shared by every run.
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS"     envDefault:"10"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS"     envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME"  envDefault:"5m"`

	// ConnectAttempts and ConnectRetryDelay control the wait-for-database loop at startup.
	ConnectAttempts   int           `env:"CONNECT_ATTEMPTS"    envDefault:"5"`
	ConnectRetryDelay time.Duration `env:"CONNECT_RETRY_DELAY" envDefault:"3s"`
}

// Sanitize applies guardrails to pool settings.
func (c *DBConfig) Sanitize() {
	if c.MaxOpenConns < 1 {
		c.MaxOpenConns = 1
	}
	if c.MaxIdleConns < 0 {
		c.MaxIdleConns = 0
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		c.MaxIdleConns = c.MaxOpenConns
	}
	if c.ConnectAttempts < 1 {
		c.ConnectAttempts = 1
	}
	if c.ConnectRetryDelay < 0 {
		c.ConnectRetryDelay = 0
	}
}

// RedisConfig contains Redis configuration for the scheduler run lease.
// URI accepts either host:port or a redis:// / rediss:// URL.
type RedisConfig struct {
	Enabled  bool   `env:"ENABLED"  envDefault:"false"`
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}
