package bootstrap

import (
	"bytes"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SKpacteazy/rpa-insights-backend/config"
)

// lazyDB returns a pool that never dials until used.
func lazyDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("pgx", DSN(config.DBConfig{
		Host: "127.0.0.1", Port: 1, User: "u", Password: "p", Name: "n", SSLMode: "disable",
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sanitized(mutate func(*config.AppConfig)) *config.AppConfig {
	cfg := &config.AppConfig{
		Sync:     config.SyncConfig{BoundaryDate: "2025-12-15"},
		Schedule: config.ScheduleConfig{Modes: "full"},
	}
	if mutate != nil {
		mutate(cfg)
	}
	cfg.Sanitize()
	return cfg
}

func TestNewServices_Wiring(t *testing.T) {
	cfg := sanitized(nil)

	svcs, err := NewServices(&ServiceDeps{Config: cfg, DB: lazyDB(t), Logger: slog.Default()})
	require.NoError(t, err)

	assert.NotNil(t, svcs.Configs)
	assert.NotNil(t, svcs.Sync)
	assert.NotNil(t, svcs.Runner)
	assert.NotNil(t, svcs.Upstream)
	assert.NotNil(t, svcs.Observability.Metrics)
	assert.Nil(t, svcs.Observability.Pusher)
	assert.False(t, svcs.Observability.FailureNotifier.Enabled())
}

func TestNewServices_RequiresDeps(t *testing.T) {
	_, err := NewServices(nil)
	require.Error(t, err)

	_, err = NewServices(&ServiceDeps{Config: sanitized(nil)})
	require.Error(t, err)
}

func TestBuildRepositories_Lease(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = rdb.Close() })

	tests := []struct {
		name      string
		enabled   bool
		client    redis.UniversalClient
		wantLease bool
	}{
		{name: "disabled", enabled: false, client: rdb},
		{name: "enabled without client", enabled: true},
		{name: "enabled with client", enabled: true, client: rdb, wantLease: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sanitized(func(c *config.AppConfig) {
				c.Redis = config.RedisConfig{Enabled: tt.enabled, URI: "127.0.0.1:1"}
			})
			repos := buildRepositories(lazyDB(t), tt.client, cfg, slog.Default())
			assert.Equal(t, tt.wantLease, repos.Lease != nil)
		})
	}
}

func TestBuildObservability_Pusher(t *testing.T) {
	cfg := config.ObservabilityConfig{
		Metrics: config.ObservabilityMetricsConfig{
			Enabled:        true,
			PushgatewayURL: "http://pushgateway:9091",
			Instance:       "worker-1",
		},
	}
	cfg.Sanitize()

	obs := buildObservability(slog.Default(), cfg)
	assert.NotNil(t, obs.Pusher)
	assert.NotNil(t, obs.Metrics)
}

func TestBuildFailureNotifier(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ObservabilityNotificationsConfig
		want bool
	}{
		{
			name: "disabled",
			cfg: config.ObservabilityNotificationsConfig{
				Slack: config.SlackNotificationConfig{Enabled: true, WebhookURL: "https://hooks.slack.test/x"},
			},
		},
		{
			name: "slack without webhook",
			cfg: config.ObservabilityNotificationsConfig{
				Enabled: true,
				Slack:   config.SlackNotificationConfig{Enabled: true},
			},
		},
		{
			name: "slack",
			cfg: config.ObservabilityNotificationsConfig{
				Enabled: true,
				Slack:   config.SlackNotificationConfig{Enabled: true, WebhookURL: "https://hooks.slack.test/x"},
			},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Sanitize()
			assert.Equal(t, tt.want, buildFailureNotifier(slog.Default(), tt.cfg).Enabled())
		})
	}
}

func TestRedisOptions(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.RedisConfig
		wantAddr string
		wantPass string
		wantDB   int
		wantErr  bool
	}{
		{name: "host port", cfg: config.RedisConfig{URI: "cache:6379", Password: "pw", DB: 2}, wantAddr: "cache:6379", wantPass: "pw", wantDB: 2},
		{name: "url", cfg: config.RedisConfig{URI: "redis://:secret@cache:6380/3"}, wantAddr: "cache:6380", wantPass: "secret", wantDB: 3},
		{name: "url falls back to config password", cfg: config.RedisConfig{URI: "redis://cache:6379", Password: "pw", DB: 1}, wantAddr: "cache:6379", wantPass: "pw", wantDB: 1},
		{name: "empty", cfg: config.RedisConfig{URI: "  "}, wantErr: true},
		{name: "bad url", cfg: config.RedisConfig{URI: "redis://cache:6379/notadb"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := redisOptions(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAddr, opts.Addr)
			assert.Equal(t, tt.wantPass, opts.Password)
			assert.Equal(t, tt.wantDB, opts.DB)
		})
	}
}

func TestDSN_EscapesCredentials(t *testing.T) {
	dsn := DSN(config.DBConfig{
		Host: "db", Port: 5432, User: "sync", Password: "p@ss/w:rd", Name: "rpa", SSLMode: "require",
	})
	assert.Equal(t, "postgres://sync:p%40ss%2Fw%3Ard@db:5432/rpa?sslmode=require", dsn)
}

func TestInitLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	initLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())
	slog.Info("visible")
	assert.Contains(t, buf.String(), `"msg":"visible"`)

	buf.Reset()
	initLogger(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}
