package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
)

func TestParseModes(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    []SyncMode
		expectError bool
	}{
		{
			name:     "single mode",
			input:    "full",
			expected: []SyncMode{model.SyncModeFull},
		},
		{
			name:     "all modes keep order",
			input:    "jobs, update ,full",
			expected: []SyncMode{model.SyncModeJobs, model.SyncModeUpdate, model.SyncModeFull},
		},
		{
			name:     "duplicates collapse",
			input:    "update,update,jobs",
			expected: []SyncMode{model.SyncModeUpdate, model.SyncModeJobs},
		},
		{
			name:     "empty entries ignored",
			input:    "full,,",
			expected: []SyncMode{model.SyncModeFull},
		},
		{name: "empty", input: "  ", expectError: true},
		{name: "only commas", input: ",,", expectError: true},
		{name: "unknown mode", input: "full,nightly", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseModes(tt.input)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("DB_HOST", "pg.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_URI", "redis://cache:6379/1")
	t.Setenv("UPSTREAM_RATE_LIMIT", "2.5")
	t.Setenv("SYNC_BOUNDARY_DATE", "2026-01-01")
	t.Setenv("SYNC_JOBS_NATURAL_KEY", "true")
	t.Setenv("SCHEDULE_MODES", "update,jobs")
	t.Setenv("SCHEDULE_UPDATE_INTERVAL", "1h")
	t.Setenv("OBSERVABILITY_NOTIFICATIONS_ENABLED", "true")
	t.Setenv("OBSERVABILITY_NOTIFICATIONS_SLACK_ENABLED", "true")
	t.Setenv("OBSERVABILITY_NOTIFICATIONS_SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/test")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Postgres.Host != "pg.internal" || cfg.Postgres.MaxOpenConns != 20 {
		t.Fatalf("unexpected postgres config: %+v", cfg.Postgres)
	}
	if cfg.Postgres.ConnectAttempts != 5 || cfg.Postgres.ConnectRetryDelay != 3*time.Second {
		t.Fatalf("expected connect retry defaults, got %d x %v", cfg.Postgres.ConnectAttempts, cfg.Postgres.ConnectRetryDelay)
	}
	if !cfg.IsLeaseEnabled() {
		t.Fatal("expected lease to be enabled")
	}
	if cfg.Upstream.RateLimit != 2.5 {
		t.Fatalf("expected rate limit 2.5, got %v", cfg.Upstream.RateLimit)
	}
	if got := cfg.Sync.Boundary(); !got.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected boundary: %v", got)
	}
	if !cfg.Sync.JobsNaturalKey {
		t.Fatal("expected natural job keys")
	}
	if cfg.Sync.QueueItemsMaxPages != 1 || cfg.Sync.QueueItemsPageSize != 100 {
		t.Fatalf("unexpected paging defaults: %+v", cfg.Sync)
	}
	modes, err := cfg.GetScheduledModes()
	if err != nil {
		t.Fatalf("scheduled modes: %v", err)
	}
	if !reflect.DeepEqual(modes, []SyncMode{model.SyncModeUpdate, model.SyncModeJobs}) {
		t.Fatalf("unexpected modes: %v", modes)
	}
	if got := cfg.Schedule.IntervalFor(model.SyncModeUpdate); got != time.Hour {
		t.Fatalf("expected update interval 1h, got %v", got)
	}
	if !cfg.Observability.Notifications.Slack.Enabled {
		t.Fatal("expected slack notifications to be enabled")
	}
}

func TestAppConfig_IsLeaseEnabled(t *testing.T) {
	tests := []struct {
		name  string
		redis RedisConfig
		want  bool
	}{
		{name: "disabled", redis: RedisConfig{URI: "localhost:6379"}},
		{name: "enabled without uri", redis: RedisConfig{Enabled: true, URI: " "}},
		{name: "enabled", redis: RedisConfig{Enabled: true, URI: "localhost:6379"}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AppConfig{Redis: tt.redis}
			if got := cfg.IsLeaseEnabled(); got != tt.want {
				t.Fatalf("IsLeaseEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppConfig_DevModeFromAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "Development")

	cfg := AppConfig{}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Fatal("expected APP_ENV=development to enable dev mode")
	}
}

func TestDBConfig_Sanitize(t *testing.T) {
	cfg := DBConfig{MaxOpenConns: 0, MaxIdleConns: 9, ConnectAttempts: -2, ConnectRetryDelay: -time.Second}
	cfg.Sanitize()

	if cfg.MaxOpenConns != 1 {
		t.Fatalf("expected max open conns clamped to 1, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns != 1 {
		t.Fatalf("expected idle conns capped at max open, got %d", cfg.MaxIdleConns)
	}
	if cfg.ConnectAttempts != 1 || cfg.ConnectRetryDelay != 0 {
		t.Fatalf("unexpected connect retry settings: %d x %v", cfg.ConnectAttempts, cfg.ConnectRetryDelay)
	}
}

func TestSyncConfig_Sanitize(t *testing.T) {
	cfg := SyncConfig{
		BoundaryDate:       "15/12/2025",
		QueueItemsPageSize: 500,
		QueueItemsMaxPages: 0,
		JobsPageSize:       -1,
		UpsertBatchSize:    0,
	}
	cfg.Sanitize()

	if cfg.BoundaryDate != "2025-12-15" {
		t.Fatalf("expected invalid boundary to fall back, got %q", cfg.BoundaryDate)
	}
	if cfg.QueueItemsPageSize != MaxQueueItemPageSize {
		t.Fatalf("expected page size capped at %d, got %d", MaxQueueItemPageSize, cfg.QueueItemsPageSize)
	}
	if cfg.QueueItemsMaxPages != 1 {
		t.Fatalf("expected max pages 1, got %d", cfg.QueueItemsMaxPages)
	}
	if cfg.JobsPageSize != 1000 {
		t.Fatalf("expected jobs page size 1000, got %d", cfg.JobsPageSize)
	}
	if cfg.UpdateLookback != 24*time.Hour {
		t.Fatalf("expected 24h lookback, got %v", cfg.UpdateLookback)
	}
	if cfg.UpsertBatchSize != 500 {
		t.Fatalf("expected batch size 500, got %d", cfg.UpsertBatchSize)
	}
}

func TestUpstreamConfig_Sanitize(t *testing.T) {
	cfg := UpstreamConfig{TokenPath: " identity_/connect/token ", RateLimit: -1, RateBurst: 0}
	cfg.Sanitize()

	if cfg.TokenPath != "/identity_/connect/token" {
		t.Fatalf("expected leading slash, got %q", cfg.TokenPath)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.RateLimit != 0 || cfg.RateBurst != 1 {
		t.Fatalf("unexpected rate settings: %v/%d", cfg.RateLimit, cfg.RateBurst)
	}
	if cfg.BreakerTimeout != time.Minute {
		t.Fatalf("expected breaker timeout default, got %v", cfg.BreakerTimeout)
	}
}

func TestScheduleConfig_Sanitize(t *testing.T) {
	cfg := ScheduleConfig{FullInterval: time.Second, MaxRetries: -1, RetryDelay: -time.Second}
	cfg.Sanitize()

	if cfg.FullInterval != time.Minute || cfg.UpdateInterval != time.Minute || cfg.JobsInterval != time.Minute {
		t.Fatalf("expected intervals clamped to 1m: %+v", cfg)
	}
	if cfg.MaxRetries != 0 || cfg.RetryDelay != 0 {
		t.Fatalf("unexpected retry settings: %d / %v", cfg.MaxRetries, cfg.RetryDelay)
	}
	if cfg.LeaseTTL != time.Minute {
		t.Fatalf("expected lease ttl clamped to 1m, got %v", cfg.LeaseTTL)
	}
	if got := cfg.IntervalFor(model.SyncModeJobs); got != time.Minute {
		t.Fatalf("expected jobs interval 1m, got %v", got)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:        true,
		PushgatewayURL: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when pushgateway url is empty")
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:        true,
		PushgatewayURL: " http://pushgateway:9091 ",
		JobName:        " ",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.PushgatewayURL != "http://pushgateway:9091" {
		t.Fatalf("expected url to be trimmed, got %q", cfg.PushgatewayURL)
	}
	if cfg.JobName != "rpa_insights_sync" {
		t.Fatalf("expected default job name, got %q", cfg.JobName)
	}
}

func TestObservabilityNotificationsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityNotificationsConfig{
		Enabled:    true,
		Timeout:    0,
		RetryLimit: -1,
		Slack: SlackNotificationConfig{
			Enabled:    true,
			WebhookURL: " ",
			Channel:    "  ",
			Username:   "",
		},
	}

	cfg.Sanitize()

	if cfg.Timeout <= 0 {
		t.Fatalf("expected timeout to fall back to default, got %v", cfg.Timeout)
	}
	if cfg.RetryLimit < 0 {
		t.Fatalf("expected retry limit to be clamped to >= 0, got %d", cfg.RetryLimit)
	}
	if cfg.Slack.Enabled {
		t.Fatal("expected slack to be disabled without a webhook url")
	}
	if cfg.Slack.Username != "rpa-insights" {
		t.Fatalf("expected slack username default, got %q", cfg.Slack.Username)
	}

	// Disabled top-level should disable child sinks.
	cfg = ObservabilityNotificationsConfig{
		Enabled: false,
		Slack: SlackNotificationConfig{
			Enabled:    true,
			WebhookURL: "https://hooks.slack.com/services/test",
		},
	}
	cfg.Sanitize()

	if cfg.Slack.Enabled {
		t.Fatal("expected slack to be disabled when top-level notifications disabled")
	}
}
