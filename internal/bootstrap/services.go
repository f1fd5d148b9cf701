package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/SKpacteazy/rpa-insights-backend/config"
	"github.com/SKpacteazy/rpa-insights-backend/internal/adapters/scheduler"
	"github.com/SKpacteazy/rpa-insights-backend/internal/adapters/uipath"
	"github.com/SKpacteazy/rpa-insights-backend/internal/core"
	"github.com/SKpacteazy/rpa-insights-backend/internal/data"
	"github.com/SKpacteazy/rpa-insights-backend/internal/observability/metrics"
	"github.com/SKpacteazy/rpa-insights-backend/internal/observability/notify/slack"
	"github.com/SKpacteazy/rpa-insights-backend/internal/service"
	"github.com/SKpacteazy/rpa-insights-backend/internal/service/failurenotifier"
)

// ServiceContainer holds the wired sync engine.
type ServiceContainer struct {
	Configs  *data.ConfigRepo
	Sync     *service.SyncService
	Runner   *scheduler.Runner
	Upstream *uipath.Client

	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	Metrics         *metrics.SyncMetrics
	Pusher          *metrics.Pusher // nil when push is disabled
	FailureNotifier *failurenotifier.Service
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient // Optional: enables the run lease
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Configs    *data.ConfigRepo
	QueueItems *data.QueueItemRepo
	Jobs       *data.JobRepo
	Lease      core.RunLease
}

// NewServices wires repositories, the orchestrator client, the sync service
// and the scheduler.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service config is required")
	}
	if deps.DB == nil {
		return ServiceContainer{}, errors.New("database is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	repos := buildRepositories(deps.DB, deps.RedisClient, cfg, logger)
	upstream := newUpstreamClient(cfg, logger)
	obs := buildObservability(logger, cfg.Observability)

	syncSvc := service.NewSyncService(service.SyncServiceOptions{
		Repos: service.SyncRepositories{
			Config:     repos.Configs,
			QueueItems: repos.QueueItems,
			Jobs:       repos.Jobs,
		},
		Upstream: upstream,
		Config: service.SyncServiceConfig{
			Sync:   cfg.Sync,
			Logger: logger,
		},
	})

	observers := scheduler.Observers{
		Metrics:  obs.Metrics,
		Notifier: obs.FailureNotifier,
	}
	if obs.Pusher != nil {
		observers.Pusher = obs.Pusher
	}
	runner, err := scheduler.NewRunner(scheduler.RunnerOptions{
		Sync:      syncSvc,
		Schedule:  cfg.Schedule,
		Lease:     repos.Lease,
		Observers: observers,
		Logger:    logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create scheduler: %w", err)
	}

	return ServiceContainer{
		Configs:       repos.Configs,
		Sync:          syncSvc,
		Runner:        runner,
		Upstream:      upstream,
		Observability: obs,
	}, nil
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(
	db *sql.DB,
	rdb redis.UniversalClient,
	cfg *config.AppConfig,
	logger *slog.Logger,
) *serviceRepositories {
	repos := &serviceRepositories{
		Configs: data.NewConfigRepo(db),
		QueueItems: data.NewQueueItemRepo(db, data.QueueItemRepoOptions{
			BatchSize: cfg.Sync.UpsertBatchSize,
			Logger:    logger,
		}),
		Jobs: data.NewJobRepo(db, data.JobRepoOptions{
			BatchSize: cfg.Sync.UpsertBatchSize,
			Logger:    logger,
		}),
	}
	if rdb != nil && cfg.IsLeaseEnabled() {
		repos.Lease = data.NewRedisLeaseRepo(rdb)
	}
	return repos
}

func newUpstreamClient(cfg *config.AppConfig, logger *slog.Logger) *uipath.Client {
	return uipath.NewClient(uipath.Config{
		Timeout:         cfg.Upstream.HTTPTimeout,
		TokenPath:       cfg.Upstream.TokenPath,
		OIDCDiscovery:   cfg.Upstream.OIDCDiscovery,
		UserAgent:       cfg.Upstream.UserAgent,
		RateLimit:       cfg.Upstream.RateLimit,
		RateBurst:       cfg.Upstream.RateBurst,
		JobsPageSize:    cfg.Sync.JobsPageSize,
		BreakerFailures: cfg.Upstream.BreakerFailures,
		BreakerTimeout:  cfg.Upstream.BreakerTimeout,
		Logger:          logger,
	})
}

// buildObservability configures metrics and notification adapters.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obs := ObservabilityContainer{
		Metrics:         metrics.NewSyncMetrics(),
		FailureNotifier: buildFailureNotifier(logger, cfg.Notifications),
	}

	if cfg.Metrics.IsEnabled() {
		pusher, err := metrics.NewPusher(metrics.PushConfig{
			URL:      cfg.Metrics.PushgatewayURL,
			JobName:  cfg.Metrics.JobName,
			Instance: cfg.Metrics.Instance,
		}, obs.Metrics.Registry())
		if err != nil {
			logger.Error("failed to initialise metrics pusher", "error", err)
		} else {
			obs.Pusher = pusher
		}
	}

	return obs
}

func buildFailureNotifier(logger *slog.Logger, cfg config.ObservabilityNotificationsConfig) *failurenotifier.Service {
	if !cfg.Enabled {
		return failurenotifier.NewService(failurenotifier.Options{Logger: logger})
	}

	sinks := make([]failurenotifier.SinkRegistration, 0, 1)

	if cfg.Slack.Enabled {
		client, err := slack.NewClient(slack.Config{
			WebhookURL:   cfg.Slack.WebhookURL,
			Channel:      cfg.Slack.Channel,
			Username:     cfg.Slack.Username,
			Timeout:      cfg.Timeout,
			RetryLimit:   cfg.RetryLimit,
			DashboardURL: cfg.Slack.DashboardURL,
		})
		if err != nil {
			logger.Error("failed to initialise slack notifier", "error", err)
		} else {
			sinks = append(sinks, failurenotifier.SinkRegistration{
				Name: "slack",
				Sink: client,
			})
		}
	}

	return failurenotifier.NewService(failurenotifier.Options{
		Logger:                logger,
		Sinks:                 sinks,
		NotifyPartialFailures: cfg.NotifyPartialFailures,
	})
}
