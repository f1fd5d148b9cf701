// Package scheduler runs sync modes on fixed intervals with retries, a
// cross-instance run lease, metrics, and failure notifications.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SKpacteazy/rpa-insights-backend/config"
	"github.com/SKpacteazy/rpa-insights-backend/internal/core"
	"github.com/SKpacteazy/rpa-insights-backend/internal/data"
	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	obserrors "github.com/SKpacteazy/rpa-insights-backend/internal/observability/errors"
	"github.com/SKpacteazy/rpa-insights-backend/internal/observability/metrics"
	"github.com/SKpacteazy/rpa-insights-backend/internal/observability/notify"
)

const (
	defaultInterval = 24 * time.Hour
	releaseTimeout  = 5 * time.Second
)

// ErrLeaseHeld is returned by RunOnce when another instance holds the run lease.
var ErrLeaseHeld = errors.New("sync lease held by another instance")

// FailureNotifier delivers alerts for failed and partially failed runs.
type FailureNotifier interface {
	NotifySyncFailure(ctx context.Context, payload notify.SyncFailurePayload)
	NotifyPartialFailure(ctx context.Context, result *model.SyncResult)
}

// MetricsPusher ships collected metrics after each run.
type MetricsPusher interface {
	Push(ctx context.Context) error
}

// Observers groups the optional side channels of a run.
type Observers struct {
	Metrics  *metrics.SyncMetrics
	Pusher   MetricsPusher
	Notifier FailureNotifier
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Sync     core.SyncRunner       // Required
	Schedule config.ScheduleConfig // Modes, intervals, retries, lease TTL
	Lease    core.RunLease         // Optional: nil runs without cross-instance locking

	Observers Observers
	Logger    *slog.Logger
}

// Runner drives the configured sync modes.
type Runner struct {
	sync      core.SyncRunner
	schedule  config.ScheduleConfig
	lease     core.RunLease
	observers Observers
	logger    *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Sync == nil {
		return nil, errors.New("sync runner is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		sync:      opts.Sync,
		schedule:  opts.Schedule,
		lease:     opts.Lease,
		observers: opts.Observers,
		logger:    logger.With("component", "sync_scheduler"),
	}, nil
}

// Run starts one loop per mode and blocks until ctx is cancelled.
// Returns nil on graceful shutdown.
func (r *Runner) Run(ctx context.Context, modes []model.SyncMode) error {
	if len(modes) == 0 {
		return errors.New("no sync modes to schedule")
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, mode := range modes {
		g.Go(func() error { return r.loop(gctx, mode) })
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (r *Runner) loop(ctx context.Context, mode model.SyncMode) error {
	interval := r.schedule.IntervalFor(mode)
	if interval <= 0 {
		interval = defaultInterval
	}
	r.logger.InfoContext(ctx, "starting sync loop",
		"mode", string(mode),
		"interval", interval,
		"run_on_start", r.schedule.RunOnStart,
	)

	if r.schedule.RunOnStart {
		r.tick(ctx, mode)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "sync loop stopping", "mode", string(mode), "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			r.tick(ctx, mode)
		}
	}
}

// tick runs the mode once; errors are logged and the loop carries on.
func (r *Runner) tick(ctx context.Context, mode model.SyncMode) {
	_, err := r.RunOnce(ctx, mode)
	switch {
	case err == nil:
	case errors.Is(err, ErrLeaseHeld):
		r.logger.InfoContext(ctx, "sync skipped, lease held elsewhere", "mode", string(mode))
	case ctx.Err() != nil:
	default:
		r.logger.ErrorContext(ctx, "scheduled sync failed", "mode", string(mode), "error", err)
	}
}

// RunOnce acquires the lease, runs mode with retries, then records metrics
// and sends notifications.
func (r *Runner) RunOnce(ctx context.Context, mode model.SyncMode) (*model.SyncResult, error) {
	release, err := r.acquire(ctx, mode)
	if err != nil {
		return nil, err
	}
	defer release()

	result, attempts, err := r.runWithRetry(ctx, mode)

	r.observers.Metrics.ObserveRun(mode, result, err)
	if r.observers.Pusher != nil {
		if perr := r.observers.Pusher.Push(context.WithoutCancel(ctx)); perr != nil {
			r.logger.WarnContext(ctx, "metrics push failed", "mode", string(mode), "error", perr)
		}
	}
	r.notify(ctx, mode, result, attempts, err)

	return result, err
}

func (r *Runner) acquire(ctx context.Context, mode model.SyncMode) (func(), error) {
	if r.lease == nil {
		return func() {}, nil
	}

	key := data.LeaseKey(string(mode))
	token, ok, err := r.lease.Acquire(ctx, key, r.schedule.LeaseTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire sync lease: %w", err)
	}
	if !ok {
		r.observers.Metrics.ObserveLeaseSkip(mode)
		return nil, ErrLeaseHeld
	}

	return func() {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		released, err := r.lease.Release(rctx, key, token)
		switch {
		case err != nil:
			r.logger.WarnContext(ctx, "release sync lease failed", "mode", string(mode), "error", err)
		case !released:
			r.logger.WarnContext(ctx, "sync lease expired before release", "mode", string(mode))
		}
	}, nil
}

func (r *Runner) runWithRetry(ctx context.Context, mode model.SyncMode) (*model.SyncResult, int, error) {
	attempts := max(r.schedule.MaxRetries, 0) + 1

	var (
		result *model.SyncResult
		err    error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err = r.sync.Run(ctx, mode)
		if err == nil {
			return result, attempt, nil
		}
		if ctx.Err() != nil || attempt == attempts {
			return result, attempt, err
		}

		r.logger.WarnContext(ctx, "sync attempt failed, retrying",
			"mode", string(mode),
			"attempt", attempt,
			"max_attempts", attempts,
			"retry_in", r.schedule.RetryDelay,
			"error", err,
		)
		timer := time.NewTimer(r.schedule.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return result, attempt, err
		case <-timer.C:
		}
	}
	return result, attempts, err
}

func (r *Runner) notify(
	ctx context.Context,
	mode model.SyncMode,
	result *model.SyncResult,
	attempts int,
	err error,
) {
	if r.observers.Notifier == nil {
		return
	}
	nctx := context.WithoutCancel(ctx)

	if err == nil {
		r.observers.Notifier.NotifyPartialFailure(nctx, result)
		return
	}
	if ctx.Err() != nil {
		return
	}

	payload := notify.SyncFailurePayload{
		Mode:       string(mode),
		State:      string(model.RunStateAborted),
		Attempts:   attempts,
		Error:      err.Error(),
		ErrorClass: obserrors.Classify(err),
		Severity:   notify.SeverityCritical,
		OccurredAt: time.Now().UTC(),
	}
	if result != nil {
		payload.State = string(result.State)
		if !result.FinishedAt.IsZero() {
			payload.OccurredAt = result.FinishedAt
		}
	}
	r.observers.Notifier.NotifySyncFailure(nctx, payload)
}
