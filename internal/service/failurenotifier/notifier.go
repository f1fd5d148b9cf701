// Package failurenotifier fans sync failure events out to the configured sinks.
package failurenotifier

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	"github.com/SKpacteazy/rpa-insights-backend/internal/observability/notify"
)

// SinkRegistration pairs a sink implementation with a human-readable name for logging.
type SinkRegistration struct {
	Name string
	Sink notify.Sink
}

// Options configures the failure notifier service.
type Options struct {
	Logger *slog.Logger
	Sinks  []SinkRegistration
	// NotifyPartialFailures also alerts on completed runs with failed folders.
	NotifyPartialFailures bool
}

// Service dispatches failure events to all registered sinks.
type Service struct {
	logger  *slog.Logger
	sinks   []SinkRegistration
	partial bool
}

// NewService constructs a failure notifier.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var sinks []SinkRegistration
	for _, entry := range opts.Sinks {
		if entry.Sink == nil {
			continue
		}
		name := entry.Name
		if name == "" {
			name = "sink"
		}
		sinks = append(sinks, SinkRegistration{Name: name, Sink: entry.Sink})
	}

	return &Service{
		logger:  logger.With("component", "failure_notifier"),
		sinks:   sinks,
		partial: opts.NotifyPartialFailures,
	}
}

// Enabled reports whether the notifier has any active sinks.
func (s *Service) Enabled() bool {
	return s != nil && len(s.sinks) > 0
}

// NotifySyncFailure fans the payload out to all sinks and waits for delivery.
func (s *Service) NotifySyncFailure(ctx context.Context, payload notify.SyncFailurePayload) {
	if !s.Enabled() {
		return
	}
	if payload.Severity == "" {
		payload.Severity = notify.SeverityCritical
	}

	var wg sync.WaitGroup
	for _, entry := range s.sinks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := entry.Sink.SendSyncFailure(ctx, payload); err != nil {
				s.logger.ErrorContext(ctx, "failure notifier delivery error",
					"sink", entry.Name,
					"mode", payload.Mode,
					"error", err,
				)
			}
		}()
	}
	wg.Wait()
}

// NotifyPartialFailure alerts at warning severity when a completed run had
// failed folders. It is a no-op unless partial notifications are enabled.
func (s *Service) NotifyPartialFailure(ctx context.Context, result *model.SyncResult) {
	if !s.Enabled() || !s.partial || result == nil {
		return
	}
	failed := result.FailedPartitions()
	if len(failed) == 0 {
		return
	}

	folders := make([]notify.FolderFailure, 0, len(failed))
	for _, p := range failed {
		f := notify.FolderFailure{
			FolderID:   p.FolderID,
			FolderName: p.FolderName,
			Stage:      string(p.FailedStage),
		}
		if p.Err != nil {
			f.Error = p.Err.Error()
		}
		folders = append(folders, f)
	}

	s.NotifySyncFailure(ctx, notify.SyncFailurePayload{
		Mode:       string(result.Mode),
		State:      string(result.State),
		Severity:   notify.SeverityWarning,
		Folders:    folders,
		OccurredAt: result.FinishedAt,
	})
}
