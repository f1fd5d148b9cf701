package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SKpacteazy/rpa-insights-backend/config"
	"github.com/SKpacteazy/rpa-insights-backend/internal/core"
	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/transform"
	apperrors "github.com/SKpacteazy/rpa-insights-backend/internal/errors"
)

// maxLoggedIssues bounds per-partition issue logging; the rest are summarized.
const maxLoggedIssues = 20

// SyncRepositories groups the stores a sync run reads and writes.
type SyncRepositories struct {
	Config     core.ConfigRepository    // Required: upstream credentials
	QueueItems core.QueueItemRepository // Required: queue item upserts and counts
	Jobs       core.JobRepository       // Required: job upserts
}

// SyncServiceConfig carries tunables and optional hooks.
type SyncServiceConfig struct {
	Sync     config.SyncConfig
	Logger   *slog.Logger // Optional: structured logger
	// Now and NewJobID are optional; they default to time.Now and uuid.NewString.
	Now      func() time.Time
	NewJobID func() string
}

// SyncServiceOptions groups dependencies for SyncService.
type SyncServiceOptions struct {
	Repos    SyncRepositories
	Upstream core.UpstreamClient // Required: orchestrator API client
	Config   SyncServiceConfig
}

// SyncService runs one extraction end to end: configuration gate, session,
// folder enumeration, then fetch, transform, and persist per folder.
//
// Folders are processed sequentially. A folder that fails to fetch or persist
// is recorded on the result and the run moves on; only configuration, session,
// and folder listing problems stop a run.
type SyncService struct {
	configs    core.ConfigRepository
	queueItems core.QueueItemRepository
	jobs       core.JobRepository
	upstream   core.UpstreamClient
	cfg        config.SyncConfig
	logger     *slog.Logger
	now        func() time.Time
	newJobID   func() string
}

var _ core.SyncRunner = (*SyncService)(nil)

// NewSyncService constructs a SyncService. It panics when a required dependency is nil.
func NewSyncService(opts SyncServiceOptions) *SyncService {
	if opts.Repos.Config == nil {
		panic("ConfigRepository is required")
	}
	if opts.Repos.QueueItems == nil {
		panic("QueueItemRepository is required")
	}
	if opts.Repos.Jobs == nil {
		panic("JobRepository is required")
	}
	if opts.Upstream == nil {
		panic("UpstreamClient is required")
	}

	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Config.Now
	if now == nil {
		now = time.Now
	}

	cfg := opts.Config.Sync
	cfg.Sanitize()

	return &SyncService{
		configs:    opts.Repos.Config,
		queueItems: opts.Repos.QueueItems,
		jobs:       opts.Repos.Jobs,
		upstream:   opts.Upstream,
		cfg:        cfg,
		logger:     logger.With("component", "sync_service"),
		now:        now,
		newJobID:   opts.Config.NewJobID,
	}
}

// FullSync extracts queue items with the configured boundary and audits row counts.
func (s *SyncService) FullSync(ctx context.Context) (*model.SyncResult, error) {
	return s.Run(ctx, model.SyncModeFull)
}

// UpdateSync extracts queue items changed within the rolling lookback window.
func (s *SyncService) UpdateSync(ctx context.Context) (*model.SyncResult, error) {
	return s.Run(ctx, model.SyncModeUpdate)
}

// JobSync extracts the most recent jobs of every folder.
func (s *SyncService) JobSync(ctx context.Context) (*model.SyncResult, error) {
	return s.Run(ctx, model.SyncModeJobs)
}

// Run executes a single sync in the given mode.
//
// A missing or incomplete configuration ends the run as aborted with a nil
// error. Authentication and folder listing failures abort the run and are
// returned. Per-folder failures are reported in result.Partitions.
func (s *SyncService) Run(ctx context.Context, mode model.SyncMode) (*model.SyncResult, error) {
	if !mode.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("unknown sync mode %q", mode))
	}

	result := &model.SyncResult{Mode: mode, StartedAt: s.now().UTC()}
	result.Transition(model.RunStateIdle)
	defer func() { result.FinishedAt = s.now().UTC() }()

	logger := s.logger.With("mode", string(mode))
	logger.InfoContext(ctx, "sync run starting")

	cfg, err := s.loadConfiguration(ctx)
	if err != nil {
		result.Transition(model.RunStateAborted)
		result.AbortReason = err.Error()
		logger.WarnContext(ctx, "sync run skipped", "reason", result.AbortReason)
		return result, nil
	}
	result.Transition(model.RunStateConfigLoaded)

	if mode == model.SyncModeFull {
		result.CountBefore = s.countQueueItems(ctx, logger, "before")
	}

	sess, err := s.upstream.Authenticate(ctx, cfg)
	if err != nil {
		return s.abort(ctx, logger, result, err, "authenticate")
	}
	result.Transition(model.RunStateAuthenticated)

	folders, err := s.upstream.ListFolders(ctx, sess)
	if err != nil {
		return s.abort(ctx, logger, result, err, "list folders")
	}

	window := s.window(mode)
	for _, folder := range folders {
		if err := ctx.Err(); err != nil {
			return s.abort(ctx, logger, result, err, "sync canceled")
		}
		part := s.syncPartition(ctx, logger, result, partitionRequest{
			session: sess,
			folder:  folder,
			window:  window,
		})
		result.Partitions = append(result.Partitions, part)
		result.RecordsFetched += part.Fetched
		result.RecordsPersisted += part.Persisted
	}

	if mode == model.SyncModeFull {
		result.CountAfter = s.countQueueItems(ctx, logger, "after")
	}
	result.Transition(model.RunStateCompleted)

	logger.InfoContext(ctx, "sync run completed",
		"folders", len(folders),
		"failed_folders", len(result.FailedPartitions()),
		"records_fetched", result.RecordsFetched,
		"records_persisted", result.RecordsPersisted,
		"duration", s.now().UTC().Sub(result.StartedAt),
	)
	return result, nil
}

// loadConfiguration applies the configuration gate. Every failure comes back
// as a configuration-kind error.
func (s *SyncService) loadConfiguration(ctx context.Context) (*model.Configuration, error) {
	cfg, err := s.configs.Latest(ctx)
	switch {
	case errors.Is(err, model.ErrConfigurationNotFound):
		return nil, apperrors.Configuration("no upstream configuration stored")
	case err != nil:
		return nil, apperrors.Wrap(err, apperrors.ErrCodeConfiguration, "load upstream configuration")
	case cfg == nil:
		return nil, apperrors.Configuration("no upstream configuration stored")
	}
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Configuration(err.Error())
	}
	return cfg, nil
}

func (s *SyncService) abort(
	ctx context.Context,
	logger *slog.Logger,
	result *model.SyncResult,
	err error,
	op string,
) (*model.SyncResult, error) {
	result.Transition(model.RunStateAborted)
	result.AbortReason = err.Error()
	logger.ErrorContext(ctx, "sync run aborted", "stage", op, "error", err)
	return result, fmt.Errorf("%s: %w", op, err)
}

func (s *SyncService) countQueueItems(ctx context.Context, logger *slog.Logger, when string) *int64 {
	n, err := s.queueItems.Count(ctx)
	if err != nil {
		logger.WarnContext(ctx, "queue item count failed", "when", when, "error", err)
		return nil
	}
	logger.InfoContext(ctx, "queue item count", "when", when, "rows", n)
	return &n
}

// window returns the queue item extraction window for mode.
func (s *SyncService) window(mode model.SyncMode) model.QueueItemWindow {
	boundary := s.cfg.Boundary()
	if mode == model.SyncModeUpdate {
		boundary = s.now().UTC().Add(-s.cfg.UpdateLookback)
	}
	return model.QueueItemWindow{
		Boundary: boundary,
		PageSize: s.cfg.QueueItemsPageSize,
		MaxPages: s.cfg.QueueItemsMaxPages,
	}
}

type partitionRequest struct {
	session *model.Session
	folder  model.Folder
	window  model.QueueItemWindow
}

func (s *SyncService) syncPartition(
	ctx context.Context,
	logger *slog.Logger,
	result *model.SyncResult,
	req partitionRequest,
) model.PartitionResult {
	part := model.PartitionResult{FolderID: req.folder.ID, FolderName: req.folder.DisplayName}
	logger = logger.With("folder_id", req.folder.ID, "folder", req.folder.DisplayName)

	result.Transition(model.RunStatePartitionFetch)
	if result.Mode == model.SyncModeJobs {
		s.syncJobs(ctx, logger, result, req, &part)
	} else {
		s.syncQueueItems(ctx, logger, result, req, &part)
	}

	if part.Failed() {
		logger.ErrorContext(ctx, "folder sync failed", "stage", string(part.FailedStage), "error", part.Err)
	}
	return part
}

func (s *SyncService) syncQueueItems(
	ctx context.Context,
	logger *slog.Logger,
	result *model.SyncResult,
	req partitionRequest,
	part *model.PartitionResult,
) {
	raw, err := s.upstream.FetchQueueItems(ctx, req.session, core.FetchQueueItemsRequest{
		FolderID: req.folder.ID,
		Window:   req.window,
	})
	if err != nil {
		part.FailedStage, part.Err = model.PartitionStageFetch, err
		return
	}

	result.Transition(model.RunStateTransform)
	items, issues := transform.QueueItems(raw, req.folder.ID)
	part.Fetched, part.Issues = len(items), len(issues)
	logIssues(ctx, logger, issues)
	result.QueueItems = append(result.QueueItems, items...)
	if len(items) == 0 {
		logger.DebugContext(ctx, "no queue items for folder")
		return
	}

	result.Transition(model.RunStatePersist)
	n, err := s.queueItems.Upsert(ctx, items)
	if err != nil {
		part.FailedStage, part.Err = model.PartitionStagePersist, err
		return
	}
	part.Persisted = n
	logger.InfoContext(ctx, "queue items synced", "fetched", len(raw), "persisted", n)
}

func (s *SyncService) syncJobs(
	ctx context.Context,
	logger *slog.Logger,
	result *model.SyncResult,
	req partitionRequest,
	part *model.PartitionResult,
) {
	raw, err := s.upstream.FetchJobs(ctx, req.session, req.folder.ID)
	if err != nil {
		part.FailedStage, part.Err = model.PartitionStageFetch, err
		return
	}

	result.Transition(model.RunStateTransform)
	jobs, issues := transform.Jobs(raw, transform.JobOptions{
		FolderID:   req.folder.ID,
		NewID:      s.newJobID,
		NaturalKey: s.cfg.JobsNaturalKey,
	})
	part.Fetched, part.Issues = len(jobs), len(issues)
	logIssues(ctx, logger, issues)
	result.Jobs = append(result.Jobs, jobs...)
	if len(jobs) == 0 {
		logger.DebugContext(ctx, "no jobs for folder")
		return
	}

	result.Transition(model.RunStatePersist)
	n, err := s.jobs.Upsert(ctx, jobs)
	if err != nil {
		part.FailedStage, part.Err = model.PartitionStagePersist, err
		return
	}
	part.Persisted = n
	logger.InfoContext(ctx, "jobs synced", "fetched", len(raw), "persisted", n)
}

func logIssues(ctx context.Context, logger *slog.Logger, issues []transform.Issue) {
	for i, issue := range issues {
		if i == maxLoggedIssues {
			logger.WarnContext(ctx, "further transform issues suppressed", "suppressed", len(issues)-i)
			return
		}
		logger.WarnContext(ctx, "transform issue",
			"record_id", issue.RecordID,
			"field", issue.Field,
			"error", issue.AsError(),
		)
	}
}
