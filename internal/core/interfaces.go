// Package core defines the ports between the sync service and its adapters.
package core

import (
	"context"
	"time"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
)

// This file contains repository and adapter interface definitions (ports in hexagonal architecture).
// Service implementations should depend on these interfaces, not concrete implementations.

// ConfigRepository reads and appends upstream connection settings.
type ConfigRepository interface {
	// Latest returns the most recently inserted configuration.
	// Returns model.ErrConfigurationNotFound when the table is empty.
	Latest(ctx context.Context) (*model.Configuration, error)
	// Append inserts a new configuration row. Existing rows are never updated.
	Append(ctx context.Context, req *model.SaveConfigurationRequest) (*model.Configuration, error)
}

// QueueItemRepository persists normalized queue items keyed by upstream id.
type QueueItemRepository interface {
	Upsert(ctx context.Context, items []model.QueueItem) (int, error)
	Count(ctx context.Context) (int64, error)
}

// JobRepository persists normalized jobs.
type JobRepository interface {
	Upsert(ctx context.Context, jobs []model.Job) (int, error)
	Count(ctx context.Context) (int64, error)
}

// UpstreamClient talks to the orchestration platform's OData API.
type UpstreamClient interface {
	// Authenticate exchanges the configured client credentials for a bearer token.
	Authenticate(ctx context.Context, cfg *model.Configuration) (*model.Session, error)
	// ListFolders enumerates the tenant's folders.
	ListFolders(ctx context.Context, sess *model.Session) ([]model.Folder, error)
	FetchQueueItems(ctx context.Context, sess *model.Session, req FetchQueueItemsRequest) ([]model.RawQueueItem, error)
	FetchJobs(ctx context.Context, sess *model.Session, folderID int64) ([]model.RawJob, error)
}

// FetchQueueItemsRequest groups parameters for FetchQueueItems to keep param count ≤3.
type FetchQueueItemsRequest struct {
	FolderID int64
	Window   model.QueueItemWindow
}

// RunLease guards a sync mode against overlapping runs across processes.
type RunLease interface {
	// Acquire takes the lease if free. ok is false when another holder has it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	// Release drops the lease only if token still owns it.
	Release(ctx context.Context, key, token string) (bool, error)
}

// SyncRunner executes one sync run for a mode.
type SyncRunner interface {
	Run(ctx context.Context, mode model.SyncMode) (*model.SyncResult, error)
}
