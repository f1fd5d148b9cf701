package data

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/SKpacteazy/rpa-insights-backend/internal/data/database"
	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	apperrors "github.com/SKpacteazy/rpa-insights-backend/internal/errors"
)

const queueItemsTable = "queue_items"

var queueItemColumns = []string{
	"id",
	"queue_definition_id",
	"folder_id",
	"key",
	"status",
	"reference",
	"priority",
	"defer_date",
	"start_processing",
	"end_processing",
	"seconds_prev_attempts",
	"retry_number",
	"creation_time",
	"org_unit_id",
	"run_duration",
	"waiting_duration",
}

// queueItemMutable is the allow-list overwritten when an existing id is re-synced.
// Every other column keeps its first-written value.
var queueItemMutable = []string{
	"status",
	"start_processing",
	"end_processing",
	"run_duration",
	"waiting_duration",
}

var queueItemUpsertSQL = mustUpsert(database.UpsertSpec{
	Table:     queueItemsTable,
	Columns:   queueItemColumns,
	Update:    queueItemMutable,
	Returning: insertedReturning,
})

// QueueItemRepoOptions configures a QueueItemRepo.
type QueueItemRepoOptions struct {
	BatchSize int
	Logger    *slog.Logger
}

// QueueItemRepo persists queue items keyed by their upstream id.
type QueueItemRepo struct {
	DB        *sql.DB
	batchSize int
	logger    *slog.Logger
}

// NewQueueItemRepo creates a new QueueItemRepo.
func NewQueueItemRepo(db *sql.DB, opts QueueItemRepoOptions) *QueueItemRepo {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &QueueItemRepo{
		DB:        db,
		batchSize: opts.BatchSize,
		logger:    logger.With("component", "queue_item_repo"),
	}
}

// Upsert inserts items or updates the mutable columns of existing ids.
// It returns the number of rows written; an empty slice is a no-op.
func (r *QueueItemRepo) Upsert(ctx context.Context, items []model.QueueItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	stats, err := runBatchUpsert(ctx, r.DB, batchUpsert[model.QueueItem]{
		Query:     queueItemUpsertSQL,
		Rows:      items,
		Args:      queueItemArgs,
		BatchSize: r.batchSize,
	})
	if err != nil {
		return 0, apperrors.Persistence(apperrors.MapDBError(err), "upsert queue items")
	}

	r.logger.DebugContext(ctx, "queue items upserted",
		"inserted", stats.Inserted,
		"updated", stats.Updated,
	)
	return stats.Total(), nil
}

// Count returns the current number of queue item rows.
func (r *QueueItemRepo) Count(ctx context.Context) (int64, error) {
	n, err := countRows(ctx, r.DB, database.BuildCount(queueItemsTable))
	if err != nil {
		return 0, apperrors.Persistence(apperrors.MapDBError(err), "count queue items")
	}
	return n, nil
}

func queueItemArgs(q *model.QueueItem) []any {
	return []any{
		q.ID,
		q.QueueDefinitionID,
		q.FolderID,
		q.Key,
		q.Status,
		q.Reference,
		q.Priority,
		q.DeferDate,
		q.StartProcessing,
		q.EndProcessing,
		q.SecondsPrevAttempts,
		q.RetryNumber,
		q.CreationTime,
		q.OrgUnitID,
		q.RunDuration,
		q.WaitingDuration,
	}
}

func mustUpsert(spec database.UpsertSpec) string {
	q, err := database.BuildUpsert(spec)
	if err != nil {
		//nolint:forbidigo // static column lists; a failure is a programming error caught by tests.
		panic(err)
	}
	return q
}
