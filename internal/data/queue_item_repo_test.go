package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	"github.com/SKpacteazy/rpa-insights-backend/internal/testutil"
)

type queueItemRow struct {
	status          *string
	key             *string
	endProcessing   *time.Time
	runDuration     *string
	waitingDuration *string
}

func loadQueueItem(t *testing.T, db *sql.DB, id int64) queueItemRow {
	t.Helper()
	var row queueItemRow
	err := db.QueryRowContext(context.Background(), `
		SELECT status, key, end_processing, run_duration, waiting_duration
		FROM queue_items WHERE id = $1
	`, id).Scan(&row.status, &row.key, &row.endProcessing, &row.runDuration, &row.waitingDuration)
	require.NoError(t, err)
	return row
}

func TestQueueItemRepo_Upsert_UpdatesInPlace(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewQueueItemRepo(db, QueueItemRepoOptions{})
		ctx := context.Background()
		start := testutil.TestTime()

		item := testutil.NewQueueItem(42).WithStatus("New").Build()
		n, err := repo.Upsert(ctx, []model.QueueItem{item})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		updated := testutil.NewQueueItem(42).
			WithStatus("Successful").
			WithProcessing(start, start.Add(time.Hour)).
			WithDurations("0:10:00", "1:00:00").
			Build()
		updated.Key = testutil.StringPtr("changed-key")
		n, err = repo.Upsert(ctx, []model.QueueItem{updated})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		row := loadQueueItem(t, db, 42)
		require.NotNil(t, row.status)
		assert.Equal(t, "Successful", *row.status)
		require.NotNil(t, row.endProcessing)
		assert.True(t, start.Add(time.Hour).Equal(*row.endProcessing))
		require.NotNil(t, row.runDuration)
		assert.Equal(t, "1:00:00", *row.runDuration)
		require.NotNil(t, row.waitingDuration)
		assert.Equal(t, "0:10:00", *row.waitingDuration)

		// key is not in the mutable allow-list and keeps its first-written value.
		require.NotNil(t, row.key)
		assert.Equal(t, *item.Key, *row.key)
	})
}

func TestQueueItemRepo_Upsert_Idempotent(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewQueueItemRepo(db, QueueItemRepoOptions{BatchSize: 2})
		ctx := context.Background()

		items := []model.QueueItem{
			testutil.NewQueueItem(1).Build(),
			testutil.NewQueueItem(2).WithFolder(7).Build(),
			testutil.NewQueueItem(3).WithStatus("Failed").Build(),
		}

		for range 2 {
			n, err := repo.Upsert(ctx, items)
			require.NoError(t, err)
			assert.Equal(t, 3, n)
		}

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestQueueItemRepo_Upsert_Empty(t *testing.T) {
	// No database needed; an empty batch never touches the pool.
	repo := NewQueueItemRepo(nil, QueueItemRepoOptions{})
	n, err := repo.Upsert(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
