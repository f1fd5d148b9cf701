package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	"github.com/SKpacteazy/rpa-insights-backend/internal/testutil"
)

func TestJobRepo_Upsert_FreshIDsGrowTable(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewJobRepo(db, JobRepoOptions{})
		ctx := context.Background()

		build := func() []model.Job {
			// Each rerun assigns new ids to the same upstream jobs.
			return []model.Job{
				testutil.NewJob().Build(),
				testutil.NewJob().WithState("Faulted").Build(),
			}
		}

		_, err := repo.Upsert(ctx, build())
		require.NoError(t, err)
		_, err = repo.Upsert(ctx, build())
		require.NoError(t, err)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})
}

func TestJobRepo_Upsert_SameIDOverwrites(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewJobRepo(db, JobRepoOptions{})
		ctx := context.Background()

		job := testutil.NewJob().WithID("job-1").WithState("Running").Build()
		_, err := repo.Upsert(ctx, []model.Job{job})
		require.NoError(t, err)

		job = testutil.NewJob().WithID("job-1").WithState("Successful").WithInputArguments(`{"a":1}`).Build()
		job.HasMediaRecorded = true
		n, err := repo.Upsert(ctx, []model.Job{job})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		var state, args string
		var media bool
		err = db.QueryRowContext(ctx,
			`SELECT state, input_arguments, has_media_recorded FROM jobs WHERE id = 'job-1'`,
		).Scan(&state, &args, &media)
		require.NoError(t, err)
		assert.Equal(t, "Successful", state)
		assert.JSONEq(t, `{"a":1}`, args)
		assert.True(t, media)
		assert.Equal(t, int64(1), testutil.CountRows(t, db, "jobs"))
	})
}

func TestJobUpsertSQL_CoversEveryColumn(t *testing.T) {
	job := testutil.NewJob().Build()
	assert.Len(t, jobArgs(&job), len(jobColumns))
	assert.Contains(t, jobUpsertSQL, `ON CONFLICT ("id") DO UPDATE SET "folder_id" = EXCLUDED."folder_id"`)
	assert.NotContains(t, jobUpsertSQL, `"id" = EXCLUDED."id"`)
}

func TestQueueItemUpsertSQL_AllowList(t *testing.T) {
	item := testutil.NewQueueItem(1).Build()
	assert.Len(t, queueItemArgs(&item), len(queueItemColumns))
	for _, col := range queueItemMutable {
		assert.Contains(t, queueItemUpsertSQL, `"`+col+`" = EXCLUDED."`+col+`"`)
	}
	assert.NotContains(t, queueItemUpsertSQL, `"key" = EXCLUDED`)
	assert.NotContains(t, queueItemUpsertSQL, `"creation_time" = EXCLUDED`)
}
