package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/SKpacteazy/rpa-insights-backend/internal/data/pgxutil"
)

// DefaultUpsertBatchSize bounds the statements queued per pgx.Batch round trip.
const DefaultUpsertBatchSize = 500

// insertedReturning reports whether the upserted row was freshly inserted.
// xmax is zero only for rows created by this statement.
const insertedReturning = "(xmax = 0) AS inserted"

// UpsertStats splits an upsert's affected rows by outcome.
type UpsertStats struct {
	Inserted int
	Updated  int
}

// Total returns inserted plus updated rows.
func (s UpsertStats) Total() int {
	return s.Inserted + s.Updated
}

// batchUpsert groups parameters for runBatchUpsert to keep param count ≤3.
type batchUpsert[T any] struct {
	Query     string
	Rows      []T
	Args      func(*T) []any
	BatchSize int
}

// runBatchUpsert sends every row through Query inside one transaction,
// chunked into pgx batches. Query must return a single boolean column.
func runBatchUpsert[T any](ctx context.Context, db *sql.DB, b batchUpsert[T]) (UpsertStats, error) {
	var stats UpsertStats
	if len(b.Rows) == 0 {
		return stats, nil
	}
	size := b.BatchSize
	if size <= 0 {
		size = DefaultUpsertBatchSize
	}

	err := pgxutil.WithPgxTx(ctx, db, pgxutil.TxConfig{
		Opts: &sql.TxOptions{Isolation: sql.LevelReadCommitted},
		Fn: func(tx pgx.Tx) error {
			return pgxutil.Chunks(len(b.Rows), size, func(start, end int) error {
				chunk, err := sendUpsertChunk(ctx, tx, b, b.Rows[start:end])
				if err != nil {
					return fmt.Errorf("rows %d-%d: %w", start, end-1, err)
				}
				stats.Inserted += chunk.Inserted
				stats.Updated += chunk.Updated
				return nil
			})
		},
	})
	if err != nil {
		return UpsertStats{}, err
	}
	return stats, nil
}

func sendUpsertChunk[T any](ctx context.Context, tx pgx.Tx, b batchUpsert[T], rows []T) (UpsertStats, error) {
	batch := &pgx.Batch{}
	for i := range rows {
		batch.Queue(b.Query, b.Args(&rows[i])...)
	}

	br := tx.SendBatch(ctx, batch)
	var stats UpsertStats
	for i := range rows {
		var inserted bool
		if err := br.QueryRow().Scan(&inserted); err != nil {
			_ = br.Close()
			return UpsertStats{}, fmt.Errorf("upsert row %d: %w", i, err)
		}
		if inserted {
			stats.Inserted++
		} else {
			stats.Updated++
		}
	}
	if err := br.Close(); err != nil {
		return UpsertStats{}, fmt.Errorf("batch close: %w", err)
	}
	return stats, nil
}

func countRows(ctx context.Context, db *sql.DB, query string) (int64, error) {
	var n int64
	if err := db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
