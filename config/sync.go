package config

import (
	"strings"
	"time"
)

const (
	// MaxQueueItemPageSize is the largest $top the queue item endpoint accepts.
	MaxQueueItemPageSize = 100

	defaultBoundaryDate = "2025-12-15"
)

// SyncConfig controls extraction windows and persistence batching.
type SyncConfig struct {
	// BoundaryDate (YYYY-MM-DD) is the queue item filter boundary for full syncs.
	BoundaryDate string `env:"BOUNDARY_DATE" envDefault:"2025-12-15"`

	// UpdateLookback sets the rolling boundary for update syncs: today minus lookback.
	UpdateLookback time.Duration `env:"UPDATE_LOOKBACK" envDefault:"24h"`

	QueueItemsPageSize int `env:"QUEUE_ITEMS_PAGE_SIZE" envDefault:"100"`

	// QueueItemsMaxPages bounds pagination per folder. 1 keeps the
	// most-recent-N policy: only the first page is read.
	QueueItemsMaxPages int `env:"QUEUE_ITEMS_MAX_PAGES" envDefault:"1"`

	JobsPageSize int `env:"JOBS_PAGE_SIZE" envDefault:"1000"`

	// JobsNaturalKey uses the upstream job Key as the row id instead of a fresh UUID.
	JobsNaturalKey bool `env:"JOBS_NATURAL_KEY" envDefault:"false"`

	// UpsertBatchSize caps the number of rows sent per batch.
	UpsertBatchSize int `env:"UPSERT_BATCH_SIZE" envDefault:"500"`
}

// Sanitize applies guardrails to sync configuration values.
func (c *SyncConfig) Sanitize() {
	c.BoundaryDate = strings.TrimSpace(c.BoundaryDate)
	if _, err := time.Parse(time.DateOnly, c.BoundaryDate); err != nil {
		c.BoundaryDate = defaultBoundaryDate
	}
	if c.UpdateLookback <= 0 {
		c.UpdateLookback = 24 * time.Hour
	}
	if c.QueueItemsPageSize < 1 || c.QueueItemsPageSize > MaxQueueItemPageSize {
		c.QueueItemsPageSize = MaxQueueItemPageSize
	}
	if c.QueueItemsMaxPages < 1 {
		c.QueueItemsMaxPages = 1
	}
	if c.JobsPageSize < 1 {
		c.JobsPageSize = 1000
	}
	if c.UpsertBatchSize < 1 {
		c.UpsertBatchSize = 500
	}
}

// Boundary returns the parsed full-sync boundary date in UTC.
func (c *SyncConfig) Boundary() time.Time {
	t, err := time.Parse(time.DateOnly, c.BoundaryDate)
	if err != nil {
		t, _ = time.Parse(time.DateOnly, defaultBoundaryDate)
	}
	return t
}
