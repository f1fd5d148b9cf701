package model

import "time"

// QueueItem is the normalized queue_items row. ID is the upstream natural key.
type QueueItem struct {
	ID                  int64      `json:"id"                    db:"id"`
	QueueDefinitionID   *int64     `json:"queue_definition_id"   db:"queue_definition_id"`
	FolderID            int64      `json:"folder_id"             db:"folder_id"`
	Key                 *string    `json:"key"                   db:"key"`
	Status              *string    `json:"status"                db:"status"`
	Reference           *string    `json:"reference"             db:"reference"`
	Priority            *string    `json:"priority"              db:"priority"`
	DeferDate           *time.Time `json:"defer_date"            db:"defer_date"`
	StartProcessing     *time.Time `json:"start_processing"      db:"start_processing"`
	EndProcessing       *time.Time `json:"end_processing"        db:"end_processing"`
	SecondsPrevAttempts *int64     `json:"seconds_prev_attempts" db:"seconds_prev_attempts"`
	RetryNumber         *int64     `json:"retry_number"          db:"retry_number"`
	CreationTime        *time.Time `json:"creation_time"         db:"creation_time"`
	OrgUnitID           *int64     `json:"org_unit_id"           db:"org_unit_id"`
	RunDuration         *string    `json:"run_duration"          db:"run_duration"`
	WaitingDuration     *string    `json:"waiting_duration"      db:"waiting_duration"`
}

// QueueItemWindow is the extraction filter boundary for queue items.
// Records created or started after Boundary, or ended before it, match.
type QueueItemWindow struct {
	Boundary time.Time
	PageSize int
	MaxPages int
}
