// Package model defines the data types shared by the sync engine: upstream
// records, normalized rows, and run results.
package model

import (
	"fmt"
	"strings"
	"time"
)

// SyncMode selects which extraction a run performs.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type SyncMode string

const (
	// SyncModeFull extracts queue items with the configured boundary and audits row counts.
	SyncModeFull SyncMode = "full"
	// SyncModeUpdate extracts queue items changed within the rolling lookback window.
	SyncModeUpdate SyncMode = "update"
	// SyncModeJobs extracts recent jobs.
	SyncModeJobs SyncMode = "jobs"
)

// Valid returns true if the SyncMode is known.
func (m SyncMode) Valid() bool {
	return m == SyncModeFull || m == SyncModeUpdate || m == SyncModeJobs
}

// UnmarshalText implements encoding.TextUnmarshaler so modes can be parsed from env and flags.
func (m *SyncMode) UnmarshalText(text []byte) error {
	v := SyncMode(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid SyncMode: %q", v)
	}
	*m = v
	return nil
}

// RunState is a node of the per-run state machine.
type RunState string

const (
	RunStateIdle           RunState = "idle"
	RunStateConfigLoaded   RunState = "config_loaded"
	RunStateAuthenticated  RunState = "authenticated"
	RunStatePartitionFetch RunState = "partition_fetch"
	RunStateTransform      RunState = "transform"
	RunStatePersist        RunState = "persist"
	RunStateCompleted      RunState = "completed"
	RunStateAborted        RunState = "aborted"
)

// Terminal reports whether no further transitions are possible.
func (s RunState) Terminal() bool {
	return s == RunStateCompleted || s == RunStateAborted
}

// PartitionStage names the per-partition step that failed.
type PartitionStage string

const (
	PartitionStageFetch   PartitionStage = "fetch"
	PartitionStagePersist PartitionStage = "persist"
)

// PartitionResult records what happened to one folder during a run.
type PartitionResult struct {
	FolderID    int64
	FolderName  string
	Fetched     int
	Persisted   int
	Issues      int
	FailedStage PartitionStage
	Err         error
}

// Failed reports whether the partition hit a fetch or persist error.
func (p PartitionResult) Failed() bool {
	return p.Err != nil
}

// SyncResult is the transient per-run aggregate returned to the caller.
type SyncResult struct {
	Mode        SyncMode
	State       RunState
	AbortReason string

	RecordsFetched   int
	RecordsPersisted int
	// CountBefore and CountAfter are only set for full syncs.
	CountBefore *int64
	CountAfter  *int64

	Partitions []PartitionResult
	QueueItems []QueueItem
	Jobs       []Job

	// States is the path taken through the run state machine.
	States []RunState

	StartedAt  time.Time
	FinishedAt time.Time
}

// Transition appends a state to the run path.
func (r *SyncResult) Transition(s RunState) {
	r.State = s
	r.States = append(r.States, s)
}

// Aborted reports whether the run stopped before processing partitions.
func (r *SyncResult) Aborted() bool {
	return r.State == RunStateAborted
}

// FailedPartitions returns the partitions that hit an error.
func (r *SyncResult) FailedPartitions() []PartitionResult {
	var failed []PartitionResult
	for _, p := range r.Partitions {
		if p.Failed() {
			failed = append(failed, p)
		}
	}
	return failed
}

// Duration returns the wall-clock run time.
func (r *SyncResult) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
