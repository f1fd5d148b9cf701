// Package notify defines the payload and sink contract for sync failure alerts.
package notify

import (
	"context"
	"time"
)

// Severity constants recognised by downstream sinks.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
)

// FolderFailure describes one folder that failed during a run.
type FolderFailure struct {
	FolderID   int64
	FolderName string
	Stage      string
	Error      string
}

// SyncFailurePayload is what we emit when a sync run fails or completes with failed folders.
type SyncFailurePayload struct {
	Mode       string
	State      string
	Attempts   int
	Error      string
	ErrorClass string
	Severity   string
	Folders    []FolderFailure
	OccurredAt time.Time
	Metadata   map[string]string
}

// Sink describes a destination capable of consuming sync failure notifications.
type Sink interface {
	SendSyncFailure(ctx context.Context, payload SyncFailurePayload) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, payload SyncFailurePayload) error

// SendSyncFailure implements the Sink interface.
func (f SinkFunc) SendSyncFailure(ctx context.Context, payload SyncFailurePayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}
