package failurenotifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	"github.com/SKpacteazy/rpa-insights-backend/internal/observability/notify"
)

type captureSink struct {
	mu       sync.Mutex
	payloads []notify.SyncFailurePayload
}

func (c *captureSink) SendSyncFailure(_ context.Context, payload notify.SyncFailurePayload) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads = append(c.payloads, payload)
	return nil
}

func (c *captureSink) received() []notify.SyncFailurePayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]notify.SyncFailurePayload(nil), c.payloads...)
}

func TestServiceNotifySyncFailure(t *testing.T) {
	first, second := &captureSink{}, &captureSink{}
	svc := NewService(Options{
		Sinks: []SinkRegistration{
			{Name: "first", Sink: first},
			{Sink: second},
			{Name: "nil"},
		},
	})
	require.True(t, svc.Enabled())

	svc.NotifySyncFailure(context.Background(), notify.SyncFailurePayload{Mode: "full", Error: "boom"})

	for _, sink := range []*captureSink{first, second} {
		got := sink.received()
		require.Len(t, got, 1)
		assert.Equal(t, notify.SeverityCritical, got[0].Severity)
		assert.Equal(t, "full", got[0].Mode)
	}
}

func TestServiceDisabled(t *testing.T) {
	assert.False(t, NewService(Options{}).Enabled())

	var nilSvc *Service
	assert.False(t, nilSvc.Enabled())
	assert.NotPanics(t, func() {
		nilSvc.NotifySyncFailure(context.Background(), notify.SyncFailurePayload{})
	})
}

func TestServiceLogsErrors(t *testing.T) {
	svc := NewService(Options{
		Sinks: []SinkRegistration{{
			Name: "fail",
			Sink: notify.SinkFunc(func(context.Context, notify.SyncFailurePayload) error {
				return errors.New("boom")
			}),
		}},
	})

	assert.NotPanics(t, func() {
		svc.NotifySyncFailure(context.Background(), notify.SyncFailurePayload{Mode: "jobs"})
	})
}

func TestServiceNotifyPartialFailure(t *testing.T) {
	finished := time.Date(2025, 12, 16, 10, 5, 0, 0, time.UTC)
	result := &model.SyncResult{
		Mode:  model.SyncModeUpdate,
		State: model.RunStateCompleted,
		Partitions: []model.PartitionResult{
			{FolderID: 1, FolderName: "Finance"},
			{FolderID: 2, FolderName: "HR", FailedStage: model.PartitionStagePersist, Err: errors.New("deadlock")},
		},
		FinishedAt: finished,
	}

	t.Run("enabled", func(t *testing.T) {
		sink := &captureSink{}
		svc := NewService(Options{Sinks: []SinkRegistration{{Sink: sink}}, NotifyPartialFailures: true})

		svc.NotifyPartialFailure(context.Background(), result)

		got := sink.received()
		require.Len(t, got, 1)
		assert.Equal(t, notify.SeverityWarning, got[0].Severity)
		assert.Equal(t, "update", got[0].Mode)
		assert.Equal(t, "completed", got[0].State)
		assert.Equal(t, finished, got[0].OccurredAt)
		assert.Equal(t, []notify.FolderFailure{
			{FolderID: 2, FolderName: "HR", Stage: "persist", Error: "deadlock"},
		}, got[0].Folders)
	})

	t.Run("disabled", func(t *testing.T) {
		sink := &captureSink{}
		svc := NewService(Options{Sinks: []SinkRegistration{{Sink: sink}}})
		svc.NotifyPartialFailure(context.Background(), result)
		assert.Empty(t, sink.received())
	})

	t.Run("no failed folders", func(t *testing.T) {
		sink := &captureSink{}
		svc := NewService(Options{Sinks: []SinkRegistration{{Sink: sink}}, NotifyPartialFailures: true})
		svc.NotifyPartialFailure(context.Background(), &model.SyncResult{State: model.RunStateCompleted})
		svc.NotifyPartialFailure(context.Background(), nil)
		assert.Empty(t, sink.received())
	})
}
