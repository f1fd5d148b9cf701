// Package testutil provides testing utilities and helpers for the sync engine.
package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
)

// QueueItemBuilder provides a fluent interface for building QueueItem rows for testing.
type QueueItemBuilder struct {
	item model.QueueItem
}

// NewQueueItem creates a QueueItemBuilder with sensible defaults.
func NewQueueItem(id int64) *QueueItemBuilder {
	created := TestTime()
	return &QueueItemBuilder{
		item: model.QueueItem{
			ID:                id,
			QueueDefinitionID: Int64Ptr(1),
			FolderID:          1,
			Key:               StringPtr(uuid.NewString()),
			Status:            StringPtr("New"),
			Priority:          StringPtr("Normal"),
			RetryNumber:       Int64Ptr(0),
			CreationTime:      &created,
			OrgUnitID:         Int64Ptr(1),
		},
	}
}

// WithFolder sets the folder id.
func (b *QueueItemBuilder) WithFolder(folderID int64) *QueueItemBuilder {
	b.item.FolderID = folderID
	b.item.OrgUnitID = Int64Ptr(folderID)
	return b
}

// WithStatus sets the status.
func (b *QueueItemBuilder) WithStatus(status string) *QueueItemBuilder {
	b.item.Status = StringPtr(status)
	return b
}

// WithProcessing sets start and end processing timestamps. A zero end leaves it nil.
func (b *QueueItemBuilder) WithProcessing(start, end time.Time) *QueueItemBuilder {
	b.item.StartProcessing = TimePtr(start)
	if !end.IsZero() {
		b.item.EndProcessing = TimePtr(end)
	}
	return b
}

// WithDurations sets the derived duration columns.
func (b *QueueItemBuilder) WithDurations(waiting, run string) *QueueItemBuilder {
	if waiting != "" {
		b.item.WaitingDuration = StringPtr(waiting)
	}
	if run != "" {
		b.item.RunDuration = StringPtr(run)
	}
	return b
}

// Build returns the QueueItem.
func (b *QueueItemBuilder) Build() model.QueueItem {
	return b.item
}

// JobBuilder provides a fluent interface for building Job rows for testing.
type JobBuilder struct {
	job model.Job
}

// NewJob creates a JobBuilder with a fresh id and sensible defaults.
func NewJob() *JobBuilder {
	start := TestTime()
	return &JobBuilder{
		job: model.Job{
			ID:           uuid.NewString(),
			FolderID:     Int64Ptr(1),
			KeyUUID:      StringPtr(uuid.NewString()),
			State:        StringPtr("Successful"),
			ReleaseName:  StringPtr("Invoices_Prod"),
			CreationTime: TimePtr(start.Add(-time.Minute)),
			StartTime:    TimePtr(start),
			EndTime:      TimePtr(start.Add(5 * time.Minute)),
		},
	}
}

// WithID sets the row id.
func (b *JobBuilder) WithID(id string) *JobBuilder {
	b.job.ID = id
	return b
}

// WithState sets the job state.
func (b *JobBuilder) WithState(state string) *JobBuilder {
	b.job.State = StringPtr(state)
	return b
}

// WithInputArguments sets the serialized input arguments.
func (b *JobBuilder) WithInputArguments(args string) *JobBuilder {
	b.job.InputArguments = StringPtr(args)
	return b
}

// Build returns the Job.
func (b *JobBuilder) Build() model.Job {
	return b.job
}

// NewConfigurationRequest returns a complete configuration request pointing at endpoint.
func NewConfigurationRequest(endpoint string) *model.SaveConfigurationRequest {
	return &model.SaveConfigurationRequest{
		Endpoint:     endpoint,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Organization: "acme",
		Tenant:       "DefaultTenant",
		Scope:        "OR.Queues OR.Jobs OR.Folders",
	}
}

// NewConfiguration returns a complete configuration pointing at endpoint.
func NewConfiguration(endpoint string) *model.Configuration {
	req := NewConfigurationRequest(endpoint)
	return &model.Configuration{
		ID:           1,
		Endpoint:     req.Endpoint,
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
		Organization: req.Organization,
		Tenant:       req.Tenant,
		Scope:        req.Scope,
		CreatedAt:    TestTime(),
	}
}
