package transform

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	apperrors "github.com/SKpacteazy/rpa-insights-backend/internal/errors"
)

func decodeQueueItems(t *testing.T, body string) []model.RawQueueItem {
	t.Helper()
	var page model.ODataPage[model.RawQueueItem]
	require.NoError(t, json.Unmarshal([]byte(body), &page))
	return page.Value
}

func TestQueueItems_Durations(t *testing.T) {
	raw := decodeQueueItems(t, `{"value":[{
		"Id": 42,
		"QueueDefinitionId": 7,
		"Key": "c0ffee",
		"Status": "Successful",
		"Priority": "High",
		"CreationTime": "2025-12-16T09:50:00Z",
		"StartProcessing": "2025-12-16T10:00:00Z",
		"EndProcessing": "2025-12-16T11:00:00Z",
		"RetryNumber": 0,
		"OrganizationUnitId": 5
	}]}`)

	items, found := QueueItems(raw, 5)
	require.Empty(t, found)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, int64(42), item.ID)
	assert.Equal(t, int64(5), item.FolderID)
	require.NotNil(t, item.QueueDefinitionID)
	assert.Equal(t, int64(7), *item.QueueDefinitionID)
	require.NotNil(t, item.Status)
	assert.Equal(t, "Successful", *item.Status)
	require.NotNil(t, item.WaitingDuration)
	assert.Equal(t, "0:10:00", *item.WaitingDuration)
	require.NotNil(t, item.RunDuration)
	assert.Equal(t, "1:00:00", *item.RunDuration)
	assert.True(t, item.StartProcessing.Equal(time.Date(2025, 12, 16, 10, 0, 0, 0, time.UTC)))
}

func TestQueueItems_NullSafety(t *testing.T) {
	raw := decodeQueueItems(t, `{"value":[{
		"Id": 43,
		"Status": "New",
		"CreationTime": "2025-12-16T09:50:00Z",
		"StartProcessing": null
	}]}`)

	items, found := QueueItems(raw, 9)
	require.Empty(t, found)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].StartProcessing)
	assert.Nil(t, items[0].EndProcessing)
	assert.Nil(t, items[0].WaitingDuration)
	assert.Nil(t, items[0].RunDuration)
	assert.Nil(t, items[0].Reference)
	assert.Nil(t, items[0].RetryNumber)
}

func TestQueueItems_MalformedTimestamp(t *testing.T) {
	raw := decodeQueueItems(t, `{"value":[{
		"Id": 44,
		"CreationTime": "2025-12-16T09:50:00Z",
		"StartProcessing": "garbage",
		"EndProcessing": "2025-12-16T11:00:00Z"
	}]}`)

	items, found := QueueItems(raw, 1)
	require.Len(t, items, 1)
	require.Len(t, found, 1)

	assert.Equal(t, "44", found[0].RecordID)
	assert.Equal(t, "StartProcessing", found[0].Field)
	assert.True(t, apperrors.IsTransformation(found[0].AsError()))
	assert.Nil(t, items[0].StartProcessing)
	assert.Nil(t, items[0].RunDuration)
	assert.Nil(t, items[0].WaitingDuration)
}

func TestQueueItems_MissingIDSkipped(t *testing.T) {
	raw := decodeQueueItems(t, `{"value":[{"Status":"New"},{"Id":1}]}`)

	items, found := QueueItems(raw, 1)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
	require.Len(t, found, 1)
	assert.Equal(t, "Id", found[0].Field)
}

func TestQueueItems_Empty(t *testing.T) {
	items, found := QueueItems(nil, 1)
	assert.Empty(t, items)
	assert.Empty(t, found)
}
