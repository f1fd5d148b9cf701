package transform

import (
	"errors"
	"time"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
)

var errMissingID = errors.New("record has no Id")

// QueueItems normalizes raw queue items fetched for folderID. Records
// without an Id cannot be keyed and are skipped with an issue.
func QueueItems(raw []model.RawQueueItem, folderID int64) ([]model.QueueItem, []Issue) {
	out := make([]model.QueueItem, 0, len(raw))
	var found issues

	for i := range raw {
		r := &raw[i]
		if r.ID == nil {
			found.add("", "Id", errMissingID)
			continue
		}
		recordID := idString(r.ID)

		item := model.QueueItem{
			ID:                  *r.ID,
			QueueDefinitionID:   r.QueueDefinitionID,
			FolderID:            folderID,
			Key:                 text(r.Key),
			Status:              text(r.Status),
			Reference:           text(r.Reference),
			Priority:            text(r.Priority),
			SecondsPrevAttempts: r.SecondsInPreviousAttempts,
			RetryNumber:         r.RetryNumber,
			OrgUnitID:           r.OrganizationUnitID,
		}

		item.DeferDate = timestampField(&found, recordID, "DeferDate", r.DeferDate)
		item.StartProcessing = timestampField(&found, recordID, "StartProcessing", r.StartProcessing)
		item.EndProcessing = timestampField(&found, recordID, "EndProcessing", r.EndProcessing)
		item.CreationTime = timestampField(&found, recordID, "CreationTime", r.CreationTime)

		item.WaitingDuration = Between(item.CreationTime, item.StartProcessing)
		item.RunDuration = Between(item.StartProcessing, item.EndProcessing)

		out = append(out, item)
	}

	return out, found
}

func timestampField(found *issues, recordID, field string, raw *model.FlexString) *time.Time {
	t, err := parseOptional(raw.Ptr())
	if err != nil {
		found.add(recordID, field, err)
		return nil
	}
	return t
}
