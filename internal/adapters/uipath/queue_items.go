package uipath

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/SKpacteazy/rpa-insights-backend/internal/core"
	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	apperrors "github.com/SKpacteazy/rpa-insights-backend/internal/errors"
)

// MaxQueueItemPageSize is the upstream $top cap for queue items.
const MaxQueueItemPageSize = 100

// QueueItemFilter renders the window filter: records created or started after
// the boundary day, or ended before it.
func QueueItemFilter(boundary time.Time) string {
	d := boundary.UTC().Format(time.DateOnly)
	return fmt.Sprintf("(CreationTime gt %s or StartProcessing gt %s or EndProcessing lt %s)", d, d, d)
}

// FetchQueueItems pulls queue items for one folder, newest id first. It reads
// at most req.Window.MaxPages pages and stops early on a short page.
func (c *Client) FetchQueueItems(
	ctx context.Context,
	sess *model.Session,
	req core.FetchQueueItemsRequest,
) ([]model.RawQueueItem, error) {
	top := req.Window.PageSize
	if top <= 0 || top > MaxQueueItemPageSize {
		top = MaxQueueItemPageSize
	}
	pages := max(req.Window.MaxPages, 1)
	filter := QueueItemFilter(req.Window.Boundary)

	var out []model.RawQueueItem
	for p := range pages {
		q := url.Values{}
		q.Set("$orderby", "Id desc")
		q.Set("$top", strconv.Itoa(top))
		q.Set("$skip", strconv.Itoa(p*top))
		q.Set("$filter", filter)

		page, err := getPage[model.RawQueueItem](ctx, c, sess, odataRequest{
			Resource: "queueitems",
			Query:    q,
			FolderID: req.FolderID,
		})
		if err != nil {
			return nil, apperrors.Upstream(err, fmt.Sprintf("fetch queue items for folder %d", req.FolderID))
		}
		out = append(out, page.Value...)
		if len(page.Value) < top {
			break
		}
	}

	c.logger.InfoContext(ctx, "retrieved queue items", "folder_id", req.FolderID, "count", len(out))
	return out, nil
}
