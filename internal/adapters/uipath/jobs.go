package uipath

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	apperrors "github.com/SKpacteazy/rpa-insights-backend/internal/errors"
)

// DefaultJobsPageSize is the $top used for job extraction.
const DefaultJobsPageSize = 1000

// FetchJobs pulls the most recently created jobs of one folder. No time
// window is applied.
func (c *Client) FetchJobs(ctx context.Context, sess *model.Session, folderID int64) ([]model.RawJob, error) {
	top := c.jobsPageSize
	if top <= 0 {
		top = DefaultJobsPageSize
	}
	q := url.Values{}
	q.Set("$orderby", "CreationTime desc")
	q.Set("$top", strconv.Itoa(top))

	page, err := getPage[model.RawJob](ctx, c, sess, odataRequest{
		Resource: "Jobs",
		Query:    q,
		FolderID: folderID,
	})
	if err != nil {
		return nil, apperrors.Upstream(err, fmt.Sprintf("fetch jobs for folder %d", folderID))
	}
	c.logger.InfoContext(ctx, "retrieved jobs", "folder_id", folderID, "count", len(page.Value))
	return page.Value, nil
}
