package uipath

import (
	"context"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	apperrors "github.com/SKpacteazy/rpa-insights-backend/internal/errors"
)

// ListFolders enumerates the tenant's folders in upstream order.
func (c *Client) ListFolders(ctx context.Context, sess *model.Session) ([]model.Folder, error) {
	page, err := getPage[model.Folder](ctx, c, sess, odataRequest{Resource: "Folders"})
	if err != nil {
		return nil, apperrors.Upstream(err, "list folders")
	}
	c.logger.InfoContext(ctx, "retrieved folders", "count", len(page.Value))
	return page.Value, nil
}
