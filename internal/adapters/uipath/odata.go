package uipath

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
)

// maxErrorBody bounds how much of a failed response ends up in an error message.
const maxErrorBody = 512

// odataRequest groups the parameters of a single OData collection call.
type odataRequest struct {
	Resource string
	Query    url.Values
	// FolderID scopes the request when non-zero.
	FolderID int64
}

func resourceURL(sess *model.Session, resource string, query url.Values) string {
	u := fmt.Sprintf("%s/%s/%s/odata/%s",
		strings.TrimRight(sess.Endpoint, "/"),
		url.PathEscape(sess.Organization),
		url.PathEscape(sess.Tenant),
		resource,
	)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// getPage fetches and decodes one OData page.
func getPage[T any](ctx context.Context, c *Client, sess *model.Session, req odataRequest) (*model.ODataPage[T], error) {
	body, err := c.get(ctx, sess, req)
	if err != nil {
		return nil, err
	}
	var page model.ODataPage[T]
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", req.Resource, err)
	}
	return &page, nil
}

// get runs one GET through the rate limiter and circuit breaker.
func (c *Client) get(ctx context.Context, sess *model.Session, req odataRequest) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}
	do := func() ([]byte, error) { return c.do(ctx, sess, req) }
	if c.breaker == nil {
		return do()
	}
	return c.breaker.Execute(do)
}

func (c *Client) do(ctx context.Context, sess *model.Session, req odataRequest) ([]byte, error) {
	target := resourceURL(sess, req.Resource, req.Query)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if req.FolderID != 0 {
		httpReq.Header.Set(OrganizationUnitHeader, strconv.FormatInt(req.FolderID, 10))
	}

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", req.Resource, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.DebugContext(ctx, "close upstream response body", "error", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			URL:        redactQuery(target),
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", req.Resource, err)
	}
	return body, nil
}

// redactQuery drops the query string so filters do not bloat error messages.
func redactQuery(raw string) string {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		return raw[:i]
	}
	return raw
}
