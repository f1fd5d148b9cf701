// Package slack delivers sync failure notifications to a Slack incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SKpacteazy/rpa-insights-backend/internal/observability/notify"
)

// maxListedFolders caps the folder lines in one message.
const maxListedFolders = 10

// Config captures the subset of Slack webhook behaviour we need.
type Config struct {
	WebhookURL   string
	Channel      string
	Username     string
	Timeout      time.Duration
	RetryLimit   int
	Client       *http.Client
	DashboardURL string
}

// Client delivers sync failure notifications to a Slack webhook.
type Client struct {
	webhookURL   string
	channel      string
	username     string
	retryLimit   int
	dashboardURL string
	client       *http.Client
}

var _ notify.Sink = (*Client)(nil)

// NewClient builds a Slack webhook client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if webhookURL == "" {
		return nil, errors.New("slack webhook url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		webhookURL:   webhookURL,
		channel:      strings.TrimSpace(cfg.Channel),
		username:     fallbackString(strings.TrimSpace(cfg.Username), "rpa-insights"),
		retryLimit:   max(cfg.RetryLimit, 0),
		dashboardURL: validURL(cfg.DashboardURL),
		client:       hc,
	}, nil
}

// SendSyncFailure posts a formatted message to Slack.
func (c *Client) SendSyncFailure(ctx context.Context, payload notify.SyncFailurePayload) error {
	body, err := json.Marshal(c.formatMessage(payload))
	if err != nil {
		return fmt.Errorf("encode slack payload: %w", err)
	}

	attempts := c.retryLimit + 1
	var lastErr error
	for attempt := range attempts {
		err = c.post(ctx, body)
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt < attempts-1 {
			// Linear backoff between attempts.
			timer := time.NewTimer(time.Duration(attempt+1) * 200 * time.Millisecond)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	return lastErr
}

func (c *Client) formatMessage(payload notify.SyncFailurePayload) map[string]any {
	timestamp := payload.OccurredAt
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	text := strings.Builder{}
	writeHeader(&text, payload)
	appendDetails(&text, payload)
	appendFolders(&text, payload.Folders)
	appendMetadata(&text, payload.Metadata)
	if c.dashboardURL != "" {
		appendField(&text, "Dashboard", "<"+c.dashboardURL+"|open>")
	}
	text.WriteString("• Timestamp: ")
	text.WriteString(timestamp.UTC().Format(time.RFC3339))

	msg := map[string]any{
		"text":     text.String(),
		"username": c.username,
	}
	if c.channel != "" {
		msg["channel"] = c.channel
	}
	return msg
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if readErr != nil {
			return fmt.Errorf("read slack error response: %w", readErr)
		}
		return fmt.Errorf("slack webhook %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("drain slack response body: %w", err)
	}
	return nil
}

func writeHeader(text *strings.Builder, payload notify.SyncFailurePayload) {
	if payload.Severity == notify.SeverityWarning {
		text.WriteString("*Sync completed with failures*")
	} else {
		text.WriteString("*Sync failure alert*")
	}
	if payload.Mode != "" {
		text.WriteString(" `")
		text.WriteString(payload.Mode)
		text.WriteByte('`')
	}
	if payload.State != "" {
		text.WriteString(" (")
		text.WriteString(payload.State)
		text.WriteByte(')')
	}
	text.WriteByte('\n')
}

func appendDetails(text *strings.Builder, payload notify.SyncFailurePayload) {
	attempts := ""
	if payload.Attempts > 0 {
		attempts = strconv.Itoa(payload.Attempts)
	}
	fields := []struct {
		label string
		value string
	}{
		{"Severity", fallbackString(payload.Severity, notify.SeverityCritical)},
		{"Attempts", attempts},
		{"Error class", payload.ErrorClass},
		{"Error", escapeSlackText(payload.Error)},
	}
	for _, field := range fields {
		appendField(text, field.label, field.value)
	}
}

func appendFolders(text *strings.Builder, folders []notify.FolderFailure) {
	if len(folders) == 0 {
		return
	}
	fmt.Fprintf(text, "• Failed folders (%d):\n", len(folders))
	for i, f := range folders {
		if i == maxListedFolders {
			fmt.Fprintf(text, "    • … and %d more\n", len(folders)-i)
			return
		}
		name := escapeSlackText(strings.TrimSpace(f.FolderName))
		if name == "" {
			name = "folder"
		}
		fmt.Fprintf(text, "    • %s (%d) %s: %s\n", name, f.FolderID, f.Stage, escapeSlackText(f.Error))
	}
}

func appendField(text *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	text.WriteString("• ")
	text.WriteString(label)
	text.WriteString(": ")
	text.WriteString(value)
	text.WriteByte('\n')
}

func appendMetadata(text *strings.Builder, metadata map[string]string) {
	if len(metadata) == 0 {
		return
	}
	text.WriteString("• Metadata:\n")
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		text.WriteString("    • ")
		text.WriteString(k)
		text.WriteString(": ")
		text.WriteString(metadata[k])
		text.WriteByte('\n')
	}
}

func escapeSlackText(value string) string {
	if value == "" {
		return ""
	}
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	).Replace(value)
}

// validURL returns raw when it is an absolute http(s) URL, otherwise "".
func validURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.String()
}

func fallbackString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
