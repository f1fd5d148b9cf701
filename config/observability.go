package config

import (
	"strings"
	"time"
)

const defaultObservabilityName = "rpa-insights"

// ObservabilityConfig groups configuration that controls metrics and failure fan-out.
type ObservabilityConfig struct {
	Metrics       ObservabilityMetricsConfig
	Notifications ObservabilityNotificationsConfig
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.Metrics.Sanitize()
	c.Notifications.Sanitize()
}

// ObservabilityMetricsConfig controls Prometheus metrics and their push to a Pushgateway.
type ObservabilityMetricsConfig struct {
	Enabled        bool   `env:"OBSERVABILITY_METRICS_ENABLED"         envDefault:"false"`
	PushgatewayURL string `env:"OBSERVABILITY_METRICS_PUSHGATEWAY_URL"`
	JobName        string `env:"OBSERVABILITY_METRICS_JOB_NAME"        envDefault:"rpa_insights_sync"`
	Instance       string `env:"OBSERVABILITY_METRICS_INSTANCE"`
}

// Sanitize normalises derived fields and enforces safe defaults.
func (c *ObservabilityMetricsConfig) Sanitize() {
	c.PushgatewayURL = strings.TrimSpace(c.PushgatewayURL)
	c.Instance = strings.TrimSpace(c.Instance)
	if c.JobName = strings.TrimSpace(c.JobName); c.JobName == "" {
		c.JobName = "rpa_insights_sync"
	}
	if c.PushgatewayURL == "" {
		c.Enabled = false
	}
}

// IsEnabled returns true when metrics push is active after sanitisation.
func (c *ObservabilityMetricsConfig) IsEnabled() bool {
	return c.Enabled && c.PushgatewayURL != ""
}

// ObservabilityNotificationsConfig controls outbound sync failure notifications.
type ObservabilityNotificationsConfig struct {
	Enabled    bool                    `env:"OBSERVABILITY_NOTIFICATIONS_ENABLED"     envDefault:"false"`
	Timeout    time.Duration           `env:"OBSERVABILITY_NOTIFICATIONS_TIMEOUT"     envDefault:"5s"`
	RetryLimit int                     `env:"OBSERVABILITY_NOTIFICATIONS_RETRY_LIMIT" envDefault:"3"`
	Slack      SlackNotificationConfig `                                                                 envPrefix:"OBSERVABILITY_NOTIFICATIONS_SLACK_"`
	// NotifyPartialFailures also alerts when a run completed with failed folders.
	NotifyPartialFailures bool `env:"OBSERVABILITY_NOTIFICATIONS_PARTIAL_FAILURES" envDefault:"true"`
}

// Sanitize normalises notification configuration values.
func (c *ObservabilityNotificationsConfig) Sanitize() {
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.RetryLimit < 0 {
		c.RetryLimit = 0
	}

	c.Slack.sanitize()

	if !c.Enabled {
		c.Slack.Enabled = false
		return
	}

	if c.Slack.Enabled && c.Slack.WebhookURL == "" {
		c.Slack.Enabled = false
	}
}

// SlackNotificationConfig controls Slack webhook fan-out.
type SlackNotificationConfig struct {
	Enabled    bool   `env:"ENABLED"     envDefault:"false"`
	WebhookURL string `env:"WEBHOOK_URL"`
	Channel    string `env:"CHANNEL"`
	Username   string `env:"USERNAME"    envDefault:"rpa-insights"`
	// DashboardURL, when set, is linked from each message.
	DashboardURL string `env:"DASHBOARD_URL"`
}

func (c *SlackNotificationConfig) sanitize() {
	c.WebhookURL = strings.TrimSpace(c.WebhookURL)
	c.Channel = strings.TrimSpace(c.Channel)
	c.DashboardURL = strings.TrimSpace(c.DashboardURL)
	if c.Username == "" {
		c.Username = defaultObservabilityName
	}
}
