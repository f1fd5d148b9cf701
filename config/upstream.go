package config

import (
	"strings"
	"time"
)

// UpstreamConfig controls how the orchestrator HTTP client behaves.
// Connection coordinates and credentials come from the configuration table.
type UpstreamConfig struct {
	// HTTPTimeout bounds every upstream request, including the token exchange.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// TokenPath is appended to the configured endpoint to form the token URL.
	TokenPath string `env:"TOKEN_PATH" envDefault:"/identity_/connect/token"`

	// OIDCDiscovery resolves the token endpoint from {endpoint}/identity_ discovery
	// instead of TokenPath.
	OIDCDiscovery bool `env:"OIDC_DISCOVERY" envDefault:"false"`

	// RateLimit caps upstream requests per second. Zero disables limiting.
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"0"`
	RateBurst int     `env:"RATE_BURST" envDefault:"1"`

	// Breaker opens after BreakerFailures consecutive failed fetches and
	// half-opens again after BreakerTimeout. Zero failures disables it.
	BreakerFailures uint32        `env:"BREAKER_FAILURES" envDefault:"5"`
	BreakerTimeout  time.Duration `env:"BREAKER_TIMEOUT"  envDefault:"1m"`

	UserAgent string `env:"USER_AGENT" envDefault:"rpa-insights-sync"`
}

// Sanitize applies guardrails to upstream client configuration values.
func (c *UpstreamConfig) Sanitize() {
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 30 * time.Second
	}
	c.TokenPath = strings.TrimSpace(c.TokenPath)
	if c.TokenPath == "" {
		c.TokenPath = "/identity_/connect/token"
	}
	if !strings.HasPrefix(c.TokenPath, "/") {
		c.TokenPath = "/" + c.TokenPath
	}
	if c.RateLimit < 0 {
		c.RateLimit = 0
	}
	if c.RateBurst < 1 {
		c.RateBurst = 1
	}
	if c.BreakerTimeout <= 0 {
		c.BreakerTimeout = time.Minute
	}
}
