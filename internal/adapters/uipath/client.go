// Package uipath implements core.UpstreamClient against the orchestrator's OData API.
package uipath

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/SKpacteazy/rpa-insights-backend/internal/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultTokenPath = "/identity_/connect/token"
	defaultUserAgent = "rpa-insights-sync"

	// OrganizationUnitHeader scopes a request to one folder.
	OrganizationUnitHeader = "X-UIPATH-OrganizationUnitId"
)

// Config configures a Client. Zero values fall back to defaults.
type Config struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	TokenPath  string
	// OIDCDiscovery resolves the token URL from {endpoint}/identity_ discovery.
	OIDCDiscovery bool
	UserAgent     string

	// RateLimit caps requests per second; zero disables limiting.
	RateLimit float64
	RateBurst int

	// JobsPageSize is the $top for job extraction.
	JobsPageSize int

	// BreakerFailures consecutive failures open the breaker; zero disables it.
	BreakerFailures uint32
	BreakerTimeout  time.Duration

	Logger *slog.Logger
}

// Client talks to one orchestrator deployment. It is safe for concurrent use
// and meant to be shared across runs; per-run state lives in model.Session.
type Client struct {
	hc            *http.Client
	tokenPath     string
	oidcDiscovery bool
	userAgent     string
	jobsPageSize  int
	limiter       *rate.Limiter
	breaker       *gobreaker.CircuitBreaker[[]byte]
	logger        *slog.Logger
	now           func() time.Time
}

var _ core.UpstreamClient = (*Client)(nil)

// NewClient builds a Client from cfg.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "uipath_client")

	c := &Client{
		hc:            hc,
		tokenPath:     fallback(cfg.TokenPath, defaultTokenPath),
		oidcDiscovery: cfg.OIDCDiscovery,
		userAgent:     fallback(cfg.UserAgent, defaultUserAgent),
		jobsPageSize:  cfg.JobsPageSize,
		logger:        logger,
		now:           time.Now,
	}

	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1))
	}
	if cfg.BreakerFailures > 0 {
		c.breaker = newBreaker(cfg.BreakerFailures, cfg.BreakerTimeout, logger)
	}
	return c
}

func newBreaker(failures uint32, timeout time.Duration, logger *slog.Logger) *gobreaker.CircuitBreaker[[]byte] {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "uipath",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// Client errors (bad folder, revoked scope) say nothing about upstream health.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var se *StatusError
			return errors.As(err, &se) && se.StatusCode < http.StatusInternalServerError &&
				se.StatusCode != http.StatusTooManyRequests
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// BreakerState reports the circuit breaker state, or "disabled".
func (c *Client) BreakerState() string {
	if c.breaker == nil {
		return "disabled"
	}
	return c.breaker.State().String()
}

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("upstream returned %d for %s: %s", e.StatusCode, e.URL, e.Body)
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
