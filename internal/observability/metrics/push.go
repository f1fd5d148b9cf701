package metrics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PushConfig locates the Pushgateway.
type PushConfig struct {
	URL      string
	JobName  string
	Instance string
}

// Pusher sends a registry to a Pushgateway.
type Pusher struct {
	pusher *push.Pusher
}

// NewPusher builds a Pusher for the given gatherer.
func NewPusher(cfg PushConfig, gatherer prometheus.Gatherer) (*Pusher, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, errors.New("pushgateway url is required")
	}
	if gatherer == nil {
		return nil, errors.New("gatherer is required")
	}
	job := strings.TrimSpace(cfg.JobName)
	if job == "" {
		job = "rpa_insights_sync"
	}

	p := push.New(url, job).Gatherer(gatherer)
	if inst := strings.TrimSpace(cfg.Instance); inst != "" {
		p = p.Grouping("instance", inst)
	}
	return &Pusher{pusher: p}, nil
}

// Push replaces the metrics stored under this job and grouping.
func (p *Pusher) Push(ctx context.Context) error {
	if p == nil {
		return nil
	}
	if err := p.pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
