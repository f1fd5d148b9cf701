package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
)

// SyncMode is re-exported so callers configuring the scheduler need not import model.
type SyncMode = model.SyncMode

// ParseModes parses a comma-delimited list of sync modes, preserving first-seen order.
// It validates that all names are valid and returns an error if any are invalid.
func ParseModes(modesStr string) ([]SyncMode, error) {
	if strings.TrimSpace(modesStr) == "" {
		return nil, errors.New("at least one sync mode must be specified")
	}

	seen := make(map[SyncMode]bool)
	var modes []SyncMode
	for _, part := range strings.Split(modesStr, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}

		mode := SyncMode(name)
		if !mode.Valid() {
			return nil, fmt.Errorf(
				"invalid sync mode: %q (valid options: full, update, jobs)",
				name,
			)
		}
		if seen[mode] {
			continue
		}
		seen[mode] = true
		modes = append(modes, mode)
	}

	if len(modes) == 0 {
		return nil, errors.New("at least one valid sync mode must be specified")
	}

	return modes, nil
}

// ScheduleConfig contains the in-process scheduler configuration used by `serve`.
type ScheduleConfig struct {
	// Modes lists the sync modes to run on a timer.
	Modes string `env:"MODES" envDefault:"full,update,jobs"`

	FullInterval   time.Duration `env:"FULL_INTERVAL"   envDefault:"24h"`
	UpdateInterval time.Duration `env:"UPDATE_INTERVAL" envDefault:"24h"`
	JobsInterval   time.Duration `env:"JOBS_INTERVAL"   envDefault:"24h"`

	// RunOnStart triggers every mode once immediately instead of waiting a full interval.
	RunOnStart bool `env:"RUN_ON_START" envDefault:"true"`

	// MaxRetries is the number of re-invocations after a failed run.
	MaxRetries int           `env:"MAX_RETRIES" envDefault:"1"`
	RetryDelay time.Duration `env:"RETRY_DELAY" envDefault:"5m"`

	// LeaseTTL bounds how long a run lease is held when Redis is enabled.
	LeaseTTL time.Duration `env:"LEASE_TTL" envDefault:"2h"`
}

// Sanitize applies guardrails to scheduler configuration values.
func (s *ScheduleConfig) Sanitize() {
	if s.FullInterval < time.Minute {
		s.FullInterval = time.Minute
	}
	if s.UpdateInterval < time.Minute {
		s.UpdateInterval = time.Minute
	}
	if s.JobsInterval < time.Minute {
		s.JobsInterval = time.Minute
	}
	if s.MaxRetries < 0 {
		s.MaxRetries = 0
	}
	if s.RetryDelay < 0 {
		s.RetryDelay = 0
	}
	if s.LeaseTTL < time.Minute {
		s.LeaseTTL = time.Minute
	}
}

// IntervalFor returns the tick interval configured for the given mode.
func (s *ScheduleConfig) IntervalFor(mode SyncMode) time.Duration {
	switch mode {
	case model.SyncModeFull:
		return s.FullInterval
	case model.SyncModeUpdate:
		return s.UpdateInterval
	case model.SyncModeJobs:
		return s.JobsInterval
	default:
		return s.FullInterval
	}
}
