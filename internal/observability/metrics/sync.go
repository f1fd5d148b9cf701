// Package metrics exposes Prometheus instruments for sync runs and pushes
// them to a Pushgateway for batch invocations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/SKpacteazy/rpa-insights-backend/internal/domain/model"
	obserrors "github.com/SKpacteazy/rpa-insights-backend/internal/observability/errors"
)

const namespace = "rpa_sync"

// StateFailed labels runs that returned an error.
const StateFailed = "failed"

// SyncMetrics holds the sync instruments on a private registry.
type SyncMetrics struct {
	registry *prometheus.Registry

	runs              *prometheus.CounterVec
	recordsFetched    *prometheus.CounterVec
	recordsPersisted  *prometheus.CounterVec
	partitionFailures *prometheus.CounterVec
	leaseSkips        *prometheus.CounterVec
	runDuration       *prometheus.HistogramVec
	lastSuccess       *prometheus.GaugeVec
}

// NewSyncMetrics registers the sync instruments on a fresh registry.
func NewSyncMetrics() *SyncMetrics {
	m := &SyncMetrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Sync runs by mode and terminal state.",
		}, []string{"mode", "state"}),
		recordsFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_fetched_total",
			Help:      "Records transformed from upstream responses.",
		}, []string{"mode"}),
		recordsPersisted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_persisted_total",
			Help:      "Rows inserted or updated by upserts.",
		}, []string{"mode"}),
		partitionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partition_failures_total",
			Help:      "Folders that failed to fetch or persist.",
		}, []string{"mode", "stage", "error_class"}),
		leaseSkips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lease_skips_total",
			Help:      "Scheduled runs skipped because another instance held the lease.",
		}, []string{"mode"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of sync runs.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800, 3600},
		}, []string{"mode"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that completed.",
		}, []string{"mode"}),
	}

	m.registry.MustRegister(
		m.runs,
		m.recordsFetched,
		m.recordsPersisted,
		m.partitionFailures,
		m.leaseSkips,
		m.runDuration,
		m.lastSuccess,
	)
	return m
}

// Registry returns the registry holding the sync instruments.
func (m *SyncMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRun records the outcome of a run. result may be nil when the run
// failed before producing one.
func (m *SyncMetrics) ObserveRun(mode model.SyncMode, result *model.SyncResult, err error) {
	if m == nil {
		return
	}
	label := string(mode)

	state := StateFailed
	if err == nil && result != nil {
		state = string(result.State)
	}
	m.runs.WithLabelValues(label, state).Inc()

	if result == nil {
		return
	}

	m.recordsFetched.WithLabelValues(label).Add(float64(result.RecordsFetched))
	m.recordsPersisted.WithLabelValues(label).Add(float64(result.RecordsPersisted))
	for _, p := range result.FailedPartitions() {
		m.partitionFailures.WithLabelValues(label, string(p.FailedStage), obserrors.Classify(p.Err)).Inc()
	}
	if d := result.Duration(); d > 0 {
		m.runDuration.WithLabelValues(label).Observe(d.Seconds())
	}
	if err == nil && result.State == model.RunStateCompleted {
		m.lastSuccess.WithLabelValues(label).Set(float64(result.FinishedAt.Unix()))
	}
}

// ObserveLeaseSkip counts a run skipped because the lease was held elsewhere.
func (m *SyncMetrics) ObserveLeaseSkip(mode model.SyncMode) {
	if m == nil {
		return
	}
	m.leaseSkips.WithLabelValues(string(mode)).Inc()
}
