package metrics

import (
	"time"

	"mercator-hq/rustalize/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics tracks declaration catalog indexing.
//
// Metrics:
//   - rustalize_parser_catalog_records: Declarations currently stored
//   - rustalize_parser_index_runs_total: Index runs by status
//   - rustalize_parser_index_duration_seconds: Index run duration
//   - rustalize_parser_indexed_files_total: Files visited by outcome
type CatalogMetrics struct {
	records      prometheus.Gauge
	runsTotal    *prometheus.CounterVec
	runDuration  prometheus.Histogram
	filesIndexed *prometheus.CounterVec
}

// NewCatalogMetrics creates and registers catalog metrics with the provided registry.
func NewCatalogMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CatalogMetrics {
	cm := &CatalogMetrics{
		records: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "catalog_records",
				Help:      "Number of declarations stored in the catalog",
			},
		),

		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "index_runs_total",
				Help:      "Total number of catalog index runs",
			},
			[]string{"status"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "index_duration_seconds",
				Help:      "Duration of catalog index runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8), // 1ms to ~16s
			},
		),

		filesIndexed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "indexed_files_total",
				Help:      "Total number of files visited by the indexer",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		cm.records,
		cm.runsTotal,
		cm.runDuration,
		cm.filesIndexed,
	)

	return cm
}

// RecordRun records a finished index run.
func (cm *CatalogMetrics) RecordRun(parsed, failed int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	cm.runsTotal.WithLabelValues(status).Inc()
	cm.runDuration.Observe(duration.Seconds())
	cm.filesIndexed.WithLabelValues("parsed").Add(float64(parsed))
	cm.filesIndexed.WithLabelValues("failed").Add(float64(failed))
}

// SetRecords sets the number of stored declarations.
func (cm *CatalogMetrics) SetRecords(n int) {
	cm.records.Set(float64(n))
}
