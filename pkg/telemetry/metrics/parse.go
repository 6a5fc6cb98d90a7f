package metrics

import (
	"time"

	"mercator-hq/rustalize/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ParseMetrics tracks declaration parsing.
//
// Metrics:
//   - rustalize_parser_parses_total: Top-level parses by kind and status
//   - rustalize_parser_parse_duration_seconds: Parse duration histogram
//   - rustalize_parser_errors_total: Parse failures by error type
type ParseMetrics struct {
	parsesTotal   *prometheus.CounterVec
	parseDuration *prometheus.HistogramVec
	errorsTotal   *prometheus.CounterVec
}

// NewParseMetrics creates and registers parse metrics with the provided registry.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		parsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parses_total",
				Help:      "Total number of declaration parses",
			},
			[]string{"kind", "status"},
		),

		parseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_duration_seconds",
				Help:      "Duration of declaration parses in seconds",
				Buckets:   cfg.ParseDurationBuckets,
			},
			[]string{"kind"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "errors_total",
				Help:      "Total number of parse failures by error type",
			},
			[]string{"error_type"},
		),
	}

	registry.MustRegister(
		pm.parsesTotal,
		pm.parseDuration,
		pm.errorsTotal,
	)

	return pm
}

// RecordParse records one top-level parse. An empty kind is reported as
// "unknown"; an empty errorType means the parse succeeded.
func (pm *ParseMetrics) RecordParse(kind, errorType string, duration time.Duration) {
	if kind == "" {
		kind = "unknown"
	}

	status := "success"
	if errorType != "" {
		status = "error"
		pm.errorsTotal.WithLabelValues(errorType).Inc()
	}

	pm.parsesTotal.WithLabelValues(kind, status).Inc()
	pm.parseDuration.WithLabelValues(kind).Observe(duration.Seconds())
}
