package metrics

import (
	"mercator-hq/rustalize/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// WatchMetrics tracks watch mode.
//
// Metrics:
//   - rustalize_parser_watch_events_total: File system events by operation
//   - rustalize_parser_watch_reparses_total: Re-parses by file
type WatchMetrics struct {
	eventsTotal   *prometheus.CounterVec
	reparsesTotal *prometheus.CounterVec
}

// NewWatchMetrics creates and registers watch metrics with the provided registry.
func NewWatchMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *WatchMetrics {
	wm := &WatchMetrics{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_events_total",
				Help:      "Total number of file system events received",
			},
			[]string{"op"},
		),

		reparsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_reparses_total",
				Help:      "Total number of files re-parsed after a change",
			},
			[]string{"file", "status"},
		),
	}

	registry.MustRegister(
		wm.eventsTotal,
		wm.reparsesTotal,
	)

	return wm
}

// RecordEvent records a file system event.
func (wm *WatchMetrics) RecordEvent(op string) {
	wm.eventsTotal.WithLabelValues(op).Inc()
}

// RecordReparse records a re-parse of file.
func (wm *WatchMetrics) RecordReparse(file string, ok bool) {
	status := "success"
	if !ok {
		status = "error"
	}
	wm.reparsesTotal.WithLabelValues(file, status).Inc()
}
