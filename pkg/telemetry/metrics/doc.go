// Package metrics provides Prometheus metrics for rustalize.
//
// # Metrics Categories
//
//   - Parse Metrics: parse count by kind and status, duration, error types
//   - Catalog Metrics: stored declarations, index runs, indexed files
//   - Watch Metrics: file system events and re-parses per file
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	// Record every parse
//	p := parser.NewParser().WithObserver(collector)
//
//	// Expose /metrics
//	srv, err := collector.Listen()
//	go srv.Serve(ctx)
//
// Per-file labels are capped by a CardinalityLimiter; files beyond the cap
// are aggregated under "other".
package metrics
