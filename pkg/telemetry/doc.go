// Package telemetry groups the observability packages used by rustalize.
//
//   - logging: structured logging with parse IDs and source files
//   - metrics: Prometheus metrics for parsing, indexing, and watch mode
//   - health: liveness and readiness probes served next to /metrics
//
// Metrics and probes are only served by long-running commands (watch and
// index --schedule) when telemetry.metrics.enabled is set.
package telemetry
