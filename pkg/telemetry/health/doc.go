// Package health provides liveness and readiness probes for long-running
// rustalize commands such as watch.
//
// Each component registers a ProbeFunc that summarizes its state and names
// whatever is failing. The readiness probe runs them concurrently:
//
//	checker := health.New(2 * time.Second)
//	checker.Register("sources", func(ctx context.Context) (health.Probe, error) {
//		return health.Probe{Summary: "12 file(s) parsed", Failing: []string{"src/bad.rs"}}, nil
//	})
//	health.Mount(srv, checker)
//
// The probes are served next to /metrics:
//
//	GET /healthz  -> {"status":"ok", ...}
//	GET /readyz   -> {"status":"not_ready", "failing":1, "components":{...}}  (503)
package health
