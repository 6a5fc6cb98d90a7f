package health

import (
	"encoding/json"
	"net/http"
)

// Probe paths mounted by Mount.
const (
	LivenessPath  = "/healthz"
	ReadinessPath = "/readyz"
)

// LivenessHandler returns an HTTP handler for the liveness probe.
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeReport(w, r, http.StatusOK, c.Live())
	}
}

// ReadinessHandler returns an HTTP handler for the readiness probe.
// It responds 503 while any component is not ready.
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		report := c.Ready(r.Context())
		code := http.StatusOK
		if report.Status != StatusReady {
			code = http.StatusServiceUnavailable
		}
		writeReport(w, r, code, report)
	}
}

func writeReport(w http.ResponseWriter, r *http.Request, code int, report Report) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if r.Method != http.MethodHead {
		_ = json.NewEncoder(w).Encode(report)
	}
}

// Handler is satisfied by *http.ServeMux and the metrics server.
type Handler interface {
	Handle(pattern string, handler http.Handler)
}

// Mount registers the liveness and readiness probes on mux.
func Mount(mux Handler, checker *Checker) {
	mux.Handle(LivenessPath, checker.LivenessHandler())
	mux.Handle(ReadinessPath, checker.ReadinessHandler())
}
