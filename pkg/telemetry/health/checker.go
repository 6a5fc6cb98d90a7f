package health

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Overall probe states.
const (
	StatusOK       = "ok"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
)

// Probe is what a component reports about itself. Summary describes its
// current state ("42 record(s)"), Failing names the items (source files,
// stores) that keep it from being ready.
type Probe struct {
	Summary string
	Failing []string
}

// ProbeFunc inspects one component. A returned error or any Failing item
// makes the component unready.
type ProbeFunc func(ctx context.Context) (Probe, error)

// ComponentStatus is the readiness of a single component.
type ComponentStatus struct {
	Ready      bool     `json:"ready"`
	Summary    string   `json:"summary,omitempty"`
	Failing    []string `json:"failing,omitempty"`
	Error      string   `json:"error,omitempty"`
	DurationMS int64    `json:"duration_ms"`
}

// Report is the body of a probe response.
type Report struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentStatus `json:"components,omitempty"`

	// Failing counts failing items across all components.
	Failing   int       `json:"failing,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Checker runs the registered probes of a long-running command.
type Checker struct {
	mu      sync.RWMutex
	probes  map[string]ProbeFunc
	timeout time.Duration
}

// New creates a checker. Each probe gets timeout (default 5s) to answer.
func New(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Checker{
		probes:  make(map[string]ProbeFunc),
		timeout: timeout,
	}
}

// Register adds the probe for a named component, replacing any earlier one.
func (c *Checker) Register(name string, probe ProbeFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.probes[name] = probe
}

// Live reports that the process is up. No probes are run.
func (c *Checker) Live() Report {
	return Report{Status: StatusOK, Timestamp: time.Now()}
}

// Ready runs every probe concurrently. The report is ready only when every
// component is.
func (c *Checker) Ready(ctx context.Context) Report {
	c.mu.RLock()
	probes := make(map[string]ProbeFunc, len(c.probes))
	for name, probe := range c.probes {
		probes[name] = probe
	}
	c.mu.RUnlock()

	report := Report{
		Status:     StatusReady,
		Components: make(map[string]ComponentStatus, len(probes)),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for name, probe := range probes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status := c.run(ctx, probe)

			mu.Lock()
			defer mu.Unlock()
			report.Components[name] = status
			report.Failing += len(status.Failing)
			if !status.Ready {
				report.Status = StatusNotReady
			}
		}()
	}
	wg.Wait()

	report.Timestamp = time.Now()
	return report
}

// run executes one probe under the checker timeout.
func (c *Checker) run(ctx context.Context, probe ProbeFunc) ComponentStatus {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type answer struct {
		probe Probe
		err   error
	}
	start := time.Now()
	done := make(chan answer, 1)
	go func() {
		p, err := probe(ctx)
		done <- answer{p, err}
	}()

	var status ComponentStatus
	select {
	case a := <-done:
		failing := append([]string(nil), a.probe.Failing...)
		sort.Strings(failing)
		status = ComponentStatus{
			Ready:   a.err == nil && len(failing) == 0,
			Summary: a.probe.Summary,
			Failing: failing,
		}
		if a.err != nil {
			status.Error = a.err.Error()
		}
	case <-ctx.Done():
		status = ComponentStatus{Error: "probe timed out after " + c.timeout.String()}
	}
	status.DurationMS = time.Since(start).Milliseconds()
	return status
}
