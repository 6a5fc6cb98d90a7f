package metrics

import (
	stderrors "errors"
	"sync"
	"time"

	"mercator-hq/rustalize/pkg/config"
	declErrors "mercator-hq/rustalize/pkg/decl/errors"

	"github.com/prometheus/client_golang/prometheus"
)

// otherLabel replaces label values once the cardinality limit is reached.
const otherLabel = "other"

// Collector owns the Prometheus registry and every rustalize metric.
// It implements parser.Observer so that it can be attached to a parser
// with WithObserver.
//
// All Record methods are no-ops when metrics are disabled in the
// configuration.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	parseMetrics   *ParseMetrics
	catalogMetrics *CatalogMetrics
	watchMetrics   *WatchMetrics

	// Cardinality tracking for per-file labels
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	p := parser.NewParser().WithObserver(collector)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.ParseDurationBuckets) == 0 {
		cfg.ParseDurationBuckets = append([]float64(nil), config.DefaultParseDurationBuckets...)
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		parseMetrics:       NewParseMetrics(cfg, registry),
		catalogMetrics:     NewCatalogMetrics(cfg, registry),
		watchMetrics:       NewWatchMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(1000),
	}
}

// ObserveParse records one top-level parse.
func (c *Collector) ObserveParse(kind string, err error, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.parseMetrics.RecordParse(kind, errorLabel(err), duration)
}

// RecordIndexRun records a finished catalog index run and the resulting
// number of stored declarations.
func (c *Collector) RecordIndexRun(parsed, failed, records int, duration time.Duration, err error) {
	if !c.config.Enabled {
		return
	}
	c.catalogMetrics.RecordRun(parsed, failed, duration, err)
	if err == nil {
		c.catalogMetrics.SetRecords(records)
	}
}

// RecordWatchEvent records a file system event seen by watch mode.
func (c *Collector) RecordWatchEvent(op string) {
	if !c.config.Enabled {
		return
	}
	c.watchMetrics.RecordEvent(op)
}

// RecordReparse records a watch-mode re-parse of file.
func (c *Collector) RecordReparse(file string, ok bool) {
	if !c.config.Enabled {
		return
	}
	if !c.cardinalityLimiter.Allow(file) {
		file = otherLabel
	}
	c.watchMetrics.RecordReparse(file, ok)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// errorLabel maps a parse error to its error_type label value.
func errorLabel(err error) string {
	if err == nil {
		return ""
	}
	if t := declErrors.TypeOf(err); t != "" {
		return string(t)
	}
	var list *declErrors.ErrorList
	if stderrors.As(err, &list) {
		return string(declErrors.ErrorTypeValidation)
	}
	return "unknown"
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether labelSet may be used. It returns true if the label
// set was seen before or the limit has not been reached yet.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
