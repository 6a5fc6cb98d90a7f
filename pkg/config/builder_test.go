package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with every default applied.
// The resulting configuration is valid and can be used immediately.
func NewTestConfig() *ConfigBuilder {
	var cfg Config
	ApplyDefaults(&cfg)
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithSplitMode sets the parser split mode.
func (b *ConfigBuilder) WithSplitMode(mode string) *ConfigBuilder {
	b.cfg.Parser.SplitMode = mode
	return b
}

// WithMaxDepth sets the parser nesting limit.
func (b *ConfigBuilder) WithMaxDepth(depth int) *ConfigBuilder {
	b.cfg.Parser.MaxDepth = depth
	return b
}

// WithCatalog enables the catalog with the given driver and path.
func (b *ConfigBuilder) WithCatalog(driver, path string) *ConfigBuilder {
	b.cfg.Catalog.Enabled = true
	b.cfg.Catalog.Driver = driver
	b.cfg.Catalog.Path = path
	return b
}

// WithSchedule sets the catalog re-indexing schedule.
func (b *ConfigBuilder) WithSchedule(expr string) *ConfigBuilder {
	b.cfg.Catalog.Schedule = expr
	return b
}

// WithGitSource sets the Git repository and auth type of the catalog source.
func (b *ConfigBuilder) WithGitSource(repo, authType string) *ConfigBuilder {
	b.cfg.Catalog.Git.Repository = repo
	b.cfg.Catalog.Git.Auth.Type = authType
	return b
}

// WithDebounce sets the watch debounce interval.
func (b *ConfigBuilder) WithDebounce(d time.Duration) *ConfigBuilder {
	b.cfg.Watch.Debounce = d
	return b
}

// WithLogging sets the logging level and format.
func (b *ConfigBuilder) WithLogging(level, format string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Level = level
	b.cfg.Telemetry.Logging.Format = format
	return b
}

// WithMetrics enables metrics on the given address.
func (b *ConfigBuilder) WithMetrics(addr string) *ConfigBuilder {
	b.cfg.Telemetry.Metrics.Enabled = true
	b.cfg.Telemetry.Metrics.ListenAddress = addr
	return b
}
