package config

import "time"

// DefaultConfigPath is the configuration file used when none is given.
const DefaultConfigPath = "rustalize.yaml"

// Default values for configuration fields.
const (
	// Parser defaults
	DefaultSplitMode     = "depth"
	DefaultMaxDepth      = 64
	DefaultMaxInputBytes = 1048576 // 1MB

	// Render defaults
	DefaultRenderColor = "auto"

	// Catalog defaults
	DefaultCatalogDriver       = "sqlite"
	DefaultCatalogPath         = "data/catalog.db"
	DefaultCatalogBusyTimeout  = 5 * time.Second
	DefaultCatalogMaxOpenConns = 10
	DefaultCatalogSchedule     = "0 * * * *"

	// Git source defaults
	DefaultGitBranch    = "main"
	DefaultGitLocalPath = "data/source"
	DefaultGitDepth     = 1
	DefaultGitTimeout   = 60 * time.Second
	DefaultGitAuthType  = "none"

	// Watch defaults
	DefaultWatchDebounce = 100 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "text"
	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsPath          = "/metrics"
	DefaultMetricsNamespace     = "rustalize"
	DefaultMetricsSubsystem     = "parser"
)

// DefaultWatchExtensions are the file extensions parsed in watch mode.
var DefaultWatchExtensions = []string{".rs"}

// DefaultParseDurationBuckets are histogram buckets for parse duration (seconds).
var DefaultParseDurationBuckets = []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1}

// NewDefaultConfig returns a configuration with every default applied.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in zero-valued fields with their defaults.
// Fields that are already set are left unchanged.
func ApplyDefaults(cfg *Config) {
	// Parser defaults
	if cfg.Parser.SplitMode == "" {
		cfg.Parser.SplitMode = DefaultSplitMode
	}
	if cfg.Parser.MaxDepth == 0 {
		cfg.Parser.MaxDepth = DefaultMaxDepth
	}
	if cfg.Parser.MaxInputBytes == 0 {
		cfg.Parser.MaxInputBytes = DefaultMaxInputBytes
	}

	// Render defaults
	if cfg.Render.Color == "" {
		cfg.Render.Color = DefaultRenderColor
	}

	// Catalog defaults
	if cfg.Catalog.Driver == "" {
		cfg.Catalog.Driver = DefaultCatalogDriver
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = DefaultCatalogPath
	}
	if cfg.Catalog.BusyTimeout == 0 {
		cfg.Catalog.BusyTimeout = DefaultCatalogBusyTimeout
	}
	if cfg.Catalog.MaxOpenConns == 0 {
		cfg.Catalog.MaxOpenConns = DefaultCatalogMaxOpenConns
	}
	if cfg.Catalog.Schedule == "" {
		cfg.Catalog.Schedule = DefaultCatalogSchedule
	}
	if cfg.Catalog.Git.Branch == "" {
		cfg.Catalog.Git.Branch = DefaultGitBranch
	}
	if cfg.Catalog.Git.LocalPath == "" {
		cfg.Catalog.Git.LocalPath = DefaultGitLocalPath
	}
	if cfg.Catalog.Git.Depth == 0 {
		cfg.Catalog.Git.Depth = DefaultGitDepth
	}
	if cfg.Catalog.Git.Timeout == 0 {
		cfg.Catalog.Git.Timeout = DefaultGitTimeout
	}
	if cfg.Catalog.Git.Auth.Type == "" {
		cfg.Catalog.Git.Auth.Type = DefaultGitAuthType
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.ParseDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.ParseDurationBuckets = append([]float64(nil), DefaultParseDurationBuckets...)
	}
}
