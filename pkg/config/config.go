package config

import "time"

// Config is the root configuration structure for rustalize.
// It contains all configuration sections for the declaration parser, tree
// rendering, the declaration catalog, file watching, and telemetry.
type Config struct {
	// Parser contains declaration parser options such as the member split
	// mode and nesting limits.
	Parser ParserConfig `yaml:"parser"`

	// Render contains tree rendering options.
	Render RenderConfig `yaml:"render"`

	// Catalog contains configuration for the declaration catalog including
	// the SQLite driver, database path, and re-indexing schedule.
	Catalog CatalogConfig `yaml:"catalog"`

	// Watch contains configuration for watch mode.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ParserConfig contains declaration parser options.
type ParserConfig struct {
	// SplitMode controls how member lists are split on separators.
	// Options: "depth" (ignore separators nested in brackets), "naive"
	// (split on every separator)
	// Default: "depth"
	SplitMode string `yaml:"split_mode"`

	// MaxDepth is the maximum nesting depth of type expressions and variant
	// payloads.
	// Default: 64
	MaxDepth int `yaml:"max_depth"`

	// MaxInputBytes is the maximum size of one parsed input or file.
	// Default: 1048576 (1MB)
	MaxInputBytes int `yaml:"max_input_bytes"`

	// Strict runs structural validation after every parse.
	// Default: false
	Strict bool `yaml:"strict"`
}

// RenderConfig contains tree rendering options.
type RenderConfig struct {
	// Color controls ANSI colors in tree output.
	// Options: "auto" (color when stdout is a terminal), "always", "never"
	// Default: "auto"
	Color string `yaml:"color"`
}

// CatalogConfig contains configuration for the declaration catalog.
type CatalogConfig struct {
	// Enabled controls whether parsed declarations are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Driver selects the SQLite driver.
	// Options: "sqlite" (modernc.org/sqlite, pure Go), "sqlite3"
	// (github.com/mattn/go-sqlite3, cgo), "memory"
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Path is the database file path.
	// Default: "data/catalog.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long SQLite waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// Schedule is the cron expression for periodic re-indexing.
	// Default: "0 * * * *" (hourly)
	Schedule string `yaml:"schedule"`

	// Git indexes a remote repository instead of a local directory.
	Git GitSourceConfig `yaml:"git"`
}

// GitSourceConfig configures a Git repository as the catalog source.
type GitSourceConfig struct {
	// Repository is the clone URL or local path. Empty disables the source.
	Repository string `yaml:"repository"`

	// Branch to check out.
	// Default: "main"
	Branch string `yaml:"branch"`

	// Path is the directory inside the repository to index.
	// Default: "" (repository root)
	Path string `yaml:"path"`

	// LocalPath is where the repository is cloned.
	// Default: "data/source"
	LocalPath string `yaml:"local_path"`

	// Depth limits clone history; -1 clones the full history.
	// Default: 1
	Depth int `yaml:"depth"`

	// Timeout bounds a single clone or pull.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`

	// Auth configures repository credentials.
	Auth GitAuthConfig `yaml:"auth"`
}

// GitAuthConfig contains Git credentials.
type GitAuthConfig struct {
	// Type is "none", "token", or "ssh".
	// Default: "none"
	Type string `yaml:"type"`

	// Token is a personal access token for HTTPS remotes.
	Token string `yaml:"token"`

	// SSHKeyPath is the private key file for SSH remotes.
	SSHKeyPath string `yaml:"ssh_key_path"`

	// SSHKeyPassphrase unlocks an encrypted SSH key.
	SSHKeyPassphrase string `yaml:"ssh_key_passphrase"`
}

// WatchConfig contains configuration for watch mode.
type WatchConfig struct {
	// Debounce is how long to wait after the last file event before
	// re-parsing.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Extensions lists the file extensions that are parsed.
	// Default: [".rs"]
	Extensions []string `yaml:"extensions"`

	// IncludeHidden watches files and directories whose names start with '.'.
	// Default: false
	IncludeHidden bool `yaml:"include_hidden"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether parse metrics are exported over HTTP.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address of the metrics HTTP server.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "rustalize"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "parser"
	Subsystem string `yaml:"subsystem"`

	// ParseDurationBuckets defines histogram buckets for parse duration (seconds).
	// Default: [0.00001, 0.0001, 0.001, 0.01, 0.1, 1]
	ParseDurationBuckets []float64 `yaml:"parse_duration_buckets"`
}
