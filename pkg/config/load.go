package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "RUSTALIZE_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention RUSTALIZE_SECTION_FIELD (e.g., RUSTALIZE_PARSER_SPLIT_MODE).
// Environment variables always take precedence over file-based configuration.
//
// An empty path means DefaultConfigPath; if that file does not exist the
// defaults are used. A missing file at an explicit path is an error.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		loaded, err := LoadConfig(DefaultConfigPath)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, fs.ErrNotExist):
			cfg = NewDefaultConfig()
		default:
			return nil, err
		}
	} else {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Values that cannot be parsed are ignored.
func applyEnvOverrides(cfg *Config) {
	// Parser overrides
	envString("PARSER_SPLIT_MODE", &cfg.Parser.SplitMode)
	envInt("PARSER_MAX_DEPTH", &cfg.Parser.MaxDepth)
	envInt("PARSER_MAX_INPUT_BYTES", &cfg.Parser.MaxInputBytes)
	envBool("PARSER_STRICT", &cfg.Parser.Strict)

	// Render overrides
	envString("RENDER_COLOR", &cfg.Render.Color)

	// Catalog overrides
	envBool("CATALOG_ENABLED", &cfg.Catalog.Enabled)
	envString("CATALOG_DRIVER", &cfg.Catalog.Driver)
	envString("CATALOG_PATH", &cfg.Catalog.Path)
	envDuration("CATALOG_BUSY_TIMEOUT", &cfg.Catalog.BusyTimeout)
	envInt("CATALOG_MAX_OPEN_CONNS", &cfg.Catalog.MaxOpenConns)
	envString("CATALOG_SCHEDULE", &cfg.Catalog.Schedule)
	envString("CATALOG_GIT_REPOSITORY", &cfg.Catalog.Git.Repository)
	envString("CATALOG_GIT_BRANCH", &cfg.Catalog.Git.Branch)
	envString("CATALOG_GIT_PATH", &cfg.Catalog.Git.Path)
	envString("CATALOG_GIT_AUTH_TOKEN", &cfg.Catalog.Git.Auth.Token)

	// Watch overrides
	envDuration("WATCH_DEBOUNCE", &cfg.Watch.Debounce)
	if val := os.Getenv(EnvPrefix + "WATCH_EXTENSIONS"); val != "" {
		var exts []string
		for _, ext := range strings.Split(val, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				exts = append(exts, ext)
			}
		}
		cfg.Watch.Extensions = exts
	}
	envBool("WATCH_INCLUDE_HIDDEN", &cfg.Watch.IncludeHidden)

	// Telemetry overrides
	envString("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	envString("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	envBool("TELEMETRY_LOGGING_ADD_SOURCE", &cfg.Telemetry.Logging.AddSource)
	envBool("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	envString("TELEMETRY_METRICS_LISTEN_ADDRESS", &cfg.Telemetry.Metrics.ListenAddress)
	envString("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	envString("TELEMETRY_METRICS_NAMESPACE", &cfg.Telemetry.Metrics.Namespace)
	envString("TELEMETRY_METRICS_SUBSYSTEM", &cfg.Telemetry.Metrics.Subsystem)
}

func envString(key string, dst *string) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		*dst = val
	}
}

func envInt(key string, dst *int) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func envBool(key string, dst *bool) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}
