package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "parser.max_depth").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateParser(&cfg.Parser)...)
	errs = append(errs, validateRender(&cfg.Render)...)
	errs = append(errs, validateCatalog(&cfg.Catalog)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateParser validates parser configuration.
func validateParser(cfg *ParserConfig) []FieldError {
	var errs []FieldError

	if cfg.SplitMode != "depth" && cfg.SplitMode != "naive" {
		errs = append(errs, FieldError{
			Field:   "parser.split_mode",
			Message: fmt.Sprintf("invalid split mode %q: must be 'depth' or 'naive'", cfg.SplitMode),
		})
	}
	if cfg.MaxDepth < 1 || cfg.MaxDepth > 1024 {
		errs = append(errs, FieldError{
			Field:   "parser.max_depth",
			Message: "max depth must be between 1 and 1024",
		})
	}
	if cfg.MaxInputBytes < 1 {
		errs = append(errs, FieldError{
			Field:   "parser.max_input_bytes",
			Message: "max input bytes must be positive",
		})
	}

	return errs
}

// validateRender validates render configuration.
func validateRender(cfg *RenderConfig) []FieldError {
	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[cfg.Color] {
		return []FieldError{{
			Field:   "render.color",
			Message: fmt.Sprintf("invalid color mode %q: must be 'auto', 'always', or 'never'", cfg.Color),
		}}
	}
	return nil
}

// validateCatalog validates catalog configuration. Storage settings are
// checked even when the catalog is disabled, since CLI flags can enable it.
func validateCatalog(cfg *CatalogConfig) []FieldError {
	var errs []FieldError

	validDrivers := map[string]bool{"sqlite": true, "sqlite3": true, "memory": true}
	if !validDrivers[cfg.Driver] {
		errs = append(errs, FieldError{
			Field:   "catalog.driver",
			Message: fmt.Sprintf("invalid driver %q: must be 'sqlite', 'sqlite3', or 'memory'", cfg.Driver),
		})
	}
	if cfg.Driver != "memory" && cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "catalog.path",
			Message: "database path is required for SQLite drivers",
		})
	}
	if cfg.BusyTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "catalog.busy_timeout",
			Message: "busy timeout must be non-negative",
		})
	}
	if cfg.MaxOpenConns < 1 {
		errs = append(errs, FieldError{
			Field:   "catalog.max_open_conns",
			Message: "max open connections must be positive",
		})
	}
	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		errs = append(errs, FieldError{
			Field:   "catalog.schedule",
			Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Schedule, err),
		})
	}
	errs = append(errs, validateGitSource(&cfg.Git)...)

	return errs
}

// validateGitSource validates the Git source. Only auth and timeouts are
// checked when no repository is configured.
func validateGitSource(cfg *GitSourceConfig) []FieldError {
	var errs []FieldError

	if cfg.Timeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "catalog.git.timeout",
			Message: "timeout must be positive",
		})
	}
	if cfg.Depth < -1 {
		errs = append(errs, FieldError{
			Field:   "catalog.git.depth",
			Message: "depth must be -1 (full history) or positive",
		})
	}
	if cfg.Repository != "" && cfg.Branch == "" {
		errs = append(errs, FieldError{
			Field:   "catalog.git.branch",
			Message: "branch is required when a repository is set",
		})
	}

	switch cfg.Auth.Type {
	case "none":
	case "token":
		if cfg.Auth.Token == "" {
			errs = append(errs, FieldError{
				Field:   "catalog.git.auth.token",
				Message: "token auth requires a token",
			})
		}
	case "ssh":
		if cfg.Auth.SSHKeyPath == "" {
			errs = append(errs, FieldError{
				Field:   "catalog.git.auth.ssh_key_path",
				Message: "ssh auth requires ssh_key_path",
			})
		}
	default:
		errs = append(errs, FieldError{
			Field:   "catalog.git.auth.type",
			Message: fmt.Sprintf("invalid auth type %q: must be 'none', 'token', or 'ssh'", cfg.Auth.Type),
		})
	}

	return errs
}

// validateWatch validates watch configuration.
func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError

	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("watch.extensions[%d]", i),
				Message: fmt.Sprintf("invalid extension %q: must start with '.'", ext),
			})
		}
	}

	return errs
}

// validateTelemetry validates logging and metrics configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json', 'text', or 'console'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.ListenAddress == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.listen_address",
				Message: "listen address is required when metrics are enabled",
			})
		}
		if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path must start with /",
			})
		}
	}

	for i := 1; i < len(cfg.Metrics.ParseDurationBuckets); i++ {
		if cfg.Metrics.ParseDurationBuckets[i] <= cfg.Metrics.ParseDurationBuckets[i-1] {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.parse_duration_buckets",
				Message: "buckets must be in increasing order",
			})
			break
		}
	}

	return errs
}
