// Package config provides configuration loading and management for rustalize.
//
// Configuration is read from a YAML file, filled in with defaults, overridden
// by environment variables, and validated before use.
//
// # Loading Configuration
//
// Load configuration from a file:
//
//	cfg, err := config.LoadConfig("rustalize.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Load configuration with environment variable overrides. An empty path
// falls back to rustalize.yaml in the working directory, and to the defaults
// when that file does not exist:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention RUSTALIZE_SECTION_FIELD:
//
//	RUSTALIZE_PARSER_SPLIT_MODE=naive
//	RUSTALIZE_PARSER_MAX_DEPTH=16
//	RUSTALIZE_RENDER_COLOR=never
//	RUSTALIZE_CATALOG_DRIVER=sqlite3
//	RUSTALIZE_WATCH_EXTENSIONS=.rs,.rsi
//	RUSTALIZE_TELEMETRY_LOGGING_LEVEL=debug
//
// Values that cannot be parsed are ignored.
//
// # Global Configuration
//
// For applications that need global configuration access:
//
//	if err := config.Initialize(""); err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg := config.GetConfig()
//	fmt.Println(cfg.Parser.SplitMode)
//
// Commands and tests should prefer passing a *Config explicitly.
//
// # Validation
//
// Validation collects every problem before returning:
//
//	configuration validation failed with 2 errors:
//	  - parser.split_mode: invalid split mode "loose": must be 'depth' or 'naive'
//	  - catalog.schedule: invalid cron expression "hourly": ...
//
// # Example Configuration
//
//	parser:
//	  split_mode: depth
//	  max_depth: 64
//	  strict: true
//
//	render:
//	  color: auto
//
//	catalog:
//	  enabled: true
//	  driver: sqlite
//	  path: data/catalog.db
//	  schedule: "*/15 * * * *"
//
//	watch:
//	  debounce: 250ms
//	  extensions: [".rs"]
//
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
//	  metrics:
//	    enabled: true
//	    listen_address: 127.0.0.1:9090
package config
