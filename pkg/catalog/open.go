package catalog

import (
	"fmt"
	"log/slog"

	"mercator-hq/rustalize/pkg/config"
)

// Open returns the store selected by cfg.Driver.
func Open(cfg config.CatalogConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case DriverModernc, DriverMattn:
		return OpenSQLite(SQLiteConfig{
			Driver:       cfg.Driver,
			Path:         cfg.Path,
			MaxOpenConns: cfg.MaxOpenConns,
			BusyTimeout:  cfg.BusyTimeout,
		}, logger)
	default:
		return nil, NewStorageError(cfg.Driver, "open", fmt.Errorf("unknown catalog driver %q", cfg.Driver))
	}
}
