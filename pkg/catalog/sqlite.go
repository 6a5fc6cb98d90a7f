package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // registers "sqlite" (pure Go)
)

// Driver names accepted by OpenSQLite.
const (
	DriverModernc = "sqlite"  // modernc.org/sqlite
	DriverMattn   = "sqlite3" // github.com/mattn/go-sqlite3
)

// SQLiteConfig contains configuration for the SQLite store.
type SQLiteConfig struct {
	// Driver is DriverModernc or DriverMattn.
	// Default: DriverModernc
	Driver string

	// Path is the database file path. Parent directories are created.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// SQLiteStore implements Store on SQLite with either driver.
type SQLiteStore struct {
	db     *sql.DB
	config SQLiteConfig
	logger *slog.Logger
}

// OpenSQLite opens (creating if needed) the catalog database and applies
// the schema.
func OpenSQLite(cfg SQLiteConfig, logger *slog.Logger) (*SQLiteStore, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverModernc
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 10
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	if cfg.Path == "" {
		return nil, NewStorageError(cfg.Driver, "open", fmt.Errorf("database path cannot be empty"))
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "catalog.sqlite")

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewStorageError(cfg.Driver, "mkdir", err)
		}
	}

	dsn, err := sqliteDSN(cfg)
	if err != nil {
		return nil, NewStorageError(cfg.Driver, "open", err)
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, NewStorageError(cfg.Driver, "open", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)

	s := &SQLiteStore{db: db, config: cfg, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("SQLite catalog opened",
		"driver", cfg.Driver,
		"path", cfg.Path,
		"max_open_conns", cfg.MaxOpenConns,
	)
	return s, nil
}

// sqliteDSN builds a DSN enabling WAL and the busy timeout. The two drivers
// spell connection pragmas differently.
func sqliteDSN(cfg SQLiteConfig) (string, error) {
	ms := cfg.BusyTimeout.Milliseconds()
	switch cfg.Driver {
	case DriverModernc:
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", cfg.Path, ms), nil
	case DriverMattn:
		return fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL&_synchronous=NORMAL", cfg.Path, ms), nil
	default:
		return "", fmt.Errorf("unknown SQLite driver %q", cfg.Driver)
	}
}

// initialize creates the schema and verifies its version.
func (s *SQLiteStore) initialize() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError(s.config.Driver, "create_schema", err)
	}
	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError(s.config.Driver, "insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil {
		return NewStorageError(s.config.Driver, "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError(s.config.Driver, "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}
	return nil
}

// ReplaceFile deletes all records of file and inserts records in one
// transaction.
func (s *SQLiteStore) ReplaceFile(ctx context.Context, file string, records []*Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewStorageError(s.config.Driver, "begin", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM declarations WHERE file = ?", file); err != nil {
		return NewStorageError(s.config.Driver, "replace", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertRecord)
	if err != nil {
		return NewStorageError(s.config.Driver, "prepare", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.ID, r.Kind, r.Name, file, r.Members, r.Hash, r.Document, r.IndexedAt.UnixNano(),
		); err != nil {
			return NewStorageError(s.config.Driver, "insert", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return NewStorageError(s.config.Driver, "commit", err)
	}
	return nil
}

// DeleteFile deletes all records of file.
func (s *SQLiteStore) DeleteFile(ctx context.Context, file string) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM declarations WHERE file = ?", file)
	if err != nil {
		return 0, NewStorageError(s.config.Driver, "delete", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError(s.config.Driver, "delete", err)
	}
	return n, nil
}

// Get returns the record with the given ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, NewStorageError(s.config.Driver, "get", err)
	}
	return r, nil
}

// List returns records matching q ordered by file and name.
func (s *SQLiteStore) List(ctx context.Context, q *Query) ([]*Record, error) {
	if q == nil {
		q = &Query{}
	}
	where, args := buildWhereClause(q)

	query := selectColumns
	if where != "" {
		query += " WHERE " + where
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	query += " ORDER BY file, name, id LIMIT ? OFFSET ?"
	args = append(args, limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewStorageError(s.config.Driver, "list", err)
	}
	defer rows.Close()

	records := []*Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, NewStorageError(s.config.Driver, "scan", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError(s.config.Driver, "list", err)
	}
	return records, nil
}

// Count returns the number of records matching q.
func (s *SQLiteStore) Count(ctx context.Context, q *Query) (int64, error) {
	if q == nil {
		q = &Query{}
	}
	where, args := buildWhereClause(q)

	query := "SELECT COUNT(*) FROM declarations"
	if where != "" {
		query += " WHERE " + where
	}

	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, NewStorageError(s.config.Driver, "count", err)
	}
	return n, nil
}

// Files returns the distinct files with records, sorted.
func (s *SQLiteStore) Files(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT file FROM declarations ORDER BY file")
	if err != nil {
		return nil, NewStorageError(s.config.Driver, "files", err)
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, NewStorageError(s.config.Driver, "scan", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError(s.config.Driver, "files", err)
	}
	return files, nil
}

// Ping verifies the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return NewStorageError(s.config.Driver, "ping", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError(s.config.Driver, "close", err)
	}
	s.logger.Debug("SQLite catalog closed")
	return nil
}

// buildWhereClause builds a WHERE clause (without the keyword) and its args.
func buildWhereClause(q *Query) (string, []any) {
	var conditions []string
	var args []any

	if q.Kind != "" {
		conditions = append(conditions, "kind = ?")
		args = append(args, q.Kind)
	}
	if q.File != "" {
		conditions = append(conditions, "file = ?")
		args = append(args, q.File)
	}
	if q.Name != "" {
		conditions = append(conditions, "instr(name, ?) > 0")
		args = append(args, q.Name)
	}

	return strings.Join(conditions, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var r Record
	var indexedAt int64
	if err := row.Scan(&r.ID, &r.Kind, &r.Name, &r.File, &r.Members, &r.Hash, &r.Document, &indexedAt); err != nil {
		return nil, err
	}
	r.IndexedAt = time.Unix(0, indexedAt).UTC()
	return &r, nil
}
