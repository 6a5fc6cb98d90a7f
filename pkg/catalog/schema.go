package catalog

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the catalog schema.
const Schema = `
CREATE TABLE IF NOT EXISTS declarations (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    name TEXT NOT NULL,
    file TEXT NOT NULL,
    members INTEGER NOT NULL,
    hash TEXT NOT NULL,
    document TEXT NOT NULL,
    indexed_at INTEGER NOT NULL -- unix nanoseconds
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_declarations_file ON declarations(file);
CREATE INDEX IF NOT EXISTS idx_declarations_kind ON declarations(kind);
CREATE INDEX IF NOT EXISTS idx_declarations_name ON declarations(name);
`

// InsertSchemaVersion records the schema version.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const insertRecord = `
INSERT INTO declarations (id, kind, name, file, members, hash, document, indexed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`

const selectColumns = `SELECT id, kind, name, file, members, hash, document, indexed_at FROM declarations`
