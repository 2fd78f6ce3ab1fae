// ABOUTME: SQLite schema for the persisted regulations index
// ABOUTME: One meta row per build plus one entry row per chunk
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Build metadata singleton; present only once a build has committed
CREATE TABLE IF NOT EXISTS index_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    build_id TEXT NOT NULL,
    source_path TEXT NOT NULL,
    source_sha256 TEXT NOT NULL,
    embedding_model TEXT,
    dimension INTEGER NOT NULL,
    chunk_size INTEGER NOT NULL,
    chunk_overlap INTEGER NOT NULL,
    entry_count INTEGER NOT NULL,
    schema_version INTEGER NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Index entries keyed by chunk position
CREATE TABLE IF NOT EXISTS index_entries (
    position INTEGER PRIMARY KEY,
    page INTEGER NOT NULL,
    content TEXT NOT NULL,
    vector BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_page ON index_entries(page);
`

// SchemaVersion is the current schema version stored with each build
const SchemaVersion = 1
