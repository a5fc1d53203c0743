// ABOUTME: SQLite database schema for the knowledge graph engine
// ABOUTME: Creates note metadata, embedding, model registry, and link tables
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Note metadata (read-mostly view; content lives outside this engine)
CREATE TABLE IF NOT EXISTS notes (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    summary TEXT,
    tags TEXT,
    key_concepts TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Embedding vectors, one row per (note, model) pair
CREATE TABLE IF NOT EXISTS embeddings (
    note_id INTEGER NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
    model_id TEXT NOT NULL,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (note_id, model_id)
);

-- Model registry: dimension is recorded once on first save, never overwritten
CREATE TABLE IF NOT EXISTS embedding_models (
    model_id TEXT PRIMARY KEY,
    dimension INTEGER NOT NULL,
    description TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Precomputed note links written by the graph builder for external callers
CREATE TABLE IF NOT EXISTS note_links (
    source_id INTEGER NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
    target_id INTEGER NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
    similarity REAL NOT NULL,
    relationship_type TEXT NOT NULL,
    PRIMARY KEY (source_id, target_id)
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_embeddings_model ON embeddings(model_id);
CREATE INDEX IF NOT EXISTS idx_links_source ON note_links(source_id);
CREATE INDEX IF NOT EXISTS idx_links_target ON note_links(target_id);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
