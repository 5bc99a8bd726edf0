package queue

// The queue lives in an in-memory SQLite database, so there is no migration
// history to manage: the schema is applied once per process and dies with it.
const schema = `
CREATE TABLE IF NOT EXISTS queue_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    stored_name TEXT NOT NULL UNIQUE,
    original_name TEXT NOT NULL,
    artifact_path TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    verdict_is_human INTEGER,
    verdict_observed_at TEXT
);
`
