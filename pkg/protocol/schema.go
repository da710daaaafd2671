package protocol

// SchemaDDL defines the per-project SQLite schema.
// Tables: settings, names, history, audit, inputs.
// Execute against a SQLite database with: db.Exec(SchemaDDL)
//
// history and audit are append-only by contract: no engine code updates or
// deletes rows in either table. history is the sole source of truth for
// undo/redo reconstruction; audit records confirmed classification outcomes
// only (never undo/redo).
const SchemaDDL = `
-- Free-form per-project settings (recursive flag, last output dir, ...)
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT
);

-- Character name list used for completion
CREATE TABLE IF NOT EXISTS names (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT UNIQUE
);

-- Internal event log: drives undo/redo state reconstruction
CREATE TABLE IF NOT EXISTS history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ts TEXT NOT NULL DEFAULT (datetime('now')),
    action TEXT NOT NULL,
    payload TEXT
);

-- Audit log: confirmed move/exclude/defer operations only
CREATE TABLE IF NOT EXISTS audit (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ts TEXT NOT NULL DEFAULT (datetime('now')),
    op TEXT NOT NULL,
    src TEXT NOT NULL,
    dst TEXT NOT NULL,
    character TEXT,
    folder TEXT,
    checksum TEXT
);

-- Configured input roots
CREATE TABLE IF NOT EXISTS inputs (
    path TEXT PRIMARY KEY,
    enabled INTEGER NOT NULL DEFAULT 1,
    done INTEGER NOT NULL DEFAULT 0
);
`

// MigrateAuditChecksum adds the checksum column to audit tables created
// before checksums were recorded. ALTER TABLE errors if the column already
// exists; callers ignore the error (try/ignore pattern).
const MigrateAuditChecksum = `
ALTER TABLE audit ADD COLUMN checksum TEXT;
`
