// Package store provides the per-project SQLite store: append-only history
// and audit logs, input-root CRUD, settings, and the character name list.
// One Store corresponds to one project database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"voicesort/pkg/protocol"

	_ "modernc.org/sqlite" // SQLite driver
)

// Store wraps the per-project SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the project database at dbPath and applies the
// schema. Production-safe defaults are enforced: WAL journal mode and a
// 5-second busy timeout. The parent directory is created if missing.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	ctx := context.Background()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", dbPath, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode on %s: %w", dbPath, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy_timeout on %s: %w", dbPath, err)
	}

	if _, err := db.ExecContext(ctx, protocol.SchemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	// Migration for databases created before checksum recording; the column
	// may already exist.
	_, _ = db.ExecContext(ctx, protocol.MigrateAuditChecksum)

	return &Store{db: db, path: dbPath}, nil
}

// Close releases the database connection. Safe to call multiple times.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// GetSetting returns the value for key, or def if the key is not set.
func (s *Store) GetSetting(ctx context.Context, key, def string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return def, nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return v, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings(key, value) VALUES(?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// Names returns the character name list, ordered case-insensitively.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM names ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate names: %w", err)
	}
	return names, nil
}

// SetNames replaces the character name list wholesale. Empty entries are
// skipped and duplicates collapse via the UNIQUE constraint.
func (s *Store) SetNames(ctx context.Context, names []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set names: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM names`); err != nil {
		return fmt.Errorf("clear names: %w", err)
	}
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO names(name) VALUES(?)`, n); err != nil {
			return fmt.Errorf("insert name %q: %w", n, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set names: %w", err)
	}
	return nil
}

// Inputs returns all configured input roots in stored (path) order.
func (s *Store) Inputs(ctx context.Context) ([]protocol.InputRoot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, enabled, done FROM inputs ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("list inputs: %w", err)
	}
	defer rows.Close()

	var roots []protocol.InputRoot
	for rows.Next() {
		var r protocol.InputRoot
		if err := rows.Scan(&r.Path, &r.Enabled, &r.Done); err != nil {
			return nil, fmt.Errorf("scan input: %w", err)
		}
		roots = append(roots, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inputs: %w", err)
	}
	return roots, nil
}

// UpsertInput adds or updates an input root keyed by path.
func (s *Store) UpsertInput(ctx context.Context, path string, enabled, done bool) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO inputs(path, enabled, done) VALUES(?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET enabled = excluded.enabled, done = excluded.done`,
		path, enabled, done)
	if err != nil {
		return fmt.Errorf("upsert input %s: %w", path, err)
	}
	return nil
}

// SetInputEnabled flips the enabled flag of one input root.
func (s *Store) SetInputEnabled(ctx context.Context, path string, enabled bool) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE inputs SET enabled = ? WHERE path = ?`, enabled, path)
	if err != nil {
		return fmt.Errorf("set input enabled %s: %w", path, err)
	}
	return nil
}

// SetInputDone flips the done flag of one input root.
func (s *Store) SetInputDone(ctx context.Context, path string, done bool) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE inputs SET done = ? WHERE path = ?`, done, path)
	if err != nil {
		return fmt.Errorf("set input done %s: %w", path, err)
	}
	return nil
}

// RemoveInput deletes the input root record. The filesystem is untouched.
func (s *Store) RemoveInput(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM inputs WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("remove input %s: %w", path, err)
	}
	return nil
}

// AppendHistory appends one record to the history log and returns its
// sequence id. The log is append-only: no update or delete is exposed.
func (s *Store) AppendHistory(ctx context.Context, action string, p protocol.Payload) (int64, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return 0, fmt.Errorf("marshal history payload: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO history(action, payload) VALUES(?, ?)`, action, string(raw))
	if err != nil {
		return 0, fmt.Errorf("append history: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history insert id: %w", err)
	}
	return id, nil
}

// History returns the full history log in ascending sequence order.
// Records with unparseable payloads are returned with an empty payload
// rather than failing the whole read.
func (s *Store) History(ctx context.Context) ([]protocol.HistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ts, action, payload FROM history ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer rows.Close()

	var records []protocol.HistoryRecord
	for rows.Next() {
		var (
			rec protocol.HistoryRecord
			raw sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.TS, &rec.Action, &raw); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if raw.Valid && raw.String != "" {
			_ = json.Unmarshal([]byte(raw.String), &rec.Payload)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return records, nil
}

// AppendAudit appends one confirmed-operation record to the audit log.
// Undo and redo are deliberately never written here.
func (s *Store) AppendAudit(ctx context.Context, rec protocol.AuditRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit(op, src, dst, character, folder, checksum)
		 VALUES(?, ?, ?, ?, ?, ?)`,
		rec.Op, rec.Src, rec.Dst,
		nullable(rec.Character), nullable(rec.Folder), nullable(rec.Checksum))
	if err != nil {
		return fmt.Errorf("append audit: %w", err)
	}
	return nil
}

// Audit returns audit records in ascending id order. A limit of 0 returns
// everything.
func (s *Store) Audit(ctx context.Context, limit int) ([]protocol.AuditRecord, error) {
	q := `SELECT id, ts, op, src, dst,
	             COALESCE(character, ''), COALESCE(folder, ''), COALESCE(checksum, '')
	      FROM audit ORDER BY id ASC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("read audit: %w", err)
	}
	defer rows.Close()

	var records []protocol.AuditRecord
	for rows.Next() {
		var rec protocol.AuditRecord
		if err := rows.Scan(&rec.ID, &rec.TS, &rec.Op, &rec.Src, &rec.Dst,
			&rec.Character, &rec.Folder, &rec.Checksum); err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit: %w", err)
	}
	return records, nil
}

// nullable maps "" to NULL so optional audit columns stay NULL instead of
// holding empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
