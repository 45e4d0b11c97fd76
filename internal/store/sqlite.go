package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/civicgraph/civicgraph/internal/entity"
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup. Entities are stored as JSON documents
// keyed by id; the store layer does not interpret fields beyond the key.
const schema = `
CREATE TABLE IF NOT EXISTS entities (
    id         TEXT PRIMARY KEY,
    kind       TEXT NOT NULL,
    data       TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLite implements the repository's Store over a local SQLite database in
// WAL mode. It is the alternate backend to the JSONL flat file, selected by
// configuration.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) a SQLite database at dbPath, enables WAL mode
// and a busy timeout, and creates the schema if it does not exist.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// One connection: SQLite only supports a single writer, and a single
	// pooled connection avoids SQLITE_BUSY contention between connections
	// that each need their own PRAGMA setup.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// ReadAll returns every stored entity in insertion order.
func (s *SQLite) ReadAll() ([]entity.Entity, error) {
	rows, err := s.db.Query("SELECT data FROM entities ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("store: read entities: %w", err)
	}
	defer rows.Close()

	var out []entity.Entity
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("store: scan row: %w", err)
		}
		var e entity.Entity
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("store: decode record: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate rows: %w", err)
	}
	if out == nil {
		out = []entity.Entity{}
	}
	return out, nil
}

// Append inserts one entity row.
func (s *SQLite) Append(e entity.Entity) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("store: encode record: %w", err)
	}
	if _, err := s.db.Exec(
		"INSERT INTO entities (id, kind, data) VALUES (?, ?, ?)",
		e.ID, string(e.Kind), string(raw),
	); err != nil {
		return fmt.Errorf("store: insert %s: %w", e.ID, err)
	}
	return nil
}

// Replace swaps the record with the given id for e.
func (s *SQLite) Replace(id string, e entity.Entity) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("store: encode record: %w", err)
	}
	res, err := s.db.Exec("UPDATE entities SET data = ?, kind = ? WHERE id = ?",
		string(raw), string(e.Kind), id)
	if err != nil {
		return fmt.Errorf("store: update %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("store: record %s: %w", id, entity.ErrNotFound)
	}
	return nil
}

// Delete removes the record with the given id, reporting whether a row
// matched.
func (s *SQLite) Delete(id string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM entities WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("store: delete %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("store: rows affected: %w", err)
	}
	return n > 0, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	if err := s.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("store: close database: %w", err)
	}
	return nil
}
