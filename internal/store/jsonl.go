// Package store provides the durable record storage backends for the tracker:
// a line-delimited JSON flat file and an embedded SQLite database, both
// exposing the same read-all / append / rewrite-all semantics, plus a
// filesystem watcher for reacting to external changes.
package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/civicgraph/civicgraph/internal/entity"
)

// JSONL stores one entity per line of a JSON-lines file. Reads scan the whole
// file; Append adds one line; Replace and Delete rewrite the full record set.
// There is no locking: the tracker assumes a single logical writer.
type JSONL struct {
	path string
}

// NewJSONL creates a JSONL store at path, creating parent directories as
// needed. A missing file reads as an empty record set.
func NewJSONL(path string) (*JSONL, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}
	return &JSONL{path: path}, nil
}

// Path returns the backing file path, for watchers.
func (s *JSONL) Path() string {
	return s.path
}

// ReadAll returns every stored entity in file order.
func (s *JSONL) ReadAll() ([]entity.Entity, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []entity.Entity{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", s.path, err)
	}
	defer f.Close()

	var out []entity.Entity
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var e entity.Entity
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("store: %s line %d: %w", s.path, line, err)
		}
		out = append(out, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("store: scan %s: %w", s.path, err)
	}
	return out, nil
}

// Append writes one entity as a new line at the end of the file.
func (s *JSONL) Append(e entity.Entity) error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("store: open %s for append: %w", s.path, err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(e); err != nil {
		return fmt.Errorf("store: append record: %w", err)
	}
	return nil
}

// Replace swaps the record with the given id for e and rewrites the file.
func (s *JSONL) Replace(id string, e entity.Entity) error {
	all, err := s.ReadAll()
	if err != nil {
		return err
	}
	found := false
	for i := range all {
		if all[i].ID == id {
			all[i] = e
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("store: record %s: %w", id, entity.ErrNotFound)
	}
	return s.rewrite(all)
}

// Delete removes the record with the given id, rewriting the file. It returns
// false when no record matched.
func (s *JSONL) Delete(id string) (bool, error) {
	all, err := s.ReadAll()
	if err != nil {
		return false, err
	}
	kept := all[:0]
	found := false
	for _, e := range all {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return false, nil
	}
	return true, s.rewrite(kept)
}

// rewrite writes the full record set to a temp file and renames it into
// place so a crash mid-write cannot truncate the data file.
func (s *JSONL) rewrite(all []entity.Entity) error {
	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("store: open temp file: %w", err)
	}
	enc := json.NewEncoder(f)
	for i := range all {
		if err := enc.Encode(all[i]); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("store: encode record: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store: close temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store: replace %s: %w", s.path, err)
	}
	return nil
}
