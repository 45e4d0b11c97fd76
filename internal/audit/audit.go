// Package audit provides a JSONL event stream recording every repository
// mutation. Each create, update, delete, link, and support change is written
// as one structured JSON line, making the tracker's history replayable and
// analyzable outside the per-entity history log.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event kinds identify the type of audit event.
const (
	KindEntityCreated   = "entity_created"
	KindEntityUpdated   = "entity_updated"
	KindEntityDeleted   = "entity_deleted"
	KindEntityClosed    = "entity_closed"
	KindSupportAdded    = "support_added"
	KindRelationLinked  = "relation_linked"
	KindRelationRemoved = "relation_removed"
)

// Event represents a single audit record. Each event carries a timestamp, a
// kind tag, the affected entity id, and arbitrary structured data.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	EntityID  string    `json:"entity,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Emitter writes audit events to a JSONL file. It is safe for concurrent use
// by multiple goroutines. A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
}

// NewEmitter creates an Emitter that appends JSONL events to the file at path,
// creating it if absent.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("audit: open %s: %w", path, err)
	}
	return &Emitter{file: f, enc: json.NewEncoder(f)}, nil
}

// Emit writes a single event. The timestamp is stamped if unset. Calling Emit
// on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("audit: encode event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file. Calling Close on a nil
// Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("audit: close: %w", err)
	}
	return nil
}
