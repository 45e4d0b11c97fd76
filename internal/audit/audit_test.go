package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestEmitWritesJSONLines(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	e, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	events := []Event{
		{Kind: KindEntityCreated, EntityID: "goal-1", Data: map[string]any{"title": "x"}},
		{Kind: KindRelationLinked, EntityID: "idea-2"},
	}
	for _, evt := range events {
		if err := e.Emit(evt); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	var got []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var evt Event
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			t.Fatalf("line %d: %v", len(got)+1, err)
		}
		got = append(got, evt)
	}
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2", len(got))
	}
	if got[0].Kind != KindEntityCreated || got[0].EntityID != "goal-1" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[0].Timestamp.IsZero() {
		t.Error("timestamp not stamped on emit")
	}
}

func TestEmitAppends(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "audit.jsonl")

	for i := 0; i < 2; i++ {
		e, err := NewEmitter(path)
		if err != nil {
			t.Fatalf("NewEmitter: %v", err)
		}
		if err := e.Emit(Event{Kind: KindEntityUpdated, EntityID: "act-1"}); err != nil {
			t.Fatalf("Emit: %v", err)
		}
		if err := e.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Errorf("got %d lines, want 2 (reopen must append)", lines)
	}
}

func TestNilEmitterIsNoOp(t *testing.T) {
	t.Parallel()
	var e *Emitter
	if err := e.Emit(Event{Kind: KindEntityCreated}); err != nil {
		t.Errorf("Emit on nil: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}
