package relation

import (
	"errors"
	"testing"

	"github.com/civicgraph/civicgraph/internal/entity"
)

// memStore is an in-memory entity.Store for engine tests.
type memStore struct {
	entities []entity.Entity
}

func (m *memStore) ReadAll() ([]entity.Entity, error) {
	out := make([]entity.Entity, len(m.entities))
	copy(out, m.entities)
	return out, nil
}

func (m *memStore) Append(e entity.Entity) error {
	m.entities = append(m.entities, e)
	return nil
}

func (m *memStore) Replace(id string, e entity.Entity) error {
	for i := range m.entities {
		if m.entities[i].ID == id {
			m.entities[i] = e
			return nil
		}
	}
	return entity.ErrNotFound
}

func (m *memStore) Delete(id string) (bool, error) {
	for i := range m.entities {
		if m.entities[i].ID == id {
			m.entities = append(m.entities[:i], m.entities[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newTestEngine(t *testing.T) (*Engine, *entity.Repository) {
	t.Helper()
	repo := entity.NewRepository(&memStore{}, nil, nil)
	return NewEngine(repo), repo
}

func createKind(t *testing.T, repo *entity.Repository, kind entity.Kind, title string) *entity.Entity {
	t.Helper()
	e, err := repo.Create(entity.CreateParams{Kind: kind, Title: title})
	if err != nil {
		t.Fatalf("Create(%s %q): %v", kind, title, err)
	}
	return e
}

func TestLink(t *testing.T) {
	t.Parallel()
	eng, repo := newTestEngine(t)
	goal := createKind(t, repo, entity.KindGoal, "g")
	idea := createKind(t, repo, entity.KindIdea, "i")

	got, err := eng.Link(idea.ID, entity.RelPursues, goal.ID)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if !got.HasRelation(entity.RelPursues, goal.ID) {
		t.Error("edge not recorded")
	}
}

func TestLinkSelf(t *testing.T) {
	t.Parallel()
	eng, repo := newTestEngine(t)
	a := createKind(t, repo, entity.KindAction, "a")

	if _, err := eng.Link(a.ID, entity.RelDependsOn, a.ID); !errors.Is(err, entity.ErrSelfLink) {
		t.Errorf("err = %v, want ErrSelfLink", err)
	}
}

func TestLinkCyclePrevention(t *testing.T) {
	t.Parallel()
	eng, repo := newTestEngine(t)
	a := createKind(t, repo, entity.KindAction, "a")
	b := createKind(t, repo, entity.KindAction, "b")
	c := createKind(t, repo, entity.KindAction, "c")

	if _, err := eng.Link(a.ID, entity.RelDependsOn, b.ID); err != nil {
		t.Fatalf("a depends_on b: %v", err)
	}
	if _, err := eng.Link(b.ID, entity.RelDependsOn, c.ID); err != nil {
		t.Fatalf("b depends_on c: %v", err)
	}

	// Direct and transitive back-edges both close a loop.
	if _, err := eng.Link(b.ID, entity.RelBlocks, a.ID); !errors.Is(err, ErrCycle) {
		t.Errorf("b blocks a: err = %v, want ErrCycle", err)
	}
	if _, err := eng.Link(c.ID, entity.RelRequires, a.ID); !errors.Is(err, ErrCycle) {
		t.Errorf("c requires a: err = %v, want ErrCycle", err)
	}

	// An unrelated node is still linkable.
	d := createKind(t, repo, entity.KindAction, "d")
	if _, err := eng.Link(c.ID, entity.RelDependsOn, d.ID); err != nil {
		t.Errorf("c depends_on d: %v", err)
	}
}

func TestLinkNonDependencySkipsCycleCheck(t *testing.T) {
	t.Parallel()
	eng, repo := newTestEngine(t)
	i1 := createKind(t, repo, entity.KindIdea, "i1")
	i2 := createKind(t, repo, entity.KindIdea, "i2")

	// complements is not dependency-forming, so a mutual pair is allowed.
	if _, err := eng.Link(i1.ID, entity.RelComplements, i2.ID); err != nil {
		t.Fatalf("i1 complements i2: %v", err)
	}
	if _, err := eng.Link(i2.ID, entity.RelComplements, i1.ID); err != nil {
		t.Errorf("i2 complements i1: %v", err)
	}
}

func TestUnlink(t *testing.T) {
	t.Parallel()
	eng, repo := newTestEngine(t)
	a := createKind(t, repo, entity.KindAction, "a")
	b := createKind(t, repo, entity.KindAction, "b")
	if _, err := eng.Link(a.ID, entity.RelDependsOn, b.ID); err != nil {
		t.Fatalf("Link: %v", err)
	}

	got, err := eng.Unlink(a.ID, entity.RelDependsOn, b.ID)
	if err != nil {
		t.Fatalf("Unlink: %v", err)
	}
	if got.HasRelation(entity.RelDependsOn, b.ID) {
		t.Error("edge still present")
	}
	if _, err := eng.Unlink(a.ID, entity.RelDependsOn, b.ID); !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("second Unlink: err = %v, want ErrNotFound", err)
	}
}

func TestRelations(t *testing.T) {
	t.Parallel()
	eng, repo := newTestEngine(t)
	goal := createKind(t, repo, entity.KindGoal, "g")
	idea := createKind(t, repo, entity.KindIdea, "i")
	prob := createKind(t, repo, entity.KindProblem, "p")
	if _, err := eng.Link(idea.ID, entity.RelPursues, goal.ID); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if _, err := eng.Link(prob.ID, entity.RelThreatens, goal.ID); err != nil {
		t.Fatalf("Link: %v", err)
	}

	set, err := eng.Relations(goal.ID)
	if err != nil {
		t.Fatalf("Relations: %v", err)
	}
	if len(set.Outgoing) != 0 {
		t.Errorf("Outgoing = %d, want 0", len(set.Outgoing))
	}
	if len(set.Incoming) != 2 {
		t.Fatalf("Incoming = %d, want 2", len(set.Incoming))
	}

	set, err = eng.Relations(idea.ID)
	if err != nil {
		t.Fatalf("Relations: %v", err)
	}
	if len(set.Outgoing) != 1 || set.Outgoing[0].Target.ID != goal.ID {
		t.Errorf("Outgoing = %+v", set.Outgoing)
	}

	if _, err := eng.Relations("act-none"); !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("missing id: err = %v, want ErrNotFound", err)
	}
}

func TestRelationsSkipsDanglingTargets(t *testing.T) {
	t.Parallel()
	eng, repo := newTestEngine(t)
	a := createKind(t, repo, entity.KindAction, "a")
	b := createKind(t, repo, entity.KindAction, "b")
	if _, err := eng.Link(a.ID, entity.RelDependsOn, b.ID); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if _, err := repo.Remove(b.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	set, err := eng.Relations(a.ID)
	if err != nil {
		t.Fatalf("Relations: %v", err)
	}
	if len(set.Outgoing) != 0 {
		t.Errorf("Outgoing = %d, want 0 (dangling target skipped)", len(set.Outgoing))
	}
}

func TestIsBlocked(t *testing.T) {
	t.Parallel()
	eng, repo := newTestEngine(t)
	a := createKind(t, repo, entity.KindAction, "a")
	b := createKind(t, repo, entity.KindAction, "b")
	if _, err := eng.Link(a.ID, entity.RelDependsOn, b.ID); err != nil {
		t.Fatalf("Link: %v", err)
	}

	status, err := eng.IsBlocked(a.ID)
	if err != nil {
		t.Fatalf("IsBlocked: %v", err)
	}
	if !status.Blocked || len(status.Blockers) != 1 || status.Blockers[0].ID != b.ID {
		t.Errorf("status = %+v, want blocked by b", status)
	}

	if _, err := repo.Close(b.ID, entity.CloseOptions{}); err != nil {
		t.Fatalf("Close: %v", err)
	}
	status, err = eng.IsBlocked(a.ID)
	if err != nil {
		t.Fatalf("IsBlocked: %v", err)
	}
	if status.Blocked {
		t.Errorf("status = %+v, want unblocked after dependency completed", status)
	}
}

func TestTransitiveDependencies(t *testing.T) {
	t.Parallel()
	eng, repo := newTestEngine(t)
	a := createKind(t, repo, entity.KindAction, "a")
	b := createKind(t, repo, entity.KindAction, "b")
	c := createKind(t, repo, entity.KindAction, "c")
	if _, err := eng.Link(a.ID, entity.RelDependsOn, b.ID); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if _, err := eng.Link(b.ID, entity.RelRequires, c.ID); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if _, err := eng.Link(a.ID, entity.RelBlocks, c.ID); err != nil {
		t.Fatalf("Link: %v", err)
	}

	got, err := eng.TransitiveDependencies(a.ID)
	if err != nil {
		t.Fatalf("TransitiveDependencies: %v", err)
	}
	want := map[string]bool{b.ID: true, c.ID: true}
	if len(got) != 2 {
		t.Fatalf("got %v, want exactly b and c", got)
	}
	for _, id := range got {
		if !want[id] {
			t.Errorf("unexpected id %s in %v", id, got)
		}
	}
}

func TestDependencyGraph(t *testing.T) {
	t.Parallel()
	eng, repo := newTestEngine(t)
	a := createKind(t, repo, entity.KindAction, "a")
	b := createKind(t, repo, entity.KindAction, "b")
	createKind(t, repo, entity.KindAction, "c")
	if _, err := eng.Link(a.ID, entity.RelDependsOn, b.ID); err != nil {
		t.Fatalf("Link: %v", err)
	}

	t.Run("rooted", func(t *testing.T) {
		g, err := eng.DependencyGraph(a.ID)
		if err != nil {
			t.Fatalf("DependencyGraph: %v", err)
		}
		if len(g.Nodes) != 2 {
			t.Errorf("Nodes = %d, want 2 (c excluded)", len(g.Nodes))
		}
		if len(g.Edges) != 1 || g.Edges[0].From != a.ID || g.Edges[0].To != b.ID {
			t.Errorf("Edges = %+v", g.Edges)
		}
	})
	t.Run("universe", func(t *testing.T) {
		g, err := eng.DependencyGraph("")
		if err != nil {
			t.Fatalf("DependencyGraph: %v", err)
		}
		if len(g.Nodes) != 3 {
			t.Errorf("Nodes = %d, want 3", len(g.Nodes))
		}
	})
}
