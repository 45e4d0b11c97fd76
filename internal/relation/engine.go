// Package relation manages the typed edge graph between entities: link and
// unlink with cycle prevention, blocked-status computation over dependency
// edges, transitive dependency traversal, and graph projections for
// visualization consumers.
package relation

import (
	"errors"
	"fmt"

	"github.com/civicgraph/civicgraph/internal/entity"
)

// ErrCycle is returned when a dependency-forming edge would close a loop in
// the dependency graph.
var ErrCycle = errors.New("dependency cycle detected")

// blockedTerminal is the fixed status set against which blockers are judged.
// A dependency in any other status keeps its dependent blocked.
var blockedTerminal = map[string]bool{
	"completed":  true,
	"resolved":   true,
	"accepted":   true,
	"cancelled":  true,
	"deprecated": true,
	"rejected":   true,
}

// Engine validates and mutates relation edges through the entity repository.
type Engine struct {
	repo *entity.Repository
}

// NewEngine builds an Engine over repo.
func NewEngine(repo *entity.Repository) *Engine {
	return &Engine{repo: repo}
}

// Link adds a typed edge from source to target. Self-references are rejected
// unconditionally. For dependency-forming kinds, the edge is rejected with
// ErrCycle when the target already reaches the source through dependency
// edges. The repository's relation-add path re-validates type compatibility
// and duplicate edges.
func (g *Engine) Link(sourceID string, kind entity.RelationKind, targetID string) (*entity.Entity, error) {
	if sourceID == targetID {
		return nil, fmt.Errorf("link %s %s %s: %w", sourceID, kind, targetID, entity.ErrSelfLink)
	}
	if kind.DependencyForming() {
		all, err := g.repo.All()
		if err != nil {
			return nil, err
		}
		if reaches(all, targetID, sourceID) {
			return nil, fmt.Errorf("edge %s → %s: %w", sourceID, targetID, ErrCycle)
		}
	}
	return g.repo.AddRelation(sourceID, entity.Relation{Kind: kind, Target: targetID})
}

// Unlink removes a matching (kind, target) edge from source.
func (g *Engine) Unlink(sourceID string, kind entity.RelationKind, targetID string) (*entity.Entity, error) {
	return g.repo.RemoveRelation(sourceID, entity.Relation{Kind: kind, Target: targetID})
}

// Resolved is one outgoing edge with its target entity resolved.
type Resolved struct {
	Kind   entity.RelationKind
	Target entity.Entity
}

// Incoming is one edge discovered on another entity pointing at the queried
// id.
type Incoming struct {
	Kind   entity.RelationKind
	Source entity.Entity
}

// RelationSet is the full relation picture for one entity.
type RelationSet struct {
	Outgoing []Resolved
	Incoming []Incoming
}

// Relations returns the entity's outgoing edges enriched with resolved target
// entities, and its incoming edges found by scanning every entity for edges
// pointing at id. Outgoing edges whose target no longer exists are silently
// skipped. The incoming scan is O(N) per call, which is acceptable at the
// data scale this system targets.
func (g *Engine) Relations(id string) (*RelationSet, error) {
	all, err := g.repo.All()
	if err != nil {
		return nil, err
	}
	source, ok := lookup(all, id)
	if !ok {
		return nil, fmt.Errorf("entity %s: %w", id, entity.ErrNotFound)
	}

	set := &RelationSet{}
	for _, rel := range source.Relations {
		if target, ok := lookup(all, rel.Target); ok {
			set.Outgoing = append(set.Outgoing, Resolved{Kind: rel.Kind, Target: *target})
		}
	}
	for i := range all {
		if all[i].ID == id {
			continue
		}
		for _, rel := range all[i].Relations {
			if rel.Target == id {
				set.Incoming = append(set.Incoming, Incoming{Kind: rel.Kind, Source: all[i]})
			}
		}
	}
	return set, nil
}

// Dependencies returns the direct depends_on targets of id, skipping dangling
// references.
func (g *Engine) Dependencies(id string) ([]entity.Entity, error) {
	all, err := g.repo.All()
	if err != nil {
		return nil, err
	}
	source, ok := lookup(all, id)
	if !ok {
		return nil, fmt.Errorf("entity %s: %w", id, entity.ErrNotFound)
	}
	var deps []entity.Entity
	for _, rel := range source.Relations {
		if rel.Kind != entity.RelDependsOn {
			continue
		}
		if target, ok := lookup(all, rel.Target); ok {
			deps = append(deps, *target)
		}
	}
	return deps, nil
}

// BlockedStatus reports whether an entity is blocked and by what.
type BlockedStatus struct {
	Blocked  bool
	Blockers []entity.Entity
}

// IsBlocked reports blocked=true when any depends_on target's status is
// outside the terminal set, returning the unresolved blockers.
func (g *Engine) IsBlocked(id string) (*BlockedStatus, error) {
	deps, err := g.Dependencies(id)
	if err != nil {
		return nil, err
	}
	status := &BlockedStatus{}
	for _, dep := range deps {
		if !blockedTerminal[dep.Status] {
			status.Blockers = append(status.Blockers, dep)
		}
	}
	status.Blocked = len(status.Blockers) > 0
	return status, nil
}

// TransitiveDependencies performs a breadth-first traversal over all
// dependency-forming outgoing edges from root, visiting each node once, and
// returns the reachable ids excluding the root itself.
func (g *Engine) TransitiveDependencies(rootID string) ([]string, error) {
	all, err := g.repo.All()
	if err != nil {
		return nil, err
	}
	if _, ok := lookup(all, rootID); !ok {
		return nil, fmt.Errorf("entity %s: %w", rootID, entity.ErrNotFound)
	}
	visited := map[string]bool{rootID: true}
	queue := []string{rootID}
	var reachable []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		node, ok := lookup(all, cur)
		if !ok {
			continue
		}
		for _, rel := range node.Relations {
			if !rel.Kind.DependencyForming() || visited[rel.Target] {
				continue
			}
			visited[rel.Target] = true
			reachable = append(reachable, rel.Target)
			queue = append(queue, rel.Target)
		}
	}
	return reachable, nil
}

// Node is one graph-projection vertex.
type Node struct {
	ID       string      `json:"id"`
	Kind     entity.Kind `json:"type"`
	Title    string      `json:"title"`
	Status   string      `json:"status"`
	Priority int         `json:"priority"`
}

// Edge is one graph-projection edge between two projected nodes.
type Edge struct {
	From string              `json:"from"`
	To   string              `json:"to"`
	Kind entity.RelationKind `json:"type"`
}

// Graph is a {nodes, edges} projection of the dependency graph.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// DependencyGraph projects the dependency graph rooted at rootID, or the full
// entity universe when rootID is empty. Edges include only dependency-forming
// relations whose endpoints are both in the node set.
func (g *Engine) DependencyGraph(rootID string) (*Graph, error) {
	all, err := g.repo.All()
	if err != nil {
		return nil, err
	}

	include := make(map[string]bool, len(all))
	if rootID == "" {
		for i := range all {
			include[all[i].ID] = true
		}
	} else {
		reachable, err := g.TransitiveDependencies(rootID)
		if err != nil {
			return nil, err
		}
		include[rootID] = true
		for _, id := range reachable {
			include[id] = true
		}
	}

	graph := &Graph{}
	for i := range all {
		e := &all[i]
		if !include[e.ID] {
			continue
		}
		graph.Nodes = append(graph.Nodes, Node{
			ID: e.ID, Kind: e.Kind, Title: e.Title, Status: e.Status, Priority: e.Priority,
		})
		for _, rel := range e.Relations {
			if rel.Kind.DependencyForming() && include[rel.Target] {
				graph.Edges = append(graph.Edges, Edge{From: e.ID, To: rel.Target, Kind: rel.Kind})
			}
		}
	}
	return graph, nil
}

// reaches reports whether dst is reachable from src by following
// dependency-forming edges outward, breadth-first.
func reaches(all []entity.Entity, src, dst string) bool {
	if src == dst {
		return false
	}
	visited := map[string]bool{src: true}
	queue := []string{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		node, ok := lookup(all, cur)
		if !ok {
			continue
		}
		for _, rel := range node.Relations {
			if !rel.Kind.DependencyForming() {
				continue
			}
			if rel.Target == dst {
				return true
			}
			if !visited[rel.Target] {
				visited[rel.Target] = true
				queue = append(queue, rel.Target)
			}
		}
	}
	return false
}

func lookup(all []entity.Entity, id string) (*entity.Entity, bool) {
	for i := range all {
		if all[i].ID == id {
			return &all[i], true
		}
	}
	return nil, false
}
