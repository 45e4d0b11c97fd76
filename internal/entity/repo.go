package entity

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/civicgraph/civicgraph/internal/audit"
	"github.com/civicgraph/civicgraph/internal/ident"
)

// Store is the durable record storage the repository reads and writes through.
// Mutations rewrite the full record set; the system assumes a single logical
// writer at a time.
type Store interface {
	ReadAll() ([]Entity, error)
	Append(e Entity) error
	Replace(id string, e Entity) error
	Delete(id string) (bool, error)
}

// GovDirectory resolves an organizational unit by opaque id or human slug,
// returning the canonical id.
type GovDirectory interface {
	Resolve(idOrSlug string) (string, bool)
}

// Repository provides CRUD and validation over typed entities. All mutations
// are all-or-nothing: validation completes before any store write.
type Repository struct {
	store Store
	govs  GovDirectory
	log   *audit.Emitter
}

// NewRepository builds a Repository over store. govs may be nil when no
// government registry is configured; log may be nil to disable the audit
// stream.
func NewRepository(store Store, govs GovDirectory, log *audit.Emitter) *Repository {
	return &Repository{store: store, govs: govs, log: log}
}

// idPrefixes maps each kind to its identifier prefix.
var idPrefixes = map[Kind]string{
	KindGoal:    "goal",
	KindProblem: "prob",
	KindIdea:    "idea",
	KindAction:  "act",
}

const (
	maxTitleLen     = 500
	maxBodyLen      = 10000
	defaultPriority = 2
)

// CreateParams holds the fields accepted at entity creation. Priority accepts
// numeric ("2") or prefixed ("P2") form; empty means the default P2. Gov may
// be an id or a slug. Relations reference targets that must already exist.
type CreateParams struct {
	Kind      Kind
	Title     string
	Body      string
	Priority  string
	Status    string
	Gov       string
	Relations []Relation
	Metadata  map[string]any

	Location *Location
	Assignee string
	DueDate  string
}

// Create validates params, generates an identifier, and appends the new
// entity with an initial "created" history entry.
func (r *Repository) Create(p CreateParams) (*Entity, error) {
	if !p.Kind.Valid() {
		return nil, validationf(CatKind, "type", "unknown entity type %q", p.Kind)
	}
	if err := validateTitle(p.Title); err != nil {
		return nil, err
	}
	if err := validateBody(p.Body); err != nil {
		return nil, err
	}

	priority := defaultPriority
	if p.Priority != "" {
		n, err := ParsePriority(p.Priority)
		if err != nil {
			return nil, err
		}
		priority = n
	}

	status := DefaultStatus(p.Kind)
	if p.Status != "" {
		if !ValidStatus(p.Kind, p.Status) {
			return nil, validationf(CatStatus, "status", "status %q not valid for %s (one of %s)",
				p.Status, p.Kind, strings.Join(Statuses(p.Kind), ", "))
		}
		status = p.Status
	}

	govID := ""
	if p.Gov != "" {
		id, err := r.resolveGov(p.Gov)
		if err != nil {
			return nil, err
		}
		govID = id
	}

	if p.Location != nil {
		if p.Kind != KindProblem {
			return nil, validationf(CatLocation, "location", "location only valid for problems")
		}
		if err := p.Location.validate(); err != nil {
			return nil, err
		}
	}
	if (p.Assignee != "" || p.DueDate != "") && p.Kind != KindAction {
		return nil, validationf(CatKind, "assignee", "assignee and due_date only valid for actions")
	}

	all, err := r.store.ReadAll()
	if err != nil {
		return nil, err
	}
	seen := make(map[Relation]bool, len(p.Relations))
	for _, rel := range p.Relations {
		if err := validateRelation(all, "", p.Kind, rel); err != nil {
			return nil, err
		}
		if seen[rel] {
			return nil, fmt.Errorf("relation %s %s supplied twice: %w", rel.Kind, rel.Target, ErrConflict)
		}
		seen[rel] = true
	}

	ids := make(map[string]bool, len(all))
	for i := range all {
		ids[all[i].ID] = true
	}
	id := ident.GenerateID(idPrefixes[p.Kind], []string{string(p.Kind), p.Title},
		func(candidate string) bool { return ids[candidate] })

	now := time.Now().UTC()
	e := Entity{
		ID:        id,
		Kind:      p.Kind,
		Title:     p.Title,
		Body:      p.Body,
		Priority:  priority,
		Status:    status,
		GovID:     govID,
		Relations: append([]Relation(nil), p.Relations...),
		Metadata:  p.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
		History:   []HistoryEntry{{Timestamp: now, Action: "created"}},
		Location:  p.Location,
		Assignee:  p.Assignee,
		DueDate:   p.DueDate,
	}
	if Terminal(status) {
		e.ClosedAt = &now
	}

	if err := r.store.Append(e); err != nil {
		return nil, err
	}
	_ = r.log.Emit(audit.Event{Kind: audit.KindEntityCreated, EntityID: e.ID, Data: map[string]any{
		"type": e.Kind, "title": e.Title,
	}})
	return &e, nil
}

// Find returns the entity with the given id, or an error wrapping ErrNotFound.
func (r *Repository) Find(id string) (*Entity, error) {
	all, err := r.store.ReadAll()
	if err != nil {
		return nil, err
	}
	if e, ok := findIn(all, id); ok {
		return e, nil
	}
	return nil, fmt.Errorf("entity %s: %w", id, ErrNotFound)
}

// All returns every stored entity. Graph and similarity consumers use this to
// build their working sets.
func (r *Repository) All() ([]Entity, error) {
	return r.store.ReadAll()
}

// ListFilter narrows and orders List results. The zero value lists everything
// sorted by created_at descending.
type ListFilter struct {
	Kind      Kind
	Gov       string // id or slug
	Unfiled   bool   // entities with no gov assignment
	Status    string
	Priority  *int
	RelatedTo string // entities carrying an edge to this target id

	SortBy    string // created_at, updated_at, priority, title, status
	Ascending bool
	Limit     int
	Offset    int
}

// List returns entities matching the filter. Sorting is stable: ties keep
// input order.
func (r *Repository) List(f ListFilter) ([]Entity, error) {
	all, err := r.store.ReadAll()
	if err != nil {
		return nil, err
	}

	govID := f.Gov
	if f.Gov != "" && r.govs != nil {
		if id, ok := r.govs.Resolve(f.Gov); ok {
			govID = id
		}
	}

	matched := make([]Entity, 0, len(all))
	for _, e := range all {
		if f.Kind != "" && e.Kind != f.Kind {
			continue
		}
		if f.Gov != "" && e.GovID != govID {
			continue
		}
		if f.Unfiled && e.GovID != "" {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.Priority != nil && e.Priority != *f.Priority {
			continue
		}
		if f.RelatedTo != "" && !hasEdgeTo(e, f.RelatedTo) {
			continue
		}
		matched = append(matched, e)
	}

	sortEntities(matched, f.SortBy, f.Ascending)

	if f.Offset > 0 {
		if f.Offset >= len(matched) {
			return []Entity{}, nil
		}
		matched = matched[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

// UpdateParams holds the independently optional fields accepted by Update.
// Nil pointers leave the field untouched. A non-nil empty Gov clears the
// government assignment. Metadata is shallow-merged, not replaced.
type UpdateParams struct {
	Title    *string
	Body     *string
	Priority *string
	Status   *string
	Gov      *string
	Metadata map[string]any

	Location *Location
	Assignee *string
	DueDate  *string
}

// Update applies params to the entity, appending one history entry per
// changed tracked field and toggling closed_at on terminal status
// transitions.
func (r *Repository) Update(id string, p UpdateParams) (*Entity, error) {
	e, err := r.Find(id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	if p.Title != nil && *p.Title != e.Title {
		if err := validateTitle(*p.Title); err != nil {
			return nil, err
		}
		e.recordChange(now, "title", e.Title, *p.Title)
		e.Title = *p.Title
	}
	if p.Body != nil && *p.Body != e.Body {
		if err := validateBody(*p.Body); err != nil {
			return nil, err
		}
		e.recordChange(now, "body", e.Body, *p.Body)
		e.Body = *p.Body
	}
	if p.Priority != nil {
		n, err := ParsePriority(*p.Priority)
		if err != nil {
			return nil, err
		}
		if n != e.Priority {
			e.recordChange(now, "priority", formatPriority(e.Priority), formatPriority(n))
			e.Priority = n
		}
	}
	if p.Status != nil && *p.Status != e.Status {
		if !ValidStatus(e.Kind, *p.Status) {
			return nil, validationf(CatStatus, "status", "status %q not valid for %s (one of %s)",
				*p.Status, e.Kind, strings.Join(Statuses(e.Kind), ", "))
		}
		e.recordChange(now, "status", e.Status, *p.Status)
		wasTerminal := Terminal(e.Status)
		isTerminal := Terminal(*p.Status)
		e.Status = *p.Status
		if isTerminal && !wasTerminal {
			e.ClosedAt = &now
		} else if !isTerminal && wasTerminal {
			e.ClosedAt = nil
		}
	}
	if p.Gov != nil {
		govID := ""
		if *p.Gov != "" {
			govID, err = r.resolveGov(*p.Gov)
			if err != nil {
				return nil, err
			}
		}
		if govID != e.GovID {
			e.recordChange(now, "gov_id", e.GovID, govID)
			e.GovID = govID
		}
	}
	if p.Metadata != nil {
		if e.Metadata == nil {
			e.Metadata = make(map[string]any, len(p.Metadata))
		}
		for k, v := range p.Metadata {
			e.Metadata[k] = v
		}
	}
	if p.Location != nil {
		if e.Kind != KindProblem {
			return nil, validationf(CatLocation, "location", "location only valid for problems")
		}
		if err := p.Location.validate(); err != nil {
			return nil, err
		}
		e.Location = p.Location
	}
	if p.Assignee != nil {
		if e.Kind != KindAction {
			return nil, validationf(CatKind, "assignee", "assignee only valid for actions")
		}
		e.Assignee = *p.Assignee
	}
	if p.DueDate != nil {
		if e.Kind != KindAction {
			return nil, validationf(CatKind, "due_date", "due_date only valid for actions")
		}
		e.DueDate = *p.DueDate
	}

	e.UpdatedAt = now
	if err := r.store.Replace(e.ID, *e); err != nil {
		return nil, err
	}
	_ = r.log.Emit(audit.Event{Kind: audit.KindEntityUpdated, EntityID: e.ID})
	return e, nil
}

// Remove hard-deletes the entity. Relation edges on other entities pointing at
// the removed id are left dangling; graph consumers skip unresolvable targets.
func (r *Repository) Remove(id string) (bool, error) {
	ok, err := r.store.Delete(id)
	if err != nil {
		return false, err
	}
	if ok {
		_ = r.log.Emit(audit.Event{Kind: audit.KindEntityDeleted, EntityID: id})
	}
	return ok, nil
}

// AddSupport appends supporter to an idea's supporter set and increments its
// support count. Supporting twice is a conflict; supporting a non-idea is a
// validation failure.
func (r *Repository) AddSupport(ideaID, supporter string) (*Entity, error) {
	e, err := r.Find(ideaID)
	if err != nil {
		return nil, err
	}
	if e.Kind != KindIdea {
		return nil, validationf(CatSupport, "id", "%s is a %s; only ideas accept support", ideaID, e.Kind)
	}
	if e.Supports(supporter) {
		return nil, fmt.Errorf("supporter %s already recorded on %s: %w", supporter, ideaID, ErrConflict)
	}
	now := time.Now().UTC()
	e.Supporters = append(e.Supporters, supporter)
	e.SupportCount = len(e.Supporters)
	e.History = append(e.History, HistoryEntry{Timestamp: now, Action: "supported", NewValue: supporter})
	e.UpdatedAt = now
	if err := r.store.Replace(e.ID, *e); err != nil {
		return nil, err
	}
	_ = r.log.Emit(audit.Event{Kind: audit.KindSupportAdded, EntityID: e.ID, Data: map[string]any{
		"supporter": supporter, "support_count": e.SupportCount,
	}})
	return e, nil
}

// CloseOptions selects the terminal status for kinds with more than one.
type CloseOptions struct {
	Reject bool // idea: rejected instead of accepted
	Cancel bool // action: cancelled instead of completed
}

// Close maps the entity's kind to its canonical terminal status and applies it
// through Update: goals deprecate, problems resolve, ideas are accepted or
// rejected, actions complete or cancel.
func (r *Repository) Close(id string, opts CloseOptions) (*Entity, error) {
	e, err := r.Find(id)
	if err != nil {
		return nil, err
	}
	var status string
	switch e.Kind {
	case KindGoal:
		status = "deprecated"
	case KindProblem:
		status = "resolved"
	case KindIdea:
		status = "accepted"
		if opts.Reject {
			status = "rejected"
		}
	case KindAction:
		status = "completed"
		if opts.Cancel {
			status = "cancelled"
		}
	}
	updated, err := r.Update(id, UpdateParams{Status: &status})
	if err != nil {
		return nil, err
	}
	_ = r.log.Emit(audit.Event{Kind: audit.KindEntityClosed, EntityID: id, Data: map[string]any{
		"status": status,
	}})
	return updated, nil
}

// AddRelation appends a validated (kind, target) edge to the source entity.
// The edge must match its declared type pair, the target must exist, and an
// identical edge must not already be present.
func (r *Repository) AddRelation(sourceID string, rel Relation) (*Entity, error) {
	all, err := r.store.ReadAll()
	if err != nil {
		return nil, err
	}
	e, ok := findIn(all, sourceID)
	if !ok {
		return nil, fmt.Errorf("entity %s: %w", sourceID, ErrNotFound)
	}
	if err := validateRelation(all, sourceID, e.Kind, rel); err != nil {
		return nil, err
	}
	if e.HasRelation(rel.Kind, rel.Target) {
		return nil, fmt.Errorf("relation %s %s %s already exists: %w", sourceID, rel.Kind, rel.Target, ErrConflict)
	}
	now := time.Now().UTC()
	e.Relations = append(e.Relations, rel)
	e.History = append(e.History, HistoryEntry{
		Timestamp: now, Action: "linked", Field: "relations",
		NewValue: string(rel.Kind) + " " + rel.Target,
	})
	e.UpdatedAt = now
	if err := r.store.Replace(e.ID, *e); err != nil {
		return nil, err
	}
	_ = r.log.Emit(audit.Event{Kind: audit.KindRelationLinked, EntityID: e.ID, Data: map[string]any{
		"relation": rel.Kind, "target": rel.Target,
	}})
	return e, nil
}

// RemoveRelation deletes a matching (kind, target) edge from the source
// entity. A missing edge is a not-found error.
func (r *Repository) RemoveRelation(sourceID string, rel Relation) (*Entity, error) {
	e, err := r.Find(sourceID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, existing := range e.Relations {
		if existing.Kind == rel.Kind && existing.Target == rel.Target {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("relation %s %s %s: %w", sourceID, rel.Kind, rel.Target, ErrNotFound)
	}
	now := time.Now().UTC()
	e.Relations = append(e.Relations[:idx], e.Relations[idx+1:]...)
	e.History = append(e.History, HistoryEntry{
		Timestamp: now, Action: "unlinked", Field: "relations",
		OldValue: string(rel.Kind) + " " + rel.Target,
	})
	e.UpdatedAt = now
	if err := r.store.Replace(e.ID, *e); err != nil {
		return nil, err
	}
	_ = r.log.Emit(audit.Event{Kind: audit.KindRelationRemoved, EntityID: e.ID, Data: map[string]any{
		"relation": rel.Kind, "target": rel.Target,
	}})
	return e, nil
}

func (r *Repository) resolveGov(idOrSlug string) (string, error) {
	if r.govs == nil {
		return "", fmt.Errorf("government %q: %w", idOrSlug, ErrNotFound)
	}
	id, ok := r.govs.Resolve(idOrSlug)
	if !ok {
		return "", fmt.Errorf("government %q: %w", idOrSlug, ErrNotFound)
	}
	return id, nil
}

// validateRelation checks rel against its declared type pair: the kind must be
// known, the source kind must match the declared from-kind, the target must
// exist, and the target's kind must match the declared to-kind — in that
// order. sourceID may be empty at creation time, when the source has no id
// yet.
func validateRelation(all []Entity, sourceID string, src Kind, rel Relation) error {
	from, to, ok := rel.Kind.Endpoints()
	if !ok {
		return validationf(CatRelation, "relations", "unknown relation type %q", rel.Kind)
	}
	if src != from {
		return validationf(CatRelation, "relations", "relation %q links %s to %s; source is a %s",
			rel.Kind, from, to, src)
	}
	if sourceID != "" && rel.Target == sourceID {
		return fmt.Errorf("relation %s %s: %w", rel.Kind, rel.Target, ErrSelfLink)
	}
	target, ok := findIn(all, rel.Target)
	if !ok {
		return fmt.Errorf("relation target %s: %w", rel.Target, ErrNotFound)
	}
	if target.Kind != to {
		return validationf(CatRelation, "relations", "relation %q requires a %s target; %s is a %s",
			rel.Kind, to, rel.Target, target.Kind)
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return validationf(CatTitle, "title", "title is required")
	}
	if len(title) > maxTitleLen {
		return validationf(CatTitle, "title", "title exceeds %d characters (%d)", maxTitleLen, len(title))
	}
	return nil
}

func validateBody(body string) error {
	if len(body) > maxBodyLen {
		return validationf(CatBody, "body", "body exceeds %d characters (%d)", maxBodyLen, len(body))
	}
	return nil
}

func (e *Entity) recordChange(ts time.Time, field, oldVal, newVal string) {
	e.History = append(e.History, HistoryEntry{
		Timestamp: ts, Action: "updated", Field: field,
		OldValue: oldVal, NewValue: newVal,
	})
}

func findIn(all []Entity, id string) (*Entity, bool) {
	for i := range all {
		if all[i].ID == id {
			return &all[i], true
		}
	}
	return nil, false
}

func hasEdgeTo(e Entity, target string) bool {
	for _, rel := range e.Relations {
		if rel.Target == target {
			return true
		}
	}
	return false
}

func sortEntities(list []Entity, sortBy string, asc bool) {
	if sortBy == "" {
		sortBy = "created_at"
	}
	less := func(a, b *Entity) bool {
		switch sortBy {
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		case "priority":
			return a.Priority < b.Priority
		case "title":
			return a.Title < b.Title
		case "status":
			return a.Status < b.Status
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if asc {
			return less(&list[i], &list[j])
		}
		return less(&list[j], &list[i])
	})
}
