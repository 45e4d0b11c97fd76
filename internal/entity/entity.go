// Package entity defines the civic tracker's data model — goals, problems,
// ideas, and actions — together with the typed relation table, per-kind status
// machines, and the repository that enforces field invariants over a record
// store.
package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies one of the four tracked entity kinds.
type Kind string

const (
	KindGoal    Kind = "goal"
	KindProblem Kind = "problem"
	KindIdea    Kind = "idea"
	KindAction  Kind = "action"
)

// Kinds returns all entity kinds in canonical enumeration order. Classification
// tie-breaking depends on this order, so it must not change.
func Kinds() []Kind {
	return []Kind{KindGoal, KindProblem, KindIdea, KindAction}
}

// Valid reports whether k is a recognized entity kind.
func (k Kind) Valid() bool {
	switch k {
	case KindGoal, KindProblem, KindIdea, KindAction:
		return true
	}
	return false
}

// statusesByKind holds the status enum for each kind. The first element is the
// default status assigned at creation.
var statusesByKind = map[Kind][]string{
	KindGoal:    {"active", "deprecated"},
	KindProblem: {"unacknowledged", "acknowledged", "being_addressed", "resolved"},
	KindIdea:    {"proposed", "under_review", "accepted", "rejected", "superseded"},
	KindAction:  {"open", "in_progress", "blocked", "completed", "cancelled"},
}

// terminalStatuses are the closure statuses. Entering one sets closed_at;
// leaving one clears it.
var terminalStatuses = map[string]bool{
	"resolved":   true,
	"completed":  true,
	"cancelled":  true,
	"deprecated": true,
	"rejected":   true,
	"superseded": true,
	"accepted":   true,
}

// Statuses returns the status enum for kind, in declaration order.
func Statuses(kind Kind) []string {
	return statusesByKind[kind]
}

// DefaultStatus returns the status assigned when none is supplied at creation:
// the first element of the kind's status enum.
func DefaultStatus(kind Kind) string {
	ss := statusesByKind[kind]
	if len(ss) == 0 {
		return ""
	}
	return ss[0]
}

// ValidStatus reports whether status belongs to kind's status enum.
func ValidStatus(kind Kind, status string) bool {
	for _, s := range statusesByKind[kind] {
		if s == status {
			return true
		}
	}
	return false
}

// Terminal reports whether status represents closure.
func Terminal(status string) bool {
	return terminalStatuses[status]
}

// Relation is a directed, typed edge stored on its source entity. The target
// does not store a mirror; incoming edges are discovered by scanning.
type Relation struct {
	Kind   RelationKind `json:"type"`
	Target string       `json:"target"`
}

// HistoryEntry is one append-only change record on an entity.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Field     string    `json:"field,omitempty"`
	OldValue  string    `json:"old_value,omitempty"`
	NewValue  string    `json:"new_value,omitempty"`
}

// Location is a problem's optional address and coordinates. Each field is
// validated independently; any may be absent.
type Location struct {
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// Entity is the unit of tracked work. Kind-specific fields are only populated
// for the matching kind: Location and ReportCount on problems, Supporters and
// classification fields on ideas, Assignee and DueDate on actions.
type Entity struct {
	ID        string         `json:"id"`
	Kind      Kind           `json:"type"`
	Title     string         `json:"title"`
	Body      string         `json:"body,omitempty"`
	Priority  int            `json:"priority"`
	Status    string         `json:"status"`
	GovID     string         `json:"gov_id,omitempty"`
	Relations []Relation     `json:"relations,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	ClosedAt  *time.Time     `json:"closed_at,omitempty"`
	History   []HistoryEntry `json:"history,omitempty"`

	Location    *Location `json:"location,omitempty"`
	ReportCount int       `json:"report_count,omitempty"`

	Supporters       []string `json:"supporters,omitempty"`
	SupportCount     int      `json:"support_count,omitempty"`
	SimilarIdeas     []string `json:"similar_ideas,omitempty"`
	AIClassification string   `json:"ai_classification,omitempty"`

	Assignee string `json:"assignee,omitempty"`
	DueDate  string `json:"due_date,omitempty"`
}

// HasRelation reports whether the entity carries an identical (kind, target)
// edge.
func (e *Entity) HasRelation(kind RelationKind, target string) bool {
	for _, r := range e.Relations {
		if r.Kind == kind && r.Target == target {
			return true
		}
	}
	return false
}

// Supports reports whether supporter already appears in the idea's supporter
// set.
func (e *Entity) Supports(supporter string) bool {
	for _, s := range e.Supporters {
		if s == supporter {
			return true
		}
	}
	return false
}

// ParsePriority parses a priority in numeric ("2") or prefixed ("P2") form and
// range-checks it. 0 is the most urgent, 4 the least.
func ParsePriority(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if p, ok := strings.CutPrefix(strings.ToUpper(s), "P"); ok {
		s = p
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, validationf(CatPriority, "priority", "priority %q is not a number or P<n> form", raw)
	}
	if n < 0 || n > 4 {
		return 0, validationf(CatPriority, "priority", "priority %d out of range 0-4", n)
	}
	return n, nil
}

func (l *Location) validate() error {
	if l == nil {
		return nil
	}
	if len(l.Address) > 500 {
		return validationf(CatLocation, "location.address", "address exceeds 500 characters (%d)", len(l.Address))
	}
	if l.Lat != nil && (*l.Lat < -90 || *l.Lat > 90) {
		return validationf(CatLocation, "location.lat", "latitude %v out of range [-90, 90]", *l.Lat)
	}
	if l.Lng != nil && (*l.Lng < -180 || *l.Lng > 180) {
		return validationf(CatLocation, "location.lng", "longitude %v out of range [-180, 180]", *l.Lng)
	}
	return nil
}

func formatPriority(p int) string {
	return fmt.Sprintf("P%d", p)
}
