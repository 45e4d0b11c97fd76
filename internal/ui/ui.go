// Package ui renders tracker output for the terminal: entity detail views,
// filtered lists, a status board, dependency reports, and similarity
// suggestions.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/civicgraph/civicgraph/internal/entity"
	"github.com/civicgraph/civicgraph/internal/gov"
	"github.com/civicgraph/civicgraph/internal/relation"
	"github.com/civicgraph/civicgraph/internal/similarity"
)

// Entity renders a full detail view of one entity.
func Entity(e *entity.Entity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n",
		kindStyle(e.Kind).Render(string(e.Kind)),
		titleStyle.Render(e.Title),
		mutedStyle.Render("("+e.ID+")"))
	fmt.Fprintf(&b, "  %s %s  P%d", statusIcon(e), e.Status, e.Priority)
	if e.GovID != "" {
		fmt.Fprintf(&b, "  gov:%s", e.GovID)
	}
	b.WriteString("\n")
	if e.Body != "" {
		fmt.Fprintf(&b, "  %s\n", e.Body)
	}
	if e.Location != nil && e.Location.Address != "" {
		fmt.Fprintf(&b, "  %s\n", mutedStyle.Render("@ "+e.Location.Address))
	}
	if e.Assignee != "" {
		fmt.Fprintf(&b, "  assignee: %s", e.Assignee)
		if e.DueDate != "" {
			fmt.Fprintf(&b, "  due: %s", e.DueDate)
		}
		b.WriteString("\n")
	}
	if e.SupportCount > 0 {
		fmt.Fprintf(&b, "  support: %d\n", e.SupportCount)
	}
	for _, rel := range e.Relations {
		fmt.Fprintf(&b, "  %s %s\n", mutedStyle.Render("→ "+string(rel.Kind)), rel.Target)
	}
	return b.String()
}

// List renders one line per entity.
func List(entities []entity.Entity) string {
	if len(entities) == 0 {
		return mutedStyle.Render("no entities") + "\n"
	}
	var b strings.Builder
	for i := range entities {
		e := &entities[i]
		fmt.Fprintf(&b, "%s %s  %-8s P%d  %s %s\n",
			statusIcon(e),
			mutedStyle.Render(e.ID),
			kindStyle(e.Kind).Render(string(e.Kind)),
			e.Priority,
			e.Title,
			mutedStyle.Render(e.Status))
	}
	return b.String()
}

// Board renders entities in columns grouped by status for one kind.
func Board(kind entity.Kind, entities []entity.Entity) string {
	statuses := entity.Statuses(kind)
	byStatus := make(map[string][]*entity.Entity)
	for i := range entities {
		if entities[i].Kind == kind {
			byStatus[entities[i].Status] = append(byStatus[entities[i].Status], &entities[i])
		}
	}

	columns := make([]string, 0, len(statuses))
	for _, status := range statuses {
		var col strings.Builder
		col.WriteString(headerStyle.Render(status) + "\n")
		for _, e := range byStatus[status] {
			title := e.Title
			if runes := []rune(title); len(runes) > 24 {
				title = string(runes[:23]) + "…"
			}
			fmt.Fprintf(&col, "%s %s\n", mutedStyle.Render(e.ID), title)
		}
		columns = append(columns, columnStyle.Render(col.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...) + "\n"
}

// Blocked renders a blocked-status report.
func Blocked(id string, status *relation.BlockedStatus) string {
	if !status.Blocked {
		return fmt.Sprintf("%s is not blocked\n", id)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s is blocked by %d dependenc(ies):\n", iconBlocked, id, len(status.Blockers))
	for i := range status.Blockers {
		dep := &status.Blockers[i]
		fmt.Fprintf(&b, "  %s %s %s %s\n", statusIcon(dep), mutedStyle.Render(dep.ID), dep.Title,
			mutedStyle.Render(dep.Status))
	}
	return b.String()
}

// Graph renders a dependency-graph projection as indented text edges.
func Graph(g *relation.Graph) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d node(s), %d edge(s)\n", len(g.Nodes), len(g.Edges))
	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "%s %s %s\n", kindStyle(n.Kind).Render(string(n.Kind)), mutedStyle.Render(n.ID), n.Title)
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %s %s %s\n", e.From, mutedStyle.Render(string(e.Kind)+" →"), e.To)
	}
	return b.String()
}

// Relations renders an entity's outgoing and incoming edges.
func Relations(id string, set *relation.RelationSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(id))
	if len(set.Outgoing) == 0 && len(set.Incoming) == 0 {
		b.WriteString(mutedStyle.Render("  no relations") + "\n")
		return b.String()
	}
	for _, rel := range set.Outgoing {
		fmt.Fprintf(&b, "  → %s %s %s\n", string(rel.Kind), mutedStyle.Render(rel.Target.ID), rel.Target.Title)
	}
	for _, rel := range set.Incoming {
		fmt.Fprintf(&b, "  ← %s %s %s\n", string(rel.Kind), mutedStyle.Render(rel.Source.ID), rel.Source.Title)
	}
	return b.String()
}

// Classification renders a classification result with per-kind scores.
func Classification(c similarity.Classification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", kindStyle(c.Kind).Render(string(c.Kind)),
		mutedStyle.Render(fmt.Sprintf("(confidence %.2f)", c.Confidence)))
	for _, kind := range entity.Kinds() {
		fmt.Fprintf(&b, "  %-8s %d\n", kind, c.Scores[kind])
	}
	fmt.Fprintf(&b, "  %s\n", mutedStyle.Render(c.Reasoning))
	return b.String()
}

// Matches renders similarity matches sorted by score.
func Matches(matches []similarity.Match) string {
	if len(matches) == 0 {
		return mutedStyle.Render("no matches") + "\n"
	}
	var b strings.Builder
	for _, m := range matches {
		fmt.Fprintf(&b, "%.2f  %s %s\n", m.Score, mutedStyle.Render(m.Entity.ID), m.Entity.Title)
	}
	return b.String()
}

// Insights renders recommendation insights for one entity.
func Insights(insights []similarity.Insight) string {
	if len(insights) == 0 {
		return mutedStyle.Render("no insights") + "\n"
	}
	var b strings.Builder
	for _, in := range insights {
		fmt.Fprintf(&b, "%s %s\n", titleStyle.Render(in.Kind), in.Message)
		for _, s := range in.Suggestions {
			fmt.Fprintf(&b, "  %.2f  %s %s %s\n", s.Score, string(s.Kind),
				mutedStyle.Render(s.Target.ID), s.Target.Title)
		}
	}
	return b.String()
}

// Governments renders the registry's units.
func Governments(units []gov.Unit) string {
	if len(units) == 0 {
		return mutedStyle.Render("no governments registered") + "\n"
	}
	var b strings.Builder
	for _, u := range units {
		fmt.Fprintf(&b, "%s  %-24s %s %s\n", mutedStyle.Render(u.ID), u.Name,
			mutedStyle.Render(u.Slug), u.Type)
	}
	return b.String()
}
