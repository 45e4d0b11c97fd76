package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/civicgraph/civicgraph/internal/entity"
)

// Semantic color palette.
var (
	colorGoal    = lipgloss.Color("#00BFFF") // Cyan — goals
	colorProblem = lipgloss.Color("#FF5252") // Red — problems
	colorIdea    = lipgloss.Color("#FFD700") // Gold — ideas
	colorAction  = lipgloss.Color("#00E676") // Green — actions
	colorMuted   = lipgloss.Color("#636363") // Gray — de-emphasized
	colorWhite   = lipgloss.Color("#EEEEEE") // Off-white — primary text
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	columnStyle = lipgloss.NewStyle().Width(28).PaddingRight(2)
)

var kindColors = map[entity.Kind]lipgloss.Color{
	entity.KindGoal:    colorGoal,
	entity.KindProblem: colorProblem,
	entity.KindIdea:    colorIdea,
	entity.KindAction:  colorAction,
}

// Status icons.
const (
	iconOpen    = "·"
	iconWorking = "◎"
	iconBlocked = "⊘"
	iconClosed  = "✓"
)

func kindStyle(k entity.Kind) lipgloss.Style {
	c, ok := kindColors[k]
	if !ok {
		c = colorMuted
	}
	return lipgloss.NewStyle().Foreground(c)
}

func statusIcon(e *entity.Entity) string {
	if entity.Terminal(e.Status) {
		return iconClosed
	}
	switch e.Status {
	case "blocked":
		return iconBlocked
	case "in_progress", "being_addressed", "under_review", "acknowledged":
		return iconWorking
	}
	return iconOpen
}
