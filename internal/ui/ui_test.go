package ui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/civicgraph/civicgraph/internal/entity"
)

func TestBoardTruncatesLongTitlesOnRunes(t *testing.T) {
	t.Parallel()

	title := strings.Repeat("é", 40)
	out := Board(entity.KindAction, []entity.Entity{
		{ID: "act-1111", Kind: entity.KindAction, Title: title, Status: "open"},
	})

	if !utf8.ValidString(out) {
		t.Fatal("board output contains invalid UTF-8")
	}
	if strings.Contains(out, title) {
		t.Error("title not truncated")
	}
	if !strings.Contains(out, strings.Repeat("é", 23)+"…") {
		t.Error("truncated title missing ellipsis form")
	}
}

func TestBoardGroupsByStatus(t *testing.T) {
	t.Parallel()

	out := Board(entity.KindAction, []entity.Entity{
		{ID: "act-1", Kind: entity.KindAction, Title: "a", Status: "open"},
		{ID: "act-2", Kind: entity.KindAction, Title: "b", Status: "completed"},
		{ID: "idea-1", Kind: entity.KindIdea, Title: "c", Status: "proposed"},
	})

	for _, status := range entity.Statuses(entity.KindAction) {
		if !strings.Contains(out, status) {
			t.Errorf("missing %s column", status)
		}
	}
	if strings.Contains(out, "idea-1") {
		t.Error("non-action entity rendered on action board")
	}
}
