package entity

import (
	"errors"
	"testing"
)

func TestDefaultStatus(t *testing.T) {
	t.Parallel()
	cases := map[Kind]string{
		KindGoal:    "active",
		KindProblem: "unacknowledged",
		KindIdea:    "proposed",
		KindAction:  "open",
	}
	for kind, want := range cases {
		if got := DefaultStatus(kind); got != want {
			t.Errorf("DefaultStatus(%s) = %q, want %q", kind, got, want)
		}
	}
}

func TestTerminal(t *testing.T) {
	t.Parallel()
	terminal := []string{"resolved", "completed", "cancelled", "deprecated", "rejected", "superseded", "accepted"}
	for _, s := range terminal {
		if !Terminal(s) {
			t.Errorf("Terminal(%q) = false, want true", s)
		}
	}
	open := []string{"active", "unacknowledged", "proposed", "under_review", "open", "in_progress", "blocked"}
	for _, s := range open {
		if Terminal(s) {
			t.Errorf("Terminal(%q) = true, want false", s)
		}
	}
}

func TestParsePriority(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"4", 4, false},
		{"P2", 2, false},
		{"p1", 1, false},
		{" P3 ", 3, false},
		{"5", 0, true},
		{"-1", 0, true},
		{"high", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParsePriority(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrValidation) {
				t.Errorf("ParsePriority(%q): err = %v, want ErrValidation", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParsePriority(%q) = (%d, %v), want (%d, nil)", tc.in, got, err, tc.want)
		}
	}
}

func TestLocationValidate(t *testing.T) {
	t.Parallel()
	f := func(v float64) *float64 { return &v }

	if err := (&Location{Address: "123 Main St", Lat: f(30.27), Lng: f(-97.74)}).validate(); err != nil {
		t.Errorf("valid location: %v", err)
	}
	if err := (&Location{Lat: f(91)}).validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("lat 91: err = %v, want ErrValidation", err)
	}
	if err := (&Location{Lng: f(-181)}).validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("lng -181: err = %v, want ErrValidation", err)
	}
}

func TestRelationEndpoints(t *testing.T) {
	t.Parallel()
	cases := []struct {
		kind       RelationKind
		from, to   Kind
		dependency bool
	}{
		{RelThreatens, KindProblem, KindGoal, false},
		{RelAddresses, KindIdea, KindProblem, false},
		{RelPursues, KindIdea, KindGoal, false},
		{RelComplements, KindIdea, KindIdea, false},
		{RelDuplicates, KindIdea, KindIdea, false},
		{RelImplements, KindAction, KindIdea, false},
		{RelAdvances, KindAction, KindGoal, false},
		{RelDependsOn, KindAction, KindAction, true},
		{RelRequires, KindAction, KindAction, true},
		{RelBlocks, KindAction, KindAction, true},
	}
	for _, tc := range cases {
		from, to, ok := tc.kind.Endpoints()
		if !ok || from != tc.from || to != tc.to {
			t.Errorf("Endpoints(%s) = (%s, %s, %v), want (%s, %s, true)", tc.kind, from, to, ok, tc.from, tc.to)
		}
		if got := tc.kind.DependencyForming(); got != tc.dependency {
			t.Errorf("DependencyForming(%s) = %v, want %v", tc.kind, got, tc.dependency)
		}
	}

	if _, _, ok := RelationKind("mentions").Endpoints(); ok {
		t.Error("Endpoints(mentions) ok = true, want false")
	}
}
