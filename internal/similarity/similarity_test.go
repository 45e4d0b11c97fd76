package similarity

import (
	"math"
	"testing"

	"github.com/civicgraph/civicgraph/internal/entity"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		text string
		want entity.Kind
	}{
		{"problem keywords", "fix the broken streetlight", entity.KindProblem},
		{"goal keywords", "our vision is to reduce traffic deaths by 2030", entity.KindGoal},
		{"idea keywords", "what if we propose a bike share program", entity.KindIdea},
		{"action keywords", "schedule a crew to install and repair the signs", entity.KindAction},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := Classify(tc.text)
			if c.Kind != tc.want {
				t.Errorf("Classify(%q).Kind = %s, want %s (scores %v)", tc.text, c.Kind, tc.want, c.Scores)
			}
			if c.Confidence <= 0 || c.Confidence > 1 {
				t.Errorf("Confidence = %v, want (0, 1]", c.Confidence)
			}
		})
	}
}

func TestClassifyNoMatches(t *testing.T) {
	t.Parallel()
	c := Classify("zzz qqq")
	if c.Kind != entity.KindIdea {
		t.Errorf("Kind = %s, want idea default", c.Kind)
	}
	if c.Confidence != 0.25 {
		t.Errorf("Confidence = %v, want 0.25", c.Confidence)
	}
}

func TestClassifyTieBreaksByKindOrder(t *testing.T) {
	t.Parallel()
	// One goal keyword and one problem keyword: goal enumerates first.
	c := Classify("achieve a pothole")
	if c.Kind != entity.KindGoal {
		t.Errorf("Kind = %s, want goal on tie (scores %v)", c.Kind, c.Scores)
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()
	got := Tokenize("Fix the STREET-light, fix it!")
	want := []string{"fix", "the", "street", "light", "it"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize = %v, want %d tokens", got, len(want))
	}
	for _, w := range want {
		if !got[w] {
			t.Errorf("missing token %q in %v", w, got)
		}
	}
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	if got := Similarity("pothole on main street", "pothole on main street"); got != 1.0 {
		t.Errorf("identical texts = %v, want 1.0", got)
	}
	if got := Similarity("pothole repair", "library hours"); got != 0 {
		t.Errorf("disjoint texts = %v, want 0", got)
	}
	if got := Similarity("", "pothole"); got != 0 {
		t.Errorf("empty input = %v, want 0", got)
	}

	a, b := "fix the pothole", "pothole on elm"
	if s1, s2 := Similarity(a, b), Similarity(b, a); s1 != s2 {
		t.Errorf("asymmetric: %v vs %v", s1, s2)
	}
	// {fix, the, pothole} ∪ {pothole, on, elm} has 5 words, 1 shared.
	if got := Similarity(a, b); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("Similarity = %v, want 0.2", got)
	}
}
