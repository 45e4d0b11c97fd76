// Package similarity provides pure text heuristics over entity text: keyword
// classification into the four entity kinds and Jaccard set-similarity for
// duplicate and related-item detection. Nothing here touches the store;
// callers pass in the candidate entities.
package similarity

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/civicgraph/civicgraph/internal/entity"
)

// keywords holds the per-kind keyword lists scored by Classify. Matching is
// case-insensitive substring containment; each matched keyword counts once.
var keywords = map[entity.Kind][]string{
	entity.KindGoal: {
		"goal", "vision", "objective", "aim", "achieve", "target",
		"improve", "increase", "reduce", "expand", "long-term", "by 2030",
	},
	entity.KindProblem: {
		"problem", "issue", "broken", "fix", "pothole", "damaged",
		"unsafe", "dangerous", "complaint", "leak", "failing", "overflow",
		"graffiti", "outage",
	},
	entity.KindIdea: {
		"idea", "propose", "proposal", "suggest", "suggestion", "could",
		"should", "what if", "recommend", "consider", "maybe",
	},
	entity.KindAction: {
		"action", "task", "implement", "schedule", "deploy", "assign",
		"build", "install", "repair", "inspect", "contract", "budget for",
	},
}

// Classification is the result of scoring a text against the four kinds.
type Classification struct {
	Kind       entity.Kind         `json:"type"`
	Confidence float64             `json:"confidence"`
	Scores     map[entity.Kind]int `json:"scores"`
	Reasoning  string              `json:"reasoning"`
}

// Classify scores text against each kind's keyword list and picks the argmax.
// Ties break by the canonical kind enumeration order (goal, problem, idea,
// action). When nothing matches, the result is idea at confidence 0.25 — a
// uniform one-of-four prior. Confidence is bestScore / sum of all scores.
func Classify(text string) Classification {
	lower := strings.ToLower(text)
	scores := make(map[entity.Kind]int, 4)
	total := 0
	for _, kind := range entity.Kinds() {
		score := 0
		for _, kw := range keywords[kind] {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		scores[kind] = score
		total += score
	}

	best := entity.KindIdea
	bestScore := 0
	for _, kind := range entity.Kinds() {
		if scores[kind] > bestScore {
			best = kind
			bestScore = scores[kind]
		}
	}

	if total == 0 {
		return Classification{
			Kind:       entity.KindIdea,
			Confidence: 0.25,
			Scores:     scores,
			Reasoning:  "no keywords matched; defaulting to idea",
		}
	}
	return Classification{
		Kind:       best,
		Confidence: float64(bestScore) / float64(total),
		Scores:     scores,
		Reasoning:  fmt.Sprintf("%d of %d keyword matches favor %s", bestScore, total, best),
	}
}

// Tokenize lower-cases text, strips punctuation, and splits on whitespace,
// returning the resulting word set.
func Tokenize(text string) map[string]bool {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)
	set := make(map[string]bool)
	for _, w := range strings.Fields(cleaned) {
		set[w] = true
	}
	return set
}

// Similarity returns the Jaccard coefficient of the two texts' word sets:
// |intersection| / |union|, in [0, 1]. An empty input or empty union scores 0.
func Similarity(a, b string) float64 {
	ta := Tokenize(a)
	tb := Tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	intersection := 0
	for w := range ta {
		if tb[w] {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
