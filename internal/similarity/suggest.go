package similarity

import (
	"fmt"
	"sort"

	"github.com/civicgraph/civicgraph/internal/entity"
)

const (
	// duplicateThreshold classifies a pairwise match as a duplicate.
	duplicateThreshold = 0.8
	// similarThreshold classifies a pairwise match as merely similar.
	similarThreshold = 0.5
	// relevanceFloor is the minimum score for insight suggestions.
	relevanceFloor = 0.2
	// bodyWeight discounts body similarity below title similarity when
	// searching for similar ideas.
	bodyWeight = 0.8
)

// Match pairs a candidate entity with its similarity score.
type Match struct {
	Entity entity.Entity
	Score  float64
}

// SimilarIdeas scores every idea in pool against text using
// max(titleSimilarity, bodySimilarity * 0.8), filters by threshold, and
// returns at most limit matches sorted by score descending.
func SimilarIdeas(text string, pool []entity.Entity, threshold float64, limit int) []Match {
	var matches []Match
	for _, e := range pool {
		if e.Kind != entity.KindIdea {
			continue
		}
		score := weightedScore(text, e)
		if score >= threshold {
			matches = append(matches, Match{Entity: e, Score: score})
		}
	}
	sortMatches(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Duplicate is one pairwise comparison result from Duplicates.
type Duplicate struct {
	Entity      entity.Entity
	Score       float64
	IsDuplicate bool // score >= 0.8
	IsSimilar   bool // 0.5 <= score < 0.8
}

// Duplicates compares idea against every other idea in pool using the
// unweighted max of title and body similarity, returning matches at or above
// threshold sorted by score descending.
func Duplicates(idea entity.Entity, pool []entity.Entity, threshold float64) []Duplicate {
	var out []Duplicate
	for _, other := range pool {
		if other.Kind != entity.KindIdea || other.ID == idea.ID {
			continue
		}
		score := max(Similarity(idea.Title, other.Title), Similarity(idea.Body, other.Body))
		if score < threshold {
			continue
		}
		out = append(out, Duplicate{
			Entity:      other,
			Score:       score,
			IsDuplicate: score >= duplicateThreshold,
			IsSimilar:   score >= similarThreshold && score < duplicateThreshold,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Suggestion proposes a relation edge from the examined entity to a target.
type Suggestion struct {
	Kind   entity.RelationKind
	Target entity.Entity
	Score  float64
}

// CategorizeIdea classifies the idea's own text and searches the pool's
// problems and goals for addresses/pursues relation candidates above the
// relevance floor.
func CategorizeIdea(idea entity.Entity, pool []entity.Entity) (Classification, []Suggestion) {
	class := Classify(idea.Title + " " + idea.Body)

	var suggestions []Suggestion
	suggestions = append(suggestions,
		suggestRelated(idea, pool, entity.KindProblem, entity.RelAddresses, 3)...)
	suggestions = append(suggestions,
		suggestRelated(idea, pool, entity.KindGoal, entity.RelPursues, 3)...)
	return class, suggestions
}

// Insight is one recommendation surfaced for an entity.
type Insight struct {
	Kind        string // "suggest_relation" or "possible_duplicate"
	Message     string
	Suggestions []Suggestion
}

// Insights generates kind-specific recommendations: threatens targets for
// under-related problems, addresses targets for under-related ideas,
// implements targets for under-related actions, and duplicate warnings for
// ideas. Suggestions are the top matches above a fixed 0.2 relevance floor.
func Insights(e entity.Entity, pool []entity.Entity) []Insight {
	var insights []Insight

	switch e.Kind {
	case entity.KindProblem:
		if s := missingKindSuggestions(e, pool, entity.KindGoal, entity.RelThreatens); len(s) > 0 {
			insights = append(insights, Insight{
				Kind:        "suggest_relation",
				Message:     fmt.Sprintf("%d goal(s) look related; consider a threatens link", len(s)),
				Suggestions: s,
			})
		}
	case entity.KindIdea:
		if s := missingKindSuggestions(e, pool, entity.KindProblem, entity.RelAddresses); len(s) > 0 {
			insights = append(insights, Insight{
				Kind:        "suggest_relation",
				Message:     fmt.Sprintf("%d problem(s) look related; consider an addresses link", len(s)),
				Suggestions: s,
			})
		}
		if dups := Duplicates(e, pool, similarThreshold); len(dups) > 0 {
			var s []Suggestion
			for _, d := range dups {
				if len(s) >= 2 {
					break
				}
				s = append(s, Suggestion{Kind: entity.RelDuplicates, Target: d.Entity, Score: d.Score})
			}
			insights = append(insights, Insight{
				Kind:        "possible_duplicate",
				Message:     fmt.Sprintf("%d idea(s) look like duplicates", len(dups)),
				Suggestions: s,
			})
		}
	case entity.KindAction:
		if s := missingKindSuggestions(e, pool, entity.KindIdea, entity.RelImplements); len(s) > 0 {
			insights = append(insights, Insight{
				Kind:        "suggest_relation",
				Message:     fmt.Sprintf("%d idea(s) look related; consider an implements link", len(s)),
				Suggestions: s,
			})
		}
	}
	return insights
}

// missingKindSuggestions returns relation suggestions only when the entity
// carries no edge of that kind yet.
func missingKindSuggestions(e entity.Entity, pool []entity.Entity, targetKind entity.Kind, rel entity.RelationKind) []Suggestion {
	for _, existing := range e.Relations {
		if existing.Kind == rel {
			return nil
		}
	}
	return suggestRelated(e, pool, targetKind, rel, 3)
}

// suggestRelated scores pool entities of targetKind against e's text and
// returns the top limit above the relevance floor.
func suggestRelated(e entity.Entity, pool []entity.Entity, targetKind entity.Kind, rel entity.RelationKind, limit int) []Suggestion {
	text := e.Title + " " + e.Body
	var matches []Match
	for _, candidate := range pool {
		if candidate.Kind != targetKind || candidate.ID == e.ID {
			continue
		}
		score := weightedScore(text, candidate)
		if score >= relevanceFloor {
			matches = append(matches, Match{Entity: candidate, Score: score})
		}
	}
	sortMatches(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	suggestions := make([]Suggestion, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, Suggestion{Kind: rel, Target: m.Entity, Score: m.Score})
	}
	return suggestions
}

// weightedScore is max(title similarity, body similarity * 0.8): titles weigh
// more than bodies.
func weightedScore(text string, candidate entity.Entity) float64 {
	return max(Similarity(text, candidate.Title), Similarity(text, candidate.Body)*bodyWeight)
}

func sortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
}
