package entity

import "sort"

// RelationKind identifies a typed directed edge between two entity kinds.
// Every kind declares a fixed (from, to) pair; a relation instance whose
// endpoint kinds do not match its declaration is invalid.
type RelationKind string

const (
	// RelThreatens marks a problem as endangering a goal.
	RelThreatens RelationKind = "threatens"
	// RelAddresses marks an idea as a response to a problem.
	RelAddresses RelationKind = "addresses"
	// RelPursues marks an idea as advancing a goal.
	RelPursues RelationKind = "pursues"
	// RelComplements links two ideas that reinforce each other.
	RelComplements RelationKind = "complements"
	// RelDuplicates marks an idea as a duplicate of another.
	RelDuplicates RelationKind = "duplicates"
	// RelImplements marks an action as carrying out an idea.
	RelImplements RelationKind = "implements"
	// RelAdvances marks an action as directly serving a goal.
	RelAdvances RelationKind = "advances"
	// RelDependsOn orders one action after another. Dependency-forming.
	RelDependsOn RelationKind = "depends_on"
	// RelRequires marks a hard prerequisite between actions. Dependency-forming.
	RelRequires RelationKind = "requires"
	// RelBlocks marks an action as blocking another. Dependency-forming.
	RelBlocks RelationKind = "blocks"
)

type relationSpec struct {
	from       Kind
	to         Kind
	dependency bool
}

var relationSpecs = map[RelationKind]relationSpec{
	RelThreatens:   {KindProblem, KindGoal, false},
	RelAddresses:   {KindIdea, KindProblem, false},
	RelPursues:     {KindIdea, KindGoal, false},
	RelComplements: {KindIdea, KindIdea, false},
	RelDuplicates:  {KindIdea, KindIdea, false},
	RelImplements:  {KindAction, KindIdea, false},
	RelAdvances:    {KindAction, KindGoal, false},
	RelDependsOn:   {KindAction, KindAction, true},
	RelRequires:    {KindAction, KindAction, true},
	RelBlocks:      {KindAction, KindAction, true},
}

// Known reports whether k is a declared relation kind.
func (k RelationKind) Known() bool {
	_, ok := relationSpecs[k]
	return ok
}

// Endpoints returns the declared (from, to) kind pair. ok is false for an
// unknown relation kind.
func (k RelationKind) Endpoints() (from, to Kind, ok bool) {
	spec, ok := relationSpecs[k]
	return spec.from, spec.to, ok
}

// DependencyForming reports whether edges of this kind participate in cycle
// prevention and blocked-status computation.
func (k RelationKind) DependencyForming() bool {
	return relationSpecs[k].dependency
}

// RelationKinds returns all declared relation kinds sorted alphabetically.
func RelationKinds() []RelationKind {
	kinds := make([]RelationKind, 0, len(relationSpecs))
	for k := range relationSpecs {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
