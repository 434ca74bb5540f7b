package psystem

// Candidate is a rule paired with the membrane-tree location it would act
// on if chosen, resolved once by the applicability engine so the
// derivation and apply phases never have to re-walk the tree to find it.
type Candidate struct {
	Rule  Rule
	Kind  RuleKind
	Child *Membrane // set for MembraneRule candidates
	Index int       // child's index in m.Children, set for MembraneRule candidates
}

// ApplicableRules returns the object rules and membrane rules of m that are
// ready to fire in the current state, per spec.md §4.4.
//
// Object rules are returned in registration order, filtered by priority: a
// rule whose Priority names an already-accepted rule id is excluded. Rules
// with no Priority are always accepted once ready.
//
// Membrane rules are returned in reverse child order, so that a caller
// removing a child by index (MEMwOB, dissolution) while iterating the
// result front to back never shifts the index of a not-yet-processed
// candidate.
func ApplicableRules(m *Membrane, sys *System) (objectRules, membraneRules []Candidate) {
	accepted := make(map[string]bool)

	for _, r := range sys.RulesFor(m.ID, ObjectRule) {
		if m.Objects.ContainsCopies(r.Left) < 1 {
			continue
		}
		if len(r.Priority) > 0 && dominatedByAccepted(r.Priority, accepted) {
			continue
		}
		objectRules = append(objectRules, Candidate{Rule: r, Kind: ObjectRule})
		if r.ID != "" {
			accepted[r.ID] = true
		}
	}

	rules := sys.RulesFor(m.ID, MembraneRule)
	var forward []Candidate
	for i, child := range m.Children {
		for _, r := range rules {
			if r.MemIdx != child.ID {
				continue
			}
			if child.Objects.ContainsCopies(r.Left) < 1 {
				continue
			}
			forward = append(forward, Candidate{Rule: r, Kind: MembraneRule, Child: child, Index: i})
		}
	}
	for i := len(forward) - 1; i >= 0; i-- {
		membraneRules = append(membraneRules, forward[i])
	}
	return objectRules, membraneRules
}

func dominatedByAccepted(priority []string, accepted map[string]bool) bool {
	for _, id := range priority {
		if accepted[id] {
			return true
		}
	}
	return false
}
