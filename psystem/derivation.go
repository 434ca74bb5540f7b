package psystem

import "github.com/jtomasevic/psystem/multiset"

// Firing is one queued rule application: apply Candidate.Rule Count times
// at Membrane (and, for a MembraneRule candidate, at Candidate.Child).
type Firing struct {
	Membrane  *Membrane
	Candidate Candidate
	Count     int
}

// isDissolving reports whether a move structurally removes its membrane,
// the bucketing test spec.md §4.5.2 uses to decide application order
// ("object-affecting firings are queued before membrane-affecting
// firings") — note this is about the move code, not about
// RuleKind(ObjectRule vs MembraneRule): MEMwOB is a MembraneRule kind but
// still counts as an "object-affecting" (obj-bucket) firing here, exactly
// as in original_source's generate_maximal_group.
func isDissolving(mc MoveCode) bool {
	return mc == Diss || mc == DissKeep
}

// DeriveStep computes the queue of firings for one step of the tree rooted
// at root, under the given semantics, in the deterministic pre-order
// spec.md §5 requires: parent before children, children in stored order,
// and within a membrane object-affecting firings before membrane-affecting
// ones.
func DeriveStep(root *Membrane, sys *System, rng RNG) []Firing {
	var queue []Firing
	var walk func(*Membrane)
	walk = func(m *Membrane) {
		switch sys.Semantics {
		case MaxParallel:
			queue = append(queue, maxParallelStep(m, sys, rng)...)
		default:
			queue = append(queue, minParallelStep(m, sys, rng)...)
		}
		for _, c := range m.Children {
			walk(c)
		}
	}
	walk(root)
	return queue
}

// minParallelStep implements spec.md §4.5.1: at most one rule fires at m
// per step, chosen by categorical sampling over the applicable rules' own
// probabilities (normalized if their sum exceeds 1, padded with a no-op
// mass if it falls short of 1).
func minParallelStep(m *Membrane, sys *System, rng RNG) []Firing {
	objectRules, membraneRules := ApplicableRules(m, sys)
	candidates := append(append([]Candidate(nil), objectRules...), membraneRules...)
	if len(candidates) == 0 {
		return nil
	}

	weights := make([]float64, 0, len(candidates)+1)
	sum := 0.0
	for _, c := range candidates {
		weights = append(weights, c.Rule.Probability)
		sum += c.Rule.Probability
	}

	noOpIndex := -1
	switch {
	case sum > 1:
		for i := range weights {
			weights[i] /= sum
		}
	case sum < 1:
		weights = append(weights, 1-sum)
		noOpIndex = len(weights) - 1
	}

	chosen := categorical(rng, weights)
	if chosen == noOpIndex {
		return nil
	}
	return []Firing{{Membrane: m, Candidate: candidates[chosen], Count: 1}}
}

// maxParallelStep implements spec.md §4.5.2: greedily accumulate a
// non-extendable multiset of firings by repeatedly picking a still-viable
// candidate at random, gating it on its own probability, and shrinking a
// scratch copy of m's objects until no candidate remains viable.
func maxParallelStep(m *Membrane, sys *System, rng RNG) []Firing {
	objectRules, membraneRules := ApplicableRules(m, sys)
	remaining := append(append([]Candidate(nil), objectRules...), membraneRules...)
	if len(remaining) == 0 {
		return nil
	}

	scratch := m.Objects.Clone()
	type accumulated struct {
		candidate Candidate
		count     int
	}
	objGroup := make(map[string]*accumulated)
	memGroup := make(map[string]*accumulated)
	var objOrder, memOrder []string

	for len(remaining) > 0 {
		i := rng.IntN(len(remaining))
		cand := remaining[i]

		left := leftHandSide(cand)
		if scratch.ContainsCopies(left) == 0 {
			remaining = append(remaining[:i], remaining[i+1:]...)
			continue
		}

		if cand.Rule.Probability < 1 && rng.Float64() < 1-cand.Rule.Probability {
			continue // gated out this time; rule stays eligible for a later draw
		}

		group, order := objGroup, &objOrder
		if isDissolving(cand.Rule.Move) {
			group, order = memGroup, &memOrder
		}
		if acc, ok := group[cand.Rule.ID]; ok {
			acc.count++
		} else {
			group[cand.Rule.ID] = &accumulated{candidate: cand, count: 1}
			*order = append(*order, cand.Rule.ID)
		}

		if cand.Kind == MembraneRule {
			// The candidate's reactants live in its child, not in m, so
			// scratch never reflects their depletion; removing it here
			// after it fires keeps the loop's termination bound intact
			// (spec.md §4.5.2: "every iteration either removes a rule ...
			// or decrements O by a non-empty multiset").
			remaining = append(remaining[:i], remaining[i+1:]...)
			continue
		}
		scratch = scratch.Difference(left)
	}

	firings := make([]Firing, 0, len(objOrder)+len(memOrder))
	for _, id := range objOrder {
		acc := objGroup[id]
		firings = append(firings, Firing{Membrane: m, Candidate: acc.candidate, Count: acc.count})
	}
	for _, id := range memOrder {
		acc := memGroup[id]
		firings = append(firings, Firing{Membrane: m, Candidate: acc.candidate, Count: acc.count})
	}
	return firings
}

// leftHandSide returns the requirement a candidate is checked against in
// max-par's scratch copy of m's objects: the rule's Left for an ObjectRule,
// and an empty multiset for a MembraneRule. max-par's scratch bookkeeping
// only tracks m's own objects, and a MembraneRule's reactants live in the
// child, not in m, so its empty requirement is always satisfiable and never
// depletes the scratch copy.
func leftHandSide(c Candidate) multiset.Multiset {
	if c.Kind == MembraneRule {
		return multiset.New()
	}
	return c.Rule.Left
}
