package psystem

import (
	"fmt"
	"sort"

	"github.com/jtomasevic/psystem/multiset"
)

// DMEMEntry is one (symbol, count, target membrane id) tuple inside a DMEM
// rule's right-hand side, keyed by the move it is delivered under (HERE or
// DMEM — see Rule.DMEMRight).
type DMEMEntry struct {
	Symbol multiset.Symbol
	Count  int
	Target string // meaningful only for a DMEM-keyed entry
}

// DMEMRight is the by-target product map used by DMEM rules, as opposed to
// the plain Multiset right-hand side every other move uses. Keeping the two
// shapes as distinct fields on Rule (rather than forcing one interface) is
// the "algebraic variant" design spec.md §9 asks for: a rule either carries
// Right or DMEMRight, never both.
type DMEMRight map[MoveCode][]DMEMEntry

// Rule is an immutable rewriting descriptor. Equality is by ID within the
// rule list of the membrane it is registered against; Rule carries no
// behavior beyond what Membrane's apply_* methods interpret it as.
type Rule struct {
	ID          string
	Left        multiset.Multiset
	Right       multiset.Multiset // set when Move is not DMEM
	DMEMRight   DMEMRight         // set when Move == DMEM
	Move        MoveCode
	Probability float64
	Priority    []string // rule ids this rule is dominated by
	Destination string   // membrane id, for IN/MEMwOB
	MemIdx      string   // child membrane id selected on the LHS, membrane rules only
}

// Validate checks the domain invariants spec.md §3/§7 place on a rule in
// isolation (it cannot check cross-rule priority references, which is an
// applicability-engine concern).
func (r Rule) Validate() error {
	if len(r.Priority) > 0 && r.ID == "" {
		return ErrPriorityWithoutID
	}
	if !r.Move.implemented() {
		return fmt.Errorf("%w: %s", ErrMoveNotImplemented, r.Move)
	}
	if r.Move == DMEM {
		for move := range r.DMEMRight {
			if move != Here && move != DMEM {
				return fmt.Errorf("%w: %s", ErrUnhandledDMEMMove, move)
			}
		}
	}
	return nil
}

// IsMembraneRule reports whether this rule's LHS is keyed against a child
// membrane (MemIdx set) rather than this membrane's own objects.
func (r Rule) IsMembraneRule() bool {
	return r.MemIdx != ""
}

// String renders the canonical single-line representation spec.md §6 asks
// trace lines to embed.
func (r Rule) String() string {
	priority := append([]string(nil), r.Priority...)
	sort.Strings(priority)

	right := interface{}(r.Right)
	if r.Move == DMEM {
		right = r.DMEMRight
	}

	return fmt.Sprintf(
		"Rule(id=%s, left=%v, right=%v, prob=%g, priority=%v, move=%s, destination=%s, mem_idx=%s)",
		r.ID, map[multiset.Symbol]int(r.Left), right, r.Probability, priority, r.Move, r.Destination, r.MemIdx,
	)
}
