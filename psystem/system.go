package psystem

// RuleKind distinguishes rules that consume a membrane's own objects from
// rules that act on a named child membrane (spec.md §3: "rules: mapping
// (membrane-id, rule-kind)→ordered list").
type RuleKind int

const (
	ObjectRule RuleKind = iota
	MembraneRule
)

// Semantics selects the derivation mode the driver applies per step.
type Semantics int

const (
	MinParallel Semantics = iota
	MaxParallel
)

func (s Semantics) String() string {
	if s == MaxParallel {
		return "MAX_PARALLEL"
	}
	return "MIN_PARALLEL"
}

// ruleKey addresses a rule list by the membrane it is registered against
// and whether it governs that membrane's own objects or one of its
// children.
type ruleKey struct {
	membraneID string
	kind       RuleKind
}

// OutputSpec names the membrane the driver reads observed symbol counts
// from at the end of each step.
type OutputSpec struct {
	MembraneID string
	Symbols    []string
}

// System is the parsed, ready-to-run description spec.md §6 calls the
// "system description": an alphabet, a membrane tree, a rule table and an
// optional output spec. Parsing a concrete file format into a System is
// explicitly out of scope (spec.md §1).
type System struct {
	Alphabet  []string
	Root      *Membrane
	Semantics Semantics
	Output    *OutputSpec

	rules map[ruleKey][]Rule
}

// NewSystem constructs an empty rule table around root.
func NewSystem(root *Membrane, semantics Semantics) *System {
	return &System{
		Root:      root,
		Semantics: semantics,
		rules:     make(map[ruleKey][]Rule),
	}
}

// AddRule validates r and registers it against membraneID under the rule
// kind implied by whether r targets a child membrane (IsMembraneRule).
func (s *System) AddRule(membraneID string, r Rule) error {
	if err := r.Validate(); err != nil {
		return err
	}
	kind := ObjectRule
	if r.IsMembraneRule() {
		kind = MembraneRule
	}
	key := ruleKey{membraneID: membraneID, kind: kind}
	s.rules[key] = append(s.rules[key], r)
	return nil
}

// RulesFor returns the rules registered for membraneID under kind, in
// registration order. The returned slice is owned by the System; callers
// must not mutate it.
func (s *System) RulesFor(membraneID string, kind RuleKind) []Rule {
	return s.rules[ruleKey{membraneID: membraneID, kind: kind}]
}

// FindMembrane returns the first membrane in the tree rooted at s.Root
// whose ID equals id, or nil. Membrane ids are not required to be unique
// across the tree (spec.md §3); this returns a pre-order first match.
func (s *System) FindMembrane(id string) *Membrane {
	var find func(*Membrane) *Membrane
	find = func(m *Membrane) *Membrane {
		if m.ID == id {
			return m
		}
		for _, c := range m.Children {
			if found := find(c); found != nil {
				return found
			}
		}
		return nil
	}
	return find(s.Root)
}
