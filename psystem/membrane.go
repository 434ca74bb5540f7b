package psystem

import (
	"fmt"

	"github.com/jtomasevic/psystem/multiset"
)

// Membrane is a node in the membrane tree. Parent is a non-owning back
// reference (nil at the skin); Children is the owning, ordered list whose
// index is observable (MEMwOB addresses children by position).
type Membrane struct {
	ID           string
	Multiplicity int
	Capacity     int // carried per spec.md §3/§9, never enforced by this core

	Parent   *Membrane
	Children []*Membrane
	Objects  multiset.Multiset

	alive bool
}

// NewMembrane creates a detached, alive membrane with an empty object
// multiset.
func NewMembrane(id string, multiplicity, capacity int) *Membrane {
	return &Membrane{
		ID:           id,
		Multiplicity: multiplicity,
		Capacity:     capacity,
		Objects:      multiset.New(),
		alive:        true,
	}
}

// AddChild appends child to m.Children and sets its Parent back-reference.
func (m *Membrane) AddChild(child *Membrane) {
	child.Parent = m
	m.Children = append(m.Children, child)
}

// Alive reports whether the membrane is still part of the tree. Dissolved
// membranes are never resurrected (spec.md §4.3 state machine).
func (m *Membrane) Alive() bool {
	return m.alive
}

// childIndex returns the index of child within m.Children, or -1.
func (m *Membrane) childIndex(child *Membrane) int {
	for i, c := range m.Children {
		if c == child {
			return i
		}
	}
	return -1
}

func (m *Membrane) removeChildAt(idx int) *Membrane {
	child := m.Children[idx]
	m.Children = append(m.Children[:idx], m.Children[idx+1:]...)
	return child
}

// ApplyHere subtracts k*r.Left from m and adds k*r.Right to m.
func (m *Membrane) ApplyHere(r Rule, k int) error {
	return applyLeftRight(m.Objects, m.Objects, r, k)
}

// ApplyOut subtracts k*r.Left from m and adds k*r.Right to m.Parent. If m
// has no parent (m is the skin), the products are discarded — spec.md §7's
// documented soft error. ApplyOut itself does not log or trace this; the
// Driver records it after the call.
func (m *Membrane) ApplyOut(r Rule, k int) error {
	if err := subtract(m.Objects, r.Left, k); err != nil {
		return err
	}
	if m.Parent != nil {
		return add(m.Parent.Objects, r.Right, k)
	}
	return nil
}

// ApplyIn subtracts k*r.Left from m and adds k*r.Right to dest, which must
// be one of m's children.
func (m *Membrane) ApplyIn(r Rule, dest *Membrane, k int) error {
	if m.childIndex(dest) < 0 {
		return ErrDestinationNotChild
	}
	return applyLeftRight(m.Objects, dest.Objects, r, k)
}

// ApplyMoveMem applies r once under HERE semantics to the child at
// childIndex, then removes that child from m, inserts it into dest's
// children and updates its parent pointer. If r cannot be applied, the
// child stays where it was and the tree is unchanged.
func (m *Membrane) ApplyMoveMem(r Rule, dest *Membrane, childIndex int) error {
	if childIndex < 0 || childIndex >= len(m.Children) {
		return ErrMoveTargetNotFound
	}
	child := m.Children[childIndex]
	if err := child.ApplyHere(r, 1); err != nil {
		return err
	}
	m.removeChildAt(childIndex)
	dest.AddChild(child)
	return nil
}

// ApplyDissolveToParent applies r once (HERE) to m, merges m's objects into
// m.Parent (sum), removes m from its parent's children, and splices m's own
// children into the parent's children list at the position m occupied —
// preserving their relative order (spec.md §4.3; original_source never
// re-parents at all, so this placement is this module's decision, recorded
// in DESIGN.md).
func (m *Membrane) ApplyDissolveToParent(r Rule) error {
	if m.Parent == nil {
		return fmt.Errorf("psystem: cannot dissolve the skin membrane")
	}
	if err := m.ApplyHere(r, 1); err != nil {
		return err
	}
	parent := m.Parent
	idx := parent.childIndex(m)
	if idx < 0 {
		return ErrMoveTargetNotFound
	}

	parent.Objects = parent.Objects.Sum(m.Objects)

	replacement := make([]*Membrane, 0, len(parent.Children)-1+len(m.Children))
	replacement = append(replacement, parent.Children[:idx]...)
	for _, c := range m.Children {
		c.Parent = parent
		replacement = append(replacement, c)
	}
	replacement = append(replacement, parent.Children[idx+1:]...)
	parent.Children = replacement

	m.alive = false
	m.Parent = nil
	m.Children = nil
	return nil
}

// ApplyDMEM subtracts k*r.Left from m, then for each entry of r.DMEMRight:
// HERE entries add to m; DMEM entries add (symbol, k*count) independently,
// with probability r.Probability, to each sibling whose id equals the
// entry's target.
func (m *Membrane) ApplyDMEM(r Rule, k int, rng RNG) error {
	if err := subtract(m.Objects, r.Left, k); err != nil {
		return err
	}
	for move, entries := range r.DMEMRight {
		switch move {
		case Here:
			for _, e := range entries {
				if _, err := m.Objects.Add(e.Symbol, e.Count*k); err != nil {
					return err
				}
			}
		case DMEM:
			if m.Parent == nil {
				continue // no siblings at the skin
			}
			for _, e := range entries {
				for _, sibling := range m.Parent.Children {
					if sibling == m || sibling.ID != e.Target {
						continue
					}
					if rng.Float64() < r.Probability {
						if _, err := sibling.Objects.Add(e.Symbol, e.Count*k); err != nil {
							return err
						}
					}
				}
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnhandledDMEMMove, move)
		}
	}
	return nil
}

func applyLeftRight(from, to multiset.Multiset, r Rule, k int) error {
	if err := subtract(from, r.Left, k); err != nil {
		return err
	}
	return add(to, r.Right, k)
}

// subtract is atomic: it first verifies m holds k whole copies of left so a
// rule short on reactants never leaves a partially-consumed multiset
// behind (spec.md §4.3).
func subtract(m multiset.Multiset, left multiset.Multiset, k int) error {
	if k > 0 && m.ContainsCopies(left) < k {
		return ErrInsufficientObjects
	}
	for s, n := range left {
		if _, err := m.Sub(s, n*k); err != nil {
			return err
		}
	}
	return nil
}

func add(m multiset.Multiset, right multiset.Multiset, k int) error {
	for s, n := range right {
		if _, err := m.Add(s, n*k); err != nil {
			return err
		}
	}
	return nil
}
