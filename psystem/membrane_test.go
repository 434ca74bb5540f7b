package psystem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jtomasevic/psystem/multiset"
)

func ms(counts map[multiset.Symbol]int) multiset.Multiset {
	return multiset.FromCounts(counts)
}

func TestApplyHere(t *testing.T) {
	m := NewMembrane("s", 1, 0)
	m.Objects = ms(map[multiset.Symbol]int{"a": 3})
	r := Rule{ID: "r1", Left: ms(map[multiset.Symbol]int{"a": 1}), Right: ms(map[multiset.Symbol]int{"b": 1}), Move: Here}

	require.NoError(t, m.ApplyHere(r, 0), "k=0 is a no-op")
	require.Equal(t, 3, m.Objects.Count("a"))

	require.NoError(t, m.ApplyHere(r, 3))
	require.Equal(t, 0, m.Objects.Count("a"))
	require.Equal(t, 3, m.Objects.Count("b"))
}

func TestApplyOutToParent(t *testing.T) {
	s := NewMembrane("s", 1, 0)
	c := NewMembrane("c", 1, 0)
	s.AddChild(c)
	c.Objects = ms(map[multiset.Symbol]int{"a": 2})
	r := Rule{ID: "r1", Left: ms(map[multiset.Symbol]int{"a": 1}), Right: ms(map[multiset.Symbol]int{"a": 1}), Move: Out}

	require.NoError(t, c.ApplyOut(r, 2))
	require.Equal(t, 0, c.Objects.Count("a"))
	require.Equal(t, 2, s.Objects.Count("a"))
}

func TestApplyOutAtRootDiscards(t *testing.T) {
	s := NewMembrane("s", 1, 0)
	s.Objects = ms(map[multiset.Symbol]int{"a": 2})
	r := Rule{ID: "r1", Left: ms(map[multiset.Symbol]int{"a": 1}), Right: ms(map[multiset.Symbol]int{"a": 1}), Move: Out}

	require.NoError(t, s.ApplyOut(r, 2))
	require.Equal(t, 0, s.Objects.Count("a"), "reactants still consumed even though products are discarded")
}

func TestApplyInToNamedChild(t *testing.T) {
	s := NewMembrane("s", 1, 0)
	h1 := NewMembrane("h1", 1, 0)
	h2 := NewMembrane("h2", 1, 0)
	s.AddChild(h1)
	s.AddChild(h2)
	s.Objects = ms(map[multiset.Symbol]int{"a": 4})
	r := Rule{ID: "r1", Left: ms(map[multiset.Symbol]int{"a": 1}), Right: ms(map[multiset.Symbol]int{"x": 1}), Move: In, Destination: "h1"}

	require.NoError(t, s.ApplyIn(r, h1, 4))
	require.Equal(t, 0, s.Objects.Count("a"))
	require.Equal(t, 4, h1.Objects.Count("x"))
	require.Equal(t, 0, h2.Objects.Count("x"))
}

func TestApplyInRejectsNonChildDestination(t *testing.T) {
	s := NewMembrane("s", 1, 0)
	stranger := NewMembrane("stranger", 1, 0)
	r := Rule{ID: "r1", Left: ms(nil), Right: ms(nil), Move: In}
	require.ErrorIs(t, s.ApplyIn(r, stranger, 1), ErrDestinationNotChild)
}

func TestApplyMoveMem(t *testing.T) {
	s := NewMembrane("s", 1, 0)
	a := NewMembrane("a", 1, 0)
	b := NewMembrane("b", 1, 0)
	s.AddChild(a)
	s.AddChild(b)
	target := NewMembrane("target", 1, 0)
	r := Rule{ID: "r1", Left: ms(nil), Right: ms(map[multiset.Symbol]int{"z": 1}), Move: MemwOB, Destination: "target"}

	require.NoError(t, s.ApplyMoveMem(r, target, 0))
	require.Len(t, s.Children, 1)
	require.Equal(t, "b", s.Children[0].ID, "remaining child keeps its place")
	require.Len(t, target.Children, 1)
	require.Same(t, target, a.Parent)
	require.Equal(t, 1, a.Objects.Count("z"))
}

func TestApplyDissolveToParent(t *testing.T) {
	s := NewMembrane("s", 1, 0)
	c := NewMembrane("c", 1, 0)
	s.AddChild(c)
	s.Objects = ms(map[multiset.Symbol]int{"b": 1})
	c.Objects = ms(map[multiset.Symbol]int{"a": 2})
	grandchild := NewMembrane("gc", 1, 0)
	c.AddChild(grandchild)
	r := Rule{ID: "r1", Left: ms(map[multiset.Symbol]int{"a": 2}), Right: ms(map[multiset.Symbol]int{"a": 2}), Move: DissKeep}

	require.NoError(t, c.ApplyDissolveToParent(r))
	require.False(t, c.Alive())
	require.Len(t, s.Children, 1)
	require.Equal(t, "gc", s.Children[0].ID, "dissolved membrane's children are re-parented in its place")
	require.Same(t, s, grandchild.Parent)
	require.Equal(t, 2, s.Objects.Count("a"))
	require.Equal(t, 1, s.Objects.Count("b"))
}

func TestApplyDMEM(t *testing.T) {
	parent := NewMembrane("p", 1, 0)
	self := NewMembrane("self", 1, 0)
	sibA := NewMembrane("sibA", 1, 0)
	sibB := NewMembrane("sibA", 1, 0) // two siblings share the same id on purpose
	parent.AddChild(self)
	parent.AddChild(sibA)
	parent.AddChild(sibB)
	self.Objects = ms(map[multiset.Symbol]int{"a": 5})

	r := Rule{
		ID:          "r1",
		Left:        ms(map[multiset.Symbol]int{"a": 1}),
		Move:        DMEM,
		Probability: 1, // deterministic for this test
		DMEMRight: DMEMRight{
			Here: {{Symbol: "h", Count: 1}},
			DMEM: {{Symbol: "d", Count: 2, Target: "sibA"}},
		},
	}

	rng := NewRNG(0)
	require.NoError(t, self.ApplyDMEM(r, 1, rng))
	require.Equal(t, 4, self.Objects.Count("a"))
	require.Equal(t, 1, self.Objects.Count("h"))
	require.Equal(t, 2, sibA.Objects.Count("d"))
	require.Equal(t, 2, sibB.Objects.Count("d"))
}
