package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/SmilesKit/internal/domain/graph"
)

// chain builds a linear carbon chain of n atoms.
func chain(n int) *graph.Molecule {
	m := graph.NewMolecule()
	for i := 0; i < n; i++ {
		m.AddAtom(&graph.Atom{Symbol: "C", AtomicNum: 6})
	}
	for i := 1; i < n; i++ {
		m.AddBond(&graph.Bond{From: i - 1, To: i, Order: graph.BondSingle})
	}
	return m
}

// cycle builds a carbon ring of n atoms.
func cycle(n int) *graph.Molecule {
	m := chain(n)
	m.AddBond(&graph.Bond{From: n - 1, To: 0, Order: graph.BondSingle})
	return m
}

func TestAddAtom_AssignsDenseIDs(t *testing.T) {
	t.Parallel()

	m := graph.NewMolecule()
	for i := 0; i < 5; i++ {
		id := m.AddAtom(&graph.Atom{Symbol: "C", AtomicNum: 6})
		assert.Equal(t, i, id)
		assert.Equal(t, i, m.Atom(id).ID)
	}
	assert.Equal(t, 5, m.AtomCount())
	assert.Nil(t, m.Atom(5))
	assert.Nil(t, m.Atom(-1))
}

func TestAddBond_RejectsSelfLoops(t *testing.T) {
	t.Parallel()

	m := chain(2)
	assert.Equal(t, -1, m.AddBond(&graph.Bond{From: 0, To: 0, Order: graph.BondSingle}))
	assert.Equal(t, -1, m.AddBond(&graph.Bond{From: 0, To: 7, Order: graph.BondSingle}))
	assert.Equal(t, 1, m.BondCount())
}

func TestAdjacency(t *testing.T) {
	t.Parallel()

	m := chain(3)
	assert.Equal(t, []int{1}, m.Neighbors(0))
	assert.ElementsMatch(t, []int{0, 2}, m.Neighbors(1))
	assert.Equal(t, 2, m.Degree(1))
	assert.Equal(t, 1, m.Degree(0))

	require.NotNil(t, m.BondBetween(0, 1))
	assert.Nil(t, m.BondBetween(0, 2))
	assert.Equal(t, 1, m.BondIndexBetween(1, 2))
	assert.Equal(t, -1, m.BondIndexBetween(0, 2))
}

func TestComponentsAndCyclomaticNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, graph.NewMolecule().ComponentCount())
	assert.Equal(t, 1, chain(4).ComponentCount())
	assert.Equal(t, 0, chain(4).CyclomaticNumber())
	assert.Equal(t, 1, cycle(6).CyclomaticNumber())

	// two disconnected chains inside one graph
	m := chain(3)
	a := m.AddAtom(&graph.Atom{Symbol: "O", AtomicNum: 8})
	b := m.AddAtom(&graph.Atom{Symbol: "O", AtomicNum: 8})
	m.AddBond(&graph.Bond{From: a, To: b, Order: graph.BondSingle})
	assert.Equal(t, 2, m.ComponentCount())
	assert.Equal(t, 0, m.CyclomaticNumber())
}

func TestRingCache_InvalidatedByMutation(t *testing.T) {
	t.Parallel()

	m := cycle(5)
	ri := &graph.RingInfo{SSSR: []graph.Ring{{0, 1, 2, 3, 4}}}
	m.SetRingCache(ri)
	assert.Same(t, ri, m.RingCache())

	m.AddAtom(&graph.Atom{Symbol: "C", AtomicNum: 6})
	assert.Nil(t, m.RingCache())

	m.SetRingCache(ri)
	m.AddBond(&graph.Bond{From: 4, To: 5, Order: graph.BondSingle})
	assert.Nil(t, m.RingCache())
}

func TestRing_EdgeAndMembership(t *testing.T) {
	t.Parallel()

	r := graph.Ring{0, 1, 2, 3, 4, 5}
	assert.True(t, r.Contains(3))
	assert.False(t, r.Contains(9))
	assert.True(t, r.HasEdge(5, 0))
	assert.True(t, r.HasEdge(2, 1))
	assert.False(t, r.HasEdge(0, 3))

	ri := &graph.RingInfo{SSSR: []graph.Ring{r, {4, 5, 6}}}
	assert.Equal(t, 6, ri.SmallestRingSizeWithBond(0, 1))
	assert.Equal(t, 3, ri.SmallestRingSizeWithBond(4, 5))
	assert.Equal(t, 0, ri.SmallestRingSizeWithBond(0, 3))
	assert.Equal(t, []int{0, 1}, ri.MembershipOf(4))
}

func TestElementTables(t *testing.T) {
	t.Parallel()

	n, ok := graph.AtomicNumber("Cl")
	require.True(t, ok)
	assert.Equal(t, 17, n)

	w, ok := graph.AtomicNumber("*")
	require.True(t, ok)
	assert.Equal(t, 0, w)

	_, ok = graph.AtomicNumber("Xx")
	assert.False(t, ok)

	sym, ok := graph.AromaticSymbol("se")
	require.True(t, ok)
	assert.Equal(t, "Se", sym)
	_, ok = graph.AromaticSymbol("f")
	assert.False(t, ok)

	assert.True(t, graph.IsOrganicSubset("Br"))
	assert.False(t, graph.IsOrganicSubset("Se"))

	assert.Equal(t, []int{2, 4, 6}, graph.NormalValences(16))
	assert.Equal(t, 6, graph.MaxNormalValence(16))
	assert.Equal(t, 0, graph.MaxNormalValence(26))
	assert.InDelta(t, 12.011, graph.AtomicWeight(6), 1e-9)
}

func TestAtomHelpers(t *testing.T) {
	t.Parallel()

	o := &graph.Atom{Symbol: "O", AtomicNum: 8, ImplicitH: 1}
	assert.True(t, o.IsHeteroatom())
	assert.Equal(t, 1, o.HydrogenCount())

	c := &graph.Atom{Symbol: "C", AtomicNum: 6}
	assert.False(t, c.IsHeteroatom())

	star := &graph.Atom{Symbol: "*", AtomicNum: 0}
	assert.True(t, star.IsWildcard())
	assert.False(t, star.IsHeteroatom())

	br := &graph.Atom{Symbol: "N", AtomicNum: 7, IsBracket: true, ExplicitH: 1, ImplicitH: 0}
	assert.Equal(t, 1, br.HydrogenCount())

	chiral := &graph.Atom{Chirality: graph.ChiralityCCW}
	assert.True(t, chiral.HasTetrahedralTag())
	ext := &graph.Atom{Chirality: "@TB5"}
	assert.False(t, ext.HasTetrahedralTag())
}
