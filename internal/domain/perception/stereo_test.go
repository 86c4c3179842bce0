package perception_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/SmilesKit/internal/domain/graph"
	"github.com/turtacn/SmilesKit/internal/domain/perception"
	"github.com/turtacn/SmilesKit/internal/domain/rings"
	"github.com/turtacn/SmilesKit/internal/domain/smiles"
)

func TestStereo_ValidTetrahedralKept(t *testing.T) {
	t.Parallel()

	// four distinct substituents
	m := enriched(t, "N[C@H](C)C(=O)O")
	assert.Equal(t, "@", m.Atoms[1].Chirality)

	m = enriched(t, "[C@](N)(O)(F)C")
	assert.Equal(t, "@", m.Atoms[0].Chirality)
}

func TestStereo_SymmetricCentreCleared(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		atom  int
	}{
		{"two methyls", "C[C@H](C)O", 1},
		{"two hydrogens", "C[C@H2]C", 1},
		{"only two neighbors", "C[C@H2]O", 1},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := smiles.Parse(tc.input)
			require.False(t, r.HasErrors())
			m := r.Molecules[0]
			diags := perception.Enrich(m, rings.DefaultMaxCycleLen)

			assert.Equal(t, graph.ChiralityNone, m.Atoms[tc.atom].Chirality)
			assert.NotEmpty(t, diags)
		})
	}
}

func TestStereo_ExtendedTagsPreserved(t *testing.T) {
	t.Parallel()

	m := enriched(t, "S[As@TB5](F)(Cl)(Br)N")
	assert.Equal(t, "@TB5", m.Atoms[1].Chirality)
}

func TestStereo_DirectionalKeptOnAcyclicDoubleBond(t *testing.T) {
	t.Parallel()

	m := enriched(t, "F/C=C/F")
	assert.Equal(t, graph.DirUp, m.Bonds[0].Direction)
	assert.Equal(t, graph.DirUp, m.Bonds[2].Direction)
}

func TestStereo_DirectionalClearedInSmallRing(t *testing.T) {
	t.Parallel()

	// cyclohexene with markers: the ring double bond has forced geometry
	r := smiles.Parse("C1CCC/C=C1/C")
	require.False(t, r.HasErrors(), "%v", r.Diagnostics)
	m := r.Molecules[0]
	diags := perception.Enrich(m, rings.DefaultMaxCycleLen)

	for _, b := range m.Bonds {
		assert.Equal(t, graph.DirNone, b.Direction)
	}
	assert.NotEmpty(t, diags)
}

func TestStereo_DirectionalClearedWithoutDoubleBond(t *testing.T) {
	t.Parallel()

	r := smiles.Parse("C/CC")
	require.False(t, r.HasErrors())
	m := r.Molecules[0]
	diags := perception.Enrich(m, rings.DefaultMaxCycleLen)

	assert.Equal(t, graph.DirNone, m.Bonds[0].Direction)
	assert.NotEmpty(t, diags)
}

func TestStereo_ConflictingMarkersCleared(t *testing.T) {
	t.Parallel()

	// both flanking bonds at the same end claim the same side
	r := smiles.Parse("C(/F)(/Cl)=CC")
	require.False(t, r.HasErrors(), "%v", r.Diagnostics)
	m := r.Molecules[0]
	perception.Enrich(m, rings.DefaultMaxCycleLen)

	assert.Equal(t, graph.DirNone, m.Bonds[0].Direction)
	assert.Equal(t, graph.DirNone, m.Bonds[1].Direction)
}

func TestStereo_LargeRingDirectionalKept(t *testing.T) {
	t.Parallel()

	// a 10-membered ring is large enough for cis/trans to be meaningful
	r := smiles.Parse("C1CCCC/C=C/CCC1")
	require.False(t, r.HasErrors())
	m := r.Molecules[0]
	perception.Enrich(m, rings.DefaultMaxCycleLen)

	kept := 0
	for _, b := range m.Bonds {
		if b.Direction != graph.DirNone {
			kept++
		}
	}
	assert.Equal(t, 2, kept)
}
