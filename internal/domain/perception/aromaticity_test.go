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

// enriched parses a single component and runs full enrichment.
func enriched(t *testing.T, input string) *graph.Molecule {
	t.Helper()
	r := smiles.Parse(input)
	require.False(t, r.HasErrors(), "diagnostics: %v", r.Diagnostics)
	require.Len(t, r.Molecules, 1)
	perception.Enrich(r.Molecules[0], rings.DefaultMaxCycleLen)
	return r.Molecules[0]
}

func aromaticAtomCount(m *graph.Molecule) int {
	n := 0
	for _, a := range m.Atoms {
		if a.Aromatic {
			n++
		}
	}
	return n
}

func aromaticBondCount(m *graph.Molecule) int {
	n := 0
	for _, b := range m.Bonds {
		if b.Order == graph.BondAromatic {
			n++
		}
	}
	return n
}

func TestAromaticity_Benzene(t *testing.T) {
	t.Parallel()

	m := enriched(t, "c1ccccc1")
	assert.Equal(t, 6, aromaticAtomCount(m))
	assert.Equal(t, 6, aromaticBondCount(m))
}

func TestAromaticity_KekuleBenzenePromoted(t *testing.T) {
	t.Parallel()

	m := enriched(t, "C1=CC=CC=C1")
	assert.Equal(t, 6, aromaticAtomCount(m))
	assert.Equal(t, 6, aromaticBondCount(m))
}

func TestAromaticity_CyclohexaneStaysAliphatic(t *testing.T) {
	t.Parallel()

	m := enriched(t, "C1CCCCC1")
	assert.Equal(t, 0, aromaticAtomCount(m))
	assert.Equal(t, 0, aromaticBondCount(m))
}

func TestAromaticity_Heterocycles(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		aromatic int
	}{
		{"pyridine", "c1ccncc1", 6},
		{"pyrrole", "c1cc[nH]c1", 5},
		{"kekule pyrrole", "C1=CC=CN1", 5},
		{"furan", "c1ccoc1", 5},
		{"thiophene", "c1ccsc1", 5},
		{"imidazole", "c1cnc[nH]1", 5},
		{"cyclopentadiene not aromatic", "C1=CC=CC1", 0},
		{"cyclobutadiene fails huckel", "C1=CC=C1", 0},
		// exocyclic C=O contributes nothing itself but leaves the ring
		// conjugated: the pyridone ring still reaches six π electrons
		{"pyridone", "O=C1C=CC=CN1", 6},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := enriched(t, tc.input)
			assert.Equal(t, tc.aromatic, aromaticAtomCount(m), "input %s", tc.input)
		})
	}
}

func TestAromaticity_Naphthalene(t *testing.T) {
	t.Parallel()

	m := enriched(t, "c1ccc2ccccc2c1")
	assert.Equal(t, 10, aromaticAtomCount(m))
	assert.Equal(t, 11, aromaticBondCount(m))
}

func TestAromaticity_BiphenylLinkStaysSingle(t *testing.T) {
	t.Parallel()

	m := enriched(t, "c1ccc(-c2ccccc2)cc1")
	assert.Equal(t, 12, aromaticAtomCount(m))
	// 12 ring bonds aromatic; the link is single
	assert.Equal(t, 12, aromaticBondCount(m))
}

func TestAromaticity_FailedHuckelKekulized(t *testing.T) {
	t.Parallel()

	// lowercase cyclobutadiene: 4 π electrons, fails Hückel, kekulizes to
	// alternating double bonds without a warning
	r := smiles.Parse("c1ccc1")
	require.False(t, r.HasErrors())
	m := r.Molecules[0]
	diags := perception.Enrich(m, rings.DefaultMaxCycleLen)

	assert.Equal(t, 0, aromaticAtomCount(m))
	assert.Equal(t, 0, aromaticBondCount(m))

	doubles := 0
	for _, b := range m.Bonds {
		if b.Order == graph.BondDouble {
			doubles++
		}
	}
	assert.Equal(t, 2, doubles)
	assert.Empty(t, diags)
}

func TestAromaticity_UnkekulizableWarns(t *testing.T) {
	t.Parallel()

	// lowercase cyclopentadienyl (neutral): 5 carbons cannot pair up
	r := smiles.Parse("c1cccc1")
	require.False(t, r.HasErrors())
	m := r.Molecules[0]
	diags := perception.Enrich(m, rings.DefaultMaxCycleLen)

	assert.Equal(t, 0, aromaticAtomCount(m))
	assert.Equal(t, 0, aromaticBondCount(m))
	assert.NotEmpty(t, diags)
}

func TestAromaticity_Deterministic(t *testing.T) {
	t.Parallel()

	m := enriched(t, "c1ccc2ccccc2c1")
	snapshotAtoms := make([]bool, m.AtomCount())
	for i, a := range m.Atoms {
		snapshotAtoms[i] = a.Aromatic
	}
	snapshotBonds := make([]graph.BondOrder, m.BondCount())
	for i, b := range m.Bonds {
		snapshotBonds[i] = b.Order
	}

	perception.Enrich(m, rings.DefaultMaxCycleLen)

	for i, a := range m.Atoms {
		assert.Equal(t, snapshotAtoms[i], a.Aromatic)
	}
	for i, b := range m.Bonds {
		assert.Equal(t, snapshotBonds[i], b.Order)
	}
}

func TestAromaticity_NoRingShortCircuit(t *testing.T) {
	t.Parallel()

	r := smiles.Parse("CCO")
	require.False(t, r.HasErrors())
	m := r.Molecules[0]
	perception.Enrich(m, rings.DefaultMaxCycleLen)

	// the acyclic short-circuit never touches the ring analyzer, so the ring
	// cache stays empty until someone asks for it
	assert.Nil(t, m.RingCache())
}
