package perception_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/SmilesKit/internal/domain/perception"
	"github.com/turtacn/SmilesKit/internal/domain/rings"
	"github.com/turtacn/SmilesKit/internal/domain/smiles"
)

func TestHydrogens_BasicValences(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  []int // implicit H per atom id
	}{
		{"methane", "C", []int{4}},
		{"ethanol", "CCO", []int{3, 2, 1}},
		{"ammonia", "N", []int{3}},
		{"water", "O", []int{2}},
		{"hydrogen fluoride", "F", []int{1}},
		{"acetic acid", "CC(=O)O", []int{3, 0, 0, 1}},
		{"acetonitrile", "CC#N", []int{3, 0, 0}},
		{"ethylene", "C=C", []int{2, 2}},
		{"phosphine", "P", []int{3}},
		{"hydrogen sulfide", "S", []int{2}},
		{"sulfuric core", "OS(=O)(=O)O", []int{1, 0, 0, 0, 1}},
		{"borane", "B", []int{3}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := smiles.Parse(tc.input)
			require.False(t, r.HasErrors())
			m := r.Molecules[0]
			perception.Enrich(m, rings.DefaultMaxCycleLen)

			got := make([]int, m.AtomCount())
			for i, a := range m.Atoms {
				got[i] = a.ImplicitH
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHydrogens_AromaticAtoms(t *testing.T) {
	t.Parallel()

	// benzene: every carbon carries exactly one hydrogen
	m := enriched(t, "c1ccccc1")
	for _, a := range m.Atoms {
		assert.Equal(t, 1, a.ImplicitH, "atom %d", a.ID)
	}

	// pyridine: the nitrogen has none
	m = enriched(t, "c1ccncc1")
	for _, a := range m.Atoms {
		if a.AtomicNum == 7 {
			assert.Equal(t, 0, a.ImplicitH)
		} else {
			assert.Equal(t, 1, a.ImplicitH)
		}
	}

	// Kekulé pyrrole: the promoted nitrogen keeps its lone pair in the ring
	// and receives one hydrogen
	m = enriched(t, "C1=CC=CN1")
	for _, a := range m.Atoms {
		if a.AtomicNum == 7 {
			assert.Equal(t, 1, a.ImplicitH)
		}
	}

	// naphthalene: fusion carbons carry none
	m = enriched(t, "c1ccc2ccccc2c1")
	for _, a := range m.Atoms {
		if m.Degree(a.ID) == 3 {
			assert.Equal(t, 0, a.ImplicitH)
		} else {
			assert.Equal(t, 1, a.ImplicitH)
		}
	}
}

func TestHydrogens_BracketsAuthoritative(t *testing.T) {
	t.Parallel()

	r := smiles.Parse("[CH2]C")
	require.False(t, r.HasErrors())
	m := r.Molecules[0]
	perception.Enrich(m, rings.DefaultMaxCycleLen)

	assert.Equal(t, 0, m.Atoms[0].ImplicitH)
	assert.Equal(t, 2, m.Atoms[0].ExplicitH)
	assert.Equal(t, 2, m.Atoms[0].HydrogenCount())
	assert.Equal(t, 3, m.Atoms[1].ImplicitH)
}

func TestHydrogens_ExcessiveBracketCountWarns(t *testing.T) {
	t.Parallel()

	r := smiles.Parse("[CH5]")
	require.False(t, r.HasErrors())
	m := r.Molecules[0]
	diags := perception.Enrich(m, rings.DefaultMaxCycleLen)

	assert.Equal(t, 5, m.Atoms[0].ExplicitH)
	assert.NotEmpty(t, diags)
}

func TestHydrogens_HypervalentNonBracketWarns(t *testing.T) {
	t.Parallel()

	// five explicit bonds on a plain carbon
	r := smiles.Parse("C(C)(C)(C)(C)C")
	require.False(t, r.HasErrors())
	m := r.Molecules[0]
	diags := perception.Enrich(m, rings.DefaultMaxCycleLen)

	assert.Equal(t, 0, m.Atoms[0].ImplicitH)
	assert.NotEmpty(t, diags)
}

func TestHydrogens_NonNegative(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"C", "CCO", "c1ccccc1", "CC(=O)O", "C(C)(C)(C)(C)C", "[CH5]", "N#N", "O=C=O"} {
		r := smiles.Parse(input)
		require.False(t, r.HasErrors())
		for _, m := range r.Molecules {
			perception.Enrich(m, rings.DefaultMaxCycleLen)
			for _, a := range m.Atoms {
				assert.GreaterOrEqual(t, a.ImplicitH, 0, "input %s atom %d", input, a.ID)
			}
		}
	}
}
