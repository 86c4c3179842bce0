package rings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/SmilesKit/internal/domain/rings"
	"github.com/turtacn/SmilesKit/pkg/types/chem"
)

func chemRelation(s string) chem.RingRelation { return chem.RingRelation(s) }

func TestClassify_Pairs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  chem.RingRelation
	}{
		{"fused naphthalene", "c1ccc2ccccc2c1", chem.RelationFused},
		{"spiro decane", "C1CCC2(CC1)CCCCC2", chem.RelationSpiro},
		{"isolated biphenyl", "c1ccc(-c2ccccc2)cc1", chem.RelationIsolated},
		{"bridged norbornane", "C1CC2CCC1C2", chem.RelationBridged},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := mol(t, tc.input)
			ri := rings.Analyze(m, 7)
			require.Len(t, ri.SSSR, 2)
			assert.Equal(t, tc.want, rings.Classify(ri.SSSR[0], ri.SSSR[1]))
		})
	}
}

func TestClassifyAll_Matrix(t *testing.T) {
	t.Parallel()

	m := mol(t, "c1ccc2ccccc2c1")
	matrix := rings.ClassifyAll(m, 7)
	require.Len(t, matrix, 2)
	assert.Equal(t, chem.RelationFused, matrix[0][1])
	assert.Equal(t, chem.RelationFused, matrix[1][0])
}
