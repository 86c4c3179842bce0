package rings

import (
	"github.com/turtacn/SmilesKit/internal/domain/graph"
	"github.com/turtacn/SmilesKit/pkg/types/chem"
)

// Classify determines the topological relationship between two rings from the
// atoms and bonds they share:
//
//   - isolated: no shared atom
//   - spiro:    exactly one shared atom and no shared bond
//   - fused:    exactly one shared bond (ortho-fusion)
//   - bridged:  two or more shared atoms without a shared bond (bridgehead
//     pair), or a shared path of two or more bonds
func Classify(a, b graph.Ring) chem.RingRelation {
	shared := a.AtomSet().Intersection(b.AtomSet())
	atoms := int(shared.Count())
	if atoms == 0 {
		return chem.RelationIsolated
	}

	switch sharedBonds(a, b) {
	case 0:
		if atoms == 1 {
			return chem.RelationSpiro
		}
		return chem.RelationBridged
	case 1:
		return chem.RelationFused
	default:
		return chem.RelationBridged
	}
}

// sharedBonds counts edges that appear in both rings' cyclic sequences.
func sharedBonds(a, b graph.Ring) int {
	count := 0
	n := len(a)
	for i := 0; i < n; i++ {
		if b.HasEdge(a[i], a[(i+1)%n]) {
			count++
		}
	}
	return count
}

// ClassifyAll computes the pairwise relation matrix for the molecule's SSSR.
// The matrix is symmetric with the diagonal left as the zero value.
func ClassifyAll(m *graph.Molecule, maxCycleLen int) [][]chem.RingRelation {
	ri := Analyze(m, maxCycleLen)
	n := len(ri.SSSR)
	out := make([][]chem.RingRelation, n)
	for i := range out {
		out[i] = make([]chem.RingRelation, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			rel := Classify(ri.SSSR[i], ri.SSSR[j])
			out[i][j] = rel
			out[j][i] = rel
		}
	}
	return out
}
