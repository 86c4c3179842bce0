// Package canon computes canonical atom labels by iterative invariant
// refinement, selects a deterministic traversal, and serialises molecules to
// canonical SMILES.  It borrows molecules read-only; labels are derived per
// call and never persisted on the graph.
package canon

import (
	"sort"

	"github.com/turtacn/SmilesKit/internal/domain/graph"
)

// Labels is the result of invariant refinement: a dense rank per atom (1..K)
// and the size of each atom's equivalence class.  Atoms sharing a rank are
// symmetry-equivalent under the refined invariant.
type Labels struct {
	Rank      []int
	ClassSize []int
	Classes   int
}

// Refine computes canonical labels for the molecule.  The initial invariant
// per atom is (degree, atomic number, aromatic flag, isotope, |charge|,
// hydrogen count); each round extends an atom's invariant with the sorted
// multiset of its (bond order, neighbor rank) pairs and recompresses to dense
// ranks.  The loop stops at a fixed point or after atomCount+8 rounds.
//
// Keys are integer slices compared structurally; string concatenation is
// deliberately avoided.
func Refine(m *graph.Molecule) *Labels {
	n := m.AtomCount()
	labels := &Labels{Rank: make([]int, n), ClassSize: make([]int, n)}
	if n == 0 {
		return labels
	}

	keys := make([][]int, n)
	for i, a := range m.Atoms {
		arom := 0
		if a.Aromatic {
			arom = 1
		}
		charge := a.Charge
		if charge < 0 {
			charge = -charge
		}
		keys[i] = []int{m.Degree(i), a.AtomicNum, arom, a.Isotope, charge, a.HydrogenCount()}
	}
	rank := compress(keys)

	maxRounds := n + 8
	for round := 0; round < maxRounds; round++ {
		for i := range keys {
			keys[i] = neighborKey(m, i, rank)
		}
		next := compress(keys)
		if equalRanks(rank, next) {
			break
		}
		rank = next
	}

	labels.Rank = rank
	counts := make(map[int]int, n)
	for _, r := range rank {
		counts[r]++
	}
	for i, r := range rank {
		labels.ClassSize[i] = counts[r]
	}
	labels.Classes = len(counts)
	return labels
}

// neighborKey builds an atom's round key: its previous rank followed by the
// sorted (bond order, neighbor rank) pairs.
func neighborKey(m *graph.Molecule, id int, rank []int) []int {
	bonds := m.BondIndices(id)
	pairs := make([][2]int, 0, len(bonds))
	for _, bi := range bonds {
		b := m.Bonds[bi]
		pairs = append(pairs, [2]int{int(b.Order), rank[b.Other(id)]})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	key := make([]int, 0, 1+2*len(pairs))
	key = append(key, rank[id])
	for _, p := range pairs {
		key = append(key, p[0], p[1])
	}
	return key
}

// compress maps structural keys to dense ranks 1..K by sorted-unique
// compression.
func compress(keys [][]int) []int {
	n := len(keys)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return lessKey(keys[order[a]], keys[order[b]])
	})

	rank := make([]int, n)
	current := 1
	for i, idx := range order {
		if i > 0 && !equalKey(keys[order[i-1]], keys[idx]) {
			current++
		}
		rank[idx] = current
	}
	return rank
}

func lessKey(a, b []int) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func equalKey(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalRanks(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
