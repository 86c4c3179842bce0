package canon

import (
	"sort"

	"github.com/turtacn/SmilesKit/internal/domain/graph"
)

// Closure is one endpoint's view of a ring-closure back-edge.
type Closure struct {
	Digit   int
	Partner int
	BondIdx int
	Opening bool
}

// Tour is the deterministic DFS structure the emitter walks: per-component
// roots, the spanning tree, and ring-closure assignments.  Building the tour
// does not mutate the molecule.
type Tour struct {
	Roots      []int
	Parent     []int
	ParentBond []int
	Children   [][]int
	Closures   [][]Closure
	VisitIndex []int
	MaxDigit   int
}

// backEdge is a DFS non-tree edge: open was visited before close.
type backEdge struct {
	open, close, bondIdx int
}

// BuildTour constructs the canonical traversal.  With labels, the root of each
// component minimises (rank, heteroatom-first, terminal-first, degree,
// |charge|, hydrogen count, id) and neighbors are visited by (rank, bond
// order, id); without labels the traversal is plain id order, which is the
// as-written emission mode.
func BuildTour(m *graph.Molecule, labels *Labels) *Tour {
	n := m.AtomCount()
	t := &Tour{
		Parent:     make([]int, n),
		ParentBond: make([]int, n),
		Children:   make([][]int, n),
		Closures:   make([][]Closure, n),
		VisitIndex: make([]int, n),
	}
	for i := 0; i < n; i++ {
		t.Parent[i] = -1
		t.ParentBond[i] = -1
		t.VisitIndex[i] = -1
	}

	visited := make([]bool, n)
	recordedBond := make([]bool, m.BondCount())
	var edges []backEdge
	counter := 0

	var dfs func(u int)
	dfs = func(u int) {
		visited[u] = true
		t.VisitIndex[u] = counter
		counter++

		nbrs := append([]int(nil), m.Neighbors(u)...)
		sort.Slice(nbrs, func(a, b int) bool {
			return lessNeighbor(m, labels, u, nbrs[a], nbrs[b])
		})

		for _, v := range nbrs {
			bi := m.BondIndexBetween(u, v)
			if bi == t.ParentBond[u] {
				continue
			}
			if visited[v] {
				if !recordedBond[bi] {
					recordedBond[bi] = true
					edges = append(edges, backEdge{open: v, close: u, bondIdx: bi})
				}
				continue
			}
			t.Parent[v] = u
			t.ParentBond[v] = bi
			t.Children[u] = append(t.Children[u], v)
			dfs(v)
		}
	}

	for {
		root := pickRoot(m, labels, visited)
		if root < 0 {
			break
		}
		t.Roots = append(t.Roots, root)
		dfs(root)
	}

	// Ring-closure numbers are handed out in the order their opening atom is
	// visited, with the closing atom's visit order deciding ties at a shared
	// opening atom.
	sort.Slice(edges, func(a, b int) bool {
		if t.VisitIndex[edges[a].open] != t.VisitIndex[edges[b].open] {
			return t.VisitIndex[edges[a].open] < t.VisitIndex[edges[b].open]
		}
		return t.VisitIndex[edges[a].close] < t.VisitIndex[edges[b].close]
	})
	for i, e := range edges {
		digit := i + 1
		t.MaxDigit = digit
		t.Closures[e.open] = append(t.Closures[e.open], Closure{
			Digit: digit, Partner: e.close, BondIdx: e.bondIdx, Opening: true,
		})
		t.Closures[e.close] = append(t.Closures[e.close], Closure{
			Digit: digit, Partner: e.open, BondIdx: e.bondIdx, Opening: false,
		})
	}

	return t
}

// pickRoot selects the next component root among unvisited atoms.
func pickRoot(m *graph.Molecule, labels *Labels, visited []bool) int {
	best := -1
	for id := range m.Atoms {
		if visited[id] {
			continue
		}
		if best < 0 || lessRoot(m, labels, id, best) {
			best = id
		}
	}
	return best
}

// lessRoot is the root-selection ordering from lowest canonical rank through
// heteroatom and terminal preference down to the atom id tiebreak.
func lessRoot(m *graph.Molecule, labels *Labels, a, b int) bool {
	if labels == nil {
		return a < b
	}
	ka := rootKey(m, labels, a)
	kb := rootKey(m, labels, b)
	for i := range ka {
		if ka[i] != kb[i] {
			return ka[i] < kb[i]
		}
	}
	return false
}

func rootKey(m *graph.Molecule, labels *Labels, id int) [7]int {
	a := m.Atoms[id]
	hetero, terminal := 1, 1
	if a.IsHeteroatom() {
		hetero = 0
	}
	if m.Degree(id) <= 1 {
		terminal = 0
	}
	charge := a.Charge
	if charge < 0 {
		charge = -charge
	}
	return [7]int{labels.Rank[id], hetero, terminal, m.Degree(id), charge, a.HydrogenCount(), id}
}

// lessNeighbor orders the unvisited-neighbor expansion at atom u.
func lessNeighbor(m *graph.Molecule, labels *Labels, u, a, b int) bool {
	if labels == nil {
		return a < b
	}
	if labels.Rank[a] != labels.Rank[b] {
		return labels.Rank[a] < labels.Rank[b]
	}
	oa := m.Bonds[m.BondIndexBetween(u, a)].Order
	ob := m.Bonds[m.BondIndexBetween(u, b)].Order
	if oa != ob {
		return oa < ob
	}
	return a < b
}
