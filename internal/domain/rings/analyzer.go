// Package rings perceives ring systems of a molecular graph: bounded simple
// cycle enumeration, the smallest set of smallest rings, and topological
// classification of ring pairs.  Results are memoized on the Molecule;
// structural mutation (parser-only) drops the cache.
package rings

import (
	"hash/fnv"
	"sort"

	"github.com/willf/bitset"

	"github.com/turtacn/SmilesKit/internal/domain/graph"
)

// DefaultMaxCycleLen is the simple-cycle enumeration cap.  Rings above the cap
// are never considered aromatic; the cap bounds both memory and the worst-case
// cost on fused polycyclic inputs.
const DefaultMaxCycleLen = 7

// Analyze returns the molecule's ring information, computing and caching it on
// first demand.  A cached result is reused only when it was computed with a
// cap at least as large as maxCycleLen.
func Analyze(m *graph.Molecule, maxCycleLen int) *graph.RingInfo {
	if maxCycleLen <= 0 {
		maxCycleLen = DefaultMaxCycleLen
	}
	if ri := m.RingCache(); ri != nil && ri.MaxCycleLen >= maxCycleLen {
		return ri
	}

	ri := &graph.RingInfo{
		MaxCycleLen: maxCycleLen,
		RingAtoms:   bitset.New(uint(m.AtomCount())),
		RingBonds:   bitset.New(uint(m.BondCount() + 1)),
	}

	// Acyclic short-circuit: no cycle enumeration, no basis construction.
	cyclomatic := m.CyclomaticNumber()
	if cyclomatic > 0 {
		ri.Cycles = allCycles(m, maxCycleLen)
		ri.SSSR = sssr(m, cyclomatic, ri.Cycles)
		for _, r := range ri.SSSR {
			for i, a := range r {
				ri.RingAtoms.Set(uint(a))
				if bi := m.BondIndexBetween(a, r[(i+1)%len(r)]); bi >= 0 {
					ri.RingBonds.Set(uint(bi))
				}
			}
		}
	}

	m.SetRingCache(ri)
	return ri
}

// ─────────────────────────────────────────────────────────────────────────────
// Simple-cycle enumeration
// ─────────────────────────────────────────────────────────────────────────────

// allCycles enumerates every simple cycle of length 3..maxLen.  Each cycle is
// discovered with its smallest atom as the DFS start (larger-id extension
// rule), found once per direction, and deduplicated by sorted-atom-id
// identity.
func allCycles(m *graph.Molecule, maxLen int) []graph.Ring {
	var out []graph.Ring
	seen := newCycleSet()
	n := m.AtomCount()

	inPath := make([]bool, n)
	path := make([]int, 0, maxLen)

	var dfs func(start, current int)
	dfs = func(start, current int) {
		for _, nb := range m.Neighbors(current) {
			if nb == start && len(path) >= 3 {
				cycle := normalizeRing(path)
				if seen.insert(cycle) {
					out = append(out, cycle)
				}
				continue
			}
			if nb <= start || inPath[nb] || len(path) >= maxLen {
				continue
			}
			inPath[nb] = true
			path = append(path, nb)
			dfs(start, nb)
			path = path[:len(path)-1]
			inPath[nb] = false
		}
	}

	for s := 0; s < n; s++ {
		inPath[s] = true
		path = append(path[:0], s)
		dfs(s, s)
		inPath[s] = false
	}

	sortRings(out)
	return out
}

// cycleSet deduplicates cycles by their sorted atom-id arrays.  Identity is
// structural: a 64-bit FNV-1a hash of the sorted ids buckets the candidates
// and a slice comparison resolves collisions.  String keys are deliberately
// avoided; they were both slower and a correctness trap in earlier designs.
type cycleSet struct {
	buckets map[uint64][][]int
}

func newCycleSet() *cycleSet {
	return &cycleSet{buckets: make(map[uint64][][]int)}
}

// insert returns true when the cycle's atom set was not present yet.
func (s *cycleSet) insert(r graph.Ring) bool {
	ids := append([]int(nil), r...)
	sort.Ints(ids)

	h := fnv.New64a()
	var buf [8]byte
	for _, id := range ids {
		v := uint64(id)
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		h.Write(buf[:])
	}
	key := h.Sum64()

	for _, have := range s.buckets[key] {
		if equalInts(have, ids) {
			return false
		}
	}
	s.buckets[key] = append(s.buckets[key], ids)
	return true
}

func equalInts(a, b []int) bool {
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

// ─────────────────────────────────────────────────────────────────────────────
// SSSR
// ─────────────────────────────────────────────────────────────────────────────

// sssr builds the smallest set of smallest rings.  Candidates are the smallest
// cycle through each bond (shortest-path construction) merged with the
// enumerated small cycles; they are sorted by (size, lexicographic atom
// sequence) and selected greedily under GF(2) independence of their
// bond-incidence vectors until the cyclomatic number is reached.
func sssr(m *graph.Molecule, cyclomatic int, smallCycles []graph.Ring) []graph.Ring {
	candidates := make([]graph.Ring, 0, len(smallCycles)+m.BondCount())
	seen := newCycleSet()

	for _, c := range smallCycles {
		if seen.insert(c) {
			candidates = append(candidates, c)
		}
	}
	for bi := range m.Bonds {
		if c := smallestCycleThroughBond(m, bi); c != nil {
			if seen.insert(c) {
				candidates = append(candidates, c)
			}
		}
	}
	sortRings(candidates)

	basis := make([]*bitset.BitSet, 0, cyclomatic)
	pivots := make([]uint, 0, cyclomatic)
	selected := make([]graph.Ring, 0, cyclomatic)

	for _, cand := range candidates {
		if len(selected) == cyclomatic {
			break
		}
		vec := bondVector(m, cand)
		if vec == nil {
			continue
		}
		for i, p := range pivots {
			if vec.Test(p) {
				vec.InPlaceSymmetricDifference(basis[i])
			}
		}
		if pivot, any := vec.NextSet(0); any {
			basis = append(basis, vec)
			pivots = append(pivots, pivot)
			selected = append(selected, cand)
		}
	}

	sortRings(selected)
	return selected
}

// smallestCycleThroughBond finds the shortest cycle containing bond bi via a
// BFS from one endpoint to the other that is forbidden from using the bond
// itself.  Returns nil when the bond is a bridge.
func smallestCycleThroughBond(m *graph.Molecule, bi int) graph.Ring {
	b := m.Bonds[bi]
	n := m.AtomCount()

	parent := make([]int, n)
	for i := range parent {
		parent[i] = -2
	}
	parent[b.From] = -1
	queue := []int{b.From}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == b.To {
			break
		}
		for _, nbi := range m.BondIndices(cur) {
			if nbi == bi {
				continue
			}
			nb := m.Bonds[nbi].Other(cur)
			if parent[nb] == -2 {
				parent[nb] = cur
				queue = append(queue, nb)
			}
		}
	}
	if parent[b.To] == -2 {
		return nil
	}

	var path []int
	for at := b.To; at != -1; at = parent[at] {
		path = append(path, at)
	}
	return normalizeRing(path)
}

// bondVector maps a ring to a bitset over bond indices.  A nil return means
// the sequence is not a closed walk over existing bonds (defensive; cannot
// happen for rings built here).
func bondVector(m *graph.Molecule, r graph.Ring) *bitset.BitSet {
	vec := bitset.New(uint(m.BondCount()))
	for i, a := range r {
		bi := m.BondIndexBetween(a, r[(i+1)%len(r)])
		if bi < 0 {
			return nil
		}
		vec.Set(uint(bi))
	}
	return vec
}

// ─────────────────────────────────────────────────────────────────────────────
// Ring normalisation and ordering
// ─────────────────────────────────────────────────────────────────────────────

// normalizeRing rotates the cyclic sequence so the smallest atom id comes
// first and picks the direction with the lexicographically smaller sequence,
// giving every ring a single representation.
func normalizeRing(cycle []int) graph.Ring {
	n := len(cycle)
	fwd := rotateToMinFirst(cycle)

	rev := make([]int, n)
	for i := 0; i < n; i++ {
		rev[i] = cycle[n-1-i]
	}
	rev = rotateToMinFirst(rev)

	if lessInts(rev, fwd) {
		return rev
	}
	return fwd
}

func rotateToMinFirst(seq []int) []int {
	n := len(seq)
	minIdx := 0
	for i := 1; i < n; i++ {
		if seq[i] < seq[minIdx] {
			minIdx = i
		}
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = seq[(minIdx+i)%n]
	}
	return out
}

func lessInts(a, b []int) bool {
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

// sortRings orders rings by size ascending, then lexicographically by their
// normalised atom sequence.
func sortRings(rs []graph.Ring) {
	sort.Slice(rs, func(i, j int) bool {
		if len(rs[i]) != len(rs[j]) {
			return len(rs[i]) < len(rs[j])
		}
		return lessInts(rs[i], rs[j])
	})
}
