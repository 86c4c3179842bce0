package graph

import "github.com/willf/bitset"

// Ring is an ordered cyclic sequence of atom ids.  The sequence is normalised
// so that the smallest atom id comes first and its smaller neighbor second,
// which gives every ring exactly one representation.
type Ring []int

// Contains reports whether the ring includes the atom.
func (r Ring) Contains(id int) bool {
	for _, a := range r {
		if a == id {
			return true
		}
	}
	return false
}

// HasEdge reports whether u and v are adjacent within the ring's cyclic
// sequence.
func (r Ring) HasEdge(u, v int) bool {
	n := len(r)
	for i := 0; i < n; i++ {
		a, b := r[i], r[(i+1)%n]
		if (a == u && b == v) || (a == v && b == u) {
			return true
		}
	}
	return false
}

// AtomSet returns the ring's atoms as a bitset.
func (r Ring) AtomSet() *bitset.BitSet {
	s := bitset.New(uint(len(r)))
	for _, a := range r {
		s.Set(uint(a))
	}
	return s
}

// RingInfo is the cached result of ring perception for one molecule.  It is
// computed lazily on first demand and invalidated only by structural mutation,
// which the core does not expose post-parse.
type RingInfo struct {
	// SSSR is the smallest set of smallest rings; its size equals the
	// molecule's cyclomatic number.
	SSSR []Ring

	// Cycles holds every simple cycle of length ≤ MaxCycleLen.
	Cycles []Ring

	// MaxCycleLen is the enumeration cap Cycles was computed with.
	MaxCycleLen int

	// RingAtoms marks atom ids that are members of at least one SSSR ring.
	RingAtoms *bitset.BitSet

	// RingBonds marks bond indices that lie on at least one SSSR ring.
	RingBonds *bitset.BitSet
}

// IsRingAtom reports whether the atom belongs to any SSSR ring.
func (ri *RingInfo) IsRingAtom(id int) bool {
	return ri != nil && ri.RingAtoms != nil && ri.RingAtoms.Test(uint(id))
}

// IsRingBond reports whether the bond lies on any SSSR ring.
func (ri *RingInfo) IsRingBond(bondIdx int) bool {
	return ri != nil && ri.RingBonds != nil && ri.RingBonds.Test(uint(bondIdx))
}

// SmallestRingSizeWithBond returns the size of the smallest SSSR ring in which
// u and v are adjacent, or 0 when the bond is in no ring.
func (ri *RingInfo) SmallestRingSizeWithBond(u, v int) int {
	if ri == nil {
		return 0
	}
	best := 0
	for _, r := range ri.SSSR {
		if !r.HasEdge(u, v) {
			continue
		}
		if best == 0 || len(r) < best {
			best = len(r)
		}
	}
	return best
}

// MembershipOf returns the indices of the SSSR rings containing the atom.
func (ri *RingInfo) MembershipOf(id int) []int {
	if ri == nil {
		return nil
	}
	var out []int
	for i, r := range ri.SSSR {
		if r.Contains(id) {
			out = append(out, i)
		}
	}
	return out
}
