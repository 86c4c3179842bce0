// Package perception enriches a parsed molecular graph in a fixed pass order:
// aromaticity (with kekulization fallback), implicit hydrogens, and stereo
// validation.  Passes mutate only perception state; atoms and bonds are never
// added or removed.
package perception

import (
	"fmt"

	"github.com/turtacn/SmilesKit/internal/domain/graph"
	"github.com/turtacn/SmilesKit/internal/domain/rings"
	"github.com/turtacn/SmilesKit/pkg/types/chem"
)

// π-electron contributions a ring atom can make to its ring's system.
const (
	piNone     = 0
	piOne      = 1
	piLonePair = 2
	piReject   = -1 // sp3 atom with nothing to contribute: the ring cannot be aromatic
)

// PerceiveAromaticity applies Hückel-style perception to every candidate ring
// of size 3..maxRingSize.  Qualifying rings get their atoms flagged aromatic
// and their ring bonds rewritten to the aromatic order.  Lowercase input that
// no perceived ring confirms is handed to the kekulization fallback.
//
// The returned contribution map records, for every atom that ended up
// aromatic, its π contribution; the hydrogen assigner needs it to tell
// pyridine-type from pyrrole-type centres.
func PerceiveAromaticity(m *graph.Molecule, maxRingSize int) (map[int]int, []chem.Diagnostic) {
	var diags []chem.Diagnostic
	contrib := make(map[int]int)

	// No rings: nothing ring-dependent runs, and lowercase input cannot be
	// confirmed anywhere.
	if m.CyclomaticNumber() == 0 {
		diags = append(diags, demoteUnverified(m, nil)...)
		m.AromaticityPerceived = true
		return contrib, diags
	}

	ri := rings.Analyze(m, maxRingSize)

	// Promotion can enable further promotion: in a Kekulé-written fused
	// system the second ring only counts right once the shared bonds have
	// turned aromatic.  Iterate to a fixed point; each pass promotes whole
	// rings, so the loop is bounded by the ring count.
	perceived := make(map[int]bool)
	promoted := make([]bool, len(ri.Cycles))
	for changed := true; changed; {
		changed = false
		for ci, ring := range ri.Cycles {
			if promoted[ci] || len(ring) < 3 || len(ring) > maxRingSize {
				continue
			}
			electrons, perAtom, ok := countPiElectrons(m, ring)
			if !ok || !isHuckelCount(electrons) {
				continue
			}
			promoted[ci] = true
			changed = true
			for _, id := range ring {
				m.Atoms[id].Aromatic = true
				perceived[id] = true
				if _, have := contrib[id]; !have {
					contrib[id] = perAtom[id]
				}
			}
			for i, id := range ring {
				if b := m.BondBetween(id, ring[(i+1)%len(ring)]); b != nil {
					b.Order = graph.BondAromatic
				}
			}
		}
	}

	// Oversized rings written lowercase are out of the perceiver's reach.
	for _, ring := range ri.SSSR {
		if len(ring) <= maxRingSize {
			continue
		}
		if allWrittenAromatic(m, ring, perceived) {
			diags = append(diags, chem.Diagnostic{
				Severity: chem.SeverityWarning,
				Message:  fmt.Sprintf("ring of size %d exceeds the aromaticity perception cap %d", len(ring), maxRingSize),
				Offset:   -1,
			})
		}
	}

	diags = append(diags, demoteUnverified(m, perceived)...)
	m.AromaticityPerceived = true
	return contrib, diags
}

// isHuckelCount tests 4n + 2 for n in {0, 1, 2}.
func isHuckelCount(electrons int) bool {
	return electrons == 2 || electrons == 6 || electrons == 10
}

// countPiElectrons sums the ring's π electrons.  The bool result is false when
// any ring atom is an sp3 centre that disqualifies the ring outright.
func countPiElectrons(m *graph.Molecule, ring graph.Ring) (int, map[int]int, bool) {
	perAtom := make(map[int]int, len(ring))
	total := 0
	for _, id := range ring {
		c := piContribution(m, ring, id)
		if c == piReject {
			return 0, nil, false
		}
		perAtom[id] = c
		total += c
	}
	return total, perAtom, true
}

// piContribution applies the per-element contribution rules:
//
//	sp2 C                    → 1    C with exocyclic double bond → 0
//	C⁻                       → 2    C⁺ in ring                   → 0
//	N/P with ring π bond     → 1    N/P contributing a lone pair → 2
//	O, S, Se, Te, anionic O⁻ → 2    B (empty p orbital)          → 0
//
// Only explicit double bonds count as π participation here; aromatic bond
// orders are exactly what this pass is trying to verify, so they cannot be
// evidence.  For already-lowercase nitrogen the σ-frame decides: two
// connections is pyridine-type (one electron), three (or an H field) is
// pyrrole-type (lone pair).
func piContribution(m *graph.Molecule, ring graph.Ring, id int) int {
	a := m.Atoms[id]
	ringDouble := hasRingDouble(m, ring, id)
	exoDouble := hasExocyclicDouble(m, ring, id)

	switch a.AtomicNum {
	case 6: // C
		switch {
		case a.Charge > 0:
			return piNone
		case a.Charge < 0:
			return piLonePair
		case exoDouble:
			return piNone
		case ringDouble || a.Aromatic:
			return piOne
		default:
			return piReject
		}

	case 7, 15: // N, P
		switch {
		case ringDouble:
			return piOne
		case exoDouble:
			// N-oxide style: the exocyclic π leaves one electron for the ring.
			return piOne
		case m.Degree(id)+a.ExplicitH+a.ImplicitH >= 3:
			return piLonePair
		case a.Aromatic:
			return piOne
		default:
			// Uppercase two-connected N without a double bond: the implicit
			// hydrogen it will receive makes it pyrrole-type.
			return piLonePair
		}

	case 8, 16, 34, 52: // O, S, Se, Te
		if ringDouble {
			// Pyrylium-style oxygen keeps one π electron when positively charged.
			if a.Charge > 0 {
				return piOne
			}
			return piReject
		}
		return piLonePair

	case 5: // B
		return piNone

	default: // wildcard and exotic bracket elements
		if a.Aromatic {
			return piOne
		}
		return piReject
	}
}

// hasRingDouble reports whether the atom has an explicit double bond to
// another member of the same ring.
func hasRingDouble(m *graph.Molecule, ring graph.Ring, id int) bool {
	for _, bi := range m.BondIndices(id) {
		b := m.Bonds[bi]
		if b.Order == graph.BondDouble && ring.Contains(b.Other(id)) {
			return true
		}
	}
	return false
}

// hasExocyclicDouble reports whether the atom has a double bond leaving the ring.
func hasExocyclicDouble(m *graph.Molecule, ring graph.Ring, id int) bool {
	for _, bi := range m.BondIndices(id) {
		b := m.Bonds[bi]
		if b.Order == graph.BondDouble && !ring.Contains(b.Other(id)) {
			return true
		}
	}
	return false
}

// allWrittenAromatic reports whether every atom of the ring came in lowercase
// and none of them was confirmed by a perceived ring.
func allWrittenAromatic(m *graph.Molecule, ring graph.Ring, perceived map[int]bool) bool {
	for _, id := range ring {
		if !m.Atoms[id].Aromatic || perceived[id] {
			return false
		}
	}
	return true
}
