package perception

import (
	"fmt"

	"github.com/turtacn/SmilesKit/internal/domain/canon"
	"github.com/turtacn/SmilesKit/internal/domain/graph"
	"github.com/turtacn/SmilesKit/internal/domain/rings"
	"github.com/turtacn/SmilesKit/pkg/types/chem"
)

// ValidateStereo removes stereo markers the final graph cannot support.  Two
// independent cleanups run:
//
//   - tetrahedral tags need at least three neighbors with distinct canonical
//     ranks (a symmetric centre is not a stereocentre);
//   - directional single bonds need exactly one adjacent double bond, that
//     double bond must not sit in a ring smaller than eight atoms, and the
//     two markers at one end of a double bond must disagree.
//
// Extended chirality tags (@TB, @OH, ...) are preserved verbatim and excluded
// from validation.  Hydrogens must be assigned before this pass.
func ValidateStereo(m *graph.Molecule, maxRingSize int) []chem.Diagnostic {
	var diags []chem.Diagnostic
	diags = append(diags, validateTetrahedral(m)...)
	diags = append(diags, validateDirectional(m, maxRingSize)...)
	return diags
}

// validateTetrahedral clears '@' / '@@' tags on symmetric centres.
// Distinguishability is measured by the current canonical rank: two neighbors
// sharing a rank, or two hydrogens, make the centre symmetric; fewer than
// three substituents in total leave nothing to orient.
func validateTetrahedral(m *graph.Molecule) []chem.Diagnostic {
	var diags []chem.Diagnostic

	var labels *canon.Labels
	for _, a := range m.Atoms {
		if !a.HasTetrahedralTag() {
			continue
		}
		if labels == nil {
			labels = canon.Refine(m)
		}

		duplicate := false
		seen := make(map[int]bool)
		for _, nb := range m.Neighbors(a.ID) {
			r := labels.Rank[nb]
			if seen[r] {
				duplicate = true
			}
			seen[r] = true
		}
		h := a.HydrogenCount()
		total := m.Degree(a.ID)
		if h > 0 {
			total++
		}

		if h >= 2 || duplicate || total < 3 {
			a.Chirality = graph.ChiralityNone
			diags = append(diags, chem.Diagnostic{
				Severity: chem.SeverityWarning,
				Message:  fmt.Sprintf("chirality cleared on atom %d: fewer than three distinguishable neighbors", a.ID),
				Offset:   -1,
			})
		}
	}
	return diags
}

// validateDirectional clears '/' and '\' markers that carry no usable
// geometry.
func validateDirectional(m *graph.Molecule, maxRingSize int) []chem.Diagnostic {
	var diags []chem.Diagnostic

	clear := func(b *graph.Bond, reason string) {
		b.Direction = graph.DirNone
		diags = append(diags, chem.Diagnostic{
			Severity: chem.SeverityWarning,
			Message:  reason,
			Offset:   -1,
		})
	}

	var ri *graph.RingInfo
	ringInfo := func() *graph.RingInfo {
		if ri == nil {
			ri = rings.Analyze(m, maxRingSize)
		}
		return ri
	}

	for bi, b := range m.Bonds {
		if b.Direction == graph.DirNone {
			continue
		}
		if b.Order != graph.BondSingle {
			clear(b, fmt.Sprintf("directional marker cleared on bond %d: not a single bond", bi))
			continue
		}

		adjacent := adjacentDoubleBonds(m, b)
		if len(adjacent) != 1 {
			clear(b, fmt.Sprintf("directional marker cleared on bond %d: %d adjacent double bonds", bi, len(adjacent)))
			continue
		}

		db := adjacent[0]
		if size := ringInfo().SmallestRingSizeWithBond(db.From, db.To); size > 0 && size < 8 {
			clear(b, fmt.Sprintf("directional marker cleared on bond %d: double bond fixed by a %d-ring", bi, size))
			continue
		}
	}

	// Two markers on the same side of one double bond must disagree.
	for _, db := range m.Bonds {
		if db.Order != graph.BondDouble {
			continue
		}
		for _, end := range []int{db.From, db.To} {
			var marked []*graph.Bond
			for _, nbi := range m.BondIndices(end) {
				nb := m.Bonds[nbi]
				if nb != db && nb.Direction != graph.DirNone {
					marked = append(marked, nb)
				}
			}
			if len(marked) == 2 &&
				directionSeenFrom(marked[0], end) == directionSeenFrom(marked[1], end) {
				clear(marked[0], fmt.Sprintf("conflicting directional markers at atom %d cleared", end))
				marked[1].Direction = graph.DirNone
			}
		}
	}

	return diags
}

// adjacentDoubleBonds lists double bonds sharing an endpoint with b.
func adjacentDoubleBonds(m *graph.Molecule, b *graph.Bond) []*graph.Bond {
	var out []*graph.Bond
	for _, end := range []int{b.From, b.To} {
		for _, nbi := range m.BondIndices(end) {
			nb := m.Bonds[nbi]
			if nb != b && nb.Order == graph.BondDouble {
				out = append(out, nb)
			}
		}
	}
	return out
}

// directionSeenFrom reports the bond's direction as read leaving the given
// endpoint.
func directionSeenFrom(b *graph.Bond, from int) graph.BondDirection {
	if b.From == from {
		return b.Direction
	}
	return b.Direction.Flip()
}
