package perception

import (
	"fmt"
	"math"

	"github.com/turtacn/SmilesKit/internal/domain/graph"
	"github.com/turtacn/SmilesKit/pkg/types/chem"
)

// AssignHydrogens computes implicit hydrogen counts for every non-bracket
// atom: the smallest normal valence that accommodates the atom's effective
// valence, minus that effective valence.  Bracket atoms are authoritative and
// never receive implicit hydrogens; a declared count that no normal valence
// can accommodate draws a warning but is kept as written.
//
// contrib is the π-contribution map from aromaticity perception; aromatic
// atoms that donate a lone pair (contribution 2) keep it out of their σ frame
// and may therefore carry a hydrogen.
func AssignHydrogens(m *graph.Molecule, contrib map[int]int) []chem.Diagnostic {
	var diags []chem.Diagnostic

	for _, a := range m.Atoms {
		if a.IsBracket {
			a.ImplicitH = 0
			if d := checkBracketHydrogens(m, a); d != nil {
				diags = append(diags, *d)
			}
			continue
		}

		a.ImplicitH = 0
		valences := graph.NormalValences(a.AtomicNum)
		if valences == nil {
			continue
		}

		effective := effectiveValence(m, a, contrib)
		target := adjustForCharge(a, pickValence(valences, effective))
		if target < effective {
			diags = append(diags, chem.Diagnostic{
				Severity: chem.SeverityWarning,
				Message: fmt.Sprintf("atom %d (%s) has valence %d above the normal maximum %d",
					a.ID, a.Symbol, effective, target),
				Offset: -1,
			})
			continue
		}
		a.ImplicitH = target - effective
	}

	return diags
}

// effectiveValence sums the atom's bond orders.  Aromatic bonds contribute one
// σ connection each, plus one shared π bond when the atom contributes exactly
// one electron to its ring system (pyridine-type); lone-pair donors keep their
// π electrons out of the σ frame.
func effectiveValence(m *graph.Molecule, a *graph.Atom, contrib map[int]int) int {
	sum := 0.0
	hasAromatic := false
	for _, bi := range m.BondIndices(a.ID) {
		order := m.Bonds[bi].Order
		if order == graph.BondAromatic {
			hasAromatic = true
			sum++
			continue
		}
		sum += order.Valence()
	}
	if hasAromatic && contrib[a.ID] == piOne {
		sum++
	}
	return int(math.Ceil(sum))
}

// pickValence returns the smallest normal valence ≥ effective, or the largest
// available when the atom exceeds them all.
func pickValence(valences []int, effective int) int {
	for _, v := range valences {
		if v >= effective {
			return v
		}
	}
	return valences[len(valences)-1]
}

// adjustForCharge shifts the valence target by the formal charge following the
// standard table: N⁺/P⁺ gain a bond, N⁻/O⁻/S⁻/C⁻ lose one, O⁺/S⁺ gain one.
// Charged atoms are always written in brackets, so this path only matters for
// callers that build graphs programmatically.
func adjustForCharge(a *graph.Atom, target int) int {
	if a.Charge == 0 {
		return target
	}
	switch a.AtomicNum {
	case 6: // C
		return target - abs(a.Charge)
	case 7, 15: // N, P
		return target + a.Charge
	case 8, 16, 34: // O, S, Se
		return target + a.Charge
	default:
		return target
	}
}

// checkBracketHydrogens warns when a bracket hydrogen count cannot fit the
// element's largest normal valence given the atom's explicit bonds.  The
// declared value is kept regardless: brackets win.
func checkBracketHydrogens(m *graph.Molecule, a *graph.Atom) *chem.Diagnostic {
	if a.ExplicitH == 0 {
		return nil
	}
	max := graph.MaxNormalValence(a.AtomicNum)
	if max == 0 {
		return nil
	}
	bonds := 0.0
	for _, bi := range m.BondIndices(a.ID) {
		order := m.Bonds[bi].Order
		if order == graph.BondAromatic {
			bonds++
			continue
		}
		bonds += order.Valence()
	}
	if int(math.Ceil(bonds))+a.ExplicitH > max+abs(a.Charge) {
		return &chem.Diagnostic{
			Severity: chem.SeverityWarning,
			Message: fmt.Sprintf("bracket atom %d (%s) declares %d hydrogens, exceeding its normal valence",
				a.ID, a.Symbol, a.ExplicitH),
			Offset: -1,
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
