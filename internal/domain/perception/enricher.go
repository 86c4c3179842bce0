package perception

import (
	"github.com/turtacn/SmilesKit/internal/domain/graph"
	"github.com/turtacn/SmilesKit/pkg/types/chem"
)

// Enrich runs the full enrichment sequence on one molecule: ring perception
// (lazily, through the aromaticity pass), aromaticity with kekulization
// fallback, implicit hydrogen assignment, and stereo validation.  The pass
// order is fixed; each pass is idempotent, so enriching twice yields an
// identical graph.
//
// Returned diagnostics are warnings only; enrichment never fails a molecule
// the parser accepted.
func Enrich(m *graph.Molecule, maxRingSize int) []chem.Diagnostic {
	var diags []chem.Diagnostic

	contrib, aromDiags := PerceiveAromaticity(m, maxRingSize)
	diags = append(diags, aromDiags...)
	diags = append(diags, AssignHydrogens(m, contrib)...)
	diags = append(diags, ValidateStereo(m, maxRingSize)...)

	return diags
}

// EnrichAll enriches every valid molecule of a parse result and returns the
// combined diagnostics.  Invalid partial molecules are left untouched.
func EnrichAll(mols []*graph.Molecule, maxRingSize int) []chem.Diagnostic {
	var diags []chem.Diagnostic
	for _, m := range mols {
		if m.Invalid {
			continue
		}
		diags = append(diags, Enrich(m, maxRingSize)...)
	}
	return diags
}
