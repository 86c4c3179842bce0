package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	chemtypes "github.com/turtacn/SmilesKit/pkg/types/chem"
)

// ringsResult is the JSON output row of the rings subcommand.
type ringsResult struct {
	Input       string                 `json:"input"`
	Molecules   []ringsMolecule        `json:"molecules,omitempty"`
	Diagnostics []chemtypes.Diagnostic `json:"diagnostics,omitempty"`
	Error       string                 `json:"error,omitempty"`
}

type ringsMolecule struct {
	SSSR      [][]int                    `json:"sssr"`
	Relations [][]chemtypes.RingRelation `json:"relations"`
}

func newRingsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rings [SMILES...]",
		Short: "Report SSSR rings and their pairwise classification",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newContext(cmd, opts)
			if err != nil {
				return err
			}
			inputs, err := gatherInputs(cmd, args)
			if err != nil {
				return err
			}

			failed := false
			for _, input := range inputs {
				infos, diags, err := ctx.svc.AnalyzeRings(cmd.Context(), input)
				row := ringsResult{Input: input, Diagnostics: diags}
				if err != nil {
					row.Error = err.Error()
					failed = true
				} else {
					relations, _, relErr := ctx.svc.RingRelations(cmd.Context(), input)
					if relErr != nil {
						row.Error = relErr.Error()
						failed = true
					} else {
						for i, info := range infos {
							mol := ringsMolecule{Relations: relations[i]}
							for _, r := range info.SSSR {
								mol.SSSR = append(mol.SSSR, append([]int(nil), r...))
							}
							row.Molecules = append(row.Molecules, mol)
						}
					}
				}
				if err := writeRow(ctx, row, func() string {
					if row.Error != "" {
						return fmt.Sprintf("%s\t!\t%s", input, row.Error)
					}
					var sb strings.Builder
					fmt.Fprintf(&sb, "%s", input)
					for mi, mol := range row.Molecules {
						fmt.Fprintf(&sb, "\n  molecule %d: %d rings", mi, len(mol.SSSR))
						for ri, ring := range mol.SSSR {
							fmt.Fprintf(&sb, "\n    ring %d (size %d): %v", ri+1, len(ring), ring)
						}
						for i := range mol.Relations {
							for j := i + 1; j < len(mol.Relations[i]); j++ {
								fmt.Fprintf(&sb, "\n    rings %d,%d: %s", i+1, j+1, mol.Relations[i][j])
							}
						}
					}
					return sb.String()
				}); err != nil {
					return err
				}
			}
			if failed {
				return fmt.Errorf("one or more inputs failed ring analysis")
			}
			return nil
		},
	}
}
