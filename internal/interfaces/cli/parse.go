package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	chemtypes "github.com/turtacn/SmilesKit/pkg/types/chem"
)

// parseResult is the JSON output row of the parse subcommand.
type parseResult struct {
	Input       string                 `json:"input"`
	Molecules   []parsedMolecule       `json:"molecules"`
	Diagnostics []chemtypes.Diagnostic `json:"diagnostics,omitempty"`
	Error       string                 `json:"error,omitempty"`
}

type parsedMolecule struct {
	Atoms   int  `json:"atoms"`
	Bonds   int  `json:"bonds"`
	Rings   int  `json:"rings"`
	Invalid bool `json:"invalid,omitempty"`
}

func newParseCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [SMILES...]",
		Short: "Parse inputs and report molecule statistics and diagnostics",
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
				result, err := ctx.svc.Parse(cmd.Context(), input)
				row := parseResult{Input: input}
				if err != nil {
					row.Error = err.Error()
					failed = true
				} else {
					row.Diagnostics = result.Diagnostics
					if result.HasErrors() {
						failed = true
					}
					for _, m := range result.Molecules {
						row.Molecules = append(row.Molecules, parsedMolecule{
							Atoms:   m.AtomCount(),
							Bonds:   m.BondCount(),
							Rings:   m.CyclomaticNumber(),
							Invalid: m.Invalid,
						})
					}
				}
				if err := writeRow(ctx, row, func() string {
					if row.Error != "" {
						return fmt.Sprintf("%s\t!\t%s", input, row.Error)
					}
					s := fmt.Sprintf("%s\tmolecules=%d", input, len(row.Molecules))
					for _, m := range row.Molecules {
						s += fmt.Sprintf("\t[atoms=%d bonds=%d rings=%d]", m.Atoms, m.Bonds, m.Rings)
					}
					for _, d := range row.Diagnostics {
						s += "\n\t" + d.String()
					}
					return s
				}); err != nil {
					return err
				}
			}
			if failed {
				return fmt.Errorf("one or more inputs failed to parse")
			}
			return nil
		},
	}
}
