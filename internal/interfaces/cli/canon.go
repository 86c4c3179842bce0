package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	chemtypes "github.com/turtacn/SmilesKit/pkg/types/chem"
)

// canonResult is the JSON output row of the canon subcommand.
type canonResult struct {
	Input       string                 `json:"input"`
	Canonical   string                 `json:"canonical,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Diagnostics []chemtypes.Diagnostic `json:"diagnostics,omitempty"`
}

func newCanonCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "canon [SMILES...]",
		Short: "Emit the canonical SMILES for each input",
		Long: `canon parses each input, enriches the molecular graph, and prints the
canonical SMILES.  Inputs come from arguments or one per line on stdin.`,
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
				canonical, diags, err := ctx.svc.Canonical(cmd.Context(), input)
				row := canonResult{Input: input, Canonical: canonical, Diagnostics: diags}
				if err != nil {
					row.Error = err.Error()
					failed = true
				}
				if err := writeRow(ctx, row, func() string {
					if row.Error != "" {
						return fmt.Sprintf("%s\t!\t%s", input, row.Error)
					}
					return canonical
				}); err != nil {
					return err
				}
			}
			if failed {
				return fmt.Errorf("one or more inputs failed to canonicalize")
			}
			return nil
		},
	}
}

// writeRow prints one result in the selected format.
func writeRow(ctx *cliContext, row interface{}, text func() string) error {
	if ctx.fmt == "json" {
		enc := json.NewEncoder(ctx.out)
		return enc.Encode(row)
	}
	_, err := fmt.Fprintln(ctx.out, text())
	return err
}
