// Package cli implements the smileskit command-line interface: the root
// command with global flags and the parse / canon / rings subcommands.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	appchem "github.com/turtacn/SmilesKit/internal/application/chem"
	"github.com/turtacn/SmilesKit/internal/config"
	"github.com/turtacn/SmilesKit/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions carries the global flag values.
type rootOptions struct {
	configPath string
	logLevel   string
	format     string // "text" | "json"
}

// cliContext bundles everything a subcommand needs.
type cliContext struct {
	cfg *config.Config
	log logging.Logger
	svc *appchem.Service
	out io.Writer
	fmt string
}

// NewRootCommand creates the root command and mounts the subcommands.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "smileskit",
		Short: "SMILES parsing, perception, and canonicalization toolkit",
		Long: `smileskit parses SMILES line notation into annotated molecular graphs,
perceives rings, aromaticity, hydrogens and stereo, and emits canonical SMILES.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to the YAML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "override the configured log level (debug|info|warn|error)")
	flags.StringVarP(&opts.format, "format", "f", "text", "output format: text or json")

	root.AddCommand(
		newParseCommand(opts),
		newCanonCommand(opts),
		newRingsCommand(opts),
	)
	return root
}

// newContext loads configuration and builds the service for one invocation.
func newContext(cmd *cobra.Command, opts *rootOptions) (*cliContext, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	// CLI output goes to stdout; logs must not mix in.
	cfg.Log.Format = "console"
	cfg.Log.OutputPaths = []string{"stderr"}

	log, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	return &cliContext{
		cfg: cfg,
		log: log,
		svc: appchem.NewService(cfg.Chem, appchem.WithLogger(log)),
		out: cmd.OutOrStdout(),
		fmt: opts.format,
	}, nil
}

// gatherInputs returns the SMILES inputs: positional arguments if present,
// otherwise non-empty lines from stdin.
func gatherInputs(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var out []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			out = append(out, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no SMILES input: pass arguments or pipe lines on stdin")
	}
	return out, nil
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		return 1
	}
	return 0
}
