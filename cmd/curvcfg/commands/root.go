package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/curvhdl/curvcfg/pkg/merge"
	"github.com/curvhdl/curvcfg/pkg/resolve"
	"github.com/curvhdl/curvcfg/pkg/schema"
	"github.com/curvhdl/curvcfg/pkg/telemetry"
	"github.com/curvhdl/curvcfg/pkg/tomlio"
)

var (
	// Global flags
	verbose   bool
	logFormat string
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "curvcfg",
		Short: "curvcfg - TOML configuration compiler for hardware build flows",
		Long: `curvcfg compiles layered TOML configuration files into the build
artifacts a hardware project consumes: makefile fragments, shell env files,
SystemVerilog header defines and SystemVerilog packages.

Profiles and overlays merge with later-file-wins precedence, schema
fragments declare the legal variables and their domains, and every output
file is rewritten only when its content actually changes so downstream
make rules stay quiet.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	rootCmd.AddCommand(newMergeCommand())
	rootCmd.AddCommand(newGenerateCommand())

	return rootCmd
}

// newRunLogger builds the logger for one command invocation from the
// persistent flags.
func newRunLogger() (*telemetry.Logger, error) {
	cfg := telemetry.DefaultLoggingConfig()
	cfg.Format = logFormat
	if verbose {
		cfg.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return telemetry.NewLogger(cfg)
}

// ExitCode maps an error to the process exit code: 2 for bad input data
// (parse, schema, conflict and validation failures), 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case tomlio.IsParseError(err),
		merge.IsCombineConflict(err),
		schema.IsParseError(err),
		schema.IsDuplicateName(err),
		resolve.IsMissingValue(err),
		resolve.IsValidationError(err):
		return 2
	default:
		return 1
	}
}
