package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/rotate/internal/config"
	"github.com/roach88/rotate/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	config.Config

	// ConfigPath is an optional YAML file supplying defaults for the
	// other flags.
	ConfigPath string

	// RunIDs allows overriding the run id generator (for testing).
	// If nil, defaults to store.UUIDv7Generator.
	RunIDs store.RunIDGenerator
}

// NewRootCommand creates the root command for the rotate CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{Config: config.Default()})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rotate <input-file>",
		Short: "Rotate square matrices in a CSV file",
		Long: `Rotate reads a CSV file of "id,json" lines, where json is a
JSON array whose length is a perfect square. Each array is laid out as a
square matrix, every ring is shifted one position clockwise, and the result
is written to stdout as "id,json,is_valid".

The first input line is treated as a header and replaced by
"id,json,is_valid". Lines whose payload is not a square JSON array are
emitted as "[]" with is_valid=false.

An input file named after a subcommand (history, help, completion) must be
given with a path, for example ./history.

Example:
  rotate input.csv
  rotate --format json input.csv
  rotate --db ./rotate.db input.csv`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return WrapExitError(ExitCommandError, "usage: "+cmd.UseLine(), err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return resolveConfig(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, opts, args[0])
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "debug logging on stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", opts.Format, "output format (csv|json)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", opts.Database, "path to SQLite run history (optional)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file (optional)")

	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// resolveConfig layers explicitly set flags over the config file, if any,
// and validates the result.
func resolveConfig(cmd *cobra.Command, opts *RootOptions) error {
	if opts.ConfigPath != "" {
		fileCfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}

		flags := cmd.Flags()
		if !flags.Changed("format") {
			opts.Format = fileCfg.Format
		}
		if !flags.Changed("verbose") {
			opts.Verbose = fileCfg.Verbose
		}
		if !flags.Changed("db") {
			opts.Database = fileCfg.Database
		}
	}

	if err := opts.Config.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid options", err)
	}
	return nil
}
