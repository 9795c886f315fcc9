package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/nncalc/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Database   string // journal path; empty disables journaling

	// Config is the loaded config file, set before any subcommand runs.
	Config *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the nncalc CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "nncalc",
		Short: "nncalc - natural number calculator",
		Long:  "A two-register calculator over arbitrary-precision natural numbers.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.applyConfig(cmd); err != nil {
				return err
			}
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			setupLogging(cmd, opts.Verbose)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a CUE config file")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to the SQLite journal")

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewReplCommand(opts))
	cmd.AddCommand(NewTUICommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))

	return cmd
}

// applyConfig loads the config file and fills in every global flag the
// user did not set explicitly.
func (o *RootOptions) applyConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	o.Config = cfg

	flags := cmd.Flags()
	if !flags.Changed("format") {
		o.Format = cfg.Format
	}
	if !flags.Changed("verbose") {
		o.Verbose = cfg.Verbose
	}
	if !flags.Changed("db") {
		o.Database = cfg.Journal
	}
	return nil
}

// settings returns the loaded config, or the defaults when a subcommand runs
// without the root pre-run (as in tests).
func (o *RootOptions) settings() *config.Config {
	if o.Config == nil {
		o.Config = config.Default()
	}
	return o.Config
}

func setupLogging(cmd *cobra.Command, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return config.ValidFormat(format)
}
