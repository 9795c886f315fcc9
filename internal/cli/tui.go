package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/nncalc/internal/tui"
)

// TUIOptions holds flags for the tui command.
type TUIOptions struct {
	*RootOptions
	Accent string
	Width  int
}

// NewTUICommand creates the tui command.
func NewTUICommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TUIOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Full-screen calculator",
		Long: `Start the full-screen terminal calculator.

Keys: 0-9, + - * / ^, r root, c clear, s swap, enter or = enter, q quit.
Operations the registers do not allow are dimmed and refused.

Accent colour and register width come from the config file unless given
as flags.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Accent, "accent", "", "accent colour (lipgloss colour)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "register box width")

	return cmd
}

func runTUI(opts *TUIOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := opts.settings()

	tuiOpts := tui.Options{Accent: cfg.TUI.Accent, Width: cfg.TUI.Width}
	if opts.Accent != "" {
		tuiOpts.Accent = opts.Accent
	}
	if opts.Width != 0 {
		tuiOpts.Width = opts.Width
	}

	j, sessOpts, err := journalOptions(ctx, opts.RootOptions, "tui")
	if err != nil {
		return err
	}
	if j != nil {
		defer j.Close()
	}
	tuiOpts.Session = sessOpts

	s, err := tui.Run(ctx, tuiOpts)
	if err != nil {
		return WrapExitError(ExitFailure, "terminal UI failed", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	formatter.VerboseLog("session %s ended in mode %s", s.ID(), s.Mode())
	return nil
}
