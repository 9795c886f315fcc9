package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/nncalc/internal/session"
)

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <tokens...>",
		Short: "Run a key sequence and print the display",
		Long: `Run a whitespace-separated key sequence through a fresh session and
print the resulting display.

Tokens: clear c, swap s, enter =, add +, subtract sub -, multiply mul * x,
divide div /, power pow ^, root r, and digits. "53" presses 5 then 3.

Exit codes:
  0 - Every press was accepted
  1 - A press was refused (the display at that point is printed)
  2 - Command error (unknown token, journal unavailable)

Examples:
  nncalc eval clear 53 enter 7
  nncalc eval "2 enter 10 ^" --format json
  nncalc eval 1 2 + --db ~/.nncalc.db`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, strings.Join(args, " "), cmd)
		},
	}
	return cmd
}

func runEval(opts *RootOptions, script string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	actions, err := session.ParseScript(script)
	if err != nil {
		_ = formatter.Error(errorCode(err, CodeParse), err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid input", err)
	}

	calc, err := newCalculator(ctx, opts, session.FormatScript(actions))
	if err != nil {
		return err
	}
	defer calc.Close()
	calc.accent = legendAccent(cmd, opts)

	formatter.VerboseLog("session %s: %d presses", calc.session.ID(), len(actions))

	if err := calc.session.Run(ctx, actions); err != nil {
		_ = formatter.Error(errorCode(err, CodeJournal), err.Error(), calc.result())
		if session.IsJournalError(err) {
			return WrapExitError(ExitCommandError, "failed to record press", err)
		}
		return WrapExitError(ExitFailure, "press refused", err)
	}

	return formatter.SuccessFor(sessionIDIfJournaled(calc), calc.result())
}

// sessionIDIfJournaled returns the session ID when it can be looked up
// later with trace or replay.
func sessionIDIfJournaled(c *calculator) string {
	if c.journal == nil {
		return ""
	}
	return c.session.ID()
}
