package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/roach88/nncalc/internal/session"
)

// maxLineBytes bounds one repl line. Numbers are typed digit by digit, so
// this is the longest number a single line can enter.
const maxLineBytes = 16 << 20

// ReplOptions holds flags for the repl command.
type ReplOptions struct {
	*RootOptions
	Prompt string
}

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Line-oriented session over stdin",
		Long: `Read key sequences from stdin, one line at a time, and print the display
after each line. All lines share one session, so input mode carries over:
a digit on the line after "+" starts a new number.

A refused press or an unknown token is reported and the rest of that line
is skipped; the session continues. "quit" or end of input ends it. A press
that cannot be journaled ends the session with exit code 2.

With --format json each line produces one JSON object.

Examples:
  nncalc repl
  echo "2 enter 100 ^" | nncalc repl --format json
  nncalc repl --db ~/.nncalc.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Prompt, "prompt", "> ", "prompt shown when stdin is a terminal")

	return cmd
}

func runRepl(opts *ReplOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    out,
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	calc, err := newCalculator(ctx, opts.RootOptions, "repl")
	if err != nil {
		return err
	}
	defer calc.Close()
	calc.accent = legendAccent(cmd, opts.RootOptions)

	prompt := ""
	if isTerminal(in) && opts.Format == "text" {
		prompt = opts.Prompt
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		actions, err := session.ParseScript(line)
		if err != nil {
			_ = formatter.Error(errorCode(err, CodeParse), err.Error(), nil)
			continue
		}
		if err := calc.session.Run(ctx, actions); err != nil {
			formatter.VerboseLog("line %q: %v", line, err)
			_ = formatter.Error(errorCode(err, CodeJournal), err.Error(), calc.result())
			if session.IsJournalError(err) {
				return WrapExitError(ExitCommandError, "failed to record press", err)
			}
			continue
		}
		if err := formatter.SuccessFor(sessionIDIfJournaled(calc), calc.result()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}
	return nil
}

// isTerminal reports whether stream is a terminal. Only *os.File can be.
func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
