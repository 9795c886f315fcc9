package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/nncalc/internal/harness"
	"github.com/roach88/nncalc/internal/journal"
	"github.com/roach88/nncalc/internal/session"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Action     string // optional - filter to one action
	OnlyErrors bool
}

// TraceResult is the press timeline of one session.
type TraceResult struct {
	Session journal.SessionInfo  `json:"session"`
	Presses []harness.TraceEvent `json:"presses"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace [session-id]",
		Short: "Show journaled sessions and presses",
		Long: `Without an argument, list every session in the journal with its press
and refusal counts. With a session ID, print that session's presses in order:
the action, both registers and flags after it, the input mode and any error.

Exit codes:
  0 - Success
  2 - Command error (no journal, unknown session, etc.)

Examples:
  nncalc trace --db ./nncalc.db
  nncalc trace 0192f3c4-... --db ./nncalc.db
  nncalc trace 0192f3c4-... --db ./nncalc.db --action divide
  nncalc trace 0192f3c4-... --db ./nncalc.db --errors --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runListSessions(opts, cmd)
			}
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Action, "action", "", "filter to one action (e.g. divide, +, 7)")
	cmd.Flags().BoolVar(&opts.OnlyErrors, "errors", false, "show refused presses only")

	return cmd
}

// openJournalForRead opens the journal named by --db or the config file.
func openJournalForRead(opts *RootOptions) (*journal.Journal, error) {
	if opts.Database == "" {
		return nil, NewExitError(ExitCommandError, "no journal: pass --db or set journal in the config file")
	}
	j, err := journal.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	return j, nil
}

func runListSessions(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	j, err := openJournalForRead(opts.RootOptions)
	if err != nil {
		return err
	}
	defer j.Close()

	sessions, err := j.Sessions(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}

	if opts.Format == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(CLIResponse{Status: "ok", Data: sessions})
	}

	w := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions in journal.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tPRESSES\tREFUSED\tLABEL")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", s.ID, s.Presses, s.Refusals, s.Label)
	}
	return tw.Flush()
}

func runTrace(opts *TraceOptions, sessionID string, cmd *cobra.Command) error {
	ctx := cmd.Context()

	var filter *session.Action
	if opts.Action != "" {
		a, err := session.ParseAction(opts.Action)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --action", err)
		}
		filter = &a
	}

	j, err := openJournalForRead(opts.RootOptions)
	if err != nil {
		return err
	}
	defer j.Close()

	result, err := loadTrace(ctx, j, sessionID, filter, opts.OnlyErrors)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", sessionID))
		}
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}

	if opts.Format == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(CLIResponse{
			Status:    "ok",
			Data:      result,
			SessionID: sessionID,
		})
	}
	return outputTraceText(cmd.OutOrStdout(), result)
}

func loadTrace(ctx context.Context, j *journal.Journal, id string, filter *session.Action, onlyErrors bool) (TraceResult, error) {
	info, err := j.Session(ctx, id)
	if err != nil {
		return TraceResult{}, err
	}
	entries, err := j.Presses(ctx, id)
	if err != nil {
		return TraceResult{}, err
	}

	presses := []harness.TraceEvent{}
	for _, e := range entries {
		if filter != nil && e.Action != *filter {
			continue
		}
		if onlyErrors && e.ErrCode == "" {
			continue
		}
		presses = append(presses, harness.EventFromEntry(e))
	}
	return TraceResult{Session: info, Presses: presses}, nil
}

// outputTraceText prints a trace as an aligned table.
func outputTraceText(w io.Writer, result TraceResult) error {
	label := result.Session.Label
	if label == "" {
		label = "(no label)"
	}
	fmt.Fprintf(w, "Session: %s  %s\n", result.Session.ID, label)
	fmt.Fprintf(w, "Presses: %d, refused: %d\n\n", result.Session.Presses, result.Session.Refusals)

	if len(result.Presses) == 0 {
		fmt.Fprintln(w, "No matching presses.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tACTION\tTOP\tBOTTOM\tMODE\tERROR")
	for _, p := range result.Presses {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", p.Seq, p.Action, p.Top, p.Bottom, p.Mode, p.Error)
	}
	return tw.Flush()
}
