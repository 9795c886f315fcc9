package cli

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/nncalc/internal/journal"
)

// ReplaySummary holds the overall replay result.
type ReplaySummary struct {
	Sessions      []journal.ReplayResult `json:"sessions"`
	TotalSessions int                    `json:"total_sessions"`
	AllIdentical  bool                   `json:"all_identical"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay [session-id]",
		Short: "Re-execute journaled sessions and verify determinism",
		Long: `Re-execute the recorded presses of a journaled session in a fresh
calculator and compare every press against the journal: registers, flags,
input mode and refusals. Without a session ID every session is replayed.

Replay is a check only. The journal is not modified and the session cannot
be continued.

Exit codes:
  0 - Every replayed session matched its journal
  1 - A session diverged (the first differing press is reported)
  2 - Command error (no journal, unknown session, etc.)

Examples:
  nncalc replay --db ./nncalc.db
  nncalc replay 0192f3c4-... --db ./nncalc.db --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runReplay(opts *RootOptions, args []string, cmd *cobra.Command) error {
	ctx := cmd.Context()

	j, err := openJournalForRead(opts)
	if err != nil {
		return err
	}
	defer j.Close()

	var ids []string
	if len(args) == 1 {
		ids = args
	} else {
		sessions, err := j.Sessions(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
		for _, s := range sessions {
			ids = append(ids, s.ID)
		}
	}

	summary := ReplaySummary{
		Sessions:      make([]journal.ReplayResult, 0, len(ids)),
		TotalSessions: len(ids),
		AllIdentical:  true,
	}
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	for _, id := range ids {
		formatter.VerboseLog("replaying %s", id)
		res, err := j.Replay(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", id))
			}
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay session %s", id), err)
		}
		summary.Sessions = append(summary.Sessions, *res)
		if !res.Identical {
			summary.AllIdentical = false
		}
	}

	if opts.Format == "json" {
		if err := outputReplayJSON(cmd.OutOrStdout(), summary); err != nil {
			return err
		}
	} else {
		outputReplayText(cmd.OutOrStdout(), summary)
	}

	if !summary.AllIdentical {
		return NewExitError(ExitFailure, "replay diverged from journal")
	}
	return nil
}

func outputReplayJSON(w io.Writer, summary ReplaySummary) error {
	response := CLIResponse{Status: "ok", Data: summary}
	if !summary.AllIdentical {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "REPLAY_DIVERGED",
			Message: "replay diverged from journal",
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

func outputReplayText(w io.Writer, summary ReplaySummary) {
	if summary.TotalSessions == 0 {
		fmt.Fprintln(w, "No sessions in journal.")
		return
	}

	for _, r := range summary.Sessions {
		if r.Identical {
			fmt.Fprintf(w, "✓ %s (%d presses)\n", r.SessionID, r.Presses)
			continue
		}
		fmt.Fprintf(w, "✗ %s (%d presses)\n", r.SessionID, r.Presses)
		if r.Divergence != nil {
			fmt.Fprintf(w, "  %s\n", r.Divergence)
		}
	}

	fmt.Fprintln(w)
	if summary.AllIdentical {
		fmt.Fprintf(w, "✓ %d session(s) replayed identically\n", summary.TotalSessions)
	} else {
		fmt.Fprintln(w, "✗ Replay diverged from journal")
	}
}
