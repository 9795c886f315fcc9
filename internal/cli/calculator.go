package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/roach88/nncalc/internal/display"
	"github.com/roach88/nncalc/internal/journal"
	"github.com/roach88/nncalc/internal/session"
)

// displayResult is what eval and repl print after running input.
type displayResult struct {
	display.State
	Mode string `json:"mode"`

	// accent, when set, colours the operation legend.
	accent string
}

// WriteText writes the panel followed by the input mode.
func (r displayResult) WriteText(w io.Writer) error {
	var err error
	if r.accent != "" {
		err = r.State.WriteStyledText(w, lipgloss.Color(r.accent))
	} else {
		err = r.State.WriteText(w)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "mode:   %s\n", r.Mode)
	return err
}

// calculator is a session wired to a panel and, when --db is set, a
// journal.
type calculator struct {
	session *session.Session
	panel   *display.Panel
	journal *journal.Journal
	accent  string
}

// journalOptions opens the journal named by opts.Database and registers a
// new session in it under label. It returns no options and a nil journal
// when journaling is off.
func journalOptions(ctx context.Context, opts *RootOptions, label string) (*journal.Journal, []session.Option, error) {
	if opts.Database == "" {
		return nil, nil, nil
	}

	j, err := journal.Open(opts.Database)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open journal", err)
	}

	id := session.UUIDv7Generator{}.Generate()
	if err := j.BeginSession(ctx, id, label); err != nil {
		j.Close()
		return nil, nil, WrapExitError(ExitCommandError, "failed to begin session", err)
	}
	slog.Debug("journaling session", "session", id, "db", opts.Database)

	return j, []session.Option{
		session.WithIDGenerator(session.NewSequenceGenerator(id)),
		session.WithJournal(j),
	}, nil
}

// legendAccent returns the configured accent colour when text output goes
// to a terminal, and "" otherwise.
func legendAccent(cmd *cobra.Command, opts *RootOptions) string {
	if opts.Format != "text" || !isTerminal(cmd.OutOrStdout()) {
		return ""
	}
	return opts.settings().TUI.Accent
}

func newCalculator(ctx context.Context, opts *RootOptions, label string) (*calculator, error) {
	j, sessOpts, err := journalOptions(ctx, opts, label)
	if err != nil {
		return nil, err
	}
	panel := display.NewPanel()
	return &calculator{
		session: session.New(panel, sessOpts...),
		panel:   panel,
		journal: j,
	}, nil
}

func (c *calculator) result() displayResult {
	return displayResult{State: c.panel.State(), Mode: c.session.Mode().String(), accent: c.accent}
}

// Close closes the journal, if any.
func (c *calculator) Close() error {
	if c.journal == nil {
		return nil
	}
	return c.journal.Close()
}
