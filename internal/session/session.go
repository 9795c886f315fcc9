package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/nncalc/internal/engine"
)

// Entry is the journal record of one press.
type Entry struct {
	SessionID string
	// Seq is the 1-based press number within the session.
	Seq    int64
	Action Action
	// Update is the engine state after the press. For a refused press it
	// is the unchanged state.
	Update engine.Update
	Mode   Mode
	// ErrCode is set when the engine refused the press.
	ErrCode engine.ErrorCode
	Err     string
}

// Journal receives one Entry per press.
type Journal interface {
	Record(ctx context.Context, e Entry) error
}

// JournalError reports a press that happened but could not be recorded.
// Press joins it with the engine's refusal when both occur, so callers
// must check for it before treating an error as a refusal.
type JournalError struct {
	Seq int64
	Err error
}

func (e *JournalError) Error() string {
	return fmt.Sprintf("record press %d: %v", e.Seq, e.Err)
}

func (e *JournalError) Unwrap() error { return e.Err }

// IsJournalError reports whether err contains a JournalError.
func IsJournalError(err error) bool {
	var je *JournalError
	return errors.As(err, &je)
}

// Session is one interactive calculator session: an engine, the tracker
// that interprets presses for it, and an optional journal.
//
// Sessions are independent. Nothing is shared between them and nothing
// outlives the process except what the journal records.
type Session struct {
	id      string
	engine  *engine.Engine
	tracker *Tracker
	journal Journal
	presses int64
}

type options struct {
	ids     IDGenerator
	journal Journal
	clock   *engine.Clock
}

// Option configures a Session.
type Option func(*options)

// WithIDGenerator sets the session ID source. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

// WithJournal records every press to j.
func WithJournal(j Journal) Option {
	return func(o *options) { o.journal = j }
}

// WithClock sets the engine clock.
func WithClock(c *engine.Clock) Option {
	return func(o *options) { o.clock = c }
}

// New starts a session whose engine pushes to display. The initial (0, 0)
// state is pushed before New returns.
func New(display engine.Display, opts ...Option) *Session {
	o := options{ids: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(&o)
	}

	var engOpts []engine.Option
	if o.clock != nil {
		engOpts = append(engOpts, engine.WithClock(o.clock))
	}
	eng := engine.New(display, engOpts...)

	s := &Session{
		id:      o.ids.Generate(),
		engine:  eng,
		tracker: NewTracker(eng),
		journal: o.journal,
	}
	eng.Refresh()
	slog.Debug("session started", "session", s.id)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Engine returns the session's engine.
func (s *Session) Engine() *engine.Engine { return s.engine }

// Mode returns the tracker's current input mode.
func (s *Session) Mode() Mode { return s.tracker.Mode() }

// Snapshot returns the engine's current state.
func (s *Session) Snapshot() engine.Update { return s.engine.Snapshot() }

// Press applies one action and journals it. A refused press is journaled
// too, with its error code, and its error is returned.
func (s *Session) Press(ctx context.Context, a Action) error {
	pressErr := s.tracker.Press(a)
	s.presses++

	if pressErr != nil {
		slog.Debug("press refused", "session", s.id, "action", a, "error", pressErr)
	}

	if s.journal == nil {
		return pressErr
	}
	entry := Entry{
		SessionID: s.id,
		Seq:       s.presses,
		Action:    a,
		Update:    s.engine.Snapshot(),
		Mode:      s.tracker.Mode(),
		ErrCode:   engine.CodeOf(pressErr),
	}
	if pressErr != nil {
		entry.Err = pressErr.Error()
	}
	if err := s.journal.Record(ctx, entry); err != nil {
		return errors.Join(pressErr, &JournalError{Seq: s.presses, Err: err})
	}
	return pressErr
}

// Run presses actions in order and stops at the first error.
func (s *Session) Run(ctx context.Context, actions []Action) error {
	for i, a := range actions {
		if err := s.Press(ctx, a); err != nil {
			return fmt.Errorf("action %d (%s): %w", i+1, a, err)
		}
	}
	return nil
}
