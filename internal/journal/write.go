package journal

import (
	"context"
	"fmt"

	"github.com/roach88/nncalc/internal/session"
)

// BeginSession registers a session with a label. Registering an existing
// session is a no-op and keeps its original label.
func (j *Journal) BeginSession(ctx context.Context, id, label string) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO sessions (id, label, created_seq)
		VALUES (?, ?, (SELECT COALESCE(MAX(created_seq), 0) + 1 FROM sessions))
		ON CONFLICT(id) DO NOTHING
	`, id, label)
	if err != nil {
		return fmt.Errorf("begin session %s: %w", id, err)
	}
	return nil
}

// Record appends one press. It implements session.Journal.
//
// The session row is created with an empty label if BeginSession was never
// called. Recording the same (session, seq) twice keeps the first row.
func (j *Journal) Record(ctx context.Context, e session.Entry) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record press: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (id, label, created_seq)
		VALUES (?, '', (SELECT COALESCE(MAX(created_seq), 0) + 1 FROM sessions))
		ON CONFLICT(id) DO NOTHING
	`, e.SessionID); err != nil {
		return fmt.Errorf("record press: ensure session: %w", err)
	}

	f := e.Update.Flags
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO presses
		(session_id, seq, action, engine_seq, engine_op, top, bottom,
		 subtract_ok, divide_ok, power_ok, root_ok, mode, error_code, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, seq) DO NOTHING
	`,
		e.SessionID,
		e.Seq,
		e.Action.String(),
		e.Update.Seq,
		e.Update.Op.String(),
		e.Update.Top,
		e.Update.Bottom,
		f.Subtract, f.Divide, f.Power, f.Root,
		e.Mode.String(),
		string(e.ErrCode),
		e.Err,
	); err != nil {
		return fmt.Errorf("record press %d: %w", e.Seq, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record press: commit: %w", err)
	}
	return nil
}

var _ session.Journal = (*Journal)(nil)
