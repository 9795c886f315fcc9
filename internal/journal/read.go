package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/roach88/nncalc/internal/engine"
	"github.com/roach88/nncalc/internal/session"
)

// SessionInfo summarises one journaled session.
type SessionInfo struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	CreatedSeq int64  `json:"created_seq"`
	Presses    int    `json:"presses"`
	Refusals   int    `json:"refusals"`
}

// Sessions lists every session in creation order.
// Returns an empty slice (not nil) when the journal is empty.
func (j *Journal) Sessions(ctx context.Context) ([]SessionInfo, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT s.id, s.label, s.created_seq,
		       COUNT(p.seq),
		       COALESCE(SUM(CASE WHEN p.error_code != '' THEN 1 ELSE 0 END), 0)
		FROM sessions s
		LEFT JOIN presses p ON p.session_id = s.id
		GROUP BY s.id
		ORDER BY s.created_seq ASC, s.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	out := []SessionInfo{}
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.ID, &info.Label, &info.CreatedSeq, &info.Presses, &info.Refusals); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

// Session returns one session's summary, or sql.ErrNoRows wrapped if the
// id is unknown.
func (j *Journal) Session(ctx context.Context, id string) (SessionInfo, error) {
	all, err := j.Sessions(ctx)
	if err != nil {
		return SessionInfo{}, err
	}
	for _, info := range all {
		if info.ID == id {
			return info, nil
		}
	}
	return SessionInfo{}, fmt.Errorf("session %s: %w", id, sql.ErrNoRows)
}

// Presses returns a session's presses in seq order.
// Returns an empty slice (not nil) for an unknown or empty session.
func (j *Journal) Presses(ctx context.Context, sessionID string) ([]session.Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT session_id, seq, action, engine_seq, engine_op, top, bottom,
		       subtract_ok, divide_ok, power_ok, root_ok, mode, error_code, error
		FROM presses
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query presses: %w", err)
	}
	defer rows.Close()

	out := []session.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate presses: %w", err)
	}
	return out, nil
}

func scanEntry(rows *sql.Rows) (session.Entry, error) {
	var (
		e                      session.Entry
		action, op, mode, code string
		f                      engine.Flags
	)
	if err := rows.Scan(
		&e.SessionID, &e.Seq, &action, &e.Update.Seq, &op, &e.Update.Top, &e.Update.Bottom,
		&f.Subtract, &f.Divide, &f.Power, &f.Root, &mode, &code, &e.Err,
	); err != nil {
		return e, fmt.Errorf("scan press: %w", err)
	}

	a, err := parseRecordedAction(action)
	if err != nil {
		return e, fmt.Errorf("press %d: %w", e.Seq, err)
	}
	e.Action = a
	if err := e.Update.Op.UnmarshalText([]byte(op)); err != nil {
		return e, fmt.Errorf("press %d: %w", e.Seq, err)
	}
	if err := e.Mode.UnmarshalText([]byte(mode)); err != nil {
		return e, fmt.Errorf("press %d: %w", e.Seq, err)
	}
	e.Update.Flags = f
	e.ErrCode = engine.ErrorCode(code)
	return e, nil
}

// parseRecordedAction reads an action token back. Refused digit presses are
// recorded with their out-of-range value, which is not a valid token.
func parseRecordedAction(token string) (session.Action, error) {
	a, err := session.ParseAction(token)
	if err == nil {
		return a, nil
	}
	if d, convErr := strconv.Atoi(token); convErr == nil {
		return session.Digit(d), nil
	}
	return a, err
}
