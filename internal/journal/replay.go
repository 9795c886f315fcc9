package journal

import (
	"context"
	"fmt"

	"github.com/roach88/nncalc/internal/session"
)

// Divergence describes the first press whose replay differs from the
// journal.
type Divergence struct {
	Seq      int64  `json:"seq"`
	Action   string `json:"action"`
	Field    string `json:"field"`
	Recorded string `json:"recorded"`
	Replayed string `json:"replayed"`
}

func (d Divergence) String() string {
	return fmt.Sprintf("press %d (%s): %s recorded %q, replayed %q",
		d.Seq, d.Action, d.Field, d.Recorded, d.Replayed)
}

// ReplayResult is the outcome of re-executing a journaled session.
type ReplayResult struct {
	SessionID  string      `json:"session_id"`
	Presses    int         `json:"presses"`
	Identical  bool        `json:"identical"`
	Divergence *Divergence `json:"divergence,omitempty"`
}

// collector is an in-memory session.Journal.
type collector struct {
	entries []session.Entry
}

func (c *collector) Record(_ context.Context, e session.Entry) error {
	c.entries = append(c.entries, e)
	return nil
}

// Replay re-executes the recorded actions of sessionID in a fresh session
// and compares each press against the journal. Refused presses are replayed
// too and must be refused again with the same code.
//
// The replay session is discarded. The journal is not modified.
func (j *Journal) Replay(ctx context.Context, sessionID string) (*ReplayResult, error) {
	if _, err := j.Session(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	recorded, err := j.Presses(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	got := &collector{}
	s := session.New(nil,
		session.WithIDGenerator(session.NewSequenceGenerator(sessionID)),
		session.WithJournal(got),
	)
	for _, e := range recorded {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("replay: %w", err)
		}
		// Refusals are part of the transcript; compare them below.
		_ = s.Press(ctx, e.Action)
	}

	result := &ReplayResult{SessionID: sessionID, Presses: len(recorded), Identical: true}
	for i, want := range recorded {
		if d := compareEntry(want, got.entries[i]); d != nil {
			result.Identical = false
			result.Divergence = d
			break
		}
	}
	return result, nil
}

func compareEntry(want, got session.Entry) *Divergence {
	fields := []struct {
		name     string
		recorded string
		replayed string
	}{
		{"seq", fmt.Sprint(want.Seq), fmt.Sprint(got.Seq)},
		{"op", want.Update.Op.String(), got.Update.Op.String()},
		{"top", want.Update.Top, got.Update.Top},
		{"bottom", want.Update.Bottom, got.Update.Bottom},
		{"flags", fmt.Sprintf("%+v", want.Update.Flags), fmt.Sprintf("%+v", got.Update.Flags)},
		{"mode", want.Mode.String(), got.Mode.String()},
		{"error", string(want.ErrCode), string(got.ErrCode)},
		{"update_seq", fmt.Sprint(want.Update.Seq), fmt.Sprint(got.Update.Seq)},
	}
	for _, f := range fields {
		if f.recorded != f.replayed {
			return &Divergence{
				Seq:      want.Seq,
				Action:   want.Action.String(),
				Field:    f.name,
				Recorded: f.recorded,
				Replayed: f.replayed,
			}
		}
	}
	return nil
}
