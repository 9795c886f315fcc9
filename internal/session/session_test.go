package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nncalc/internal/engine"
	"github.com/roach88/nncalc/internal/testutil"
)

type memJournal struct {
	entries []Entry
	err     error
}

func (j *memJournal) Record(_ context.Context, e Entry) error {
	if j.err != nil {
		return j.err
	}
	j.entries = append(j.entries, e)
	return nil
}

func newTestSession(t *testing.T, j Journal) (*Session, *testutil.RecordingDisplay) {
	t.Helper()
	d := testutil.NewRecordingDisplay()
	opts := []Option{WithIDGenerator(testutil.NewFixedIDGenerator(testutil.DefaultSessionID))}
	if j != nil {
		opts = append(opts, WithJournal(j))
	}
	return New(d, opts...), d
}

func TestNew_PushesInitialState(t *testing.T) {
	s, d := newTestSession(t, nil)

	assert.Equal(t, testutil.DefaultSessionID, s.ID())
	assert.Equal(t, "0", d.Top())
	assert.Equal(t, "0", d.Bottom())
	assert.True(t, d.Enabled("subtract"))
	assert.True(t, d.Enabled("power"))
	assert.False(t, d.Enabled("divide"))
	assert.False(t, d.Enabled("root"))
	assert.Equal(t, JustCleared, s.Mode())
}

func TestNew_DefaultIDIsUUID(t *testing.T) {
	s := New(nil)
	assert.Len(t, s.ID(), 36)
}

func TestSession_Run(t *testing.T) {
	s, d := newTestSession(t, nil)
	actions, err := ParseScript("clear 53 enter 7")
	require.NoError(t, err)

	require.NoError(t, s.Run(context.Background(), actions))

	assert.Equal(t, "53", d.Top())
	assert.Equal(t, "7", d.Bottom())
	assert.Equal(t, JustDigited, s.Mode())
}

func TestSession_RunStopsAtFirstError(t *testing.T) {
	s, d := newTestSession(t, nil)
	// root needs a degree of at least 2
	actions, err := ParseScript("1 root 3")
	require.NoError(t, err)

	err = s.Run(context.Background(), actions)

	require.Error(t, err)
	assert.True(t, engine.IsIllegalOperation(err))
	assert.Contains(t, err.Error(), "action 2 (root)")
	assert.Equal(t, "1", d.Bottom(), "press after the refusal never ran")
}

func TestSession_JournalsEveryPress(t *testing.T) {
	j := &memJournal{}
	s, _ := newTestSession(t, j)
	ctx := context.Background()

	require.NoError(t, s.Press(ctx, Digit(4)))
	err := s.Press(ctx, Press(engine.OpRoot))
	require.Error(t, err)
	require.NoError(t, s.Press(ctx, Press(engine.OpAdd)))

	require.Len(t, j.entries, 3)

	first := j.entries[0]
	assert.Equal(t, testutil.DefaultSessionID, first.SessionID)
	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, Digit(4), first.Action)
	assert.Equal(t, "4", first.Update.Bottom)
	assert.Equal(t, JustDigited, first.Mode)
	assert.Empty(t, first.ErrCode)

	refused := j.entries[1]
	assert.Equal(t, int64(2), refused.Seq)
	assert.Equal(t, engine.ErrCodeIllegalOperation, refused.ErrCode)
	assert.NotEmpty(t, refused.Err)
	assert.Equal(t, "4", refused.Update.Bottom, "refusal leaves state unchanged")
	assert.Equal(t, JustDigited, refused.Mode)

	last := j.entries[2]
	assert.Equal(t, int64(3), last.Seq)
	assert.Equal(t, "4", last.Update.Bottom)
	assert.Equal(t, JustOperated, last.Mode)
}

func TestSession_JournalFailure(t *testing.T) {
	boom := errors.New("disk full")
	s, d := newTestSession(t, &memJournal{err: boom})

	err := s.Press(context.Background(), Digit(8))

	require.ErrorIs(t, err, boom)
	assert.True(t, IsJournalError(err))
	assert.Empty(t, engine.CodeOf(err))
	assert.Equal(t, "8", d.Bottom(), "the press itself still happened")
}

func TestSession_JournalFailureOnRefusedPress(t *testing.T) {
	boom := errors.New("disk full")
	s, _ := newTestSession(t, &memJournal{err: boom})
	ctx := context.Background()

	err := s.Press(ctx, Press(engine.OpDivide))

	require.Error(t, err)
	assert.Equal(t, engine.ErrCodeIllegalOperation, engine.CodeOf(err), "the refusal is still reported")

	var je *JournalError
	require.ErrorAs(t, err, &je)
	assert.Equal(t, int64(1), je.Seq)
	assert.ErrorIs(t, err, boom)
}

func TestSession_Independent(t *testing.T) {
	a, _ := newTestSession(t, nil)
	b, _ := newTestSession(t, nil)
	ctx := context.Background()

	require.NoError(t, a.Press(ctx, Digit(9)))

	assert.Equal(t, "9", a.Snapshot().Bottom)
	assert.Equal(t, "0", b.Snapshot().Bottom)
	assert.Equal(t, JustCleared, b.Mode())
}
