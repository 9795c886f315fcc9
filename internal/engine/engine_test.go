package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nncalc/internal/natural"
	"github.com/roach88/nncalc/internal/testutil"
)

// load sets the registers directly, bypassing the display.
func load(t *testing.T, e *Engine, top, bottom string) {
	t.Helper()
	e.regs.SetTop(natural.MustParse(top))
	e.regs.SetBottom(natural.MustParse(bottom))
}

func state(e *Engine) (string, string) {
	s := e.Snapshot()
	return s.Top, s.Bottom
}

func TestEngine_New(t *testing.T) {
	rec := testutil.NewRecordingDisplay()
	e := New(rec)

	top, bottom := state(e)
	assert.Equal(t, "0", top)
	assert.Equal(t, "0", bottom)
	assert.Empty(t, rec.Calls(), "New must not push")
}

func TestEngine_Refresh(t *testing.T) {
	rec := testutil.NewRecordingDisplay()
	e := New(rec)

	e.Refresh()

	assert.Equal(t, "0", rec.Top())
	assert.Equal(t, "0", rec.Bottom())
	// Initial state: subtract and power legal, divide and root not.
	assert.Equal(t, Flags{Subtract: true, Power: true}, recordedFlags(rec))
	assert.Equal(t, OpNone, e.Snapshot().Op)
}

func TestEngine_PushOrder(t *testing.T) {
	rec := testutil.NewRecordingDisplay()
	e := New(rec)

	require.NoError(t, e.AppendDigit(7))

	assert.Equal(t, []string{
		"SetSubtractEnabled(false)",
		"SetDivideEnabled(true)",
		"SetPowerEnabled(true)",
		"SetRootEnabled(true)",
		"ShowTop(0)",
		"ShowBottom(7)",
	}, rec.Calls())
}

func TestEngine_Clear(t *testing.T) {
	e := New(nil)
	load(t, e, "12", "34")

	e.Clear()

	top, bottom := state(e)
	assert.Equal(t, "12", top)
	assert.Equal(t, "0", bottom)
}

func TestEngine_Clear_Idempotent(t *testing.T) {
	once := New(nil)
	load(t, once, "5", "9")
	once.Clear()

	twice := New(nil)
	load(t, twice, "5", "9")
	twice.Clear()
	twice.Clear()

	assert.Equal(t, once.Snapshot().Top, twice.Snapshot().Top)
	assert.Equal(t, once.Snapshot().Bottom, twice.Snapshot().Bottom)
	assert.Equal(t, once.Snapshot().Flags, twice.Snapshot().Flags)
}

func TestEngine_Swap(t *testing.T) {
	e := New(nil)
	load(t, e, "1", "2")

	e.Swap()
	top, bottom := state(e)
	assert.Equal(t, "2", top)
	assert.Equal(t, "1", bottom)

	e.Swap()
	top, bottom = state(e)
	assert.Equal(t, "1", top, "swap is its own inverse")
	assert.Equal(t, "2", bottom)
}

func TestEngine_ApplySwapPushesUpdate(t *testing.T) {
	e := New(nil)
	load(t, e, "7", "0")
	before := e.Snapshot().Seq

	require.NoError(t, e.Apply(OpSwap))

	s := e.Snapshot()
	assert.Equal(t, OpSwap, s.Op)
	assert.Equal(t, before+1, s.Seq)
	assert.Equal(t, "0", s.Top)
	assert.Equal(t, "7", s.Bottom)
	assert.Equal(t, Flags{Subtract: false, Divide: true, Power: true, Root: true}, s.Flags)
}

func TestEngine_Swap_NoAliasing(t *testing.T) {
	e := New(nil)
	load(t, e, "10", "20")

	e.Swap()
	require.NoError(t, e.AppendDigit(5))

	top, bottom := state(e)
	assert.Equal(t, "20", top, "appending to bottom must not leak into top")
	assert.Equal(t, "105", bottom)
}

func TestEngine_Enter(t *testing.T) {
	e := New(nil)
	load(t, e, "1", "42")

	e.Enter()
	top, bottom := state(e)
	assert.Equal(t, "42", top)
	assert.Equal(t, "42", bottom)

	// top is a copy, not the same storage.
	require.NoError(t, e.AppendDigit(0))
	top, bottom = state(e)
	assert.Equal(t, "42", top)
	assert.Equal(t, "420", bottom)
}

func TestEngine_EnterThenClear(t *testing.T) {
	for _, v := range []string{"0", "7", "123456789012345678901234567890"} {
		t.Run(v, func(t *testing.T) {
			e := New(nil)
			load(t, e, "3", v)

			e.Enter()
			e.Clear()

			top, bottom := state(e)
			assert.Equal(t, v, top)
			assert.Equal(t, "0", bottom)
		})
	}
}

func TestEngine_BinaryOperations(t *testing.T) {
	big := "1" + strings.Repeat("0", 30)

	tests := []struct {
		name       string
		op         Op
		top        string
		bottom     string
		wantTop    string
		wantBottom string
	}{
		{"add", OpAdd, "2", "3", "0", "5"},
		{"add zero", OpAdd, "0", "4", "0", "4"},
		{"add big", OpAdd, big, "1", "0", "1" + strings.Repeat("0", 29) + "1"},
		{"subtract", OpSubtract, "10", "3", "0", "7"},
		{"subtract equal", OpSubtract, "9", "9", "0", "0"},
		{"multiply", OpMultiply, "6", "7", "0", "42"},
		{"multiply big", OpMultiply, big, big, "0", "1" + strings.Repeat("0", 60)},
		{"divide", OpDivide, "17", "5", "2", "3"},
		{"divide exact", OpDivide, "20", "5", "0", "4"},
		{"divide smaller", OpDivide, "3", "5", "3", "0"},
		{"power", OpPower, "2", "10", "0", "1024"},
		{"power zero", OpPower, "0", "0", "0", "1"},
		{"root", OpRoot, "1000", "3", "0", "10"},
		{"root floor", OpRoot, "99", "2", "0", "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(nil)
			load(t, e, tt.top, tt.bottom)

			require.NoError(t, e.Apply(tt.op))

			top, bottom := state(e)
			assert.Equal(t, tt.wantTop, top)
			assert.Equal(t, tt.wantBottom, bottom)
			assert.Equal(t, tt.op, e.Snapshot().Op)
		})
	}
}

func TestEngine_NamedMethods(t *testing.T) {
	e := New(nil)
	load(t, e, "8", "2")

	require.NoError(t, e.Subtract()) // (0, 6)
	e.Enter()                        // (6, 6)
	e.Add()                          // (0, 12)
	e.Enter()                        // (12, 12)
	e.Clear()                        // (12, 0)
	require.NoError(t, e.AppendDigit(4))
	require.NoError(t, e.Divide()) // (0, 3)
	e.Enter()
	e.Multiply() // (0, 9)
	e.Enter()
	e.Clear()
	require.NoError(t, e.AppendDigit(2))
	require.NoError(t, e.Root()) // (0, 3)
	e.Enter()
	e.Clear()
	require.NoError(t, e.AppendDigit(3))
	require.NoError(t, e.Power()) // (0, 27)

	top, bottom := state(e)
	assert.Equal(t, "0", top)
	assert.Equal(t, "27", bottom)
}

func TestEngine_Subtract_Property(t *testing.T) {
	for a := 0; a < 12; a++ {
		for b := 0; b < 12; b++ {
			e := New(nil)
			load(t, e, fmt.Sprint(a), fmt.Sprint(b))

			assert.Equal(t, b <= a, e.Flags().Subtract, "flag for (%d,%d)", a, b)

			err := e.Subtract()
			if b <= a {
				require.NoError(t, err)
				top, bottom := state(e)
				assert.Equal(t, "0", top)
				assert.Equal(t, fmt.Sprint(a-b), bottom)
			} else {
				assert.True(t, IsIllegalOperation(err))
			}
		}
	}
}

func TestEngine_Divide_Property(t *testing.T) {
	for a := 0; a < 15; a++ {
		for b := 0; b < 6; b++ {
			e := New(nil)
			load(t, e, fmt.Sprint(a), fmt.Sprint(b))

			assert.Equal(t, b != 0, e.Flags().Divide)

			err := e.Divide()
			if b == 0 {
				assert.True(t, IsIllegalOperation(err))
				continue
			}
			require.NoError(t, err)
			top, bottom := state(e)
			assert.Equal(t, fmt.Sprint(a%b), top)
			assert.Equal(t, fmt.Sprint(a/b), bottom)
		}
	}
}

func TestEngine_RefusalLeavesStateAndDisplay(t *testing.T) {
	tooBig := fmt.Sprint(int64(MaxExponent) + 1)

	tests := []struct {
		name   string
		op     Op
		top    string
		bottom string
		code   ErrorCode
	}{
		{"subtract underflow", OpSubtract, "3", "4", ErrCodeIllegalOperation},
		{"divide by zero", OpDivide, "3", "0", ErrCodeIllegalOperation},
		{"power out of range", OpPower, "3", tooBig, ErrCodeRangeConversion},
		{"root out of range", OpRoot, "3", tooBig, ErrCodeRangeConversion},
		{"root degree zero", OpRoot, "3", "0", ErrCodeIllegalOperation},
		{"root degree one", OpRoot, "3", "1", ErrCodeIllegalOperation},
		{"digit through apply", OpDigit, "3", "1", ErrCodeIllegalOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecordingDisplay()
			e := New(rec)
			load(t, e, tt.top, tt.bottom)
			before := e.Snapshot()

			err := e.Apply(tt.op)

			require.Error(t, err)
			assert.Equal(t, tt.code, CodeOf(err))
			var engErr *Error
			require.ErrorAs(t, err, &engErr)
			assert.Equal(t, tt.op, engErr.Op)
			assert.Equal(t, before, e.Snapshot(), "state unchanged")
			assert.Empty(t, rec.Calls(), "nothing pushed")
		})
	}
}

func TestEngine_AppendDigit(t *testing.T) {
	e := New(nil)

	require.NoError(t, e.AppendDigit(0))
	assert.Equal(t, "0", e.Snapshot().Bottom)

	for _, d := range []int{9, 0, 1, 2} {
		require.NoError(t, e.AppendDigit(d))
	}
	assert.Equal(t, "9012", e.Snapshot().Bottom)
	assert.Equal(t, OpDigit, e.Snapshot().Op)
}

func TestEngine_AppendDigit_Invalid(t *testing.T) {
	rec := testutil.NewRecordingDisplay()
	e := New(rec)

	for _, d := range []int{-1, 10} {
		err := e.AppendDigit(d)
		assert.True(t, IsInvalidDigit(err))
		assert.ErrorIs(t, err, natural.ErrInvalidDigit)
	}
	assert.Equal(t, "0", e.Snapshot().Bottom)
	assert.Empty(t, rec.Calls())
}

func TestEngine_SeqAdvancesPerPush(t *testing.T) {
	e := New(nil, WithClock(NewClockAt(10)))

	e.Refresh()
	assert.Equal(t, int64(11), e.Snapshot().Seq)

	_ = e.Divide() // refused, no push
	assert.Equal(t, int64(11), e.Snapshot().Seq)

	require.NoError(t, e.AppendDigit(1))
	assert.Equal(t, int64(12), e.Snapshot().Seq)
}

func TestEngine_AccessorsReturnCopies(t *testing.T) {
	e := New(nil)
	load(t, e, "5", "6")

	top := e.Top()
	require.NoError(t, top.AppendDigit(1))
	bottom := e.Bottom()
	bottom.Clear()

	assert.Equal(t, "5", e.Snapshot().Top)
	assert.Equal(t, "6", e.Snapshot().Bottom)
}

func recordedFlags(rec *testutil.RecordingDisplay) Flags {
	return Flags{
		Subtract: rec.Enabled("subtract"),
		Divide:   rec.Enabled("divide"),
		Power:    rec.Enabled("power"),
		Root:     rec.Enabled("root"),
	}
}
