package engine

import (
	"log/slog"
	"sync"

	"github.com/roach88/nncalc/internal/natural"
)

// Display receives the engine's output after every operation.
//
// The presentation layer implements Display and hands it to New; the engine
// never reads anything back from it.
type Display interface {
	ShowTop(text string)
	ShowBottom(text string)
	SetSubtractEnabled(enabled bool)
	SetDivideEnabled(enabled bool)
	SetPowerEnabled(enabled bool)
	SetRootEnabled(enabled bool)
}

// Update is the observable result of one operation: both registers as
// decimal text and the legality flags, stamped with a sequence number.
type Update struct {
	Seq    int64  `json:"seq"`
	Op     Op     `json:"op"`
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
	Flags  Flags  `json:"flags"`
}

// Engine dispatches calculator operations against a register pair and
// pushes the result to a Display.
//
// Every operation validates before it mutates, builds the new pair on
// scratch values, commits both registers together and only then pushes
// one update. A refused operation leaves the registers untouched and
// pushes nothing, so the display never sees a half-applied operation.
//
// Thread-safety: all methods are safe for concurrent use. Dispatch is
// serialised by a single mutex around the register pair.
type Engine struct {
	mu      sync.Mutex
	regs    *Registers
	display Display
	clock   *Clock
	lastOp  Op
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to stamp updates.
func WithClock(c *Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// New creates an engine with both registers at zero. A nil display
// discards updates. New does not push; call Refresh to show the initial
// state.
func New(display Display, opts ...Option) *Engine {
	if display == nil {
		display = discardDisplay{}
	}
	e := &Engine{
		regs:    NewRegisters(),
		display: display,
		clock:   NewClock(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Refresh pushes the current state without changing it.
func (e *Engine) Refresh() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.push(OpNone)
}

// Clear sets bottom to zero.
func (e *Engine) Clear() { e.mustApply(OpClear) }

// Swap exchanges top and bottom.
func (e *Engine) Swap() { e.mustApply(OpSwap) }

// Enter copies bottom into top.
func (e *Engine) Enter() { e.mustApply(OpEnter) }

// Add sets bottom to top + bottom and top to zero.
func (e *Engine) Add() { e.mustApply(OpAdd) }

// Multiply sets bottom to top * bottom and top to zero.
func (e *Engine) Multiply() { e.mustApply(OpMultiply) }

// Subtract sets bottom to top - bottom and top to zero.
// Refused unless bottom <= top.
func (e *Engine) Subtract() error { return e.Apply(OpSubtract) }

// Divide sets bottom to top / bottom and top to the remainder.
// Refused when bottom is zero.
func (e *Engine) Divide() error { return e.Apply(OpDivide) }

// Power sets bottom to top raised to bottom and top to zero.
// Refused when bottom exceeds MaxExponent.
func (e *Engine) Power() error { return e.Apply(OpPower) }

// Root sets bottom to the floor of the bottom-th root of top and top to
// zero. Refused unless 2 <= bottom <= MaxExponent.
func (e *Engine) Root() error { return e.Apply(OpRoot) }

// AppendDigit sets bottom to bottom*10 + d.
func (e *Engine) AppendDigit(d int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.regs.bottom.Copy()
	if err := next.AppendDigit(d); err != nil {
		slog.Debug("engine refused digit", "digit", d)
		return newDigitError(d, err)
	}
	e.regs.commit(e.regs.top, next)
	e.push(OpDigit)
	return nil
}

// Apply dispatches one of the nine register operations.
func (e *Engine) Apply(op Op) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if op == OpSwap {
		e.regs.Exchange()
		e.push(op)
		return nil
	}

	top, bottom, err := e.compute(op)
	if err != nil {
		slog.Debug("engine refused operation", "op", op, "code", CodeOf(err))
		return err
	}
	e.regs.commit(top, bottom)
	e.push(op)
	return nil
}

func (e *Engine) mustApply(op Op) {
	if err := e.Apply(op); err != nil {
		// Only guarded operations can fail.
		panic(err)
	}
}

// compute returns the register pair that op produces from the current
// state. The current registers are never written; the returned values are
// either fresh or the untouched current ones.
func (e *Engine) compute(op Op) (top, bottom *natural.Natural, err error) {
	t, b := e.regs.top, e.regs.bottom

	switch op {
	case OpClear:
		return t, new(natural.Natural), nil

	case OpEnter:
		return b.Copy(), b, nil

	case OpAdd:
		return new(natural.Natural), new(natural.Natural).Add(t, b), nil

	case OpSubtract:
		diff, subErr := new(natural.Natural).Sub(t, b)
		if subErr != nil {
			return nil, nil, newIllegalError(op, "bottom exceeds top", subErr)
		}
		return new(natural.Natural), diff, nil

	case OpMultiply:
		return new(natural.Natural), new(natural.Natural).Mul(t, b), nil

	case OpDivide:
		q, r := new(natural.Natural), new(natural.Natural)
		if _, _, divErr := q.QuoRem(t, b, r); divErr != nil {
			return nil, nil, newIllegalError(op, "bottom is zero", divErr)
		}
		return r, q, nil

	case OpPower:
		p, ok := b.Int32()
		if !ok {
			return nil, nil, newRangeError(op)
		}
		result, powErr := new(natural.Natural).Exp(t, p)
		if powErr != nil {
			return nil, nil, newIllegalError(op, "negative exponent", powErr)
		}
		return new(natural.Natural), result, nil

	case OpRoot:
		k, ok := b.Int32()
		if !ok {
			return nil, nil, newRangeError(op)
		}
		result, rootErr := new(natural.Natural).Root(t, k)
		if rootErr != nil {
			return nil, nil, newIllegalError(op, "root degree below 2", rootErr)
		}
		return new(natural.Natural), result, nil

	default:
		return nil, nil, newIllegalError(op, "not a register operation", nil)
	}
}

// push recomputes the flags and sends the current state to the display.
// Must be called with e.mu held.
func (e *Engine) push(op Op) {
	e.lastOp = op
	u := e.snapshot(e.clock.Next())

	e.display.SetSubtractEnabled(u.Flags.Subtract)
	e.display.SetDivideEnabled(u.Flags.Divide)
	e.display.SetPowerEnabled(u.Flags.Power)
	e.display.SetRootEnabled(u.Flags.Root)
	e.display.ShowTop(u.Top)
	e.display.ShowBottom(u.Bottom)

	slog.Debug("engine update",
		"seq", u.Seq,
		"op", op,
		"top_digits", e.regs.top.Digits(),
		"bottom_digits", e.regs.bottom.Digits(),
	)
}

func (e *Engine) snapshot(seq int64) Update {
	return Update{
		Seq:    seq,
		Op:     e.lastOp,
		Top:    e.regs.top.String(),
		Bottom: e.regs.bottom.String(),
		Flags:  ComputeFlags(e.regs.top, e.regs.bottom),
	}
}

// Snapshot returns the state as of the last pushed update.
func (e *Engine) Snapshot() Update {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot(e.clock.Current())
}

// Top returns a copy of the top register.
func (e *Engine) Top() *natural.Natural {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.regs.Top()
}

// Bottom returns a copy of the bottom register.
func (e *Engine) Bottom() *natural.Natural {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.regs.Bottom()
}

// Flags returns the current legality flags.
func (e *Engine) Flags() Flags {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ComputeFlags(e.regs.top, e.regs.bottom)
}

type discardDisplay struct{}

func (discardDisplay) ShowTop(string)          {}
func (discardDisplay) ShowBottom(string)       {}
func (discardDisplay) SetSubtractEnabled(bool) {}
func (discardDisplay) SetDivideEnabled(bool)   {}
func (discardDisplay) SetPowerEnabled(bool)    {}
func (discardDisplay) SetRootEnabled(bool)     {}
