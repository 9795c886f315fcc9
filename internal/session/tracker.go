package session

import (
	"fmt"

	"github.com/roach88/nncalc/internal/engine"
)

// Calculator is the part of the engine the tracker drives.
// *engine.Engine implements it.
type Calculator interface {
	Apply(op engine.Op) error
	AppendDigit(d int) error
}

// Tracker is the digit-entry state machine.
//
// Raw digit presses are ambiguous without history: after enter the next
// digit starts a fresh bottom, after an operation the result is first
// promoted into top, and otherwise the digit extends bottom. Tracker holds
// that history for one interactive session and turns each press into the
// right engine calls.
//
// Transitions:
//
//	clear                          -> JustCleared
//	enter                          -> JustEntered
//	swap, add, ..., root           -> JustOperated
//	digit in JustEntered           -> clear, append       -> JustDigited
//	digit in JustOperated          -> enter, clear, append -> JustDigited
//	digit in JustCleared/JustDigited -> append            -> JustDigited
//
// A press the engine refuses leaves the mode unchanged.
//
// Tracker is not safe for concurrent use; a session feeds it one press at
// a time.
type Tracker struct {
	calc Calculator
	mode Mode
}

// NewTracker creates a tracker in JustCleared mode.
func NewTracker(calc Calculator) *Tracker {
	return &Tracker{calc: calc, mode: JustCleared}
}

// Mode returns the current input mode.
func (t *Tracker) Mode() Mode {
	return t.mode
}

// Press applies one user action.
func (t *Tracker) Press(a Action) error {
	switch a.Op {
	case engine.OpDigit:
		return t.digit(a.Digit)

	case engine.OpClear:
		if err := t.calc.Apply(engine.OpClear); err != nil {
			return err
		}
		t.mode = JustCleared
		return nil

	case engine.OpEnter:
		if err := t.calc.Apply(engine.OpEnter); err != nil {
			return err
		}
		t.mode = JustEntered
		return nil

	case engine.OpSwap, engine.OpAdd, engine.OpSubtract, engine.OpMultiply,
		engine.OpDivide, engine.OpPower, engine.OpRoot:
		if err := t.calc.Apply(a.Op); err != nil {
			return err
		}
		t.mode = JustOperated
		return nil

	default:
		return fmt.Errorf("session: cannot press %s", a.Op)
	}
}

func (t *Tracker) digit(d int) error {
	// Reject before synthesizing any preparatory operations.
	if err := engine.CheckDigit(d); err != nil {
		return err
	}

	switch t.mode {
	case JustEntered:
		if err := t.calc.Apply(engine.OpClear); err != nil {
			return err
		}
	case JustOperated:
		if err := t.calc.Apply(engine.OpEnter); err != nil {
			return err
		}
		if err := t.calc.Apply(engine.OpClear); err != nil {
			return err
		}
	}

	if err := t.calc.AppendDigit(d); err != nil {
		return err
	}
	t.mode = JustDigited
	return nil
}
