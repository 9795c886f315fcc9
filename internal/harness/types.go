package harness

import (
	"github.com/roach88/nncalc/internal/engine"
	"github.com/roach88/nncalc/internal/session"
)

// TraceEvent is one journaled press as seen by assertions and golden files.
type TraceEvent struct {
	Seq    int64        `json:"seq"`
	Action string       `json:"action"`
	Top    string       `json:"top"`
	Bottom string       `json:"bottom"`
	Flags  engine.Flags `json:"flags"`
	Mode   string       `json:"mode"`
	Error  string       `json:"error,omitempty"`
}

// EventFromEntry converts a journal entry to its trace form.
func EventFromEntry(e session.Entry) TraceEvent {
	return TraceEvent{
		Seq:    e.Seq,
		Action: e.Action.String(),
		Top:    e.Update.Top,
		Bottom: e.Update.Bottom,
		Flags:  e.Update.Flags,
		Mode:   e.Mode.String(),
		Error:  string(e.ErrCode),
	}
}

// FinalState is the calculator state after the last step.
type FinalState struct {
	Top    string       `json:"top"`
	Bottom string       `json:"bottom"`
	Flags  engine.Flags `json:"flags"`
	Mode   string       `json:"mode"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expect clause and assertion matched.
	Pass bool `json:"pass"`

	// Trace holds every press in order, refused presses included.
	Trace []TraceEvent `json:"trace"`

	// Errors holds expectation and assertion failures. Empty if Pass.
	Errors []string `json:"errors,omitempty"`

	Final FinalState `json:"final"`
}

// NewResult creates a passing result with an empty trace.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
