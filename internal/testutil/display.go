package testutil

import (
	"fmt"
	"sync"
)

// RecordingDisplay is an engine display sink that remembers every call.
//
// It records calls in the order they arrive so tests can assert both the
// final values and the push order.
//
// Thread-safety: all methods are safe for concurrent use.
type RecordingDisplay struct {
	mu      sync.Mutex
	calls   []string
	top     string
	bottom  string
	enabled map[string]bool
}

// NewRecordingDisplay creates an empty recorder.
func NewRecordingDisplay() *RecordingDisplay {
	return &RecordingDisplay{enabled: make(map[string]bool)}
}

func (r *RecordingDisplay) ShowTop(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.top = text
	r.calls = append(r.calls, fmt.Sprintf("ShowTop(%s)", text))
}

func (r *RecordingDisplay) ShowBottom(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bottom = text
	r.calls = append(r.calls, fmt.Sprintf("ShowBottom(%s)", text))
}

func (r *RecordingDisplay) SetSubtractEnabled(v bool) { r.set("Subtract", "subtract", v) }
func (r *RecordingDisplay) SetDivideEnabled(v bool)   { r.set("Divide", "divide", v) }
func (r *RecordingDisplay) SetPowerEnabled(v bool)    { r.set("Power", "power", v) }
func (r *RecordingDisplay) SetRootEnabled(v bool)     { r.set("Root", "root", v) }

func (r *RecordingDisplay) set(method, key string, v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled[key] = v
	r.calls = append(r.calls, fmt.Sprintf("Set%sEnabled(%t)", method, v))
}

// Calls returns a copy of the recorded calls.
func (r *RecordingDisplay) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// Top returns the last text shown in the top register.
func (r *RecordingDisplay) Top() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.top
}

// Bottom returns the last text shown in the bottom register.
func (r *RecordingDisplay) Bottom() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bottom
}

// Enabled returns the last flag pushed for "subtract", "divide", "power"
// or "root".
func (r *RecordingDisplay) Enabled(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled[key]
}

// Reset forgets all recorded calls and values.
func (r *RecordingDisplay) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.top, r.bottom = "", ""
	r.enabled = make(map[string]bool)
}
