// Package display holds the calculator's display sinks: a Panel that keeps
// the most recent pushed values and renders them for the terminal or as
// JSON.
package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/nncalc/internal/engine"
)

// Disabled marks an operation the current registers do not allow.
const Disabled = "·"

// State is the panel contents as a value.
type State struct {
	Top    string       `json:"top"`
	Bottom string       `json:"bottom"`
	Flags  engine.Flags `json:"flags"`
}

// Legend returns the operation legend for s: one symbol per guarded
// operation in the order subtract, divide, power, root, with disabled
// operations replaced by Disabled.
func (s State) Legend() string {
	return strings.Join(s.legendSymbols(), " ")
}

// WriteText writes s as plain text:
//
//	top:    53
//	bottom: 7
//	ops:    - / ^ √
func (s State) WriteText(w io.Writer) error {
	return writeText(w, s, s.Legend())
}

func (s State) legendSymbols() []string {
	pick := func(ok bool, sym string) string {
		if ok {
			return sym
		}
		return Disabled
	}
	return []string{
		pick(s.Flags.Subtract, "-"),
		pick(s.Flags.Divide, "/"),
		pick(s.Flags.Power, "^"),
		pick(s.Flags.Root, "√"),
	}
}

// Panel implements engine.Display by remembering the last value pushed for
// each field.
//
// Thread-safety: Panel is safe for concurrent use.
type Panel struct {
	mu    sync.Mutex
	state State
}

// NewPanel returns a panel showing zero in both registers with every
// operation disabled until the first push.
func NewPanel() *Panel {
	return &Panel{state: State{Top: "0", Bottom: "0"}}
}

func (p *Panel) update(fn func(*State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.state)
}

func (p *Panel) ShowTop(text string) {
	p.update(func(s *State) { s.Top = text })
}

func (p *Panel) ShowBottom(text string) {
	p.update(func(s *State) { s.Bottom = text })
}

func (p *Panel) SetSubtractEnabled(v bool) {
	p.update(func(s *State) { s.Flags.Subtract = v })
}

func (p *Panel) SetDivideEnabled(v bool) {
	p.update(func(s *State) { s.Flags.Divide = v })
}

func (p *Panel) SetPowerEnabled(v bool) {
	p.update(func(s *State) { s.Flags.Power = v })
}

func (p *Panel) SetRootEnabled(v bool) {
	p.update(func(s *State) { s.Flags.Root = v })
}

// State returns a copy of the panel contents.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// WriteStyledText is WriteText with the legend rendered through lipgloss:
// enabled symbols in the accent colour, disabled ones faint.
func (s State) WriteStyledText(w io.Writer, accent lipgloss.Color) error {
	on := lipgloss.NewStyle().Foreground(accent).Bold(true)
	off := lipgloss.NewStyle().Faint(true)
	syms := s.legendSymbols()
	for i, sym := range syms {
		if sym == Disabled {
			syms[i] = off.Render(sym)
		} else {
			syms[i] = on.Render(sym)
		}
	}
	return writeText(w, s, strings.Join(syms, " "))
}

func writeText(w io.Writer, s State, legend string) error {
	_, err := fmt.Fprintf(w, "top:    %s\nbottom: %s\nops:    %s\n", s.Top, s.Bottom, legend)
	return err
}

var _ engine.Display = (*Panel)(nil)
