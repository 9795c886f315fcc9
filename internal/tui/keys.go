package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roach88/nncalc/internal/engine"
)

type keyMap struct {
	Add      key.Binding
	Subtract key.Binding
	Multiply key.Binding
	Divide   key.Binding
	Power    key.Binding
	Root     key.Binding
	Clear    key.Binding
	Swap     key.Binding
	Enter    key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Add:      key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add")),
		Subtract: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "sub")),
		Multiply: key.NewBinding(key.WithKeys("*", "x"), key.WithHelp("*", "mul")),
		Divide:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "div")),
		Power:    key.NewBinding(key.WithKeys("^"), key.WithHelp("^", "pow")),
		Root:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "root")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Swap:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "swap")),
		Enter:    key.NewBinding(key.WithKeys("enter", "="), key.WithHelp("enter", "enter")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Clear, k.Swap, k.Root, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Subtract, k.Multiply, k.Divide, k.Power, k.Root},
		{k.Enter, k.Clear, k.Swap, k.Quit},
	}
}

// opFor returns the engine operation bound to msg, or OpNone.
func (k keyMap) opFor(msg tea.KeyMsg) engine.Op {
	bindings := []struct {
		b  key.Binding
		op engine.Op
	}{
		{k.Add, engine.OpAdd},
		{k.Subtract, engine.OpSubtract},
		{k.Multiply, engine.OpMultiply},
		{k.Divide, engine.OpDivide},
		{k.Power, engine.OpPower},
		{k.Root, engine.OpRoot},
		{k.Clear, engine.OpClear},
		{k.Swap, engine.OpSwap},
		{k.Enter, engine.OpEnter},
	}
	for _, kb := range bindings {
		if key.Matches(msg, kb.b) {
			return kb.op
		}
	}
	return engine.OpNone
}
