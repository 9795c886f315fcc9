// Package tui is the full-screen terminal front end.
//
// The model owns one session whose engine pushes into a display.Panel; View
// renders the panel. Keys for operations the panel shows as disabled are
// refused before they reach the engine.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/nncalc/internal/display"
	"github.com/roach88/nncalc/internal/engine"
	"github.com/roach88/nncalc/internal/session"
)

// MinWidth is the narrowest register box the view draws.
const MinWidth = 16

// Options configures a Model.
type Options struct {
	// Accent is a lipgloss colour. Default DefaultAccent.
	Accent string
	// Width of the register boxes in cells. Default 48, minimum MinWidth.
	Width int
	// Session options, e.g. session.WithJournal.
	Session []session.Option
}

// Model is the bubbletea model.
type Model struct {
	ctx     context.Context
	session *session.Session
	panel   *display.Panel
	keys    keyMap
	help    help.Model
	styles  styles
	width   int
	status  string
	err     string
}

// New creates a model with a fresh session.
func New(ctx context.Context, opts Options) Model {
	accent := opts.Accent
	if accent == "" {
		accent = DefaultAccent
	}
	width := opts.Width
	if width == 0 {
		width = 48
	}
	width = max(width, MinWidth)

	panel := display.NewPanel()
	s := session.New(panel, opts.Session...)

	return Model{
		ctx:     ctx,
		session: s,
		panel:   panel,
		keys:    newKeyMap(),
		help:    help.New(),
		styles:  newStyles(lipgloss.Color(accent)),
		width:   width,
	}
}

// Session returns the model's session.
func (m Model) Session() *session.Session { return m.session }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Leave room for the box border and padding.
		if msg.Width-4 < m.width {
			m.width = max(msg.Width-4, MinWidth)
		}
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	var a session.Action
	if d, ok := digitKey(msg); ok {
		a = session.Digit(d)
	} else if op := m.keys.opFor(msg); op != engine.OpNone {
		if !m.panel.State().Flags.Allows(op) {
			m.setError(fmt.Sprintf("%s is not available", op))
			return m, nil
		}
		a = session.Press(op)
	} else {
		return m, nil
	}

	if err := m.session.Press(m.ctx, a); err != nil {
		m.setError(err.Error())
		return m, nil
	}
	m.err = ""
	m.status = a.String()
	return m, nil
}

func (m *Model) setError(msg string) {
	m.err = msg
	m.status = ""
}

func digitKey(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '0' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

// View implements tea.Model.
func (m Model) View() string {
	st := m.panel.State()

	var b strings.Builder
	b.WriteString(m.styles.title.Render("nncalc"))
	b.WriteString("  ")
	b.WriteString(m.styles.status.Render(m.session.Mode().String()))
	b.WriteString("\n")

	b.WriteString(m.registerBox("top", st.Top))
	b.WriteString("\n")
	b.WriteString(m.registerBox("bottom", st.Bottom))
	b.WriteString("\n")
	b.WriteString(m.legend(st))
	b.WriteString("\n")

	switch {
	case m.err != "":
		b.WriteString(m.styles.err.Render(m.err))
	case m.status != "":
		b.WriteString(m.styles.status.Render("last: " + m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) registerBox(label, value string) string {
	inner := m.width
	text := fitDigits(value, inner)
	pad := max(inner-lipgloss.Width(label)-lipgloss.Width(text)-1, 1)
	line := m.styles.label.Render(label) + strings.Repeat(" ", pad) + m.styles.register.Render(text)
	return m.styles.box.Width(inner + 2).Render(line)
}

// fitDigits keeps the least significant digits of a number that does not
// fit, marking the cut with an ellipsis.
func fitDigits(s string, width int) string {
	room := width - 8
	if len(s) <= room {
		return s
	}
	return "…" + s[len(s)-room+1:]
}

func (m Model) legend(st display.State) string {
	ops := []struct {
		sym string
		on  bool
	}{
		{"+", true},
		{"-", st.Flags.Subtract},
		{"*", true},
		{"/", st.Flags.Divide},
		{"^", st.Flags.Power},
		{"√", st.Flags.Root},
	}
	parts := make([]string, len(ops))
	for i, op := range ops {
		if op.on {
			parts[i] = m.styles.opOn.Render(op.sym)
		} else {
			parts[i] = m.styles.opOff.Render(op.sym)
		}
	}
	return strings.Join(parts, " ")
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, opts Options, progOpts ...tea.ProgramOption) (*session.Session, error) {
	m := New(ctx, opts)
	progOpts = append([]tea.ProgramOption{tea.WithContext(ctx)}, progOpts...)
	if _, err := tea.NewProgram(m, progOpts...).Run(); err != nil {
		return m.session, fmt.Errorf("run tui: %w", err)
	}
	return m.session, nil
}
