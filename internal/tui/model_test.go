package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nncalc/internal/session"
	"github.com/roach88/nncalc/internal/testutil"
)

func runeKey(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok, "Update returned %T, want Model", next)
	return got, cmd
}

func typeKeys(t *testing.T, m Model, keys string) Model {
	t.Helper()
	for _, r := range keys {
		m, _ = apply(t, m, runeKey(string(r)))
	}
	return m
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	return New(context.Background(), Options{
		Session: []session.Option{
			session.WithIDGenerator(testutil.NewFixedIDGenerator("")),
		},
	})
}

func TestModel_InitialView(t *testing.T) {
	m := newTestModel(t)

	assert.Nil(t, m.Init())
	view := m.View()
	assert.Contains(t, view, "nncalc")
	assert.Contains(t, view, "top")
	assert.Contains(t, view, "bottom")
	assert.Contains(t, view, "JustCleared")
}

func TestModel_DigitsEnterDigit(t *testing.T) {
	m := newTestModel(t)

	m = typeKeys(t, m, "c53")
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeKeys(t, m, "7")

	snap := m.Session().Snapshot()
	assert.Equal(t, "53", snap.Top)
	assert.Equal(t, "7", snap.Bottom)
	assert.Contains(t, m.View(), "53")
}

func TestModel_Arithmetic(t *testing.T) {
	m := newTestModel(t)

	m = typeKeys(t, m, "6=7*")

	assert.Equal(t, "42", m.Session().Snapshot().Bottom)
	assert.Contains(t, m.View(), "42")
	assert.Contains(t, m.View(), "last: multiply")
}

func TestModel_DisabledKeyRefused(t *testing.T) {
	m := newTestModel(t)

	// bottom is 0, so divide is disabled
	m = typeKeys(t, m, "/")

	assert.Equal(t, "0", m.Session().Snapshot().Bottom)
	assert.Contains(t, m.View(), "divide is not available")
	assert.Equal(t, int64(1), m.Session().Snapshot().Seq, "nothing reached the engine")
}

func TestModel_ErrorClearsOnNextPress(t *testing.T) {
	m := newTestModel(t)

	m = typeKeys(t, m, "1r")
	require.Contains(t, m.View(), "root is not available")

	m = typeKeys(t, m, "2")
	assert.NotContains(t, m.View(), "not available")
	assert.Equal(t, "12", m.Session().Snapshot().Bottom)
}

func TestModel_SwapAndRoot(t *testing.T) {
	m := newTestModel(t)

	m = typeKeys(t, m, "2=81s")
	snap := m.Session().Snapshot()
	require.Equal(t, "81", snap.Top)
	require.Equal(t, "2", snap.Bottom)

	m = typeKeys(t, m, "r")
	assert.Equal(t, "9", m.Session().Snapshot().Bottom)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := apply(t, m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_UnboundKeyIgnored(t *testing.T) {
	m := newTestModel(t)

	m = typeKeys(t, m, "z")

	assert.Equal(t, int64(1), m.Session().Snapshot().Seq)
}

func TestModel_WindowSize(t *testing.T) {
	m := New(context.Background(), Options{Width: 60})

	m, _ = apply(t, m, tea.WindowSizeMsg{Width: 30, Height: 20})
	assert.Equal(t, 26, m.width)

	m, _ = apply(t, m, tea.WindowSizeMsg{Width: 10, Height: 20})
	assert.Equal(t, MinWidth, m.width)
}

func TestNew_WidthFloor(t *testing.T) {
	m := New(context.Background(), Options{Width: 4})
	assert.Equal(t, MinWidth, m.width)
}

func TestFitDigits(t *testing.T) {
	assert.Equal(t, "123", fitDigits("123", 16))
	got := fitDigits(strings.Repeat("9", 30)+"1234", 16)
	assert.Equal(t, "…"+"9991234", got)
	assert.Equal(t, 8, len([]rune(got)))
}
