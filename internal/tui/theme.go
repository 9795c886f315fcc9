package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the calculator uses.
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
)

// DefaultAccent matches the config default.
const DefaultAccent = "212"

// styles are derived from the configured accent colour.
type styles struct {
	title    lipgloss.Style
	label    lipgloss.Style
	register lipgloss.Style
	box      lipgloss.Style
	opOn     lipgloss.Style
	opOff    lipgloss.Style
	err      lipgloss.Style
	status   lipgloss.Style
}

func newStyles(accent lipgloss.Color) styles {
	return styles{
		title:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		label:    lipgloss.NewStyle().Foreground(colorSubtext0),
		register: lipgloss.NewStyle().Foreground(colorText).Bold(true),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1),
		opOn:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		opOff:  lipgloss.NewStyle().Foreground(colorOverlay0).Faint(true),
		err:    lipgloss.NewStyle().Foreground(colorRed),
		status: lipgloss.NewStyle().Foreground(colorSubtext0),
	}
}
