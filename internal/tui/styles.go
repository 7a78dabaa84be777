package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/ui"
)

// Labels shown on the on-screen actions.
const (
	labelAddItem       = "Add Item"
	labelClear         = "Clear"
	labelRefresh       = "Refresh"
	labelHideCompleted = "Hide Completed Items"
	labelShowCompleted = "Show Completed Items"
	labelMarkCompleted = "Mark as completed"
	labelCompleted     = "Completed"
)

// button renders an action label; disabled ones are dimmed.
func button(label string, enabled bool) string {
	t := ui.Current()
	if !enabled {
		return t.ButtonDisabled.Render("[ " + label + " ]")
	}
	return t.Button.Render("[ " + label + " ]")
}

// section frames a block; the focused one gets the accent border.
func section(inner string, width int, focused bool) string {
	t := ui.Current()
	st := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	if focused {
		st = st.BorderForeground(t.Accent.GetForeground())
	}
	if width > 4 {
		st = st.Width(width - 2)
	}
	return st.Render(inner)
}

func errorBanner(msg string, width int) string {
	t := ui.Current()
	st := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.Error.GetForeground()).
		Padding(0, 1)
	if width > 4 {
		st = st.Width(width - 2)
	}
	return st.Render(t.Error.Render(msg))
}
