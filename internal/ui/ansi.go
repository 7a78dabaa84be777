package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// SetColorForcing overrides terminal detection. disable wins over force.
func SetColorForcing(force, disable bool) {
	switch {
	case disable:
		lipgloss.SetColorProfile(termenv.Ascii)
	case force:
		lipgloss.SetColorProfile(termenv.ANSI256)
	default:
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
	}
}

// C renders s with style.
func C(style lipgloss.Style, s string) string { return style.Render(s) }

// Fprintln writes a success or failure line to w.
func Fprintln(w io.Writer, success bool, msg string) {
	t := Current()
	if success {
		fmt.Fprintln(w, t.Success.Render(t.SymOK+" "+msg))
		return
	}
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}
