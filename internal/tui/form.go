package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/ui"
)

// entryForm is the "Description" input with its Add Item / Clear actions.
// It holds no state of its own beyond the input widget; the draft text lives
// in the shell.
type entryForm struct {
	input textinput.Model
}

func newEntryForm() entryForm {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter description..."
	ti.CharLimit = 200
	ti.Cursor.SetMode(cursor.CursorStatic)
	return entryForm{input: ti}
}

func (f *entryForm) focus() tea.Cmd { return f.input.Focus() }
func (f *entryForm) blur()          { f.input.Blur() }

// sync makes the input show draft without disturbing the cursor when they
// already agree.
func (f *entryForm) sync(draft string) {
	if f.input.Value() != draft {
		f.input.SetValue(draft)
		f.input.CursorEnd()
	}
}

func (f entryForm) update(msg tea.Msg) (entryForm, tea.Cmd) {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f entryForm) value() string { return f.input.Value() }

func (f entryForm) view(width int) string {
	if width > 8 {
		f.input.Width = width - 8
	}
	label := ui.Current().Title.Render("Description")
	actions := button(labelAddItem, true) + "  " + button(labelClear, true)
	return label + "\n" + f.input.View() + "\n" + actions
}
