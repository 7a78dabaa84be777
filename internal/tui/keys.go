package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// form
	Add   key.Binding
	Clear key.Binding

	// list
	Refresh  key.Binding
	Toggle   key.Binding
	Complete key.Binding
	CopyID   key.Binding
	Up       key.Binding
	Down     key.Binding

	// anywhere
	Focus key.Binding
	Quit  key.Binding
	Force key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add item")),
		Clear:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Toggle:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "hide/show completed")),
		Complete: key.NewBinding(key.WithKeys("enter", " ", "c"), key.WithHelp("enter", "mark as completed")),
		CopyID:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Focus:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch focus")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Force:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// helpKeys adapts a flat binding list to help.KeyMap.
type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding  { return h }
func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func (k keyMap) help(f focus) helpKeys {
	if f == focusForm {
		return helpKeys{k.Add, k.Clear, k.Focus, k.Force}
	}
	return helpKeys{k.Up, k.Down, k.Complete, k.Refresh, k.Toggle, k.CopyID, k.Focus, k.Quit}
}
