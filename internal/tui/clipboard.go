package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
)

type copiedMsg struct {
	id  model.ID
	err error
}

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

func copyID(id model.ID) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{id: id, err: clipboardWrite(id.String())}
	}
}
