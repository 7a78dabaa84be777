// Package tui is the interactive terminal front end: banner, entry form,
// item list and footer over a shell.Shell.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/shell"
	"github.com/idilsaglam/tada/internal/ui"
)

type focus int

const (
	focusForm focus = iota
	focusList
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	minListHeight = 3
)

// Model is the Bubble Tea model of the whole screen.
type Model struct {
	shell *shell.Shell

	form     entryForm
	list     list.Model
	delegate itemDelegate
	keys     keyMap
	help     help.Model

	focus  focus
	status string // transient, cleared on the next key
	width  int
	height int
}

// New builds the screen over sh. Nothing is fetched until Init runs.
func New(sh *shell.Shell) Model {
	m := Model{
		shell:    sh,
		form:     newEntryForm(),
		list:     newItemList(),
		delegate: itemDelegate{idWidth: len("Id")},
		keys:     defaultKeyMap(),
		help:     help.New(),
		focus:    focusForm,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.form.focus()
	m.syncList()
	return m
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(ctx context.Context, sh *shell.Shell) error {
	p := tea.NewProgram(New(sh), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init issues the one list call made on mount.
func (m Model) Init() tea.Cmd { return m.shell.List() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.shell.Apply(msg) {
		m.form.sync(m.shell.Description)
		m.syncList()
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied " + msg.id.String()
		}
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		switch {
		case key.Matches(msg, m.keys.Force):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Focus):
			return m, m.switchFocus()
		}
		if m.focus == focusForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		return m, m.shell.Add(m.shell.Description)
	case key.Matches(msg, m.keys.Clear):
		m.shell.Clear()
		m.form.sync(m.shell.Description)
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	m.shell.SetDescription(m.form.value())
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		return m, m.shell.List()
	case key.Matches(msg, m.keys.Toggle):
		m.shell.ToggleShowCompleted()
		m.syncList()
		return m, nil
	case key.Matches(msg, m.keys.Complete):
		it, ok := m.selected()
		if !ok || it.IsCompleted {
			return m, nil
		}
		return m, m.shell.MarkComplete(it.Item)
	case key.Matches(msg, m.keys.CopyID):
		if it, ok := m.selected(); ok {
			return m, copyID(it.ID)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) switchFocus() tea.Cmd {
	if m.focus == focusForm {
		m.focus = focusList
		m.form.blur()
		return nil
	}
	m.focus = focusForm
	return m.form.focus()
}

func (m Model) selected() (listItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it, ok
}

// syncList rebuilds the rows from the shell's filtered view.
func (m *Model) syncList() {
	visible := m.shell.FilteredView()
	rows := make([]list.Item, 0, len(visible))
	for _, it := range visible {
		rows = append(rows, listItem{Item: it})
	}
	m.delegate.idWidth = idColumnWidth(visible)
	m.list.SetDelegate(m.delegate)
	m.list.SetItems(rows)
	if n := len(rows); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

func (m Model) View() string {
	inner := m.width - 4 // border + padding

	top := []string{banner(inner)}
	if m.shell.Error != "" {
		top = append(top, errorBanner(m.shell.Error, m.width))
	}
	top = append(top, section(m.form.view(inner), m.width, m.focus == focusForm))

	filtered, total := m.shell.Counts()
	listTop := listHeader(filtered, total, m.shell.ShowCompleted) + "\n" + m.delegate.columnHeader(inner)

	bottom := []string{}
	if m.status != "" {
		bottom = append(bottom, ui.Current().Accent.Render(m.status))
	}
	bottom = append(bottom, footer(), m.help.View(m.keys.help(m.focus)))

	chrome := lipgloss.Height(lipgloss.JoinVertical(lipgloss.Left, top...)) +
		lipgloss.Height(listTop) + 2 + // section border
		lipgloss.Height(lipgloss.JoinVertical(lipgloss.Left, bottom...))
	listHeight := m.height - chrome
	if listHeight < minListHeight {
		listHeight = minListHeight
	}
	m.list.SetSize(inner, listHeight)

	items := section(listTop+"\n"+m.list.View(), m.width, m.focus == focusList)
	parts := append(top, items)
	parts = append(parts, bottom...)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
