package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/ui"
)

const (
	maxIDWidth  = 36 // a UUID
	minDescCols = 10
)

// listItem adapts model.Item to bubbles/list.Item.
type listItem struct {
	model.Item
}

func (i listItem) FilterValue() string { return i.Description }

// actionLabel is what the row's action shows.
func (i listItem) actionLabel() string {
	if i.IsCompleted {
		return labelCompleted
	}
	return labelMarkCompleted
}

// itemDelegate renders one table row per item: id, description, action.
type itemDelegate struct {
	idWidth int
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	descW := d.descWidth(m.Width())

	id := ui.PadRight(ui.Truncate(it.ID.String(), d.idWidth), d.idWidth)
	desc := ui.PadRight(ui.Truncate(it.Description, descW), descW)
	if it.IsCompleted {
		desc = t.Done.Render(desc)
	}
	action := button(it.actionLabel(), !it.IsCompleted)

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprint(w, prefix+t.Muted.Render(id)+"  "+desc+"  "+action)
}

func (d itemDelegate) descWidth(total int) int {
	action := ansi.StringWidth("[ " + labelMarkCompleted + " ]")
	w := total - 2 - d.idWidth - 2 - 2 - action
	if w < minDescCols {
		w = minDescCols
	}
	return w
}

// columnHeader lines up with the rows the delegate renders.
func (d itemDelegate) columnHeader(total int) string {
	t := ui.Current()
	return t.Muted.Render("  " + ui.PadRight("Id", d.idWidth) + "  " +
		ui.PadRight("Description", d.descWidth(total)) + "  " + "Action")
}

func idColumnWidth(items []model.Item) int {
	w := len("Id")
	for _, it := range items {
		if n := ansi.StringWidth(it.ID.String()); n > w {
			w = n
		}
	}
	if w > maxIDWidth {
		w = maxIDWidth
	}
	return w
}

func newItemList() list.Model {
	l := list.New(nil, itemDelegate{idWidth: len("Id")}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("item", "items")
	l.Styles.NoItems = ui.Current().Muted.PaddingLeft(2)
	return l
}

// listHeader is the "Showing F/N Item(s)" line plus its two actions.
func listHeader(filtered, total int, showCompleted bool) string {
	toggle := labelHideCompleted
	if !showCompleted {
		toggle = labelShowCompleted
	}
	title := ui.Current().Title.Render(fmt.Sprintf("Showing %d/%d Item(s)", filtered, total))
	return strings.Join([]string{title, button(labelRefresh, true), button(toggle, true)}, "  ")
}
