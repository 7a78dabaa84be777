package cli

import (
	"fmt"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/ui"
)

const maxDescCols = 80

// listLines is the body of the ls panel: counts over all items, then the
// visible rows.
func listLines(visible, all []model.Item, group bool) []string {
	t := ui.Current()
	d, p := stats(all)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Todos"),
		ui.C(t.Success, t.SymDone), d,
		ui.C(t.Pending, t.SymPending), p,
		ui.C(t.Accent, "Total"), len(all),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, ui.C(t.Muted, fmt.Sprintf("Showing %d/%d Item(s)", len(visible), len(all))))
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(visible)...)
	} else {
		lines = append(lines, flatLines(visible)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `todo add Buy milk`"))
	return lines
}

func stats(items []model.Item) (done, pending int) {
	for _, it := range items {
		if it.IsCompleted {
			done++
		} else {
			pending++
		}
	}
	return
}

func flatLines(items []model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, "no items")}
	}
	idW := 0
	for _, it := range items {
		idW = max(idW, len(it.ID.String()))
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		box, color := t.BoxUnchecked, t.Muted
		desc := ui.Truncate(it.Description, maxDescCols)
		if it.IsCompleted {
			box, color = t.BoxChecked, t.Success
			desc = ui.C(t.Done, desc)
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.C(color, box), ui.C(t.Muted, ui.PadRight(it.ID.String(), idW)), desc))
	}
	return out
}

func groupLines(items []model.Item) []string {
	t := ui.Current()
	var pend, done []model.Item
	for _, it := range items {
		if it.IsCompleted {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	section := func(title string, items []model.Item) []string {
		lines := []string{ui.C(t.Accent, title)}
		if len(items) == 0 {
			return append(lines, ui.C(t.Muted, "(none)"))
		}
		return append(lines, flatLines(items)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
