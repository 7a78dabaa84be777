package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/ui"
)

const (
	bannerTitle = "Todo List App"
	bannerIntro = `Keep things simple, yet clean:

1. Add a to-do item with the form below
2. Browse the current items and refresh them at any time
3. Mark an item as completed once it is done`
	footerText = "© 2021 Copyright: clearpoint.digital"
)

var (
	introMu    sync.Mutex
	introCache = map[string]string{}
)

// intro renders the banner text as markdown, cached per style and width.
// Falls back to the raw text if glamour fails.
func intro(width int) string {
	if width < 20 {
		width = 20
	}
	style := styles.DarkStyle
	if ui.Current().Name == "mono" {
		style = styles.NoTTYStyle
	}
	key := style + ":" + strconv.Itoa(width)

	introMu.Lock()
	defer introMu.Unlock()
	if s, ok := introCache[key]; ok {
		return s
	}
	out := bannerIntro
	r, err := glamour.NewTermRenderer(
		// Fixed style: auto-detection queries the terminal and can block.
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if rendered, err := r.Render(bannerIntro); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	introCache[key] = out
	return out
}

func banner(width int) string {
	t := ui.Current()
	title := t.Title.Render(bannerTitle)
	return lipgloss.JoinVertical(lipgloss.Left, title, intro(width))
}

func footer() string {
	return ui.Current().Muted.Render(footerText)
}
