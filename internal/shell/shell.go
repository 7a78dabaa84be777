// Package shell owns the application state and its conversation with the
// remote to-do service.
//
// Network calls are Bubble Tea commands; their results come back as messages
// and are applied by Apply on the program's single event loop, so State has
// exactly one writer and needs no locking. Every change replaces the items
// slice wholesale; a slice handed out by the shell is never written again.
package shell

import (
	"context"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/model"
)

// Banner texts for the list and create failure paths.
const (
	ErrFetchItems = "Error fetching items"
	ErrAddItem    = "Error adding item"
)

// Remote is the to-do service as seen by the shell.
type Remote interface {
	List(ctx context.Context) ([]model.Item, error)
	Create(ctx context.Context, it model.Item) (model.Item, error)
	Update(ctx context.Context, it model.Item) (model.Item, error)
}

// State is everything the views render.
type State struct {
	Description   string       // draft text of the entry form
	Items         []model.Item // server order, plus appends
	ShowCompleted bool
	Error         string // banner; empty means none
}

// Result messages.
type (
	ItemsLoadedMsg struct {
		Items []model.Item
		Err   error
	}
	ItemAddedMsg struct {
		Item model.Item
		Err  error
	}
	ItemUpdatedMsg struct {
		ID   model.ID // id the update was sent for
		Item model.Item
		Err  error
	}
)

// Shell is the single owner of State.
type Shell struct {
	State

	ctx    context.Context
	remote Remote
	log    *log.Logger
}

// New returns a shell with an empty list and completed items shown.
// ctx bounds every call the shell makes; cancel it on exit.
func New(ctx context.Context, remote Remote, logger *log.Logger) *Shell {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Shell{
		State:  State{Items: []model.Item{}, ShowCompleted: true},
		ctx:    ctx,
		remote: remote,
		log:    logger,
	}
}

// List fetches the whole collection.
func (s *Shell) List() tea.Cmd {
	ctx, remote := s.ctx, s.remote
	return func() tea.Msg {
		items, err := remote.List(ctx)
		return ItemsLoadedMsg{Items: items, Err: err}
	}
}

// Add creates an item from description. Blank input is dropped silently and
// no command is returned.
func (s *Shell) Add(description string) tea.Cmd {
	if strings.TrimSpace(description) == "" {
		return nil
	}
	ctx, remote := s.ctx, s.remote
	candidate := model.Item{Description: description, IsCompleted: false}
	return func() tea.Msg {
		it, err := remote.Create(ctx, candidate)
		return ItemAddedMsg{Item: it, Err: err}
	}
}

// MarkComplete asks the server to complete it.
func (s *Shell) MarkComplete(it model.Item) tea.Cmd {
	ctx, remote := s.ctx, s.remote
	updated := it.Completed()
	return func() tea.Msg {
		got, err := remote.Update(ctx, updated)
		return ItemUpdatedMsg{ID: it.ID, Item: got, Err: err}
	}
}

// SetDescription binds the draft text.
func (s *Shell) SetDescription(d string) { s.Description = d }

// Clear drops the draft text.
func (s *Shell) Clear() { s.Description = "" }

// ToggleShowCompleted flips visibility of completed items.
func (s *Shell) ToggleShowCompleted() { s.ShowCompleted = !s.ShowCompleted }

// FilteredView is the visible subset of Items.
func (s *Shell) FilteredView() []model.Item { return Filter(s.Items, s.ShowCompleted) }

// Counts returns visible and total item counts.
func (s *Shell) Counts() (filtered, total int) {
	return len(s.FilteredView()), len(s.Items)
}

// Lookup finds an item by id.
func (s *Shell) Lookup(id model.ID) (model.Item, bool) {
	i := indexOf(s.Items, id)
	if i < 0 {
		return model.Item{}, false
	}
	return s.Items[i], true
}

// Apply folds a result message into the state. It reports whether msg was
// one of the shell's messages.
func (s *Shell) Apply(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case ItemsLoadedMsg:
		if msg.Err != nil {
			s.log.Error("error fetching items", "err", msg.Err)
			s.Error = ErrFetchItems
			return true
		}
		items := slices.Clone(msg.Items)
		if items == nil {
			items = []model.Item{}
		}
		s.Items = items
		s.log.Debug("items loaded", "count", len(items))

	case ItemAddedMsg:
		if msg.Err != nil {
			s.log.Error("error adding item", "err", msg.Err)
			s.Error = ErrAddItem
			return true
		}
		// Ids stay unique: a repeated id replaces the existing row.
		if i := indexOf(s.Items, msg.Item.ID); msg.Item.ID != "" && i >= 0 {
			s.Items = replaceAt(s.Items, i, msg.Item)
		} else {
			s.Items = append(slices.Clone(s.Items), msg.Item)
		}
		s.Description = ""
		s.Error = ""
		s.log.Debug("item added", "id", msg.Item.ID)

	case ItemUpdatedMsg:
		if msg.Err != nil {
			s.log.Error("error marking item as complete", "id", msg.ID, "err", msg.Err)
			s.Error = msg.Err.Error()
			return true
		}
		if i := indexOf(s.Items, msg.ID); i >= 0 {
			s.Items = replaceAt(s.Items, i, msg.Item)
		}
		s.log.Debug("item updated", "id", msg.ID, "completed", msg.Item.IsCompleted)

	default:
		return false
	}
	return true
}

// Filter keeps items where showCompleted is set or the item is pending.
// It never modifies items.
func Filter(items []model.Item, showCompleted bool) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if showCompleted || !it.IsCompleted {
			out = append(out, it)
		}
	}
	return out
}

func indexOf(items []model.Item, id model.ID) int {
	return slices.IndexFunc(items, func(it model.Item) bool { return it.ID == id })
}

func replaceAt(items []model.Item, i int, it model.Item) []model.Item {
	out := slices.Clone(items)
	out[i] = it
	return out
}
