package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/shell"
	"github.com/idilsaglam/tada/internal/ui"
)

func newLsCmd(a *app) *cobra.Command {
	var hideCompleted, group bool
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List items",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.run(a.shell.List())
			if a.shell.Error != "" {
				return errors.New(a.shell.Error)
			}
			a.shell.ShowCompleted = !hideCompleted
			ui.Panel(cmd.OutOrStdout(), listLines(a.shell.FilteredView(), a.shell.Items, group))
			return nil
		},
	}
	cmd.Flags().BoolVar(&hideCompleted, "hide-completed", false, "leave completed items out")
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <description...>",
		Short: "Add a new item (the description can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := strings.TrimSpace(strings.Join(args, " "))
			if desc == "" {
				return usagef("add: empty description")
			}
			msg := a.shell.Add(desc)()
			a.shell.Apply(msg)
			if a.shell.Error != "" {
				return errors.New(a.shell.Error)
			}
			added := msg.(shell.ItemAddedMsg).Item
			ui.Fprintln(cmd.OutOrStdout(), true, fmt.Sprintf("added %s %s", added.ID, added.Description))
			return nil
		},
	}
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark the item with this id as completed",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.ID(strings.TrimSpace(args[0]))
			if id == "" {
				return usagef("done: empty id")
			}
			a.run(a.shell.List())
			if a.shell.Error != "" {
				return errors.New(a.shell.Error)
			}
			it, ok := a.shell.Lookup(id)
			if !ok {
				return fmt.Errorf("no item with id %s (run `todo ls` to see ids)", id)
			}
			out := cmd.OutOrStdout()
			if it.IsCompleted {
				ui.Fprintln(out, true, "already completed: "+it.Description)
				return nil
			}
			a.run(a.shell.MarkComplete(it))
			if a.shell.Error != "" {
				return errors.New(a.shell.Error)
			}
			ui.Fprintln(out, true, "completed: "+it.Description)
			return nil
		},
	}
}
