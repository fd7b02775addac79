package cmd

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dieledev/showcase/internal/markdown"
	"github.com/dieledev/showcase/internal/model"
)

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Manage navigation links",
}

var navListCmd = &cobra.Command{
	Use:   "list",
	Short: "List navigation items in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := apiClient.Navigation(cmdContext(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderNavTable(items))
		return nil
	},
}

var navAddCmd = &cobra.Command{
	Use:   "add <label> <href>",
	Short: "Append a navigation item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		item := model.NavItem{ID: uuid.NewString(), Label: args[0], Href: args[1]}
		return editNav(cmd, func(items []model.NavItem) ([]model.NavItem, error) {
			return append(items, item), nil
		}, "Added "+item.ID)
	},
}

var navRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a navigation item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editNav(cmd, func(items []model.NavItem) ([]model.NavItem, error) {
			i := findNav(items, args[0])
			if i < 0 {
				return nil, fmt.Errorf("navigation item %q not found", args[0])
			}
			return append(items[:i], items[i+1:]...), nil
		}, "Removed "+args[0])
	},
}

var navMoveCmd = &cobra.Command{
	Use:   "move <id> <position>",
	Short: "Move a navigation item to a zero-based position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := strconv.Atoi(args[1])
		if err != nil || pos < 0 {
			return fmt.Errorf("invalid position %q", args[1])
		}
		return editNav(cmd, func(items []model.NavItem) ([]model.NavItem, error) {
			return moveNav(items, args[0], pos)
		}, "Moved "+args[0])
	},
}

// editNav is a read-modify-write of the whole list. The server renumbers
// by position, so the order field is never set here.
func editNav(cmd *cobra.Command, fn func([]model.NavItem) ([]model.NavItem, error), done string) error {
	items, err := apiClient.Navigation(cmdContext(cmd))
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	saved, err := apiClient.ReplaceNavigation(cmdContext(cmd), items)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), done)
	fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderNavTable(saved))
	return nil
}

func findNav(items []model.NavItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// moveNav returns a copy of items with id at pos, clamped to the end.
func moveNav(items []model.NavItem, id string, pos int) ([]model.NavItem, error) {
	i := findNav(items, id)
	if i < 0 {
		return nil, fmt.Errorf("navigation item %q not found", id)
	}
	item := items[i]
	rest := make([]model.NavItem, 0, len(items))
	rest = append(rest, items[:i]...)
	rest = append(rest, items[i+1:]...)
	if pos > len(rest) {
		pos = len(rest)
	}
	out := make([]model.NavItem, 0, len(items))
	out = append(out, rest[:pos]...)
	out = append(out, item)
	return append(out, rest[pos:]...), nil
}

func init() {
	navCmd.AddCommand(navListCmd)
	navCmd.AddCommand(navAddCmd)
	navCmd.AddCommand(navRemoveCmd)
	navCmd.AddCommand(navMoveCmd)
	rootCmd.AddCommand(navCmd)
}
