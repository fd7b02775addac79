package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dieledev/showcase/internal/editor"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "View and edit the site text content",
}

var contentShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the site content as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := apiClient.Content(cmdContext(cmd))
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshaling content: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var contentEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the site content in $EDITOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := apiClient.Content(cmdContext(cmd))
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshaling content: %w", err)
		}

		edited, err := editor.Edit(data, "showcase-content-*.yaml")
		if errors.Is(err, editor.ErrUnchanged) {
			fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
			return nil
		}
		if err != nil {
			return err
		}

		// Keys removed in the editor keep their current value.
		next := *c
		if err := yaml.Unmarshal(edited, &next); err != nil {
			return fmt.Errorf("parsing edited content: %w", err)
		}
		if _, err := apiClient.ReplaceContent(cmdContext(cmd), next); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Content updated.")
		return nil
	},
}

func init() {
	contentCmd.AddCommand(contentShowCmd)
	contentCmd.AddCommand(contentEditCmd)
	rootCmd.AddCommand(contentCmd)
}
