package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dieledev/showcase/internal/client"
	"github.com/dieledev/showcase/internal/markdown"
	"github.com/dieledev/showcase/internal/validate"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage portfolio projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := apiClient.ListProjects(cmdContext(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderProjectTable(projects))
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show project details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := apiClient.GetProject(cmdContext(cmd), args[0])
		if err != nil {
			return err
		}
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			data, err := markdown.MarshalProject(*p)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		out, err := markdown.RenderProject(*p)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project from flags or a markdown file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := projectInput(cmd)
		if err != nil {
			return err
		}
		p, err := apiClient.CreateProject(cmdContext(cmd), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", p.Title, p.Slug)
		return nil
	},
}

var projectUpdateCmd = &cobra.Command{
	Use:   "update <slug>",
	Short: "Update fields of a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := projectInput(cmd)
		if err != nil {
			return err
		}
		if isEmptyInput(in) {
			return fmt.Errorf("nothing to update: pass --file or at least one field flag")
		}
		p, err := apiClient.UpdateProject(cmdContext(cmd), args[0], in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s (%s)\n", p.Title, p.Slug)
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := confirmDelete(cmd, "project "+args[0]); err != nil {
			return err
		}
		if err := apiClient.DeleteProject(cmdContext(cmd), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
		return nil
	},
}

// projectInput merges --file (if any) with explicitly set flags; flags win.
// Fields neither source mentions stay nil and are left out of the request.
func projectInput(cmd *cobra.Command) (client.ProjectInput, error) {
	var in client.ProjectInput

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return in, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		p, err := markdown.ParseProject(f)
		if err != nil {
			return in, fmt.Errorf("%s: %w", path, err)
		}
		in.Title = nonEmpty(p.Title)
		in.Description = nonEmpty(p.Description)
		in.ImageURL = nonEmpty(p.ImageURL)
		in.LinkURL = nonEmpty(p.LinkURL)
		in.Status = nonEmpty(string(p.Status))
		in.Tags = validate.Tags(p.Tags)
	}

	flag := func(name string, dst **string) {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			*dst = &v
		}
	}
	flag("title", &in.Title)
	flag("description", &in.Description)
	flag("image", &in.ImageURL)
	flag("link", &in.LinkURL)
	flag("status", &in.Status)
	if cmd.Flags().Changed("tags") {
		v, _ := cmd.Flags().GetString("tags")
		in.Tags = splitTags(v)
	}
	return in, nil
}

func splitTags(s string) []string {
	return validate.Tags(strings.Split(s, ","))
}

func isEmptyInput(in client.ProjectInput) bool {
	return in.Title == nil && in.Description == nil && in.ImageURL == nil &&
		in.LinkURL == nil && in.Status == nil && len(in.Tags) == 0
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func init() {
	for _, c := range []*cobra.Command{projectCreateCmd, projectUpdateCmd} {
		c.Flags().StringP("file", "f", "", "markdown file with YAML frontmatter; the body is the description")
		c.Flags().String("title", "", "project title")
		c.Flags().String("description", "", "project description")
		c.Flags().String("image", "", "image URL (/uploads/... or https://...)")
		c.Flags().String("link", "", "project link URL")
		c.Flags().String("tags", "", "comma-separated tags")
		c.Flags().String("status", "", "WIP, Live or Archived")
	}
	projectShowCmd.Flags().Bool("raw", false, "print the project as a markdown file with frontmatter")
	projectDeleteCmd.Flags().Bool("force", false, "skip confirmation")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectUpdateCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	rootCmd.AddCommand(projectCmd)
}
