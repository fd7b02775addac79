package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dieledev/showcase/internal/markdown"
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Manage uploaded images",
}

var mediaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded images",
	RunE: func(cmd *cobra.Command, args []string) error {
		images, err := apiClient.ListMedia(cmdContext(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderMediaTable(images))
		return nil
	},
}

var mediaUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an image (jpeg, png, gif, webp or svg, at most 5 MB)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()

		img, err := apiClient.UploadMedia(cmdContext(cmd), filepath.Base(args[0]), f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s\n%s\n", img.Filename, img.URL)
		return nil
	},
}

var mediaDeleteCmd = &cobra.Command{
	Use:   "delete <filename>",
	Short: "Delete an uploaded image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := confirmDelete(cmd, args[0]); err != nil {
			return err
		}
		if err := apiClient.DeleteMedia(cmdContext(cmd), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	mediaDeleteCmd.Flags().Bool("force", false, "skip confirmation")
	mediaCmd.AddCommand(mediaListCmd)
	mediaCmd.AddCommand(mediaUploadCmd)
	mediaCmd.AddCommand(mediaDeleteCmd)
	rootCmd.AddCommand(mediaCmd)
}
