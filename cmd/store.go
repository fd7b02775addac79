package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dieledev/showcase/internal/markdown"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect server storage",
}

var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show storage mode, document sources and a bucket probe",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := apiClient.StorageStatus(cmdContext(cmd))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), markdown.RenderDiagnostics(*d))
		return nil
	},
}

func init() {
	storeCmd.AddCommand(storeStatusCmd)
	rootCmd.AddCommand(storeCmd)
}
