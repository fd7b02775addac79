package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/dieledev/showcase/internal/client"
	"github.com/dieledev/showcase/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the admin token used by the CLI",
}

var authVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the configured token against the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := apiClient.Verify(cmdContext(cmd)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Token accepted by %s\n", apiClient.BaseURL())
		return nil
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify and save the API URL and token",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		if url == "" {
			url = cfg.APIURL()
		}
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			err := huh.NewInput().
				Title("Admin token for " + url).
				EchoMode(huh.EchoModePassword).
				Value(&token).
				Run()
			if err != nil {
				return fmt.Errorf("reading token (use --token): %w", err)
			}
		}

		if err := client.New(url, token).Verify(cmdContext(cmd)); err != nil {
			return err
		}

		// Start from the file so environment overrides are not persisted.
		fileCfg, err := config.Load(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		fileCfg.API = &config.APIConfig{URL: url, Token: token}
		if err := config.Save(dataDir, fileCfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s\n", url)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved API URL and token",
	RunE: func(cmd *cobra.Command, args []string) error {
		fileCfg, err := config.Load(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		fileCfg.API = nil
		if err := config.Save(dataDir, fileCfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

func init() {
	authLoginCmd.Flags().String("url", "", "API base URL (default "+config.DefaultAPIURL+")")
	authLoginCmd.Flags().String("token", "", "admin token (prompted when omitted)")
	authCmd.AddCommand(authVerifyCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}
