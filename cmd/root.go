package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	mtp "github.com/modeltoolsprotocol/go-sdk"
	"github.com/spf13/cobra"

	"github.com/dieledev/showcase/internal/client"
	"github.com/dieledev/showcase/internal/config"
	"github.com/dieledev/showcase/internal/logger"
)

var (
	version   = "dev"
	dataDir   string
	cfg       *config.Config
	log       logger.Logger
	apiClient *client.Client
)

// errAborted is returned when the user declines a confirmation.
var errAborted = errors.New("aborted")

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".showcase")
	}
	return filepath.Join(home, ".showcase")
}

var rootCmd = &cobra.Command{
	Use:     "showcase",
	Short:   "Portfolio site backend and admin CLI",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		if err := config.LoadDotenv(".env.local", ".env"); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg.ApplyEnv(os.LookupEnv)
		cfg.SetDefaults(dataDir)

		log, err = logger.New(logger.Config{Level: cfg.LogLevel})
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		apiClient = client.New(cfg.APIURL(), cfg.APIToken())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "data directory path")

	mtpOpts := &mtp.DescribeOptions{
		Commands: map[string]*mtp.CommandAnnotation{
			"serve": {
				Examples: []mtp.Example{
					{Description: "Serve the API from the local data directory", Command: "showcase serve"},
					{Description: "Serve from a bucket", Command: "BLOB_BUCKET=site-data showcase serve --addr :3000"},
				},
			},
			"project list": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Table of projects with slug, title, status, tags and last update",
				},
			},
			"project show": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Project fields and rendered description, or the frontmatter file with --raw",
				},
				Examples: []mtp.Example{
					{Description: "Show a project", Command: "showcase project show hello-world"},
					{Description: "Export a project as markdown", Command: "showcase project show hello-world --raw > hello.md"},
				},
			},
			"project create": {
				Examples: []mtp.Example{
					{Description: "Create from flags", Command: "showcase project create --title \"Hello\" --image https://cdn.example.com/h.png --link https://example.com --status Live"},
					{Description: "Create from a markdown file", Command: "showcase project create --file hello.md"},
				},
			},
			"project update": {
				Examples: []mtp.Example{
					{Description: "Archive a project", Command: "showcase project update hello-world --status Archived"},
				},
			},
			"project delete": {
				Examples: []mtp.Example{
					{Description: "Delete a project (interactive confirm)", Command: "showcase project delete hello-world"},
					{Description: "Delete a project (skip confirm)", Command: "showcase project delete hello-world --force"},
				},
			},
			"nav add": {
				Examples: []mtp.Example{
					{Description: "Append a link", Command: "showcase nav add Work \"#work\""},
				},
			},
			"nav move": {
				Examples: []mtp.Example{
					{Description: "Move an item to the front", Command: "showcase nav move <id> 0"},
				},
			},
			"content show": {
				Stdout: &mtp.IODescriptor{
					ContentType: "application/yaml",
					Description: "Site text content as YAML",
				},
			},
			"media upload": {
				Examples: []mtp.Example{
					{Description: "Upload an image", Command: "showcase media upload ./cover.png"},
				},
			},
			"store status": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Storage mode, per-document sources and cache state, bucket probe results",
				},
			},
		},
	}

	mtp.WithDescribe(rootCmd, mtpOpts)
}

func Execute() error {
	return rootCmd.Execute()
}

// confirmDelete asks before a destructive call unless --force was given.
func confirmDelete(cmd *cobra.Command, what string) error {
	if force, _ := cmd.Flags().GetBool("force"); force {
		return nil
	}
	var ok bool
	err := huh.NewConfirm().
		Title("Delete " + what + "?").
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	if err != nil {
		return fmt.Errorf("confirmation failed (use --force to skip): %w", err)
	}
	if !ok {
		return errAborted
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}
