package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/dieledev/showcase/internal/api"
	"github.com/dieledev/showcase/internal/blob"
	"github.com/dieledev/showcase/internal/config"
	"github.com/dieledev/showcase/internal/logger"
	"github.com/dieledev/showcase/internal/media"
	"github.com/dieledev/showcase/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if cfg.AdminToken == "" {
			log.Warn("ADMIN_TOKEN is not set; every write will be rejected")
		}

		sigCtx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		deps, err := buildDeps(sigCtx, cfg, log)
		if err != nil {
			return err
		}
		gin.SetMode(gin.ReleaseMode)
		return api.NewServer(cfg.Addr, api.NewRouter(deps), log).Run(sigCtx)
	},
}

// buildDeps wires storage and media for the configured mode. A bucket, when
// configured, takes both documents and uploads; otherwise they live under
// the data directory (or in memory).
func buildDeps(ctx context.Context, c *config.Config, log logger.Logger) (api.Deps, error) {
	var (
		docsFS    billy.Filesystem
		uploadsFS billy.Filesystem
	)
	switch c.Storage {
	case config.StorageMemory:
		docsFS, uploadsFS = memfs.New(), memfs.New()
	default:
		if err := os.MkdirAll(c.UploadsDir, 0755); err != nil {
			return api.Deps{}, fmt.Errorf("creating uploads directory: %w", err)
		}
		docsFS, uploadsFS = osfs.New(c.DataDir), osfs.New(c.UploadsDir)
	}

	backend := store.Backend{FS: docsFS, Logger: log}
	mode := c.Storage
	lib := media.NewDirLibrary(uploadsFS)
	uploadsDir := ""
	if c.Storage == config.StorageLocal {
		uploadsDir = c.UploadsDir
	}

	if c.RemoteEnabled() {
		bucket, err := blob.Open(ctx, c.Blob)
		if err != nil {
			return api.Deps{}, err
		}
		backend.Bucket = bucket
		mode = "remote"
		lib = media.NewBucketLibrary(bucket)
		uploadsDir = ""
		log.Info("using remote bucket", logger.String("driver", c.Blob.Driver), logger.String("bucket", bucket.Name()))
	}

	log.Info("storage ready", logger.String("mode", mode), logger.String("data_dir", c.DataDir))
	return api.Deps{
		Stores:         store.Open(backend, mode),
		Media:          lib,
		Logger:         log,
		AdminToken:     c.AdminToken,
		AllowedOrigins: c.AllowedOrigins,
		UploadsDir:     uploadsDir,
		Version:        version,
	}, nil
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default "+config.DefaultAddr+")")
	rootCmd.AddCommand(serveCmd)
}
