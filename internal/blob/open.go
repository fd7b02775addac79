package blob

import (
	"context"
	"fmt"

	"github.com/dieledev/showcase/internal/config"
)

// Open builds the bucket described by cfg.
func Open(ctx context.Context, cfg *config.BlobConfig) (Bucket, error) {
	switch cfg.Driver {
	case config.DriverS3, "":
		return NewS3(ctx, S3Options{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			PathStyle: cfg.PathStyle,
			PublicURL: cfg.PublicURL,
		})
	case config.DriverMinio:
		return NewMinio(MinioOptions{
			Bucket:    cfg.Bucket,
			Endpoint:  cfg.Endpoint,
			Region:    cfg.Region,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			UseSSL:    cfg.UseSSL,
			PublicURL: cfg.PublicURL,
		})
	}
	return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
}
