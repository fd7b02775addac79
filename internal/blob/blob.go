// Package blob is the remote object store behind showcase. Documents and
// uploaded media live in one bucket; S3 and MinIO drivers are provided.
package blob

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound means no object exists at the key.
	ErrNotFound = errors.New("blob: object not found")
	// ErrStale means the object changed since its handle was resolved.
	ErrStale = errors.New("blob: handle is stale")
)

// Handle identifies one version of a stored object.
type Handle struct {
	Key          string
	ETag         string
	URL          string
	Size         int64
	LastModified time.Time
}

// Bucket is the subset of object storage showcase relies on.
type Bucket interface {
	// Resolve looks up the current version of key.
	Resolve(ctx context.Context, key string) (Handle, error)
	// Fetch reads the object h points at. A handle whose ETag no longer
	// matches yields ErrStale.
	Fetch(ctx context.Context, h Handle) ([]byte, error)
	// Put creates or overwrites key.
	Put(ctx context.Context, key string, data []byte, contentType string) (Handle, error)
	Delete(ctx context.Context, key string) error
	// List returns every object under prefix.
	List(ctx context.Context, prefix string) ([]Handle, error)
	// Name is the bucket name, for diagnostics.
	Name() string
}

// publicURL joins a base URL and an object key.
func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
