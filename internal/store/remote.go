package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/dieledev/showcase/internal/blob"
)

type CacheState string

const (
	CacheUninitialized CacheState = "uninitialized"
	CacheEmpty         CacheState = "empty"
	CacheWarm          CacheState = "warm"
)

// RemoteSource reads and writes one object in a bucket. It remembers the
// handle of the last successful resolve or put so the next read can skip
// the lookup. A fetch failure through that handle discards it.
type RemoteSource struct {
	bucket blob.Bucket
	key    string

	mu      sync.Mutex
	handle  *blob.Handle
	touched bool
}

func NewRemoteSource(bucket blob.Bucket, key string) *RemoteSource {
	return &RemoteSource{bucket: bucket, key: key}
}

func (r *RemoteSource) Name() string { return "remote" }
func (r *RemoteSource) Key() string  { return r.key }

func (r *RemoteSource) Read(ctx context.Context) ([]byte, error) {
	if h, ok := r.cached(); ok {
		data, err := r.bucket.Fetch(ctx, h)
		if err == nil {
			return data, nil
		}
		r.setHandle(nil)
	}

	h, err := r.bucket.Resolve(ctx, r.key)
	if err != nil {
		r.setHandle(nil)
		return nil, fmt.Errorf("%w: %v", ErrAbsent, err)
	}
	r.setHandle(&h)

	data, err := r.bucket.Fetch(ctx, h)
	if err != nil {
		r.setHandle(nil)
		return nil, fmt.Errorf("%w: %v", ErrAbsent, err)
	}
	return data, nil
}

// Write overwrites the object. The cache only changes on success.
func (r *RemoteSource) Write(ctx context.Context, data []byte) error {
	h, err := r.bucket.Put(ctx, r.key, data, "application/json")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, r.key, err)
	}
	r.setHandle(&h)
	return nil
}

// State reports where the handle cache stands.
func (r *RemoteSource) State() CacheState {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.handle != nil:
		return CacheWarm
	case r.touched:
		return CacheEmpty
	}
	return CacheUninitialized
}

func (r *RemoteSource) cached() (blob.Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handle == nil {
		return blob.Handle{}, false
	}
	return *r.handle, true
}

func (r *RemoteSource) setHandle(h *blob.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handle = h
	r.touched = true
}
