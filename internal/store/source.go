package store

import (
	"context"
	"errors"
)

var (
	// ErrAbsent means a source has nothing to offer; the next one is tried.
	ErrAbsent = errors.New("store: document absent")
	// ErrLoadFailed stops the read chain and surfaces to the caller.
	ErrLoadFailed = errors.New("store: load failed")
	// ErrSaveFailed is returned for every write that did not reach durable storage.
	ErrSaveFailed = errors.New("store: save failed")
)

// Source is one step of the read fallback chain. Read returns the raw
// document. Errors wrapping ErrLoadFailed abort the chain; any other error
// moves on to the next source.
type Source interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
}

// Sink is where writes of a document go.
type Sink interface {
	Name() string
	Write(ctx context.Context, data []byte) error
}
