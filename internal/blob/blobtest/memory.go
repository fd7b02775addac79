// Package blobtest provides an in-memory blob.Bucket for tests.
package blobtest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dieledev/showcase/internal/blob"
)

type object struct {
	data        []byte
	etag        string
	contentType string
	modified    time.Time
}

// Memory is a goroutine-safe bucket. Setting Err makes every call fail,
// which stands in for an unreachable service. PutErr fails only writes.
type Memory struct {
	mu      sync.Mutex
	objects map[string]object
	version int
	calls   map[string]int

	Err    error
	PutErr error
}

func NewMemory() *Memory {
	return &Memory{objects: map[string]object{}, calls: map[string]int{}}
}

func (m *Memory) Name() string { return "memory" }

// Calls reports how many times op was invoked.
func (m *Memory) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// Object returns the raw bytes stored at key.
func (m *Memory) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.objects[key]
	return o.data, ok
}

// Tamper replaces key behind the store's back, bumping its ETag.
func (m *Memory) Tamper(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(key, data, "application/json")
}

func (m *Memory) begin(op string) error {
	m.mu.Lock()
	m.calls[op]++
	return m.Err
}

func (m *Memory) Resolve(_ context.Context, key string) (blob.Handle, error) {
	err := m.begin("resolve")
	defer m.mu.Unlock()
	if err != nil {
		return blob.Handle{}, err
	}
	o, ok := m.objects[key]
	if !ok {
		return blob.Handle{}, fmt.Errorf("resolving %s: %w", key, blob.ErrNotFound)
	}
	return handle(key, o), nil
}

func (m *Memory) Fetch(_ context.Context, h blob.Handle) ([]byte, error) {
	err := m.begin("fetch")
	defer m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	o, ok := m.objects[h.Key]
	if !ok {
		return nil, fmt.Errorf("fetching %s: %w", h.Key, blob.ErrNotFound)
	}
	if h.ETag != "" && h.ETag != o.etag {
		return nil, fmt.Errorf("fetching %s: %w", h.Key, blob.ErrStale)
	}
	return append([]byte(nil), o.data...), nil
}

func (m *Memory) Put(_ context.Context, key string, data []byte, contentType string) (blob.Handle, error) {
	err := m.begin("put")
	defer m.mu.Unlock()
	if err != nil {
		return blob.Handle{}, err
	}
	if m.PutErr != nil {
		return blob.Handle{}, m.PutErr
	}
	return handle(key, m.store(key, data, contentType)), nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	err := m.begin("delete")
	defer m.mu.Unlock()
	if err != nil {
		return err
	}
	delete(m.objects, key)
	return nil
}

func (m *Memory) List(_ context.Context, prefix string) ([]blob.Handle, error) {
	err := m.begin("list")
	defer m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	var out []blob.Handle
	for k, o := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, handle(k, o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *Memory) store(key string, data []byte, contentType string) object {
	m.version++
	o := object{
		data:        append([]byte(nil), data...),
		etag:        fmt.Sprintf("\"v%d\"", m.version),
		contentType: contentType,
		modified:    time.Now().UTC(),
	}
	m.objects[key] = o
	return o
}

func handle(key string, o object) blob.Handle {
	return blob.Handle{
		Key:          key,
		ETag:         o.etag,
		URL:          "https://blob.test/" + key,
		Size:         int64(len(o.data)),
		LastModified: o.modified,
	}
}
