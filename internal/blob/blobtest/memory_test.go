package blobtest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dieledev/showcase/internal/blob"
)

var _ blob.Bucket = (*Memory)(nil)

func TestMemory_PutResolveFetch(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	h, err := m.Put(ctx, "data/x.json", []byte(`[1]`), "application/json")
	require.NoError(t, err)

	r, err := m.Resolve(ctx, "data/x.json")
	require.NoError(t, err)
	assert.Equal(t, h.ETag, r.ETag)

	data, err := m.Fetch(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(data))
}

func TestMemory_StaleHandle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	h, err := m.Put(ctx, "k", []byte("a"), "text/plain")
	require.NoError(t, err)

	m.Tamper("k", []byte("b"))
	_, err = m.Fetch(ctx, h)
	assert.ErrorIs(t, err, blob.ErrStale)
}

func TestMemory_NotFoundAndFailure(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_, err := m.Resolve(ctx, "missing")
	assert.ErrorIs(t, err, blob.ErrNotFound)

	boom := errors.New("unreachable")
	m.Err = boom
	_, err = m.List(ctx, "")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, m.Calls("list"))
}
