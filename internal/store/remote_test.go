package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dieledev/showcase/internal/blob/blobtest"
)

func TestRemoteSource_CacheLifecycle(t *testing.T) {
	ctx := context.Background()
	bucket := blobtest.NewMemory()
	r := NewRemoteSource(bucket, "data/x.json")
	assert.Equal(t, CacheUninitialized, r.State())

	_, err := r.Read(ctx)
	assert.ErrorIs(t, err, ErrAbsent)
	assert.Equal(t, CacheEmpty, r.State())

	require.NoError(t, r.Write(ctx, []byte(`"v1"`)))
	assert.Equal(t, CacheWarm, r.State())

	data, err := r.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `"v1"`, string(data))
	assert.Equal(t, 0, bucket.Calls("resolve"), "warm cache skips resolve")
}

func TestRemoteSource_StaleHandleReResolves(t *testing.T) {
	ctx := context.Background()
	bucket := blobtest.NewMemory()
	r := NewRemoteSource(bucket, "data/x.json")
	require.NoError(t, r.Write(ctx, []byte(`"v1"`)))

	bucket.Tamper("data/x.json", []byte(`"v2"`))
	data, err := r.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `"v2"`, string(data))
	assert.Equal(t, 1, bucket.Calls("resolve"))
	assert.Equal(t, CacheWarm, r.State())
}

func TestRemoteSource_FetchFailureEmptiesCache(t *testing.T) {
	ctx := context.Background()
	bucket := blobtest.NewMemory()
	r := NewRemoteSource(bucket, "data/x.json")
	require.NoError(t, r.Write(ctx, []byte(`1`)))

	bucket.Err = errors.New("timeout")
	_, err := r.Read(ctx)
	assert.ErrorIs(t, err, ErrAbsent)
	assert.Equal(t, CacheEmpty, r.State())
}

func TestRemoteSource_FailedWriteKeepsState(t *testing.T) {
	ctx := context.Background()
	bucket := blobtest.NewMemory()
	r := NewRemoteSource(bucket, "data/x.json")

	bucket.PutErr = errors.New("denied")
	assert.ErrorIs(t, r.Write(ctx, []byte(`1`)), ErrSaveFailed)
	assert.Equal(t, CacheUninitialized, r.State())
}

type fakeSource struct {
	name string
	data []byte
	err  error
	hits int
}

func (f *fakeSource) Name() string { return f.name }
func (f *fakeSource) Read(context.Context) ([]byte, error) {
	f.hits++
	return f.data, f.err
}

func TestDocument_ChainOrder(t *testing.T) {
	first := &fakeSource{name: "first", err: ErrAbsent}
	second := &fakeSource{name: "second", data: []byte(`"from second"`)}
	third := &fakeSource{name: "third", data: []byte(`"from third"`)}

	doc := newDocument(Backend{}, "x.json", func(b []byte) (string, error) { return string(b), nil }, func() string { return "default" })
	doc.sources = []Source{first, second, third}

	got, err := doc.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `"from second"`, got)
	assert.Equal(t, 1, first.hits)
	assert.Equal(t, 0, third.hits)
}

func TestDocument_LoadFailureStopsChain(t *testing.T) {
	bad := &fakeSource{name: "bad", err: ErrLoadFailed}
	after := &fakeSource{name: "after", data: []byte("x")}

	doc := newDocument(Backend{}, "x.json", func(b []byte) (string, error) { return string(b), nil }, func() string { return "default" })
	doc.sources = []Source{bad, after}

	_, err := doc.Read(context.Background())
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.Equal(t, 0, after.hits)
}
