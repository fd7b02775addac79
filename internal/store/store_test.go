package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dieledev/showcase/internal/blob/blobtest"
	"github.com/dieledev/showcase/internal/model"
)

func sampleProjects() []model.Project {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []model.Project{{
		Slug:        "hello-world",
		Title:       "Hello World",
		Description: "A first project in the gallery.",
		ImageURL:    "/uploads/1-hello.png",
		LinkURL:     "https://example.com",
		Tags:        []string{"go", "web"},
		Status:      model.StatusLive,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}}
}

// renameFailFS simulates a crash after the temp file is written but before
// it is renamed into place.
type renameFailFS struct {
	billy.Filesystem
}

func (renameFailFS) Rename(string, string) error { return errors.New("power lost") }

// openFailFS fails every open with a permission error.
type openFailFS struct {
	billy.Filesystem
}

func (openFailFS) Open(string) (billy.File, error) { return nil, os.ErrPermission }

func TestRoundTrip_AllModes(t *testing.T) {
	ctx := context.Background()
	modes := map[string]Backend{
		"remote": {Bucket: blobtest.NewMemory(), FS: memfs.New()},
		"local":  {FS: osfs.New(t.TempDir())},
		"memory": {FS: memfs.New()},
	}
	for name, b := range modes {
		t.Run(name, func(t *testing.T) {
			s := Open(b, name)

			want := sampleProjects()
			require.NoError(t, s.Projects.Write(ctx, want))
			got, err := s.Projects.Read(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			nav := []model.NavItem{{ID: "a", Label: "Work", Href: "#work", Order: 0}}
			require.NoError(t, s.Navigation.Write(ctx, nav))
			gotNav, err := s.Navigation.Read(ctx)
			require.NoError(t, err)
			assert.Equal(t, nav, gotNav)

			content := model.DefaultSiteContent()
			content.Hero.Title = "Changed"
			require.NoError(t, s.Content.Write(ctx, content))
			gotContent, err := s.Content.Read(ctx)
			require.NoError(t, err)
			assert.Equal(t, content, gotContent)
		})
	}
}

func TestRemoteMode_WritesOnlyToBucket(t *testing.T) {
	ctx := context.Background()
	bucket := blobtest.NewMemory()
	fs := memfs.New()
	doc := NewProjects(Backend{Bucket: bucket, FS: fs})

	require.NoError(t, doc.Write(ctx, sampleProjects()))
	_, ok := bucket.Object("data/projects.json")
	assert.True(t, ok)
	_, err := fs.Stat(ProjectsFile)
	assert.True(t, os.IsNotExist(err))
}

func TestFallback_UnreachableBucketUsesLocalFile(t *testing.T) {
	ctx := context.Background()
	fs := memfs.New()
	require.NoError(t, NewProjects(Backend{FS: fs}).Write(ctx, sampleProjects()))

	bucket := blobtest.NewMemory()
	bucket.Err = errors.New("connection refused")
	doc := NewProjects(Backend{Bucket: bucket, FS: fs})

	got, err := doc.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleProjects(), got)
	assert.Equal(t, "file", doc.Served())
}

func TestFallback_UnreachableBucketNoFileUsesDefault(t *testing.T) {
	ctx := context.Background()
	bucket := blobtest.NewMemory()
	bucket.Err = errors.New("connection refused")
	doc := NewContent(Backend{Bucket: bucket, FS: memfs.New()})

	got, err := doc.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSiteContent(), got)
}

func TestFallback_NoBackends(t *testing.T) {
	ctx := context.Background()
	doc := NewProjects(Backend{})

	got, err := doc.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Project{}, got)
	assert.Equal(t, "default", doc.Served())

	err = doc.Write(ctx, sampleProjects())
	assert.ErrorIs(t, err, ErrSaveFailed)
}

func TestFallback_UndecodableRemoteCascades(t *testing.T) {
	ctx := context.Background()
	bucket := blobtest.NewMemory()
	bucket.Tamper("data/navigation.json", []byte("{not json"))
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, NavigationFile, []byte(`[{"id":"x","label":"X","href":"/x","order":0}]`), 0644))

	doc := NewNavigation(Backend{Bucket: bucket, FS: fs})
	got, err := doc.Read(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].ID)
}

func TestFileSource_MissingFileIsSeeded(t *testing.T) {
	ctx := context.Background()
	fs := memfs.New()
	doc := NewContent(Backend{FS: fs})

	got, err := doc.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSiteContent(), got)

	data, err := util.ReadFile(fs, ContentFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"brand"`)
}

func TestFileSource_OtherErrorsFailTheRead(t *testing.T) {
	doc := NewProjects(Backend{FS: openFailFS{memfs.New()}})
	_, err := doc.Read(context.Background())
	assert.ErrorIs(t, err, ErrLoadFailed)
}

func TestAtomicWrite_CrashBeforeRenameKeepsOldContent(t *testing.T) {
	ctx := context.Background()
	base := memfs.New()
	require.NoError(t, NewProjects(Backend{FS: base}).Write(ctx, sampleProjects()))
	before, err := util.ReadFile(base, ProjectsFile)
	require.NoError(t, err)

	crashing := NewProjects(Backend{FS: renameFailFS{base}})
	err = crashing.Write(ctx, []model.Project{})
	require.ErrorIs(t, err, ErrSaveFailed)

	after, err := util.ReadFile(base, ProjectsFile)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	entries, err := base.ReadDir(".")
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, ProjectsFile, e.Name(), "temp file left behind")
	}
}

func TestRemoteWriteFailureIsFatal(t *testing.T) {
	ctx := context.Background()
	bucket := blobtest.NewMemory()
	bucket.PutErr = errors.New("quota exceeded")
	fs := memfs.New()
	doc := NewProjects(Backend{Bucket: bucket, FS: fs})

	err := doc.Write(ctx, sampleProjects())
	assert.ErrorIs(t, err, ErrSaveFailed)
	_, statErr := fs.Stat(ProjectsFile)
	assert.True(t, os.IsNotExist(statErr), "no local fallback on write")
}

func TestSiteContentMerge(t *testing.T) {
	ctx := context.Background()
	bucket := blobtest.NewMemory()
	bucket.Tamper("data/content.json", []byte(`{"hero":{"title":"X"}}`))

	got, err := NewContent(Backend{Bucket: bucket}).Read(ctx)
	require.NoError(t, err)

	def := model.DefaultSiteContent()
	assert.Equal(t, "X", got.Hero.Title)
	assert.Equal(t, def.Hero.Subtitle, got.Hero.Subtitle)
	assert.Equal(t, def.About.Heading, got.About.Heading)
}

func TestNavigation_EmptyListRoundTrip(t *testing.T) {
	ctx := context.Background()
	doc := NewNavigation(Backend{FS: memfs.New()})

	got, err := doc.Read(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	require.NoError(t, doc.Write(ctx, []model.NavItem{}))
	got, err = doc.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.NavItem{}, got)
}

func TestNavigationReadsSorted(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, NavigationFile,
		[]byte(`[{"id":"b","order":2},{"id":"a","order":0},{"id":"c","order":1}]`), 0644))

	got, err := NewNavigation(Backend{FS: fs}).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestDiagnose(t *testing.T) {
	ctx := context.Background()
	bucket := blobtest.NewMemory()
	s := Open(Backend{Bucket: bucket, FS: memfs.New()}, "remote")
	_, err := s.Projects.Read(ctx)
	require.NoError(t, err)

	d := s.Diagnose(ctx)
	assert.Equal(t, "remote", d.Mode)
	require.Len(t, d.Documents, 3)
	assert.Equal(t, []string{"remote", "file", "default"}, d.Documents[0].Sources)
	assert.Equal(t, "data/projects.json", d.Documents[0].Key)
	assert.Equal(t, CacheEmpty, d.Documents[0].Cache)
	assert.Equal(t, "file", d.Documents[0].LastServed)
	assert.Equal(t, CacheUninitialized, d.Documents[1].Cache)

	require.NotNil(t, d.Bucket)
	assert.True(t, d.Bucket.ListOK)
	assert.True(t, d.Bucket.WriteOK)
	assert.True(t, d.Bucket.ReadOK)
	assert.True(t, d.Bucket.DeleteOK)
	_, left := bucket.Object(probeKey)
	assert.False(t, left)
}

func TestDiagnose_UnreachableBucket(t *testing.T) {
	bucket := blobtest.NewMemory()
	bucket.Err = errors.New("dial tcp: refused")
	d := Open(Backend{Bucket: bucket}, "remote").Diagnose(context.Background())

	require.NotNil(t, d.Bucket)
	assert.False(t, d.Bucket.ListOK)
	assert.False(t, d.Bucket.WriteOK)
	assert.Contains(t, d.Bucket.Errors, "write")
}
