// Package store persists the showcase documents. Each document is read from
// a remote bucket, then a local file, then a compiled default, and written
// either to the bucket or atomically to the local file.
package store

import (
	"encoding/json"

	"github.com/go-git/go-billy/v5"

	"github.com/dieledev/showcase/internal/blob"
	"github.com/dieledev/showcase/internal/logger"
	"github.com/dieledev/showcase/internal/model"
)

const (
	ProjectsFile   = "projects.json"
	NavigationFile = "navigation.json"
	ContentFile    = "content.json"

	remotePrefix = "data/"
)

// Backend is the storage available to the documents. Bucket nil means no
// remote; FS nil means no local file. With both nil, reads return defaults
// and writes fail.
type Backend struct {
	Bucket blob.Bucket
	FS     billy.Filesystem
	Logger logger.Logger
}

// Stores bundles the three documents served by the API.
type Stores struct {
	Projects   *Document[[]model.Project]
	Navigation *Document[[]model.NavItem]
	Content    *Document[model.SiteContent]

	bucket blob.Bucket
	mode   string
}

func Open(b Backend, mode string) *Stores {
	return &Stores{
		Projects:   NewProjects(b),
		Navigation: NewNavigation(b),
		Content:    NewContent(b),
		bucket:     b.Bucket,
		mode:       mode,
	}
}

func NewProjects(b Backend) *Document[[]model.Project] {
	return newDocument(b, ProjectsFile,
		func(data []byte) ([]model.Project, error) {
			var ps []model.Project
			if err := json.Unmarshal(data, &ps); err != nil {
				return nil, err
			}
			if ps == nil {
				ps = []model.Project{}
			}
			return ps, nil
		},
		func() []model.Project { return []model.Project{} },
	)
}

// NewNavigation returns the navigation document. Reads come back sorted by
// order.
func NewNavigation(b Backend) *Document[[]model.NavItem] {
	return newDocument(b, NavigationFile,
		func(data []byte) ([]model.NavItem, error) {
			var items []model.NavItem
			if err := json.Unmarshal(data, &items); err != nil {
				return nil, err
			}
			return model.SortNavItems(items), nil
		},
		func() []model.NavItem { return []model.NavItem{} },
	)
}

// NewContent returns the site content document. Stored values are decoded
// over the defaults so fields missing from storage keep their default.
func NewContent(b Backend) *Document[model.SiteContent] {
	return newDocument(b, ContentFile, model.DecodeSiteContent, model.DefaultSiteContent)
}

func newDocument[T any](b Backend, name string, decode func([]byte) (T, error), def func() T) *Document[T] {
	log := b.Logger
	if log == nil {
		log = logger.NewNop()
	}
	d := &Document[T]{
		name:   name,
		decode: decode,
		encode: encodeJSON[T],
		def:    def,
		log:    log.With(logger.String("document", name)),
	}

	if b.Bucket != nil {
		remote := NewRemoteSource(b.Bucket, remotePrefix+name)
		d.sources = append(d.sources, remote)
		d.sink = remote
	}
	if b.FS != nil {
		file := NewFileSource(b.FS, name, func() ([]byte, error) { return encodeJSON(def()) })
		d.sources = append(d.sources, file)
		if d.sink == nil {
			d.sink = file
		}
	}
	return d
}

func encodeJSON[T any](v T) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
