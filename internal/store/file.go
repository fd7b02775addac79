package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// FileSource keeps a document as one file on a billy filesystem. A missing
// file is created from seed on first read.
type FileSource struct {
	fs   billy.Filesystem
	name string
	seed func() ([]byte, error)
}

func NewFileSource(fs billy.Filesystem, name string, seed func() ([]byte, error)) *FileSource {
	return &FileSource{fs: fs, name: name, seed: seed}
}

func (f *FileSource) Name() string { return "file" }
func (f *FileSource) Path() string { return f.name }

func (f *FileSource) Read(ctx context.Context) ([]byte, error) {
	data, err := util.ReadFile(f.fs, f.name)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrLoadFailed, f.name, err)
	}
	if f.seed == nil {
		return nil, fmt.Errorf("%w: %s", ErrAbsent, f.name)
	}

	data, err = f.seed()
	if err != nil {
		return nil, fmt.Errorf("%w: encoding default %s: %v", ErrAbsent, f.name, err)
	}
	if err := f.Write(ctx, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAbsent, err)
	}
	return data, nil
}

// Write replaces the file atomically: the data goes to a temp file in the
// same directory, which is then renamed over the target.
func (f *FileSource) Write(_ context.Context, data []byte) error {
	dir := path.Dir(f.name)
	if dir != "." {
		if err := f.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: creating %s: %v", ErrSaveFailed, dir, err)
		}
	}

	tmp, err := f.fs.TempFile(dir, "."+path.Base(f.name)+".tmp-")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrSaveFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		f.fs.Remove(tmpName)
		return fmt.Errorf("%w: writing %s: %v", ErrSaveFailed, tmpName, err)
	}
	if s, ok := tmp.(interface{ Sync() error }); ok {
		if err := s.Sync(); err != nil {
			tmp.Close()
			f.fs.Remove(tmpName)
			return fmt.Errorf("%w: syncing %s: %v", ErrSaveFailed, tmpName, err)
		}
	}
	if err := tmp.Close(); err != nil {
		f.fs.Remove(tmpName)
		return fmt.Errorf("%w: closing %s: %v", ErrSaveFailed, tmpName, err)
	}
	if err := f.fs.Rename(tmpName, f.name); err != nil {
		f.fs.Remove(tmpName)
		return fmt.Errorf("%w: renaming onto %s: %v", ErrSaveFailed, f.name, err)
	}
	return nil
}
