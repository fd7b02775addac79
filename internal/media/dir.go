package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// URLPath is where the server exposes a directory library.
const URLPath = "/uploads/"

type dirLibrary struct {
	fs  billy.Filesystem
	now func() time.Time
}

// NewDirLibrary keeps uploads as flat files at the root of fs.
func NewDirLibrary(fs billy.Filesystem) Library {
	return &dirLibrary{fs: fs, now: time.Now}
}

func (l *dirLibrary) List(_ context.Context) ([]Image, error) {
	entries, err := l.fs.ReadDir("/")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Image{}, nil
		}
		return nil, fmt.Errorf("listing media: %w", err)
	}
	images := make([]Image, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		images = append(images, image(e.Name()))
	}
	sort.Slice(images, func(i, j int) bool { return images[i].Filename < images[j].Filename })
	return images, nil
}

func (l *dirLibrary) Upload(_ context.Context, name string, data []byte) (Image, error) {
	if _, err := Check(data); err != nil {
		return Image{}, err
	}
	file := objectName(l.now(), name)
	if err := util.WriteFile(l.fs, file, data, 0644); err != nil {
		return Image{}, fmt.Errorf("writing %s: %w", file, err)
	}
	return image(file), nil
}

func (l *dirLibrary) Delete(_ context.Context, filename string) error {
	if err := ValidateFilename(filename); err != nil {
		return err
	}
	if err := l.fs.Remove(filename); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting %s: %w", filename, err)
	}
	return nil
}

func image(file string) Image {
	return Image{Filename: Prefix + file, URL: URLPath + file}
}
