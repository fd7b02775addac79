// Package media stores uploaded images, either in the bucket under
// uploads/ or in a local directory served at /uploads.
package media

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MaxSize = 5 << 20
	Prefix  = "uploads/"

	defaultExt  = ".jpg"
	defaultBase = "upload"
)

var (
	ErrNotFound        = errors.New("media: file not found")
	ErrInvalidFilename = errors.New("media: invalid filename")
	ErrUnsupportedType = errors.New("media: file type not allowed")
	ErrTooLarge        = errors.New("media: file too large")
)

var allowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
}

type Image struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Library is the media store behind /api/media.
type Library interface {
	List(ctx context.Context) ([]Image, error)
	Upload(ctx context.Context, name string, data []byte) (Image, error)
	Delete(ctx context.Context, filename string) error
}

// Check enforces the size limit and sniffs the content type. The declared
// type of the upload is ignored.
func Check(data []byte) (string, error) {
	if len(data) > MaxSize {
		return "", ErrTooLarge
	}
	mt := mimetype.Detect(data)
	for _, t := range allowedTypes {
		if mt.Is(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
}

// ValidateFilename rejects names that could escape the uploads location.
func ValidateFilename(name string) error {
	if name == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return ErrInvalidFilename
	}
	return nil
}

var (
	unsafeChars = regexp.MustCompile(`[^a-z0-9.\-_]`)
	dashes      = regexp.MustCompile(`-+`)
)

func sanitize(s string) string {
	s = unsafeChars.ReplaceAllString(strings.ToLower(s), "-")
	s = dashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// objectName builds "<unix-ms>-<base><ext>" from an uploaded file name.
func objectName(now time.Time, name string) string {
	base, ext := name, defaultExt
	if i := strings.LastIndex(name, "."); i >= 0 {
		base, ext = name[:i], "."+sanitize(name[i+1:])
		if ext == "." {
			ext = defaultExt
		}
	}
	base = sanitize(base)
	if base == "" {
		base = defaultBase
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + base + ext
}

// candidates are the keys a delete request may refer to.
func candidates(filename string) []string {
	return []string{filename, Prefix + filename}
}
