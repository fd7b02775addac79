package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dieledev/showcase/internal/blob"
)

type bucketLibrary struct {
	bucket blob.Bucket
	now    func() time.Time
}

func NewBucketLibrary(b blob.Bucket) Library {
	return &bucketLibrary{bucket: b, now: time.Now}
}

func (l *bucketLibrary) List(ctx context.Context) ([]Image, error) {
	hs, err := l.bucket.List(ctx, Prefix)
	if err != nil {
		return nil, fmt.Errorf("listing media: %w", err)
	}
	images := make([]Image, 0, len(hs))
	for _, h := range hs {
		images = append(images, Image{Filename: h.Key, URL: h.URL})
	}
	return images, nil
}

func (l *bucketLibrary) Upload(ctx context.Context, name string, data []byte) (Image, error) {
	contentType, err := Check(data)
	if err != nil {
		return Image{}, err
	}
	key := Prefix + objectName(l.now(), name)
	h, err := l.bucket.Put(ctx, key, data, contentType)
	if err != nil {
		return Image{}, fmt.Errorf("uploading %s: %w", key, err)
	}
	return Image{Filename: h.Key, URL: h.URL}, nil
}

func (l *bucketLibrary) Delete(ctx context.Context, filename string) error {
	if err := ValidateFilename(filename); err != nil {
		return err
	}
	for _, key := range candidates(filename) {
		if _, err := l.bucket.Resolve(ctx, key); err != nil {
			if errors.Is(err, blob.ErrNotFound) {
				continue
			}
			return fmt.Errorf("looking up %s: %w", key, err)
		}
		if err := l.bucket.Delete(ctx, key); err != nil {
			return fmt.Errorf("deleting %s: %w", key, err)
		}
		return nil
	}
	return ErrNotFound
}
