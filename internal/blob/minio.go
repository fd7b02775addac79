package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioOptions struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PublicURL string
}

type MinioBucket struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinio(opts MinioOptions) (*MinioBucket, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}

	base := opts.PublicURL
	if base == "" {
		scheme := "http://"
		if opts.UseSSL {
			scheme = "https://"
		}
		base = publicURL(scheme+opts.Endpoint, opts.Bucket)
	}
	return &MinioBucket{client: client, bucket: opts.Bucket, baseURL: base}, nil
}

func (b *MinioBucket) Name() string { return b.bucket }

func (b *MinioBucket) Resolve(ctx context.Context, key string) (Handle, error) {
	info, err := b.client.StatObject(ctx, b.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return Handle{}, fmt.Errorf("resolving %s: %w", key, minioError(err))
	}
	return b.handle(info), nil
}

func (b *MinioBucket) Fetch(ctx context.Context, h Handle) ([]byte, error) {
	opts := minio.GetObjectOptions{}
	if h.ETag != "" {
		if err := opts.SetMatchETag(h.ETag); err != nil {
			return nil, fmt.Errorf("fetching %s: %w", h.Key, err)
		}
	}
	obj, err := b.client.GetObject(ctx, b.bucket, h.Key, opts)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", h.Key, minioError(err))
	}
	defer obj.Close()

	// minio defers request errors until the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", h.Key, minioError(err))
	}
	return data, nil
}

func (b *MinioBucket) Put(ctx context.Context, key string, data []byte, contentType string) (Handle, error) {
	info, err := b.client.PutObject(ctx, b.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return Handle{}, fmt.Errorf("putting %s: %w", key, minioError(err))
	}
	return Handle{
		Key:          key,
		ETag:         info.ETag,
		URL:          publicURL(b.baseURL, key),
		Size:         info.Size,
		LastModified: info.LastModified,
	}, nil
}

func (b *MinioBucket) Delete(ctx context.Context, key string) error {
	if err := b.client.RemoveObject(ctx, b.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("deleting %s: %w", key, minioError(err))
	}
	return nil
}

func (b *MinioBucket) List(ctx context.Context, prefix string) ([]Handle, error) {
	var out []Handle
	for info := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if info.Err != nil {
			return nil, fmt.Errorf("listing %s: %w", prefix, minioError(info.Err))
		}
		out = append(out, b.handle(info))
	}
	return out, nil
}

func (b *MinioBucket) handle(info minio.ObjectInfo) Handle {
	return Handle{
		Key:          info.Key,
		ETag:         info.ETag,
		URL:          publicURL(b.baseURL, info.Key),
		Size:         info.Size,
		LastModified: info.LastModified,
	}
}

func minioError(err error) error {
	resp := minio.ToErrorResponse(err)
	switch {
	case resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case resp.Code == "PreconditionFailed" || resp.StatusCode == http.StatusPreconditionFailed:
		return fmt.Errorf("%w: %v", ErrStale, err)
	}
	return err
}
