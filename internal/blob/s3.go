package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3API is the part of the S3 client S3Bucket calls. Tests substitute it.
type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PathStyle bool
	PublicURL string
}

type S3Bucket struct {
	api     S3API
	bucket  string
	baseURL string
}

// NewS3 builds a bucket from the default AWS credential chain, with static
// keys and a custom endpoint applied when set.
func NewS3(ctx context.Context, opts S3Options) (*S3Bucket, error) {
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = opts.PathStyle
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	base := opts.PublicURL
	if base == "" {
		switch {
		case opts.Endpoint != "":
			base = publicURL(opts.Endpoint, opts.Bucket)
		default:
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, region)
		}
	}
	return NewS3WithClient(client, opts.Bucket, base), nil
}

func NewS3WithClient(api S3API, bucket, baseURL string) *S3Bucket {
	return &S3Bucket{api: api, bucket: bucket, baseURL: baseURL}
}

func (b *S3Bucket) Name() string { return b.bucket }

func (b *S3Bucket) Resolve(ctx context.Context, key string) (Handle, error) {
	out, err := b.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return Handle{}, fmt.Errorf("resolving %s: %w", key, s3Error(err))
	}
	h := Handle{
		Key:  key,
		ETag: aws.ToString(out.ETag),
		URL:  publicURL(b.baseURL, key),
		Size: aws.ToInt64(out.ContentLength),
	}
	if out.LastModified != nil {
		h.LastModified = *out.LastModified
	}
	return h, nil
}

func (b *S3Bucket) Fetch(ctx context.Context, h Handle) ([]byte, error) {
	in := &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(h.Key),
	}
	if h.ETag != "" {
		in.IfMatch = aws.String(h.ETag)
	}
	out, err := b.api.GetObject(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", h.Key, s3Error(err))
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", h.Key, err)
	}
	return data, nil
}

func (b *S3Bucket) Put(ctx context.Context, key string, data []byte, contentType string) (Handle, error) {
	out, err := b.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return Handle{}, fmt.Errorf("putting %s: %w", key, s3Error(err))
	}
	return Handle{
		Key:  key,
		ETag: aws.ToString(out.ETag),
		URL:  publicURL(b.baseURL, key),
		Size: int64(len(data)),
	}, nil
}

func (b *S3Bucket) Delete(ctx context.Context, key string) error {
	_, err := b.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, s3Error(err))
	}
	return nil
}

func (b *S3Bucket) List(ctx context.Context, prefix string) ([]Handle, error) {
	var out []Handle
	p := s3.NewListObjectsV2Paginator(b.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", prefix, s3Error(err))
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			h := Handle{
				Key:  key,
				ETag: aws.ToString(obj.ETag),
				URL:  publicURL(b.baseURL, key),
				Size: aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				h.LastModified = *obj.LastModified
			}
			out = append(out, h)
		}
	}
	return out, nil
}

// s3Error maps not-found and precondition failures onto the package
// sentinels and passes everything else through.
func s3Error(err error) error {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	if errors.As(err, &nsk) || errors.As(err, &nf) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case "PreconditionFailed":
			return fmt.Errorf("%w: %v", ErrStale, err)
		}
	}
	return err
}
