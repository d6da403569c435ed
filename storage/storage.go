package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// ErrNotFound reports that the requested object does not exist in the
// bucket.
var ErrNotFound = errors.New("object not found")

// Client is a thin wrapper over the S3 API: download to a local file, head
// for change detection, upload from a local file. Single-bucket callers pass
// the bucket explicitly so the Lambda and the uploader can share it.
type Client struct {
	api *s3.Client
}

// Config holds explicit construction parameters. Credentials are optional;
// when absent the default provider chain applies (instance roles, env).
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // optional, for MinIO or localstack
	PathStyle       bool
}

// New creates an S3 client from Config.
func New(ctx context.Context, cfg Config) (*Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Client{api: api}, nil
}

// Info describes a remote object.
type Info struct {
	Key          string
	Size         int64
	ETag         string
	LastModified time.Time
}

// Download fetches the object into a local file. A missing object maps to
// ErrNotFound.
func (c *Client) Download(ctx context.Context, bucket, key, path string) error {
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{Bucket: &bucket, Key: &key})
	if err != nil {
		return classify(err)
	}
	defer func() { _ = out.Body.Close() }()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(f, out.Body); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Head returns the object metadata, ETag quotes stripped. A missing object
// maps to ErrNotFound.
func (c *Client) Head(ctx context.Context, bucket, key string) (Info, error) {
	out, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &bucket, Key: &key})
	if err != nil {
		return Info{}, classify(err)
	}
	info := Info{Key: key}
	if out.ContentLength != nil {
		info.Size = *out.ContentLength
	}
	if out.ETag != nil {
		info.ETag = strings.Trim(*out.ETag, `"`)
	}
	if out.LastModified != nil {
		info.LastModified = *out.LastModified
	}
	return info, nil
}

// Upload stores the local file under the given key, overwriting any existing
// object.
func (c *Client) Upload(ctx context.Context, bucket, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	_, err = c.api.PutObject(ctx, &s3.PutObjectInput{Bucket: &bucket, Key: &key, Body: f})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// classify maps the SDK's missing-object errors onto ErrNotFound. HeadObject
// reports NotFound, GetObject reports NoSuchKey.
func classify(err error) error {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return ErrNotFound
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return ErrNotFound
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return ErrNotFound
		}
	}
	return err
}
