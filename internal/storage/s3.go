// Package storage uploads image blobs to an S3-compatible object store.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploaded objects are immutable (keys are unique per upload), so clients and
// CDNs may cache them for 30 days.
const blobCacheControl = "public, max-age=2592000"

// Config holds the connection settings for the blob store.
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string
}

// BlobStore persists binary blobs and returns their public URL.
type BlobStore interface {
	Put(ctx context.Context, key string, content []byte, contentType string) (string, error)
}

type s3Store struct {
	client *s3.Client
	cfg    Config
}

// NewS3Store creates a BlobStore backed by an S3-compatible service
// (AWS S3, Cloudflare R2, MinIO).
func NewS3Store(ctx context.Context, cfg Config) (BlobStore, error) {
	if cfg.Bucket == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("missing required blob storage configuration")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{URL: cfg.Endpoint}, nil
		})
		opts = append(opts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// Path-style addressing works for R2 and MinIO alike
		o.UsePathStyle = cfg.Endpoint != ""
	})

	return &s3Store{client: client, cfg: cfg}, nil
}

func (s *s3Store) Put(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.cfg.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(content),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(blobCacheControl),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload blob: %w", err)
	}
	return strings.TrimSuffix(s.cfg.PublicURL, "/") + "/" + key, nil
}
