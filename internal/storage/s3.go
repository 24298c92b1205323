package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/andresuchdata/lgurt/backend-go/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// maxObjectBytes bounds the size of a workbook read into memory.
const maxObjectBytes = 64 << 20

// S3Source reads workbooks from an S3-compatible bucket.
type S3Source struct {
	client *minio.Client
	bucket string
}

// NewS3Source builds an S3Source. No request is made until the first Fetch.
func NewS3Source(cfg config.StorageConfig) (*S3Source, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("storage credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket must be provided")
	}

	endpoint, secure := normalizeEndpoint(cfg.Endpoint, cfg.UseSSL)

	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       secure,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &S3Source{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Bucket returns the default bucket.
func (s *S3Source) Bucket() string {
	return s.bucket
}

// Fetch downloads key from the default bucket.
func (s *S3Source) Fetch(ctx context.Context, key string) ([]byte, error) {
	return s.FetchFrom(ctx, s.bucket, key)
}

// FetchFrom downloads key from bucket.
func (s *S3Source) FetchFrom(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("storage get %s/%s failed: %w", bucket, key, err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s/%s", ErrObjectNotFound, bucket, key)
		}
		return nil, fmt.Errorf("storage stat %s/%s failed: %w", bucket, key, err)
	}
	if info.Size > maxObjectBytes {
		return nil, fmt.Errorf("object %s/%s is %d bytes, limit is %d", bucket, key, info.Size, maxObjectBytes)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("storage read %s/%s failed: %w", bucket, key, err)
	}
	return data, nil
}

// ListObjects lists all objects for a given prefix in the default bucket.
func (s *S3Source) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	results := make([]ObjectInfo, 0)
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("storage list failed: %w", object.Err)
		}
		results = append(results, ObjectInfo{
			Key:  object.Key,
			Size: object.Size,
		})
	}
	return results, nil
}

// normalizeEndpoint strips any scheme from endpoint; an explicit scheme wins
// over useSSL.
func normalizeEndpoint(endpoint string, useSSL bool) (string, bool) {
	endpoint = strings.TrimSpace(endpoint)
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimSuffix(strings.TrimPrefix(endpoint, "https://"), "/"), true
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimSuffix(strings.TrimPrefix(endpoint, "http://"), "/"), false
	}
	return strings.TrimSuffix(strings.TrimPrefix(endpoint, "//"), "/"), useSSL
}

var _ ObjectStorage = (*S3Source)(nil)
