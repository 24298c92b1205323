package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// S3Scheme prefixes workbook locations held in object storage.
const S3Scheme = "s3://"

// ErrObjectNotFound is returned when a workbook does not exist at its location.
var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo represents metadata for a remote file/object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// Source fetches raw workbook bytes by key.
type Source interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// Lister lists objects under a key prefix.
type Lister interface {
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// ObjectStorage captures the minimal S3-compatible operations the analyzer needs.
type ObjectStorage interface {
	Source
	Lister
}

// FileSource reads workbooks from the local filesystem; keys are paths.
type FileSource struct{}

// Fetch reads the file at path.
func (FileSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed reading %s: %w", path, err)
	}
	return data, nil
}

// SplitS3URI splits s3://bucket/key. ok is false for anything that is not an
// s3 location with a non-empty key.
func SplitS3URI(uri string) (bucket, key string, ok bool) {
	if !strings.HasPrefix(uri, S3Scheme) {
		return "", "", false
	}
	rest := strings.TrimPrefix(uri, S3Scheme)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// WorkbookKeys returns the keys of the .xlsx objects under prefix, skipping
// empty objects and other file types.
func WorkbookKeys(ctx context.Context, l Lister, prefix string) ([]string, error) {
	objects, err := l.ListObjects(ctx, prefix)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(objects))
	for _, o := range objects {
		if o.Size == 0 || !strings.EqualFold(filepath.Ext(o.Key), ".xlsx") {
			continue
		}
		keys = append(keys, o.Key)
	}
	return keys, nil
}

var _ Source = FileSource{}
