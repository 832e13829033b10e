package storage

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Scheme prefixes object storage locations on the command line.
const Scheme = "s3://"

// Location addresses a single object in a bucket.
type Location struct {
	Bucket string
	Key    string
}

// String returns the location in s3://bucket/key form.
func (l Location) String() string {
	return Scheme + l.Bucket + "/" + l.Key
}

// IsRemote reports whether raw names an object storage location.
func IsRemote(raw string) bool {
	return strings.HasPrefix(raw, Scheme)
}

// ParseLocation parses an s3://bucket/key string.
func ParseLocation(raw string) (Location, error) {
	if !IsRemote(raw) {
		return Location{}, fmt.Errorf("not an object storage location: %s", raw)
	}

	rest := strings.TrimPrefix(raw, Scheme)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return Location{}, fmt.Errorf("invalid object storage location %q: expected %sbucket/key", raw, Scheme)
	}

	return Location{Bucket: bucket, Key: key}, nil
}

// UploadFile uploads the local file at path to loc.
func UploadFile(ctx context.Context, client Client, loc Location, path string) (minio.UploadInfo, error) {
	exists, err := client.BucketExists(ctx, loc.Bucket)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to check bucket %s: %w", loc.Bucket, err)
	}
	if !exists {
		return minio.UploadInfo{}, fmt.Errorf("bucket %s does not exist", loc.Bucket)
	}

	f, err := os.Open(path)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	upload, err := client.PutObject(ctx, loc.Bucket, loc.Key, f, info.Size(), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload %s to %s: %w", path, loc, err)
	}

	return upload, nil
}
