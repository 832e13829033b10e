// Package storage provides an abstraction layer for object storage services.
//
// Fingerprint files are often produced on the donor host and published to a
// bucket. This package wraps the MinIO Go client so that such files can be
// read directly (s3://bucket/key locations) and so that a freshly generated
// fingerprint file can be uploaded. It supports both AWS S3 and self-hosted
// MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - PutObject: Uploads content (with size and options).
//   - GetObject: Retrieves content as a stream.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "fingerprints")
package storage
