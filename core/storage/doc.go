// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client. The bootstrap uses it for the Remote base path
// (Lua modules stored in a bucket), for dependency manifests kept next to them,
// and for publishing modules from the CLI. Both AWS S3 and self-hosted MinIO work.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - PutObject: Uploads content (with size and options).
//   - GetObject: Retrieves content as a stream.
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	data, err := storage.ReadObject(ctx, client, "zhi", "modules/blog.lua")
package storage
