// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so the snapshot
// feature can be tested against mocks.Client. Both AWS S3 and self-hosted
// MinIO are supported.
//
// # Operations
//
//   - BucketExists / MakeBucket (see EnsureBucket)
//   - PutObject / GetObject: snapshot and change set documents
//   - ListObjects / RemoveObjects: snapshot listing and pruning
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
