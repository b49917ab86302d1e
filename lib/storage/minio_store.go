// Package storage handles the out-of-band object storage that holds
// per-canvas uploads (document loaders, images, speech files). Objects
// live under canvases/{canvasId}/ and are removed best-effort after a
// canvas purge commits.
package storage

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore removes canvas-scoped objects from a MinIO/S3 bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore creates a storage client for the given bucket.
func NewMinioStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinioStore{client: client, bucket: bucket}, nil
}

// canvasPrefix is the object-key prefix that groups all uploads of one
// canvas version row.
func canvasPrefix(canvasID string) string {
	return "canvases/" + canvasID + "/"
}

// RemoveCanvasAssets deletes every object stored for a canvas. Removal
// failures on individual objects are collected into a single error so
// the caller can log and move on; the database deletion has already
// committed by the time this runs.
func (s *MinioStore) RemoveCanvasAssets(ctx context.Context, canvasID string) error {
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    canvasPrefix(canvasID),
		Recursive: true,
	})

	var firstErr error
	for object := range objects {
		if object.Err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("list objects for canvas %s: %w", canvasID, object.Err)
			}
			continue
		}
		err := s.client.RemoveObject(ctx, s.bucket, object.Key, minio.RemoveObjectOptions{})
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("remove object %s: %w", object.Key, err)
		}
	}
	return firstErr
}
