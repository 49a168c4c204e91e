package checks

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"audience-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// SnapshotFolders returns the folder of each kind below prefix.
func SnapshotFolders(prefix string, kinds []string) []string {
	out := make([]string, len(kinds))
	for i, kind := range kinds {
		out[i] = path.Join(prefix, kind) + "/"
	}
	return out
}

// CheckStorage returns the snapshot folders that hold no object yet.
func CheckStorage(ctx context.Context, client storage.Client, bucket string, folders []string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	missing := []string{}
	for _, folder := range folders {
		opts := minio.ListObjectsOptions{
			Prefix:  folder,
			MaxKeys: 1,
		}

		found := false
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err != nil {
				return nil, fmt.Errorf("failed to list %s: %w", folder, obj.Err)
			}
			found = true
			break
		}

		if !found {
			missing = append(missing, folder)
		}
	}

	return missing, nil
}

// FixStorage creates an empty marker object for each missing folder.
func FixStorage(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		_, err := client.PutObject(ctx, bucket, folder, bytes.NewReader(nil), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}
