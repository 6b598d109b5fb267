package checks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"stock-reconciler/core/sources/secondary"
	"stock-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// StorageReport describes the import bucket and prefix.
type StorageReport struct {
	Bucket       string `json:"bucket"`
	BucketExists bool   `json:"bucket_exists"`
	Prefix       string `json:"prefix"`
	PrefixExists bool   `json:"prefix_exists"`
	Imports      int    `json:"imports"`
	Status       string `json:"status"` // "ok", "missing"
}

// CheckStorage reports whether the bucket and imports prefix exist and how
// many importable files are stored under the prefix.
func CheckStorage(ctx context.Context, client storage.Client, bucket, prefix string) (*StorageReport, error) {
	if client == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}

	report := &StorageReport{Bucket: bucket, Prefix: folder(prefix), Status: "missing"}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.BucketExists = exists
	if !exists {
		return report, nil
	}

	opts := minio.ListObjectsOptions{Prefix: report.Prefix, Recursive: false}
	for info := range client.ListObjects(ctx, bucket, opts) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", report.Prefix, info.Err)
		}
		report.PrefixExists = true
		if secondary.IsImportFile(info.Key) {
			report.Imports++
		}
	}

	if report.PrefixExists {
		report.Status = "ok"
	}
	return report, nil
}

// FixStorage creates the bucket and a placeholder for the imports prefix.
func FixStorage(ctx context.Context, client storage.Client, bucket, region, prefix string, logger *zap.Logger) error {
	if err := storage.EnsureBucket(ctx, client, bucket, region); err != nil {
		return err
	}

	key := folder(prefix)
	_, err := client.PutObject(ctx, bucket, key, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
	if err != nil {
		logger.Error("Failed to create folder", zap.String("folder", key), zap.Error(err))
		return err
	}
	logger.Info("Created missing folder", zap.String("folder", key))
	return nil
}

func folder(prefix string) string {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}
