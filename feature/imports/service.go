package imports

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"stock-reconciler/core/sources/secondary"
	"stock-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// contentTypes maps import extensions to their stored content type.
var contentTypes = map[string]string{
	".csv":  "text/csv",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Info describes a stored import.
type Info struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	Rows int    `json:"rows"`
	Size int64  `json:"size"`
}

// Service stores and lists secondary warehouse imports.
type Service struct {
	client storage.Client
	bucket string
	region string
	prefix string
	logger *zap.Logger
}

// NewService creates a new imports service.
func NewService(client storage.Client, bucket, region, prefix string, logger *zap.Logger) *Service {
	return &Service{client: client, bucket: bucket, region: region, prefix: prefix, logger: logger}
}

// Upload validates an import and stores it under the imports prefix.
// Files that do not parse are rejected before anything is written.
func (s *Service) Upload(ctx context.Context, name string, r io.Reader) (*Info, error) {
	name = path.Base(strings.TrimSpace(name))
	key, err := secondary.ImportObject(s.prefix, name)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	imp, err := secondary.ParseImport(name, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if err := storage.EnsureBucket(ctx, s.client, s.bucket, s.region); err != nil {
		return nil, err
	}

	opts := minio.PutObjectOptions{ContentType: contentTypes[strings.ToLower(path.Ext(name))]}
	if _, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return nil, fmt.Errorf("store import: %w", err)
	}

	s.logger.Info("Stored import", zap.String("key", key), zap.Int("rows", imp.Len()))
	return &Info{Name: name, Key: key, Rows: imp.Len(), Size: int64(len(data))}, nil
}

// List returns the stored imports, newest first.
func (s *Service) List(ctx context.Context) ([]storage.Object, error) {
	objects, err := storage.List(ctx, s.client, s.bucket, s.prefix)
	if err != nil {
		return nil, err
	}
	out := objects[:0]
	for _, o := range objects {
		if secondary.IsImportFile(o.Name) && !strings.Contains(o.Name, "/") {
			out = append(out, o)
		}
	}
	return out, nil
}

// Delete removes a stored import.
func (s *Service) Delete(ctx context.Context, name string) error {
	key, err := secondary.ImportObject(s.prefix, name)
	if err != nil {
		return err
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
