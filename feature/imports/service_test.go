package imports

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"stock-reconciler/core/sources/secondary"
	"stock-reconciler/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const validCSV = "SKU,Balance,InOrder\nA1,10,2\nB2,5,0\n"

func newTestService(client *mocks.Client) *Service {
	return NewService(client, "stock-imports", "us-east-1", "imports/", zap.NewNop())
}

func TestUpload_StoresParsedImport(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "stock-imports").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "stock-imports", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil)
	client.On("PutObject", mock.Anything, "stock-imports", "imports/nyce.csv", mock.Anything, int64(len(validCSV)),
		minio.PutObjectOptions{ContentType: "text/csv"}).Return(minio.UploadInfo{}, nil)

	info, err := newTestService(client).Upload(context.Background(), "nyce.csv", strings.NewReader(validCSV))
	require.NoError(t, err)
	assert.Equal(t, "nyce.csv", info.Name)
	assert.Equal(t, "imports/nyce.csv", info.Key)
	assert.Equal(t, 2, info.Rows)
	assert.Equal(t, int64(len(validCSV)), info.Size)
	client.AssertExpectations(t)
}

func TestUpload_RejectsBeforeWriting(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		checkFn func(t *testing.T, err error)
	}{
		{"unsupported extension", "nyce.txt", validCSV, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, secondary.ErrInvalidImportName)
		}},
		{"missing column", "nyce.csv", "SKU,Balance\nA1,1\n", func(t *testing.T, err error) {
			var missing *secondary.MissingColumnError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, secondary.ColumnInOrder, missing.Column)
		}},
		{"malformed quantity", "nyce.csv", "SKU,Balance,InOrder\nA1,\"1,200\",10\n", func(t *testing.T, err error) {
			var badRow *secondary.RowError
			require.ErrorAs(t, err, &badRow)
			assert.Equal(t, 2, badRow.Row)
		}},
		{"empty", "nyce.csv", "", func(t *testing.T, err error) {
			assert.Error(t, err)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.Client)
			_, err := newTestService(client).Upload(context.Background(), tt.file, strings.NewReader(tt.body))
			tt.checkFn(t, err)
			client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpload_StorageFailure(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "stock-imports").Return(true, nil)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("disk full"))

	_, err := newTestService(client).Upload(context.Background(), "nyce.csv", bytes.NewBufferString(validCSV))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestList_FiltersNonImports(t *testing.T) {
	client := new(mocks.Client)
	ch := make(chan minio.ObjectInfo, 4)
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	ch <- minio.ObjectInfo{Key: "imports/old.csv", Size: 10, LastModified: now.Add(-time.Hour)}
	ch <- minio.ObjectInfo{Key: "imports/new.xlsx", Size: 20, LastModified: now}
	ch <- minio.ObjectInfo{Key: "imports/notes.txt", LastModified: now}
	ch <- minio.ObjectInfo{Key: "imports/archive/older.csv", LastModified: now}
	close(ch)
	client.On("ListObjects", mock.Anything, "stock-imports", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	objects, err := newTestService(client).List(context.Background())
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "new.xlsx", objects[0].Name)
	assert.Equal(t, "old.csv", objects[1].Name)
}

func TestDelete(t *testing.T) {
	client := new(mocks.Client)
	client.On("RemoveObject", mock.Anything, "stock-imports", "imports/nyce.csv", minio.RemoveObjectOptions{}).Return(nil)

	svc := newTestService(client)
	require.NoError(t, svc.Delete(context.Background(), "nyce.csv"))
	assert.ErrorIs(t, svc.Delete(context.Background(), ".."), secondary.ErrInvalidImportName)
	client.AssertExpectations(t)
}
