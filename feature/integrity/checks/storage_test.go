package checks

import (
	"context"
	"errors"
	"testing"

	"stock-reconciler/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestCheckStorage(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "stock-imports").Return(false, nil)

		report, err := CheckStorage(context.Background(), client, "stock-imports", "imports")
		require.NoError(t, err)
		assert.False(t, report.BucketExists)
		assert.Equal(t, "imports/", report.Prefix)
		assert.Equal(t, "missing", report.Status)
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Prefix Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "stock-imports").Return(true, nil)
		client.On("ListObjects", mock.Anything, "stock-imports", mock.Anything).Return(objects())

		report, err := CheckStorage(context.Background(), client, "stock-imports", "imports/")
		require.NoError(t, err)
		assert.True(t, report.BucketExists)
		assert.False(t, report.PrefixExists)
		assert.Equal(t, "missing", report.Status)
	})

	t.Run("Counts Imports", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "stock-imports").Return(true, nil)
		client.On("ListObjects", mock.Anything, "stock-imports", minio.ListObjectsOptions{Prefix: "imports/"}).Return(objects(
			minio.ObjectInfo{Key: "imports/"},
			minio.ObjectInfo{Key: "imports/a.csv"},
			minio.ObjectInfo{Key: "imports/b.XLSX"},
			minio.ObjectInfo{Key: "imports/readme.md"},
		))

		report, err := CheckStorage(context.Background(), client, "stock-imports", "imports/")
		require.NoError(t, err)
		assert.True(t, report.PrefixExists)
		assert.Equal(t, 2, report.Imports)
		assert.Equal(t, "ok", report.Status)
	})

	t.Run("Errors", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "stock-imports").Return(false, errors.New("connection refused"))

		_, err := CheckStorage(context.Background(), client, "stock-imports", "imports/")
		assert.Error(t, err)

		_, err = CheckStorage(context.Background(), nil, "stock-imports", "imports/")
		assert.Error(t, err)
	})
}

func TestFixStorage(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "stock-imports").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "stock-imports", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)
	client.On("PutObject", mock.Anything, "stock-imports", "imports/", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	err := FixStorage(context.Background(), client, "stock-imports", "eu-west-1", "imports", zap.NewNop())
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestFixStorage_PutFails(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "stock-imports").Return(true, nil)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("denied"))

	err := FixStorage(context.Background(), client, "stock-imports", "", "imports/", zap.NewNop())
	assert.EqualError(t, err, "denied")
}
