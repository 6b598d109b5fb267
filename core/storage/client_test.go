package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock-reconciler/core/storage"
	"stock-reconciler/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "stock-imports",
			Region:    "eu-north-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithScheme", func(t *testing.T) {
		for _, endpoint := range []string{"http://localhost:9000", "https://s3.amazonaws.com"} {
			client, err := storage.NewClient(storage.Config{Endpoint: endpoint, AccessKey: "k", SecretKey: "s"})
			assert.NoError(t, err, endpoint)
			assert.NotNil(t, client)
		}
	})
}

func TestEnsureBucket(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "stock-imports").Return(true, nil)

		require.NoError(t, storage.EnsureBucket(context.Background(), m, "stock-imports", ""))
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "stock-imports").Return(false, nil)
		m.On("MakeBucket", mock.Anything, "stock-imports", minio.MakeBucketOptions{Region: "eu-north-1"}).Return(nil)

		require.NoError(t, storage.EnsureBucket(context.Background(), m, "stock-imports", "eu-north-1"))
		m.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "stock-imports").Return(false, errors.New("denied"))
		assert.ErrorContains(t, storage.EnsureBucket(context.Background(), m, "stock-imports", ""), "denied")
	})
}

func TestList(t *testing.T) {
	older := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "imports/", Size: 0}
	ch <- minio.ObjectInfo{Key: "imports/september.csv", Size: 10, LastModified: older}
	ch <- minio.ObjectInfo{Key: "imports/october.xlsx", Size: 20, LastModified: newer}
	close(ch)

	m := new(mocks.Client)
	m.On("ListObjects", mock.Anything, "stock-imports", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	objects, err := storage.List(context.Background(), m, "stock-imports", "imports/")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "october.xlsx", objects[0].Name)
	assert.Equal(t, "imports/september.csv", objects[1].Key)
	assert.Equal(t, "2026-10-01T08:00:00Z", objects[0].LastModified)
}

func TestList_Error(t *testing.T) {
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Err: errors.New("access denied")}
	close(ch)

	m := new(mocks.Client)
	m.On("ListObjects", mock.Anything, "b", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	_, err := storage.List(context.Background(), m, "b", "imports/")
	assert.ErrorContains(t, err, "access denied")
}
