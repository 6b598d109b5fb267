package integrity

import (
	"net/http/httptest"
	"testing"

	"stock-reconciler/core/storage/mocks"
	"stock-reconciler/feature/integrity/checks"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(opts Options) *fiber.App {
	app := fiber.New()
	NewHandler(NewService(opts, zap.NewNop())).RegisterRoutes(app)
	return app
}

func TestHandleIntegrityCheck(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "stock-imports").Return(true, nil)
	client.On("ListObjects", mock.Anything, "stock-imports", mock.Anything).Return(prefixListing("imports/"))

	app := newTestApp(Options{Storage: client, Bucket: "stock-imports", Sources: configuredSources()})
	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["healthy"])
}

func TestHandleIntegrityCheck_NoStorage(t *testing.T) {
	app := newTestApp(Options{Bucket: "stock-imports", Sources: configuredSources()})
	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandleStorageCheck_Fix(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "stock-imports").Return(true, nil)
	client.On("ListObjects", mock.Anything, "stock-imports", mock.Anything).Return(prefixListing()).Once()
	client.On("PutObject", mock.Anything, "stock-imports", "imports/", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "stock-imports", mock.Anything).Return(prefixListing("imports/")).Once()

	app := newTestApp(Options{Storage: client, Bucket: "stock-imports", Sources: configuredSources()})
	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/storage?fix=true", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report checks.StorageReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, "ok", report.Status)
	client.AssertExpectations(t)
}

func TestHandleDatabaseAndSources(t *testing.T) {
	app := newTestApp(Options{Sources: configuredSources()})

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/database", nil), -1)
	require.NoError(t, err)
	var db checks.DatabaseReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&db))
	assert.Equal(t, "disabled", db.Status)

	resp, err = app.Test(httptest.NewRequest("GET", "/integrity/sources", nil), -1)
	require.NoError(t, err)
	var sources []checks.SourceReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sources))
	assert.Len(t, sources, 4)
}
