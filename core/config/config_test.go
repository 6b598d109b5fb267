package config

import (
	"os"
	"path/filepath"
	"testing"

	"stock-reconciler/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15, cfg.Server.HeartbeatSeconds)
	assert.Equal(t, "stock-imports", cfg.Storage.Bucket)
	assert.Equal(t, 250, cfg.Reconcile.ThrottleMillis)
	assert.Equal(t, 10, cfg.Reconcile.CatalogConcurrency)
	assert.Equal(t, reconcile.StrategyPerKey, cfg.Reconcile.PrimaryStrategy)
	assert.Equal(t, "Fluent", cfg.Reconcile.Labels.Primary)
	assert.Equal(t, 40, cfg.Sources.Primary.MaxPages)
	assert.Equal(t, "import", cfg.Sources.Secondary.Source)
	assert.Equal(t, "imports/", cfg.Sources.Secondary.ImportPrefix)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SOURCES_PRIMARY_TOKEN_URL", "https://auth.example/token")
	t.Setenv("RECONCILE_THROTTLE_MS", "50")
	t.Setenv("RECONCILE_LABELS_CATALOG", "Storefront")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://auth.example/token", cfg.Sources.Primary.TokenURL)
	assert.Equal(t, 50, cfg.Reconcile.ThrottleMillis)
	assert.Equal(t, "Storefront", cfg.Reconcile.Labels.Catalog)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "SOURCES_FEED_URL=https://feed.example/items.json\nSERVER_API_KEY=from-file\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SOURCES_FEED_URL")
		os.Unsetenv("SERVER_API_KEY")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://feed.example/items.json", cfg.Sources.Feed.URL)
	assert.Equal(t, "from-file", cfg.Server.ApiKey)
}

func TestLoadConfig_RejectsUnknownKinds(t *testing.T) {
	t.Setenv("SOURCES_SECONDARY_SOURCE", "ftp")
	t.Setenv("RECONCILE_PRIMARY_STRATEGY", "guess")

	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown kind "ftp"`)
	assert.Contains(t, err.Error(), `unknown strategy "guess"`)
}

func TestValidate(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.Sources.Secondary.Source = "sql"
	cfg.Database.Driver = "postgres"
	assert.ErrorContains(t, cfg.Validate(), `unsupported driver "postgres"`)

	cfg.Database.Driver = "sqlite"
	assert.NoError(t, cfg.Validate())

	cfg.Reconcile.ThrottleMillis = -1
	assert.ErrorContains(t, cfg.Validate(), "must not be negative")
}
