package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"stock-reconciler/core/database"
	"stock-reconciler/core/logger"
	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/server"
	"stock-reconciler/core/sources/catalog"
	"stock-reconciler/core/sources/feed"
	"stock-reconciler/core/sources/primary"
	"stock-reconciler/core/sources/secondary"
	"stock-reconciler/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage that keeps imports.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the optional warehouse database.
	Database database.Config `mapstructure:"database"`
	// Sources holds the endpoints and credentials of every system of record.
	Sources Sources `mapstructure:"sources"`
	// Reconcile tunes reconciliation runs.
	Reconcile reconcile.Config `mapstructure:"reconcile"`
}

// Sources groups the per-system source configurations.
type Sources struct {
	Feed      feed.Config      `mapstructure:"feed"`
	Catalog   catalog.Config   `mapstructure:"catalog"`
	Primary   primary.Config   `mapstructure:"primary"`
	Secondary secondary.Config `mapstructure:"secondary"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SOURCES_PRIMARY_TOKEN_URL -> sources.primary.token_url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings that would only fail once a run starts.
// Missing upstream endpoints are not errors; the integrity report lists them.
func (c *Config) Validate() error {
	var errs []error

	switch c.Sources.Secondary.Source {
	case secondary.KindAPI, secondary.KindSQL, secondary.KindImport:
	default:
		errs = append(errs, fmt.Errorf("sources.secondary.source: unknown kind %q", c.Sources.Secondary.Source))
	}

	switch c.Reconcile.PrimaryStrategy {
	case reconcile.StrategyPerKey, reconcile.StrategyBulk:
	default:
		errs = append(errs, fmt.Errorf("reconcile.primary_strategy: unknown strategy %q", c.Reconcile.PrimaryStrategy))
	}

	if c.Sources.Secondary.Source == secondary.KindSQL {
		switch c.Database.Driver {
		case database.DriverMySQL, database.DriverSQLite:
		default:
			errs = append(errs, fmt.Errorf("database.driver: unsupported driver %q", c.Database.Driver))
		}
	}

	if c.Reconcile.ThrottleMillis < 0 {
		errs = append(errs, errors.New("reconcile.throttle_ms: must not be negative"))
	}

	return errors.Join(errs...)
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
