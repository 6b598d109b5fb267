// Package config provides configuration management for the stock reconciler.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (loaded with godotenv, overriding the process env).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port, API key, stream heartbeat and shutdown deadline
//   - Database: optional warehouse reporting database (MySQL or SQLite)
//   - Storage: S3/MinIO credentials and the imports bucket
//   - Log: Logging level and format
//   - Sources: feed, catalog, primary and secondary warehouse endpoints
//   - Reconcile: throttle, catalog concurrency, primary strategy, labels
//
// Every field carries its default in a `default` struct tag, and every key
// can be overridden by the upper-cased, underscore-joined environment
// variable (reconcile.throttle_ms -> RECONCILE_THROTTLE_MS).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sources.Primary.GraphQLURL)
package config
