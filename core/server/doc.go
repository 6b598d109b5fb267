// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure for server settings.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key, the heartbeat interval
// written on idle event streams and the graceful shutdown deadline.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the start command and the inventory feature.
package server
