package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// HeartbeatSeconds is the interval of keep-alive comments on idle streams.
	HeartbeatSeconds int `mapstructure:"heartbeat_seconds" default:"15"`
	// ShutdownSeconds bounds how long in-flight streams may drain on shutdown.
	ShutdownSeconds int `mapstructure:"shutdown_seconds" default:"10"`
}

// Heartbeat returns the stream heartbeat interval; zero disables heartbeats.
func (c Config) Heartbeat() time.Duration {
	if c.HeartbeatSeconds <= 0 {
		return 0
	}
	return time.Duration(c.HeartbeatSeconds) * time.Second
}

// ShutdownTimeout returns the graceful shutdown deadline.
func (c Config) ShutdownTimeout() time.Duration {
	if c.ShutdownSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownSeconds) * time.Second
}

// AuthEnabled reports whether requests must carry an API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}
