// Package upstream holds the HTTP plumbing shared by the source clients.
//
// Every system of record speaks JSON over HTTP. This package provides a client
// with strict dial/TLS/header timeouts, request builders and a single Do helper
// that turns non-2xx responses into *StatusError and undecodable bodies into
// ErrMalformed so callers can tell a soft miss from a transport failure.
package upstream
