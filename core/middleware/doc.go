// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - Auth: Validates the X-API-Key header (or the api_key query parameter,
//     for EventSource clients that cannot set headers). Disabled when no key
//     is configured.
//   - RayID: Keeps the caller's X-Ray-ID or generates one, stores it in the
//     request locals and echoes it on the response for log correlation.
//
// RayID is registered first so every log line of a request carries the id.
// Swagger is mounted before Auth and stays public.
package middleware
