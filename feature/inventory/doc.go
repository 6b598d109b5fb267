// Package inventory exposes reconciliation runs over HTTP.
//
// # Streams
//
// The stream endpoints answer with text/event-stream and write one frame per
// engine event (see core/stream). Requests are validated before the stream
// opens, so a missing SKU list or a full run without a secondary source is a
// plain 400. Once streaming, a fatal run error becomes the terminal error
// frame. When the client disconnects the next write fails, the run's context
// is canceled and the engine stops after the key in flight.
//
// # Endpoints
//
//   - GET/POST /inventory/spot/stream: spot run as an event stream.
//   - GET /inventory/full/stream?import=name: full run as an event stream. The
//     secondary source is the named stored import or the configured live source.
//   - POST /inventory/spot: spot run collected into one JSON report.
//   - POST /inventory/classify: classify a supplied snapshot.
package inventory
