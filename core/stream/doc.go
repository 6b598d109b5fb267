// Package stream carries reconciliation output over a one-way event stream.
//
// # Wire Format
//
// Every event is one frame, "data: <json>\n\n", where the JSON object has a
// "type" field of progress, result, summary, error or complete. Lines starting
// with ":" are comments and are used for heartbeats.
//
// # Publisher
//
// Publisher is a reconcile.Sink. It starts idle, becomes running with the
// first frame, and ends in exactly one absorbing terminal state: complete
// (after Complete) or failed (after Fail or a write error). Any event after
// that returns ErrStreamClosed. A summary may be sent at most once.
//
// # Reader
//
// Reader is the consuming side. It buffers bytes until a whole frame has been
// received, so frames split across network reads decode correctly.
//
// # Usage Example
//
//	pub := stream.NewPublisher(w)
//	report, err := engine.Run(ctx, req, pub)
//	if err != nil {
//	    _ = pub.Fail(err.Error())
//	    return
//	}
//	_ = pub.Complete(report.Total)
package stream
