// Package logger builds the zap logger shared by the server and the CLI.
//
// Level "debug" selects zap's development preset with ISO8601 timestamps;
// any other level uses the production preset at that level. Format "console"
// switches to the coloured console encoder, otherwise entries are JSON with
// the keys time, level and message.
//
// Two helpers derive scoped loggers:
//
//	l := logger.WithRayID(base, c)              // ray_id from the request locals
//	l = logger.WithRun(base, runID, "full")     // run_id and mode of a reconciliation
//
// Every line of a run therefore carries its run id, and every line of a
// request carries the id echoed in the X-Ray-ID response header.
package logger
