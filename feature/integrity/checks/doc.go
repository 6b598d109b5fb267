// Package checks holds the individual health checks run by the integrity
// feature. Each check returns a JSON-ready report and never mutates state,
// except FixStorage which is only invoked on request.
package checks
