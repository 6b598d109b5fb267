// Package integrity provides system health checks.
//
// # Checks Provided
//
//   - Storage: Checks that the import bucket and imports prefix exist and counts stored imports.
//   - Database: Pings the optional warehouse database and verifies the balance table has every column the sql source reads.
//   - Sources: Reports which systems of record are missing required settings.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks. Responds 503 when any check fails.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
//   - GET /integrity/database : Runs the database check.
//   - GET /integrity/sources : Runs the source configuration check.
package integrity
