// Package primary talks to the primary fulfillment-inventory service.
//
// # Authentication
//
// Client.Authenticate performs a password-grant token exchange (username,
// password, client id and secret) and returns a Session carrying the bearer
// token. Tokens are not cached; each reconciliation run authenticates once.
//
// # Queries
//
// Inventory is read through a GraphQL endpoint in two shapes:
//
//   - OnHand issues one query for a single product reference.
//   - BulkOnHand walks the cursor-paginated position list, passing the last
//     edge cursor of each page as "after". The walk stops when the service
//     reports no further pages, when every target key has been seen, or when
//     Config.MaxPages pages have been read, whichever comes first.
//
// Target keys match position references case-insensitively; results are keyed
// by the caller's spelling.
package primary
