// Package feed reads the public product-availability export.
//
// The export is a single unauthenticated JSON array. Two schema variants are in
// circulation, one with lower-case keys (id, availability, title, link) and one
// with capitalized keys (Id, Availability, ...). Both are accepted. Items
// without an identifier are dropped.
package feed
