// Package catalog queries the storefront search index for per-key stock.
//
// Each lookup is one GET with ?q=<key>. The index does fuzzy matching, so the
// response is filtered to the product whose variant SKU equals the key.
package catalog
