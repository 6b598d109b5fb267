// Package imports manages secondary warehouse imports in object storage.
//
// Operators export the warehouse balance report as CSV or XLSX and upload it
// here. Uploads are parsed before they are written, so a file missing one of
// the SKU, Balance or InOrder columns is rejected with 400 and never stored.
// Full reconciliation runs then name a stored import with ?import=<name>.
package imports
