// Package secondary provides the secondary warehouse sources.
//
// Three interchangeable sources satisfy reconcile.SecondarySource and all of
// them yield the same normalized record shape:
//
//   - APISource posts batches of SKUs to the token-authenticated lookup API.
//   - SQLSource reads the warehouse reporting table with batched IN queries.
//   - Import is a static table parsed from an operator-supplied CSV or XLSX
//     file with the columns SKU, Balance and InOrder. Balance becomes both on
//     hand and physical; stopped and allocated are zero.
//
// Imports are usually uploaded once and stored in object storage under
// Config.ImportPrefix; LoadImport reads them back for a run.
package secondary
