// Package utils provides type conversion helpers for upstream payloads whose
// field types vary between systems, such as numeric or string product ids and
// quantity cells read from spreadsheets.
package utils
