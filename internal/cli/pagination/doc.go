// Package pagination holds the paging flags of the table command and their validation.
//
// This package contains:
//   - TableParams: CLI flag values, config fallback, and validation
//   - PageSummary: what a finished run covered, in pages and rows
//
// Invalid page sizes, widths, styles, and input formats are usage errors that stop
// the command. The starting row number is deliberately not validated here: a bad
// value is reported and rendering continues from row 0.
package pagination
