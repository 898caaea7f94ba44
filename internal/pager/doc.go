// Package pager drives the paging loop: it pulls a window from a source,
// builds a table view numbered from the current row offset, hands the view
// to a sink, and advances the offset by the page size, until the source runs dry.
//
// Errors while writing a page and problems with the starting row are reported
// through a Reporter and never stop the loop. Only cancellation of the context
// ends a run early.
package pager
