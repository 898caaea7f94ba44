// Package tableview turns a window of values into a render-ready table.
// It performs no I/O.
package tableview

import (
	"math"
	"slices"

	"github.com/rshade/streamtable/internal/value"
)

// Column names used by the builder.
const (
	IndexHeader = "#"
	ValueHeader = "<value>"
)

// Row is one rendered line of a table.
type Row struct {
	Index uint64
	Cells []string
}

// TableView is the render-ready form of one window. It is built, written once, and dropped.
type TableView struct {
	StartRow uint64
	Headers  []string
	Rows     []Row
}

// Len returns the number of rows.
func (v *TableView) Len() int {
	return len(v.Rows)
}

// LastRow returns the index of the final row.
func (v *TableView) LastRow() uint64 {
	if len(v.Rows) == 0 {
		return v.StartRow
	}
	return v.Rows[len(v.Rows)-1].Index
}

// Builder derives a TableView from a window of values.
type Builder struct {
	Format CellFormat
}

// NewBuilder returns a builder using format for cell text.
func NewBuilder(format CellFormat) *Builder {
	return &Builder{Format: format}
}

// Build lays out window as a table whose first row is numbered startRow.
// It returns false when the window is empty or nothing in it has a displayable column.
//
// Columns are the union of record field names in first-seen order. Non-record
// values are shown in a trailing <value> column, or in the record column of that
// name when one exists; Nothing contributes no column.
func (b *Builder) Build(window []value.Value, startRow uint64) (*TableView, bool) {
	if len(window) == 0 {
		return nil, false
	}

	headers, hasPlain := columns(window)
	valueCol := -1
	if hasPlain {
		valueCol = slices.Index(headers, ValueHeader)
		if valueCol < 0 {
			headers = append(headers, ValueHeader)
			valueCol = len(headers) - 1
		}
	}
	if len(headers) == 0 {
		return nil, false
	}

	view := &TableView{
		StartRow: startRow,
		Headers:  headers,
		Rows:     make([]Row, 0, len(window)),
	}
	for i, v := range window {
		cells := make([]string, len(headers))
		switch {
		case v.IsRecord():
			for c, name := range headers {
				if field, ok := v.Get(name); ok {
					cells[c] = b.Format.Cell(field)
				}
			}
		case !v.IsNothing():
			cells[valueCol] = b.Format.Cell(v)
		}
		view.Rows = append(view.Rows, Row{
			Index: AddRows(startRow, uint64(i)),
			Cells: cells,
		})
	}

	return view, true
}

// columns collects record field names in first-seen order and reports whether
// any non-record, non-nothing value is present.
func columns(window []value.Value) ([]string, bool) {
	var headers []string
	seen := make(map[string]struct{})
	hasPlain := false
	for _, v := range window {
		switch {
		case v.IsRecord():
			for _, f := range v.Fields() {
				if _, ok := seen[f.Name]; ok {
					continue
				}
				seen[f.Name] = struct{}{}
				headers = append(headers, f.Name)
			}
		case !v.IsNothing():
			hasPlain = true
		}
	}
	return headers, hasPlain
}

// AddRows returns start+n, saturating at math.MaxUint64 instead of wrapping.
func AddRows(start, n uint64) uint64 {
	if start > math.MaxUint64-n {
		return math.MaxUint64
	}
	return start + n
}
