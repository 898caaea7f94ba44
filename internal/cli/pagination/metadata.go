package pagination

import "github.com/rshade/streamtable/internal/tableview"

// PageSummary describes what a finished run covered.
type PageSummary struct {
	PageSize  int    `json:"page_size"  yaml:"page_size"`
	FirstPage uint64 `json:"first_page" yaml:"first_page"`
	Pages     int    `json:"pages"      yaml:"pages"`
	Rows      int    `json:"rows"       yaml:"rows"`
	FirstRow  uint64 `json:"first_row"  yaml:"first_row"`
	LastRow   uint64 `json:"last_row"   yaml:"last_row"`
}

// NewPageSummary builds a summary for rows rendered from startRow in pages of
// pageSize. FirstPage is 1-based relative to row 0.
func NewPageSummary(pageSize int, startRow uint64, rows int) PageSummary {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	pages := rows / pageSize
	if rows%pageSize > 0 {
		pages++
	}

	lastRow := startRow
	if rows > 0 {
		lastRow = tableview.AddRows(startRow, uint64(rows-1))
	}

	return PageSummary{
		PageSize:  pageSize,
		FirstPage: startRow/uint64(pageSize) + 1,
		Pages:     pages,
		Rows:      rows,
		FirstRow:  startRow,
		LastRow:   lastRow,
	}
}

// HasRows reports whether anything was rendered.
func (s PageSummary) HasRows() bool {
	return s.Rows > 0
}
