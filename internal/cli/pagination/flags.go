package pagination

import (
	"errors"
	"fmt"

	"github.com/rshade/streamtable/internal/config"
	"github.com/rshade/streamtable/internal/engine/batch"
	"github.com/rshade/streamtable/internal/output"
	"github.com/rshade/streamtable/internal/tableview"
	"github.com/rshade/streamtable/internal/value"
)

// Validation limits.
const (
	MinPageSize     = batch.MinBatchSize
	MaxPageSize     = batch.MaxBatchSize
	DefaultPageSize = batch.DefaultBatchSize
	MinWidth        = 0
	MaxWidth        = 1000
	MaxPrecision    = 17
)

// Common validation errors.
var (
	ErrInvalidPageSize  = errors.New("page-size must be between 1 and 10000")
	ErrInvalidWidth     = errors.New("width must be between 0 and 1000")
	ErrInvalidPrecision = errors.New("precision must be between -1 and 17")
)

// TableParams holds the table command flags and provides validation.
// Zero values mean "not set on the command line" and are filled from config
// by ApplyConfig.
type TableParams struct {
	// StartNumber is the raw starting row argument.
	StartNumber string

	// StartNumberSet reports whether StartNumber was given at all.
	StartNumberSet bool

	// PageSize is the number of rows per table.
	PageSize int

	// Input is the path to read, or "" / "-" for stdin.
	Input string

	// Format is the input format name.
	Format string

	// Style is the table border style.
	Style string

	// Width caps the table width; 0 means the terminal width.
	Width int

	// GroupDigits enables thousands separators in numeric cells.
	GroupDigits bool

	// Precision fixes the number of float digits; -1 is shortest form.
	Precision int

	precisionSet   bool
	widthSet       bool
	groupDigitsSet bool
}

// NewTableParams creates a TableParams with default values.
func NewTableParams() *TableParams {
	return &TableParams{Precision: tableview.DefaultPrecision}
}

// SetPrecision records an explicit precision so ApplyConfig leaves it alone.
func (p *TableParams) SetPrecision(n int) {
	p.Precision = n
	p.precisionSet = true
}

// SetWidth records an explicit width, including 0, so ApplyConfig leaves it alone.
func (p *TableParams) SetWidth(n int) {
	p.Width = n
	p.widthSet = true
}

// SetGroupDigits records an explicit choice, including false, so ApplyConfig leaves it alone.
func (p *TableParams) SetGroupDigits(b bool) {
	p.GroupDigits = b
	p.groupDigitsSet = true
}

// ApplyConfig fills every unset parameter from cfg.
func (p *TableParams) ApplyConfig(cfg config.TableConfig) {
	if p.PageSize == 0 {
		p.PageSize = cfg.PageSize
	}
	if p.Format == "" {
		p.Format = cfg.InputFormat
	}
	if p.Style == "" {
		p.Style = cfg.Style
	}
	if !p.widthSet && p.Width == 0 {
		p.Width = cfg.Width
	}
	if !p.groupDigitsSet && !p.GroupDigits {
		p.GroupDigits = cfg.GroupDigits
	}
	if !p.precisionSet {
		p.Precision = cfg.Precision
	}
}

// Validate checks the parameters (value receiver). The start number is not
// checked; see the package documentation.
func (p TableParams) Validate() error {
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	if p.Width < MinWidth || p.Width > MaxWidth {
		return fmt.Errorf("%w: got %d", ErrInvalidWidth, p.Width)
	}
	if p.Precision < tableview.DefaultPrecision || p.Precision > MaxPrecision {
		return fmt.Errorf("%w: got %d", ErrInvalidPrecision, p.Precision)
	}
	if _, err := value.ParseFormat(p.Format); err != nil {
		return err
	}
	return output.ValidateStyle(p.Style)
}

// InputFormat returns the parsed input format. Call Validate first.
func (p TableParams) InputFormat() value.Format {
	f, _ := value.ParseFormat(p.Format)
	return f
}

// CellFormat returns the cell formatting options.
func (p TableParams) CellFormat() tableview.CellFormat {
	return tableview.CellFormat{GroupDigits: p.GroupDigits, Precision: p.Precision}
}

// WriterOptions returns the sink options.
func (p TableParams) WriterOptions() output.TableWriterOptions {
	return output.TableWriterOptions{Style: p.Style, Width: p.Width}
}

// ReadsStdin reports whether input comes from standard input.
func (p TableParams) ReadsStdin() bool {
	return p.Input == "" || p.Input == "-"
}
