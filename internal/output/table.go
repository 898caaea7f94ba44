package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rshade/streamtable/internal/tableview"
)

// Table border styles.
const (
	StyleRounded  = "rounded"
	StyleNormal   = "normal"
	StyleASCII    = "ascii"
	StyleMarkdown = "markdown"
	StyleHidden   = "hidden"
)

// ErrUnknownStyle is returned for unsupported style names.
var ErrUnknownStyle = errors.New("unknown table style")

// ValidateStyle checks a style name.
func ValidateStyle(style string) error {
	if _, err := borderFor(style); err != nil {
		return err
	}
	return nil
}

func borderFor(style string) (lipgloss.Border, error) {
	switch strings.ToLower(style) {
	case StyleRounded, "":
		return lipgloss.RoundedBorder(), nil
	case StyleNormal:
		return lipgloss.NormalBorder(), nil
	case StyleASCII:
		return lipgloss.ASCIIBorder(), nil
	case StyleMarkdown:
		return lipgloss.MarkdownBorder(), nil
	case StyleHidden:
		return lipgloss.HiddenBorder(), nil
	default:
		return lipgloss.Border{}, fmt.Errorf("%w: %q (use rounded, normal, ascii, markdown, or hidden)",
			ErrUnknownStyle, style)
	}
}

// TableWriterOptions configures a TableWriter.
type TableWriterOptions struct {
	// Style is the border style name.
	Style string

	// Width caps the table width. Zero uses the terminal width when the output is
	// a terminal and no limit otherwise.
	Width int
}

// TableWriter is the sink that writes table views to a Device.
type TableWriter struct {
	dev    *Device
	border lipgloss.Border
	width  int
}

// NewTableWriter creates a sink writing to dev.
func NewTableWriter(dev *Device, opts TableWriterOptions) (*TableWriter, error) {
	border, err := borderFor(opts.Style)
	if err != nil {
		return nil, err
	}
	return &TableWriter{dev: dev, border: border, width: opts.Width}, nil
}

// Write renders view and writes it while holding the device.
func (w *TableWriter) Write(view *tableview.TableView) error {
	return w.dev.Do(func(out, _ io.Writer) error {
		width := w.width
		if width == 0 {
			width = TerminalWidth(out)
		}
		rendered := w.render(view, lipgloss.NewRenderer(out), width)
		if _, err := io.WriteString(out, rendered+"\n"); err != nil {
			return fmt.Errorf("writing rows %d-%d: %w", view.StartRow, view.LastRow(), err)
		}
		return nil
	})
}

func (w *TableWriter) render(view *tableview.TableView, r *lipgloss.Renderer, width int) string {
	headerStyle := r.NewStyle().Bold(true).Padding(0, 1)
	indexStyle := r.NewStyle().Faint(true).Padding(0, 1).Align(lipgloss.Right)
	cellStyle := r.NewStyle().Padding(0, 1)

	headers := make([]string, 0, len(view.Headers)+1)
	headers = append(headers, tableview.IndexHeader)
	headers = append(headers, view.Headers...)

	rows := make([][]string, 0, len(view.Rows))
	for _, row := range view.Rows {
		cells := make([]string, 0, len(row.Cells)+1)
		cells = append(cells, tableview.FormatIndex(row.Index))
		cells = append(cells, row.Cells...)
		rows = append(rows, cells)
	}

	t := table.New().
		Border(w.border).
		BorderStyle(r.NewStyle()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return indexStyle
			default:
				return cellStyle
			}
		})
	if width > 0 {
		t = t.Width(width)
	}

	return t.String()
}
