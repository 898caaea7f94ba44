package tableview

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/streamtable/internal/value"
)

// DefaultPrecision is used for floats when CellFormat.Precision is negative.
const DefaultPrecision = -1

// printer is the locale-aware printer used for digit grouping.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// CellFormat controls how scalar values are turned into cell text.
type CellFormat struct {
	// GroupDigits inserts thousand separators into numbers.
	GroupDigits bool

	// Precision is the number of decimals for floats. Negative means shortest exact form.
	Precision int
}

// DefaultCellFormat returns the format used when nothing is configured.
func DefaultCellFormat() CellFormat {
	return CellFormat{Precision: DefaultPrecision}
}

// Cell renders v as table cell text.
func (f CellFormat) Cell(v value.Value) string {
	switch v.Kind() {
	case value.KindNothing:
		return ""
	case value.KindBool:
		return strconv.FormatBool(v.AsBool())
	case value.KindInt:
		return f.formatInt(v.AsInt())
	case value.KindFloat:
		return f.formatFloat(v.AsFloat())
	case value.KindString:
		return v.AsString()
	case value.KindList:
		return summary(len(v.Items()), "item")
	case value.KindRecord:
		return summary(len(v.Fields()), "field")
	default:
		return ""
	}
}

// FormatIndex renders a row number. Row numbers are never grouped.
func FormatIndex(i uint64) string {
	return strconv.FormatUint(i, 10)
}

func (f CellFormat) formatInt(i int64) string {
	if f.GroupDigits {
		return printer.Sprintf("%d", i)
	}
	return strconv.FormatInt(i, 10)
}

func (f CellFormat) formatFloat(x float64) string {
	if f.Precision < 0 {
		if f.GroupDigits {
			return printer.Sprint(x)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	if f.GroupDigits {
		return printer.Sprintf(fmt.Sprintf("%%.%df", f.Precision), x)
	}
	return strconv.FormatFloat(x, 'f', f.Precision, 64)
}

// summary describes a nested value, e.g. "[list 3 items]" or "[record 1 field]".
func summary(n int, noun string) string {
	kind := "list"
	if noun == "field" {
		kind = "record"
	}
	if n != 1 {
		noun += "s"
	}
	return "[" + kind + " " + strconv.Itoa(n) + " " + noun + "]"
}
