// Package cellformat renders Sheets cell formats as text for agents and
// aggregates formatting patterns across a block of cells.
package cellformat

import (
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/color"
)

// Property categories accepted by Filter.
const (
	Background   = "background"
	TextFormat   = "text_format"
	NumberFormat = "number_format"
	Alignment    = "alignment"
	Wrap         = "wrap"
	Borders      = "borders"
	Padding      = "padding"
)

// Properties lists every category in display order.
var Properties = []string{Background, TextFormat, NumberFormat, Alignment, Wrap, Borders, Padding}

// Filter restricts output to a set of categories. The zero Filter allows all.
type Filter map[string]bool

// NewFilter builds a Filter from category names, rejecting unknown ones.
func NewFilter(props []string) (Filter, error) {
	if len(props) == 0 {
		return nil, nil
	}
	f := make(Filter, len(props))
	for _, p := range props {
		p = strings.ToLower(strings.TrimSpace(p))
		if !isProperty(p) {
			return nil, apperr.Invalid("unknown property %q; use one of %s", p, strings.Join(Properties, ", "))
		}
		f[p] = true
	}
	return f, nil
}

func isProperty(p string) bool {
	for _, known := range Properties {
		if p == known {
			return true
		}
	}
	return false
}

// Has reports whether category p should be rendered.
func (f Filter) Has(p string) bool {
	return len(f) == 0 || f[p]
}

// DescribeCell returns one indented line per active format category of the
// cell's effective format, preceded by its formatted value. It returns "" for
// a cell with neither.
func DescribeCell(cell *sheets.CellData, f Filter) string {
	if cell == nil {
		return ""
	}
	var lines []string
	if cell.FormattedValue != "" {
		lines = append(lines, "Value: "+cell.FormattedValue)
	}
	if ef := cell.EffectiveFormat; ef != nil {
		lines = append(lines, describeFormat(ef, f)...)
	}
	if len(lines) == 0 {
		return ""
	}
	return "    " + strings.Join(lines, "\n    ")
}

func describeFormat(ef *sheets.CellFormat, f Filter) []string {
	var lines []string
	if f.Has(Background) {
		if bg := color.DisplaySheets(ef.BackgroundColor, ef.BackgroundColorStyle); bg != "" {
			lines = append(lines, "Background: "+bg)
		}
	}
	if f.Has(TextFormat) && ef.TextFormat != nil {
		if text := describeText(ef.TextFormat); text != "" {
			lines = append(lines, "Text: "+text)
		}
	}
	if f.Has(NumberFormat) && ef.NumberFormat != nil {
		nf := ef.NumberFormat
		typ := nf.Type
		if typ == "" {
			typ = "UNKNOWN"
		}
		if nf.Pattern != "" {
			lines = append(lines, fmt.Sprintf("Number Format: %s (%s)", typ, nf.Pattern))
		} else {
			lines = append(lines, "Number Format: "+typ)
		}
	}
	if f.Has(Alignment) {
		var parts []string
		if ef.HorizontalAlignment != "" {
			parts = append(parts, "H: "+ef.HorizontalAlignment)
		}
		if ef.VerticalAlignment != "" {
			parts = append(parts, "V: "+ef.VerticalAlignment)
		}
		if len(parts) > 0 {
			lines = append(lines, "Alignment: "+strings.Join(parts, ", "))
		}
	}
	if f.Has(Wrap) && ef.WrapStrategy != "" {
		lines = append(lines, "Text Wrap: "+ef.WrapStrategy)
	}
	if f.Has(Borders) {
		if b := describeBorders(ef.Borders); b != "" {
			lines = append(lines, "Borders: "+b)
		}
	}
	if f.Has(Padding) && ef.Padding != nil {
		p := ef.Padding
		if p.Top != 0 || p.Right != 0 || p.Bottom != 0 || p.Left != 0 {
			lines = append(lines, fmt.Sprintf("Padding: top %d, right %d, bottom %d, left %d", p.Top, p.Right, p.Bottom, p.Left))
		}
	}
	return lines
}

func describeText(tf *sheets.TextFormat) string {
	var parts []string
	if c := color.DisplaySheets(tf.ForegroundColor, tf.ForegroundColorStyle); c != "" {
		parts = append(parts, "color: "+c)
	}
	if tf.Bold {
		parts = append(parts, "bold")
	}
	if tf.Italic {
		parts = append(parts, "italic")
	}
	if tf.Underline {
		parts = append(parts, "underline")
	}
	if tf.Strikethrough {
		parts = append(parts, "strikethrough")
	}
	if tf.FontSize > 0 {
		parts = append(parts, fmt.Sprintf("%dpt", tf.FontSize))
	}
	if tf.FontFamily != "" {
		parts = append(parts, tf.FontFamily)
	}
	return strings.Join(parts, ", ")
}

func describeBorders(b *sheets.Borders) string {
	if b == nil {
		return ""
	}
	sides := []struct {
		name   string
		border *sheets.Border
	}{
		{"top", b.Top}, {"bottom", b.Bottom}, {"left", b.Left}, {"right", b.Right},
	}
	var parts []string
	for _, s := range sides {
		if hasBorder(s.border) {
			parts = append(parts, s.name+": "+s.border.Style)
		}
	}
	return strings.Join(parts, ", ")
}

func hasBorder(b *sheets.Border) bool {
	return b != nil && b.Style != "" && b.Style != "NONE"
}
