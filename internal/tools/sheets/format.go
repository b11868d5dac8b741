package sheets

import (
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/color"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/values"
)

// formatOptions is the validated subset of format_cells arguments. Enum
// fields are upper-cased before validation; empty means "leave unchanged".
type formatOptions struct {
	BackgroundColor     string
	FontColor           string
	FontSize            *int
	FontFamily          string
	Bold                any
	Italic              any
	Underline           any
	Strikethrough       any
	HorizontalAlignment string
	VerticalAlignment   string
	TextWrap            string
	NumberFormat        string
	NumberFormatPattern string
	BorderStyle         string
	BorderColor         string
}

// textStyle carries the flexible-boolean text flags shared with
// conditional rules.
type textStyle struct {
	FontColor     string
	Bold          any
	Italic        any
	Underline     any
	Strikethrough any
}

// apply sets the given flags on tf and reports the textFormat sub-fields it
// touched. A false flag is sent explicitly; an absent one is not sent.
func (s textStyle) apply(tf *sheets.TextFormat) ([]string, error) {
	var fields []string
	if s.FontColor != "" {
		c, err := color.HexToRGB(s.FontColor)
		if err != nil {
			return nil, err
		}
		tf.ForegroundColor = c.Sheets()
		fields = append(fields, "foregroundColor")
	}

	flags := []struct {
		name, goField string
		raw           any
		dst           *bool
	}{
		{"bold", "Bold", s.Bold, &tf.Bold},
		{"italic", "Italic", s.Italic, &tf.Italic},
		{"underline", "Underline", s.Underline, &tf.Underline},
		{"strikethrough", "Strikethrough", s.Strikethrough, &tf.Strikethrough},
	}
	for _, f := range flags {
		b, err := values.ParseBool(f.raw)
		if err != nil {
			return nil, apperr.Invalid("%s: %v", f.name, err)
		}
		if b == nil {
			continue
		}
		*f.dst = *b
		if !*b {
			tf.ForceSendFields = append(tf.ForceSendFields, f.goField)
		}
		fields = append(fields, f.name)
	}
	return fields, nil
}

// buildCellFormat converts options to a CellFormat plus the exact
// repeatCell field mask for the attributes that were set.
func buildCellFormat(o formatOptions) (*sheets.CellFormat, string, error) {
	cf := &sheets.CellFormat{}
	var fields []string
	add := func(path string) { fields = append(fields, "userEnteredFormat."+path) }

	if o.BackgroundColor != "" {
		c, err := color.HexToRGB(o.BackgroundColor)
		if err != nil {
			return nil, "", err
		}
		cf.BackgroundColor = c.Sheets()
		add("backgroundColor")
	}

	tf := &sheets.TextFormat{}
	textFields, err := textStyle{
		FontColor:     o.FontColor,
		Bold:          o.Bold,
		Italic:        o.Italic,
		Underline:     o.Underline,
		Strikethrough: o.Strikethrough,
	}.apply(tf)
	if err != nil {
		return nil, "", err
	}
	if o.FontSize != nil {
		tf.FontSize = int64(*o.FontSize)
		textFields = append(textFields, "fontSize")
	}
	if o.FontFamily != "" {
		tf.FontFamily = o.FontFamily
		textFields = append(textFields, "fontFamily")
	}
	if len(textFields) > 0 {
		cf.TextFormat = tf
		for _, f := range textFields {
			add("textFormat." + f)
		}
	}

	if o.HorizontalAlignment != "" {
		cf.HorizontalAlignment = o.HorizontalAlignment
		add("horizontalAlignment")
	}
	if o.VerticalAlignment != "" {
		cf.VerticalAlignment = o.VerticalAlignment
		add("verticalAlignment")
	}
	if o.TextWrap != "" {
		cf.WrapStrategy = o.TextWrap
		add("wrapStrategy")
	}

	if o.NumberFormat != "" || o.NumberFormatPattern != "" {
		// A pattern without a type still needs one for the API to accept it.
		cf.NumberFormat = &sheets.NumberFormat{Type: orDefault(o.NumberFormat, "NUMBER"), Pattern: o.NumberFormatPattern}
		add("numberFormat")
	}

	if o.BorderStyle != "" || o.BorderColor != "" {
		b, err := newBorder(o.BorderStyle, o.BorderColor)
		if err != nil {
			return nil, "", err
		}
		cf.Borders = &sheets.Borders{Top: b, Bottom: b, Left: b, Right: b}
		add("borders")
	}

	if len(fields) == 0 {
		return nil, "", apperr.Invalid("no formatting options given; set at least one of background_color, font_color, font_size, bold, horizontal_alignment, number_format or border_style")
	}
	return cf, strings.Join(fields, ","), nil
}

// newBorder defaults the style to SOLID and the color to black.
func newBorder(style, hex string) (*sheets.Border, error) {
	b := &sheets.Border{Style: orDefault(style, "SOLID"), Color: &sheets.Color{}}
	if hex != "" {
		c, err := color.HexToRGB(hex)
		if err != nil {
			return nil, err
		}
		b.Color = c.Sheets()
	}
	return b, nil
}
