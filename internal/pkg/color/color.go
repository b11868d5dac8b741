// Package color converts between hex color strings and the fractional RGB
// colors used by the Sheets API.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
)

// ErrInvalidColor is returned for anything that is not six hex digits,
// with or without a leading '#'.
var ErrInvalidColor = fmt.Errorf("%w: invalid color", apperr.ErrInvalidInput)

// RGB holds channels in [0, 1]. Alpha is nil when the color is opaque by
// default rather than explicitly.
type RGB struct {
	Red, Green, Blue float64
	Alpha            *float64
}

// HexToRGB parses "#RRGGBB" or "RRGGBB", case-insensitively.
func HexToRGB(hex string) (RGB, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(digits) != 6 {
		return RGB{}, fmt.Errorf("%w: %q must be 6 hex digits like #FF0000", ErrInvalidColor, hex)
	}
	var ch [3]float64
	for i := range ch {
		n, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q must be 6 hex digits like #FF0000", ErrInvalidColor, hex)
		}
		ch[i] = float64(n) / 255.0
	}
	return RGB{Red: ch[0], Green: ch[1], Blue: ch[2]}, nil
}

// Display renders the color as lowercase "#rrggbb", followed by the alpha as
// a percentage when one is set.
func (c RGB) Display() string {
	s := fmt.Sprintf("#%02x%02x%02x", channel(c.Red), channel(c.Green), channel(c.Blue))
	if c.Alpha != nil {
		s += fmt.Sprintf(" (alpha %d%%)", int(math.Round(clamp(*c.Alpha)*100)))
	}
	return s
}

func channel(v float64) int {
	return int(math.Round(clamp(v) * 255))
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Sheets returns the API representation.
func (c RGB) Sheets() *sheets.Color {
	out := &sheets.Color{Red: c.Red, Green: c.Green, Blue: c.Blue}
	if c.Alpha != nil {
		out.Alpha = *c.Alpha
	}
	return out
}

// FromSheets converts an API color. The API omits zero fields, so a zero
// alpha is read as "not set".
func FromSheets(c *sheets.Color) RGB {
	if c == nil {
		return RGB{}
	}
	out := RGB{Red: c.Red, Green: c.Green, Blue: c.Blue}
	if c.Alpha != 0 {
		a := c.Alpha
		out.Alpha = &a
	}
	return out
}

// DisplaySheets renders an API color, preferring the RGB form of a
// ColorStyle. It returns "" when neither carries a color.
func DisplaySheets(c *sheets.Color, style *sheets.ColorStyle) string {
	if style != nil && style.RgbColor != nil {
		return FromSheets(style.RgbColor).Display()
	}
	if style != nil && style.ThemeColor != "" {
		return "theme:" + strings.ToLower(style.ThemeColor)
	}
	if c != nil {
		return FromSheets(c).Display()
	}
	return ""
}
