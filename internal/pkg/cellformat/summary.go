package cellformat

import (
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/color"
)

// topColors caps how many colors of each kind the summary lists.
const topColors = 3

// Entry is one key of a Counter with its count.
type Entry struct {
	Key   string
	Count int
}

// Counter counts keys and remembers the order they were first seen, so
// summaries of identical input render identically.
type Counter struct {
	keys   []string
	counts map[string]int
}

// Add increments key.
func (c *Counter) Add(key string) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

// Len returns the number of distinct keys.
func (c *Counter) Len() int { return len(c.keys) }

// Count returns the count for key.
func (c *Counter) Count(key string) int { return c.counts[key] }

// Entries returns keys in first-seen order.
func (c *Counter) Entries() []Entry {
	out := make([]Entry, len(c.keys))
	for i, k := range c.keys {
		out[i] = Entry{Key: k, Count: c.counts[k]}
	}
	return out
}

// Summary aggregates effective formats across cells.
type Summary struct {
	TotalCells     int
	FormattedCells int
	Backgrounds    Counter
	TextColors     Counter
	Fonts          Counter
	NumberFormats  Counter
	Alignments     Counter
	BorderedCells  int
}

// AnalyzePatterns walks every cell of rows. Only categories allowed by f are
// counted; totals always cover every cell.
func AnalyzePatterns(rows []*sheets.RowData, f Filter) Summary {
	var s Summary
	for _, row := range rows {
		if row == nil {
			continue
		}
		for _, cell := range row.Values {
			s.TotalCells++
			if cell == nil || cell.EffectiveFormat == nil {
				continue
			}
			s.FormattedCells++
			s.add(cell.EffectiveFormat, f)
		}
	}
	return s
}

func (s *Summary) add(ef *sheets.CellFormat, f Filter) {
	if f.Has(Background) {
		if bg := color.DisplaySheets(ef.BackgroundColor, ef.BackgroundColorStyle); bg != "" {
			s.Backgrounds.Add(bg)
		}
	}
	if f.Has(TextFormat) && ef.TextFormat != nil {
		if fg := color.DisplaySheets(ef.TextFormat.ForegroundColor, ef.TextFormat.ForegroundColorStyle); fg != "" {
			s.TextColors.Add(fg)
		}
		if ef.TextFormat.FontFamily != "" {
			s.Fonts.Add(ef.TextFormat.FontFamily)
		}
	}
	if f.Has(NumberFormat) && ef.NumberFormat != nil {
		typ := ef.NumberFormat.Type
		if typ == "" {
			typ = "UNKNOWN"
		}
		s.NumberFormats.Add(typ)
	}
	if f.Has(Alignment) && ef.HorizontalAlignment != "" {
		s.Alignments.Add(ef.HorizontalAlignment)
	}
	if f.Has(Borders) && ef.Borders != nil {
		b := ef.Borders
		if hasBorder(b.Top) || hasBorder(b.Bottom) || hasBorder(b.Left) || hasBorder(b.Right) {
			s.BorderedCells++
		}
	}
}

// FormattedPercent returns the share of formatted cells, rounded down.
func (s Summary) FormattedPercent() int {
	return s.FormattedCells * 100 / max(s.TotalCells, 1)
}

// String renders the summary as an indented text block.
func (s Summary) String() string {
	var b strings.Builder
	b.WriteString("Formatting Analysis:\n")
	fmt.Fprintf(&b, "  Total Cells: %d\n", s.TotalCells)
	fmt.Fprintf(&b, "  Formatted Cells: %d (%d%%)\n", s.FormattedCells, s.FormattedPercent())

	writeTop := func(title string, c Counter) {
		if c.Len() == 0 {
			return
		}
		fmt.Fprintf(&b, "\n  %s: %d unique\n", title, c.Len())
		for i, e := range c.Entries() {
			if i == topColors {
				break
			}
			fmt.Fprintf(&b, "    - %s: %d cells\n", e.Key, e.Count)
		}
	}
	writeAll := func(title string, c Counter) {
		if c.Len() == 0 {
			return
		}
		fmt.Fprintf(&b, "\n  %s:\n", title)
		for _, e := range c.Entries() {
			fmt.Fprintf(&b, "    - %s: %d cells\n", e.Key, e.Count)
		}
	}
	writeTop("Background Colors", s.Backgrounds)
	writeTop("Text Colors", s.TextColors)
	writeAll("Fonts Used", s.Fonts)
	writeAll("Number Formats", s.NumberFormats)
	writeAll("Alignments", s.Alignments)
	if s.BorderedCells > 0 {
		fmt.Fprintf(&b, "\n  Cells with Borders: %d\n", s.BorderedCells)
	}
	return strings.TrimRight(b.String(), "\n")
}
