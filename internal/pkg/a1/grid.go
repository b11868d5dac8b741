package a1

import (
	"fmt"
	"regexp"
	"strings"
)

// GridRange is a half-open rectangle on one sheet. A zero end index means the
// side is unbounded, matching how the Sheets API omits those fields.
type GridRange struct {
	SheetID          int64
	StartRowIndex    int64
	EndRowIndex      int64
	StartColumnIndex int64
	EndColumnIndex   int64
}

// Rows returns the number of rows covered, or 0 when unbounded.
func (g GridRange) Rows() int64 {
	if g.EndRowIndex == 0 {
		return 0
	}
	return g.EndRowIndex - g.StartRowIndex
}

// Columns returns the number of columns covered, or 0 when unbounded.
func (g GridRange) Columns() int64 {
	if g.EndColumnIndex == 0 {
		return 0
	}
	return g.EndColumnIndex - g.StartColumnIndex
}

// Overlaps reports whether g and o share at least one cell. Both must be on
// the same sheet.
func (g GridRange) Overlaps(o GridRange) bool {
	if g.SheetID != o.SheetID {
		return false
	}
	return spans(g.StartRowIndex, g.EndRowIndex, o.StartRowIndex, o.EndRowIndex) &&
		spans(g.StartColumnIndex, g.EndColumnIndex, o.StartColumnIndex, o.EndColumnIndex)
}

// spans reports whether two half-open intervals intersect; an end of 0 is
// unbounded.
func spans(aStart, aEnd, bStart, bEnd int64) bool {
	if aEnd != 0 && bStart >= aEnd {
		return false
	}
	if bEnd != 0 && aStart >= bEnd {
		return false
	}
	return true
}

// ToGridRange converts a cell range ("A1" or "A1:C3", no sheet prefix) to a
// grid rectangle on the given sheet.
func ToGridRange(cellRange string, sheetID int64) (GridRange, error) {
	r, ok := ParseCellRange(cellRange)
	if !ok {
		return GridRange{}, fmt.Errorf("%w: %q is not a cell or cell range like A1 or A1:D10", ErrInvalidReference, cellRange)
	}
	return r.Grid(sheetID), nil
}

// Grid converts the parsed range to grid coordinates. Inverted corners
// ("C3:A1") are swapped so the rectangle is always well formed.
func (r CellRange) Grid(sheetID int64) GridRange {
	end := r.Bounds()
	startRow, endRow := r.Start.Row-1, end.Row-1
	startCol, endCol := r.Start.ColumnIndex(), end.ColumnIndex()
	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}
	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}
	return GridRange{
		SheetID:          sheetID,
		StartRowIndex:    int64(startRow),
		EndRowIndex:      int64(endRow + 1),
		StartColumnIndex: int64(startCol),
		EndColumnIndex:   int64(endCol + 1),
	}
}

// FromGridRange renders a grid rectangle as "Sheet!A1:D10". Unbounded sides
// render as whole columns ("A:C") or whole rows ("2:5"), anchored at the start
// cell when it is not on the first row or column ("B5:C", "C2:10"). A fully
// unbounded range is just the sheet name; its start offsets are not shown.
func FromGridRange(g GridRange, sheetName string) string {
	cells := gridCells(g)
	quoted := QuoteSheetName(sheetName)
	switch {
	case quoted == "":
		return cells
	case cells == "":
		return quoted
	default:
		return quoted + "!" + cells
	}
}

func gridCells(g GridRange) string {
	rowsBounded := g.EndRowIndex > 0
	colsBounded := g.EndColumnIndex > 0
	start := CellName(int(g.StartColumnIndex), int(g.StartRowIndex))
	switch {
	case rowsBounded && colsBounded:
		return start + ":" + CellName(int(g.EndColumnIndex-1), int(g.EndRowIndex-1))
	case colsBounded && g.StartRowIndex > 0:
		return start + ":" + IndexToLetter(int(g.EndColumnIndex-1))
	case colsBounded:
		return IndexToLetter(int(g.StartColumnIndex)) + ":" + IndexToLetter(int(g.EndColumnIndex-1))
	case rowsBounded && g.StartColumnIndex > 0:
		return fmt.Sprintf("%s:%d", start, g.EndRowIndex)
	case rowsBounded:
		return fmt.Sprintf("%d:%d", g.StartRowIndex+1, g.EndRowIndex)
	default:
		return ""
	}
}

// QuoteSheetName returns the sheet name as it must appear before "!".
// Names made only of letters, digits and underscores are left bare unless
// they could be read as a reference themselves ("Q1", "R1C1", "2024").
func QuoteSheetName(name string) string {
	if name == "" {
		return ""
	}
	bare := !looksLikeReference(name)
	for _, c := range name {
		if !(c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			bare = false
			break
		}
	}
	if bare {
		return name
	}
	return quote(name)
}

// SheetRange returns a reference to a whole sheet. The name is always quoted:
// alone, an unquoted "Q1" addresses a cell on the first sheet.
func SheetRange(name string) string {
	return quote(name)
}

func quote(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// cellLikeRE matches names the API would read as a cell (up to column ZZZ),
// an R1C1 reference or a row number.
var cellLikeRE = regexp.MustCompile(`^(?i:[A-Z]{1,3}[0-9]+|R[0-9]*C[0-9]*|[0-9]+)$`)

func looksLikeReference(name string) bool {
	return cellLikeRE.MatchString(name)
}
