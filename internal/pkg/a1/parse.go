package a1

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CellRef is one corner of a range: column letters plus a 1-based row.
type CellRef struct {
	Column string
	Row    int
}

// ColumnIndex returns the zero-based column index. The letters were validated
// by the parser, so the error path is unreachable for parsed refs.
func (c CellRef) ColumnIndex() int {
	i, _ := LetterToIndex(c.Column)
	return i
}

func (c CellRef) String() string {
	return c.Column + strconv.Itoa(c.Row)
}

// CellRange is a parsed range. End is nil for a single cell. Bounds are kept
// in the order the caller wrote them.
type CellRange struct {
	SheetName string
	Start     CellRef
	End       *CellRef
}

func (r CellRange) String() string {
	if r.End == nil {
		return r.Start.String()
	}
	return r.Start.String() + ":" + r.End.String()
}

// Bounds returns the last corner of the range; the start for a single cell.
func (r CellRange) Bounds() CellRef {
	if r.End == nil {
		return r.Start
	}
	return *r.End
}

var cellRangeRE = regexp.MustCompile(`^([A-Z]+)([1-9][0-9]*)(?::([A-Z]+)([1-9][0-9]*))?$`)

// SplitSheetAndRange splits "Sheet1!A1:B2" into its sheet and cell parts.
// A quoted sheet name ('My Sheet'!A1, with '' escaping a quote) is unquoted.
// Without a "!" the sheet name is empty and the caller picks the default.
func SplitSheetAndRange(ref string) (sheetName, cellRange string) {
	if strings.HasPrefix(ref, "'") {
		for i := 1; i < len(ref); i++ {
			if ref[i] != '\'' {
				continue
			}
			if i+1 < len(ref) && ref[i+1] == '\'' {
				i++
				continue
			}
			if i+1 < len(ref) && ref[i+1] == '!' {
				return strings.ReplaceAll(ref[1:i], "''", "'"), ref[i+2:]
			}
			break
		}
	}
	sheet, cells, ok := strings.Cut(ref, "!")
	if !ok {
		return "", ref
	}
	return sheet, cells
}

// ParseCellRange parses "A1" or "A1:C3". The boolean is false when the text
// does not follow that grammar; callers decide whether that is fatal.
func ParseCellRange(cellRange string) (CellRange, bool) {
	m := cellRangeRE.FindStringSubmatch(strings.TrimSpace(cellRange))
	if m == nil {
		return CellRange{}, false
	}
	start, ok := newCellRef(m[1], m[2])
	if !ok {
		return CellRange{}, false
	}
	r := CellRange{Start: start}
	if m[3] != "" {
		end, ok := newCellRef(m[3], m[4])
		if !ok {
			return CellRange{}, false
		}
		r.End = &end
	}
	return r, true
}

// MaxRow is the largest row number accepted in a reference. A spreadsheet
// holds at most ten million cells, so no real sheet reaches it.
const MaxRow = 10_000_000

func newCellRef(letters, digits string) (CellRef, bool) {
	if len(letters) > maxColumnLetters || len(digits) > len(strconv.Itoa(MaxRow)) {
		return CellRef{}, false
	}
	row, err := strconv.Atoi(digits)
	if err != nil || row > MaxRow {
		return CellRef{}, false
	}
	return CellRef{Column: letters, Row: row}, true
}

// Parse splits and parses a full reference, failing with ErrInvalidReference
// when the cell part is not a cell or cell range.
func Parse(ref string) (CellRange, error) {
	sheet, cells := SplitSheetAndRange(ref)
	r, ok := ParseCellRange(cells)
	if !ok {
		return CellRange{}, fmt.Errorf("%w: %q is not a cell or cell range like A1 or A1:D10", ErrInvalidReference, ref)
	}
	r.SheetName = sheet
	return r, nil
}

// RangeInfo describes the extent of a reference for advisory checks.
type RangeInfo struct {
	SheetName string
	Rows      int
	Columns   int
	HasBounds bool
}

// AnalyzeRange reports the row and column counts of a two-corner range.
// A single cell parses with HasBounds false. The boolean is false when the
// reference cannot be parsed at all (whole columns, named ranges, typos).
func AnalyzeRange(ref string) (RangeInfo, bool) {
	sheet, cells := SplitSheetAndRange(ref)
	r, ok := ParseCellRange(cells)
	if !ok {
		return RangeInfo{}, false
	}
	info := RangeInfo{SheetName: sheet}
	if r.End == nil {
		return info, true
	}
	g := r.Grid(0)
	info.HasBounds = true
	info.Rows = int(g.Rows())
	info.Columns = int(g.Columns())
	return info, true
}
