// Package a1 converts between A1-notation spreadsheet references and the
// zero-based, half-open grid coordinates used by the Sheets API.
package a1

import (
	"fmt"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
)

// ErrInvalidReference is returned for column letters or cell ranges that do
// not follow A1 syntax. It wraps apperr.ErrInvalidInput.
var ErrInvalidReference = fmt.Errorf("%w: invalid A1 reference", apperr.ErrInvalidInput)

// maxColumnLetters bounds column sequences so index arithmetic cannot overflow.
// The Sheets API tops out at 18278 columns (ZZZ), well inside this.
const maxColumnLetters = 7

// LetterToIndex converts a column letter sequence ("A", "Z", "AA") to its
// zero-based index. Letters are a bijective base-26 numeral, A=1 .. Z=26.
func LetterToIndex(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("%w: empty column", ErrInvalidReference)
	}
	if len(letters) > maxColumnLetters {
		return 0, fmt.Errorf("%w: column %q is too long", ErrInvalidReference, letters)
	}
	n := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("%w: column %q must contain only letters A-Z", ErrInvalidReference, letters)
		}
		n = n*26 + int(c-'A') + 1
	}
	return n - 1, nil
}

// IndexToLetter converts a zero-based column index back to letters.
// Negative indexes have no column and yield "".
func IndexToLetter(index int) string {
	if index < 0 {
		return ""
	}
	var buf []byte
	for n := index + 1; n > 0; n /= 26 {
		n--
		buf = append(buf, byte('A'+n%26))
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// CellName renders zero-based column and row indexes as "B3".
func CellName(column, row int) string {
	return fmt.Sprintf("%s%d", IndexToLetter(column), row+1)
}
