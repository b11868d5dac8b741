// Package values canonicalizes the loosely typed inputs agents send to the
// value-writing tools.
package values

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
)

// ErrEmptyValue is returned when there is nothing to write.
var ErrEmptyValue = fmt.Errorf("%w: values must not be empty", apperr.ErrInvalidInput)

// RaggedInputError reports a 2D input whose Row-th element is not a row.
type RaggedInputError struct {
	Row int
}

func (e *RaggedInputError) Error() string {
	return fmt.Sprintf("values: row %d is not a list; a 2D input must contain only lists", e.Row)
}

// Unwrap lets errors.Is match apperr.ErrInvalidInput.
func (e *RaggedInputError) Unwrap() error { return apperr.ErrInvalidInput }

// Matrix is rows of cells, the payload shape of the values endpoints.
// Rows may differ in length.
type Matrix = [][]any

// Normalize promotes a scalar to one cell and a flat list to one row.
// A list whose first element is a list must be a list of lists.
func Normalize(input any) (Matrix, error) {
	if input == nil {
		return nil, ErrEmptyValue
	}
	rv := reflect.ValueOf(input)
	switch rv.Kind() {
	case reflect.Map, reflect.Struct, reflect.Pointer, reflect.Func, reflect.Chan:
		return nil, apperr.Invalid("values must be a scalar, a list, or a list of lists, got %T", input)
	case reflect.Slice, reflect.Array:
	default:
		return Matrix{{input}}, nil
	}
	if rv.Len() == 0 {
		return nil, ErrEmptyValue
	}

	if _, ok := asList(rv.Index(0)); !ok {
		row, err := toRow(rv, -1)
		if err != nil {
			return nil, err
		}
		return Matrix{row}, nil
	}

	out := make(Matrix, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		inner, ok := asList(rv.Index(i))
		if !ok {
			return nil, &RaggedInputError{Row: i}
		}
		row, err := toRow(inner, i)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// asList reports whether v (possibly boxed in an interface) is a slice or
// array, returning the unboxed value.
func asList(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	k := v.Kind()
	if k == reflect.Slice || k == reflect.Array {
		return v, true
	}
	return v, false
}

func toRow(v reflect.Value, rowIdx int) ([]any, error) {
	row := make([]any, v.Len())
	for j := range row {
		cell := v.Index(j)
		if _, ok := asList(cell); ok {
			return nil, apperr.Invalid("values: row %d column %d is a list; cells must be scalars", max(rowIdx, 0), j)
		}
		row[j] = cell.Interface()
	}
	return row, nil
}

// Dimensions returns the row count and the widest row length.
func Dimensions(m Matrix) (rows, cols int) {
	for _, r := range m {
		cols = max(cols, len(r))
	}
	return len(m), cols
}

// ParseBool accepts booleans written the ways agents tend to write them.
// A nil result means "leave unset" and is distinct from false.
func ParseBool(v any) (*bool, error) {
	t, f := true, false
	switch b := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return &b, nil
	case int:
		return intBool(int64(b), v)
	case int64:
		return intBool(b, v)
	case float64:
		if b == 1 {
			return &t, nil
		}
		if b == 0 {
			return &f, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "":
			return nil, nil
		case "true", "1", "yes", "on":
			return &t, nil
		case "false", "0", "no", "off":
			return &f, nil
		}
	}
	return nil, apperr.Invalid("cannot interpret %v as a boolean; use true/false, yes/no, on/off or 1/0", v)
}

func intBool(n int64, orig any) (*bool, error) {
	b := n != 0
	if n != 0 && n != 1 {
		return nil, apperr.Invalid("cannot interpret %v as a boolean; use true/false, yes/no, on/off or 1/0", orig)
	}
	return &b, nil
}

// String renders a cell value the way the Sheets UI would show it: integral
// floats without a trailing ".0", nil as empty.
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
