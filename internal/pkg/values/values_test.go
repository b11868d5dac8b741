package values

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Matrix
	}{
		{"scalar string", "x", Matrix{{"x"}}},
		{"scalar number", 42.5, Matrix{{42.5}}},
		{"scalar bool", false, Matrix{{false}}},
		{"flat list", []any{"a", "b"}, Matrix{{"a", "b"}}},
		{"typed flat list", []string{"a", "b"}, Matrix{{"a", "b"}}},
		{"2D", []any{[]any{"a", "b"}, []any{"c", "d"}}, Matrix{{"a", "b"}, {"c", "d"}}},
		{"ragged rows are fine", []any{[]any{"a"}, []any{"b", "c"}}, Matrix{{"a"}, {"b", "c"}}},
		{"empty inner row", []any{[]any{}, []any{"x"}}, Matrix{{}, {"x"}}},
		{"nil cell", []any{"a", nil}, Matrix{{"a", nil}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Empty(t *testing.T) {
	for _, in := range []any{nil, []any{}, []string{}} {
		_, err := Normalize(in)
		assert.ErrorIs(t, err, ErrEmptyValue)
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	}
}

func TestNormalize_Ragged(t *testing.T) {
	_, err := Normalize([]any{[]any{"a"}, "b"})
	require.Error(t, err)
	var ragged *RaggedInputError
	require.True(t, errors.As(err, &ragged))
	assert.Equal(t, 1, ragged.Row)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.Contains(t, err.Error(), "row 1")
}

func TestNormalize_Invalid(t *testing.T) {
	tests := map[string]any{
		"map":          map[string]any{"a": 1},
		"3D":           []any{[]any{[]any{"deep"}}},
		"list in flat": []any{"a", []any{"b"}},
		"struct":       struct{ A int }{1},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Normalize(in)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}
}

func TestDimensions(t *testing.T) {
	rows, cols := Dimensions(Matrix{{"a"}, {"b", "c", "d"}, {}})
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
}

func TestParseBool(t *testing.T) {
	for _, in := range []any{true, 1, int64(1), 1.0, "true", "1", "yes", "on", "TRUE", " Yes "} {
		got, err := ParseBool(in)
		require.NoError(t, err, "%v", in)
		require.NotNil(t, got, "%v", in)
		assert.True(t, *got, "%v", in)
	}
	for _, in := range []any{false, 0, int64(0), 0.0, "false", "0", "no", "off", "Off"} {
		got, err := ParseBool(in)
		require.NoError(t, err, "%v", in)
		require.NotNil(t, got, "%v", in)
		assert.False(t, *got, "%v", in)
	}
	for _, in := range []any{nil, ""} {
		got, err := ParseBool(in)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
	for _, in := range []any{"maybe", 2, 0.5, []any{true}} {
		_, err := ParseBool(in)
		assert.ErrorIs(t, err, apperr.ErrInvalidInput, "%v", in)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "", String(nil))
	assert.Equal(t, "3", String(3.0))
	assert.Equal(t, "3.25", String(3.25))
	assert.Equal(t, "true", String(true))
	assert.Equal(t, "abc", String("abc"))
	assert.Equal(t, "7", String(7))
}
