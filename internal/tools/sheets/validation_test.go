package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
)

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"valueInputOption":      "value_input_option",
		"backgroundColor":       "background_color",
		"ruleType":              "rule_type",
		"headerBackgroundColor": "header_background_color",
		"range":                 "range",
	}
	for in, want := range tests {
		assert.Equal(t, want, snakeCase(in), in)
	}
}

func TestCheckWriteOptions(t *testing.T) {
	opts, err := checkWriteOptions("", "")
	require.NoError(t, err)
	assert.Equal(t, writeOptions{ValueInputOption: "USER_ENTERED", InsertDataOption: "INSERT_ROWS"}, opts)

	opts, err = checkWriteOptions(" raw ", "overwrite")
	require.NoError(t, err)
	assert.Equal(t, writeOptions{ValueInputOption: "RAW", InsertDataOption: "OVERWRITE"}, opts)
}

func TestCheckWriteOptions_Invalid(t *testing.T) {
	_, err := checkWriteOptions("FORMULA", "APPEND")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.Contains(t, err.Error(),
		"insert_data_option must be one of INSERT_ROWS, OVERWRITE; value_input_option must be one of RAW, USER_ENTERED")
}

func TestIssuesError_NoIssues(t *testing.T) {
	assert.NoError(t, issuesError(nil))
}
