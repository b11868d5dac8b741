package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/middleware"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/a1"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/validate"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/values"
)

// open validates the arguments every spreadsheet tool shares and returns the
// user's Sheets client.
func (d *deps) open(ctx context.Context, userEmail, spreadsheetID string) (*sheets.Service, error) {
	if err := validate.Email(userEmail); err != nil {
		return nil, err
	}
	if err := validate.SpreadsheetID(spreadsheetID); err != nil {
		return nil, err
	}
	return d.provider.Sheets(ctx, userEmail)
}

func fail(err error) (*mcp.CallToolResult, any, error) {
	return nil, nil, middleware.HandleGoogleAPIError(err)
}

func requireRange(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", apperr.Invalid("range is required, e.g. Sheet1!A1:D10")
	}
	return ref, nil
}

// normalizeValues shapes input for a write to ref and logs, without failing,
// when the matrix does not fit the range's declared size.
func (d *deps) normalizeValues(ctx context.Context, ref string, input any) (values.Matrix, error) {
	m, err := values.Normalize(input)
	if err != nil {
		return nil, fmt.Errorf("invalid values for range %s: %w", ref, err)
	}

	info, ok := a1.AnalyzeRange(ref)
	switch {
	case !ok:
		d.logger.DebugContext(ctx, "range bounds unknown, skipping dimension check", "range", ref)
	case info.HasBounds:
		rows, cols := values.Dimensions(m)
		if rows != info.Rows || cols != info.Columns {
			d.logger.WarnContext(ctx, "value dimensions do not match range",
				"range", ref,
				"rangeRows", info.Rows,
				"rangeColumns", info.Columns,
				"valueRows", rows,
				"valueColumns", cols,
			)
		}
	}
	return m, nil
}

// padRow renders a row as cells, padded with empty cells to width.
func padRow(row []any, width int) []string {
	cells := make([]string, max(len(row), width))
	for i, v := range row {
		cells[i] = values.String(v)
	}
	return cells
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
