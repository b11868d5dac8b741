package sheets

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/validate"
)

// --- create_sheet ---

type CreateSheetInput struct {
	UserEmail     string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	SheetName     string `json:"sheet_name" jsonschema:"required" jsonschema_description:"Name of the new sheet tab"`
	Index         *int64 `json:"index,omitempty" jsonschema_description:"Zero-based tab position (default: after the last sheet)"`
}

func createCreateSheetHandler(d *deps) mcp.ToolHandlerFor[CreateSheetInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateSheetInput) (*mcp.CallToolResult, any, error) {
		name := strings.TrimSpace(input.SheetName)
		if err := validate.SheetName(name); err != nil {
			return fail(err)
		}
		if input.Index != nil && *input.Index < 0 {
			return fail(apperr.Invalid("index must not be negative"))
		}
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		d.logger.InfoContext(ctx, "create_sheet", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "sheet", name)

		props := &sheets.SheetProperties{Title: name}
		if input.Index != nil {
			props.Index = *input.Index
			props.ForceSendFields = []string{"Index"}
		}
		result, err := srv.Spreadsheets.BatchUpdate(input.SpreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{AddSheet: &sheets.AddSheetRequest{Properties: props}}},
		}).Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		rb := response.New()
		rb.Header("Sheet Created")
		rb.KeyValue("Spreadsheet", input.SpreadsheetID)
		rb.KeyValue("Sheet", name)
		if len(result.Replies) > 0 && result.Replies[0].AddSheet != nil && result.Replies[0].AddSheet.Properties != nil {
			p := result.Replies[0].AddSheet.Properties
			rb.KeyValue("Sheet ID", p.SheetId)
			rb.KeyValue("Index", p.Index)
			d.logger.InfoContext(ctx, "created sheet", "sheet", p.Title, "sheetId", p.SheetId)
		}
		return rb.TextResult(), nil, nil
	}
}

// --- format_cells ---

type FormatCellsInput struct {
	UserEmail           string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID       string `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	Range               string `json:"range" jsonschema:"required" jsonschema_description:"A1 range to format (e.g. Sheet1!A1:D1)"`
	BackgroundColor     string `json:"background_color,omitempty" jsonschema_description:"Background color as hex (#RRGGBB)"`
	FontColor           string `json:"font_color,omitempty" jsonschema_description:"Text color as hex (#RRGGBB)"`
	FontSize            *int   `json:"font_size,omitempty" jsonschema_description:"Font size in points"`
	FontFamily          string `json:"font_family,omitempty" jsonschema_description:"Font family (e.g. Arial)"`
	Bold                any    `json:"bold,omitempty" jsonschema_description:"Bold text (true/false, \"yes\"/\"no\", 1/0)"`
	Italic              any    `json:"italic,omitempty" jsonschema_description:"Italic text"`
	Underline           any    `json:"underline,omitempty" jsonschema_description:"Underlined text"`
	Strikethrough       any    `json:"strikethrough,omitempty" jsonschema_description:"Strikethrough text"`
	HorizontalAlignment string `json:"horizontal_alignment,omitempty" jsonschema_description:"LEFT, CENTER or RIGHT"`
	VerticalAlignment   string `json:"vertical_alignment,omitempty" jsonschema_description:"TOP, MIDDLE or BOTTOM"`
	TextWrap            string `json:"text_wrap,omitempty" jsonschema_description:"OVERFLOW_CELL, WRAP or CLIP"`
	NumberFormat        string `json:"number_format,omitempty" jsonschema_description:"TEXT, NUMBER, PERCENT, CURRENCY, DATE, TIME, DATE_TIME or SCIENTIFIC"`
	NumberFormatPattern string `json:"number_format_pattern,omitempty" jsonschema_description:"Number format pattern (e.g. #,##0.00)"`
	BorderStyle         string `json:"border_style,omitempty" jsonschema_description:"DOTTED, DASHED, SOLID, SOLID_MEDIUM, SOLID_THICK or DOUBLE"`
	BorderColor         string `json:"border_color,omitempty" jsonschema_description:"Border color as hex (#RRGGBB)"`
}

func (in FormatCellsInput) options() formatOptions {
	numberFormat := upper(in.NumberFormat)
	if numberFormat == "DATETIME" {
		numberFormat = "DATE_TIME"
	}
	return formatOptions{
		BackgroundColor:     strings.TrimSpace(in.BackgroundColor),
		FontColor:           strings.TrimSpace(in.FontColor),
		FontSize:            in.FontSize,
		FontFamily:          strings.TrimSpace(in.FontFamily),
		Bold:                in.Bold,
		Italic:              in.Italic,
		Underline:           in.Underline,
		Strikethrough:       in.Strikethrough,
		HorizontalAlignment: upper(in.HorizontalAlignment),
		VerticalAlignment:   upper(in.VerticalAlignment),
		TextWrap:            upper(in.TextWrap),
		NumberFormat:        numberFormat,
		NumberFormatPattern: in.NumberFormatPattern,
		BorderStyle:         upper(in.BorderStyle),
		BorderColor:         strings.TrimSpace(in.BorderColor),
	}
}

// checkFormat validates options and builds the format with its field mask.
func checkFormat(o formatOptions) (*sheets.CellFormat, string, error) {
	if err := issuesError(formatOptionsSchema.Validate(&o)); err != nil {
		return nil, "", err
	}
	return buildCellFormat(o)
}

func createFormatCellsHandler(d *deps) mcp.ToolHandlerFor[FormatCellsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FormatCellsInput) (*mcp.CallToolResult, any, error) {
		rangeName, err := requireRange(input.Range)
		if err != nil {
			return fail(err)
		}
		cf, mask, err := checkFormat(input.options())
		if err != nil {
			return fail(err)
		}
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		d.logger.InfoContext(ctx, "format_cells", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "range", rangeName)

		t, err := resolveTarget(ctx, srv, input.SpreadsheetID, rangeName)
		if err != nil {
			return fail(err)
		}
		_, err = srv.Spreadsheets.BatchUpdate(input.SpreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{RepeatCell: &sheets.RepeatCellRequest{
				Range:  toAPIGrid(t.Grid),
				Cell:   &sheets.CellData{UserEnteredFormat: cf},
				Fields: mask,
			}}},
		}).Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		rb := response.New()
		rb.Header("Cells Formatted")
		rb.KeyValue("Spreadsheet", input.SpreadsheetID)
		rb.KeyValue("Range", t.A1())
		rb.KeyValue("Applied", strings.ReplaceAll(mask, "userEnteredFormat.", ""))

		d.logger.InfoContext(ctx, "formatted cells", "range", t.A1(), "fields", mask)
		return rb.TextResult(), nil, nil
	}
}
