package sheets

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/validate"
)

const (
	defaultListResults = 25
	defaultReadRange   = "A1:Z1000"
	maxDisplayRows     = 50
	spreadsheetMIME    = "application/vnd.google-apps.spreadsheet"
)

// --- list_spreadsheets ---

type ListSpreadsheetsInput struct {
	UserEmail  string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	MaxResults int    `json:"max_results,omitempty" jsonschema_description:"Maximum number of spreadsheets to return (default 25, max 1000)"`
	Query      string `json:"query,omitempty" jsonschema_description:"Only list spreadsheets whose name contains this text"`
}

func createListSpreadsheetsHandler(d *deps) mcp.ToolHandlerFor[ListSpreadsheetsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListSpreadsheetsInput) (*mcp.CallToolResult, any, error) {
		if err := validate.Email(input.UserEmail); err != nil {
			return fail(err)
		}
		if err := issuesError(listSpreadsheetsSchema.Validate(&input)); err != nil {
			return fail(err)
		}
		if input.MaxResults == 0 {
			input.MaxResults = defaultListResults
		}
		d.logger.InfoContext(ctx, "list_spreadsheets", "user", input.UserEmail, "maxResults", input.MaxResults)

		drv, err := d.provider.Drive(ctx, input.UserEmail)
		if err != nil {
			return fail(err)
		}

		q := "mimeType='" + spreadsheetMIME + "' and trashed=false"
		if name := strings.TrimSpace(input.Query); name != "" {
			q += " and name contains '" + validate.QueryLiteral(name) + "'"
		}

		result, err := drv.Files.List().
			Q(q).
			PageSize(int64(input.MaxResults)).
			Fields("files(id,name,modifiedTime,webViewLink)").
			OrderBy("modifiedTime desc").
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		rb := response.New()
		if len(result.Files) == 0 {
			rb.Line("No spreadsheets found for %s.", input.UserEmail)
			return rb.TextResult(), nil, nil
		}

		rb.Header("Spreadsheets")
		rb.KeyValue("Count", len(result.Files))
		rb.Blank()
		for _, f := range result.Files {
			rb.Item("%q (ID: %s)", f.Name, f.Id)
			rb.Line("    Modified: %s | Link: %s", orDefault(f.ModifiedTime, "Unknown"), orDefault(f.WebViewLink, "No link"))
		}

		d.logger.InfoContext(ctx, "listed spreadsheets", "user", input.UserEmail, "count", len(result.Files))
		return rb.TextResult(), nil, nil
	}
}

// --- get_spreadsheet_info ---

type GetSpreadsheetInfoInput struct {
	UserEmail     string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
}

func createGetSpreadsheetInfoHandler(d *deps) mcp.ToolHandlerFor[GetSpreadsheetInfoInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetSpreadsheetInfoInput) (*mcp.CallToolResult, any, error) {
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		d.logger.InfoContext(ctx, "get_spreadsheet_info", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID)

		ss, err := srv.Spreadsheets.Get(input.SpreadsheetID).
			Fields(googleapi.Field("spreadsheetId,spreadsheetUrl,properties(title,locale,timeZone),sheets.properties")).
			Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		rb := response.New()
		rb.Header("Spreadsheet Info")
		writeSpreadsheetProperties(rb, ss)
		rb.Blank()
		rb.Section("Sheets (%d)", len(ss.Sheets))
		if len(ss.Sheets) == 0 {
			rb.Line("  No sheets found")
		}
		for _, s := range ss.Sheets {
			p := s.Properties
			if p == nil {
				continue
			}
			var rows, cols int64
			if p.GridProperties != nil {
				rows, cols = p.GridProperties.RowCount, p.GridProperties.ColumnCount
			}
			rb.Item("%q (ID: %d) | Size: %dx%d", p.Title, p.SheetId, rows, cols)
		}

		return rb.TextResult(), nil, nil
	}
}

func writeSpreadsheetProperties(rb *response.Builder, ss *sheets.Spreadsheet) {
	if ss.Properties != nil {
		rb.KeyValue("Title", ss.Properties.Title)
	}
	rb.KeyValue("ID", ss.SpreadsheetId)
	rb.KeyValueIf("URL", ss.SpreadsheetUrl)
	if ss.Properties != nil {
		rb.KeyValueIf("Locale", ss.Properties.Locale)
		rb.KeyValueIf("Time Zone", ss.Properties.TimeZone)
	}
}

// --- read_sheet_values ---

type ReadSheetValuesInput struct {
	UserEmail     string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	RangeName     string `json:"range_name,omitempty" jsonschema_description:"Range to read (e.g. Sheet1!A1:D10). Default: A1:Z1000 of the first sheet"`
}

func createReadSheetValuesHandler(d *deps) mcp.ToolHandlerFor[ReadSheetValuesInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ReadSheetValuesInput) (*mcp.CallToolResult, any, error) {
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		rangeName := orDefault(strings.TrimSpace(input.RangeName), defaultReadRange)
		d.logger.InfoContext(ctx, "read_sheet_values", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "range", rangeName)

		result, err := srv.Spreadsheets.Values.Get(input.SpreadsheetID, rangeName).Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		rb := response.New()
		if len(result.Values) == 0 {
			rb.Line("No data found in range '%s'.", rangeName)
			return rb.TextResult(), nil, nil
		}

		rb.Header("Sheet Values")
		rb.KeyValue("Spreadsheet", input.SpreadsheetID)
		rb.KeyValue("Range", orDefault(result.Range, rangeName))
		rb.KeyValue("Rows", len(result.Values))
		rb.Blank()

		width := len(result.Values[0])
		for i, row := range result.Values {
			if i == maxDisplayRows {
				break
			}
			rb.Line("Row %2d: %s", i+1, strings.Join(padRow(row, width), " | "))
		}
		rb.More(maxDisplayRows, len(result.Values), "rows")

		d.logger.InfoContext(ctx, "read values", "range", result.Range, "rows", len(result.Values))
		return rb.TextResult(), nil, nil
	}
}

// --- modify_sheet_values ---

type ModifySheetValuesInput struct {
	UserEmail        string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID    string `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	RangeName        string `json:"range_name" jsonschema:"required" jsonschema_description:"Range to modify (e.g. Sheet1!A1:D10)"`
	Values           any    `json:"values,omitempty" jsonschema_description:"Values to write: a single value, a list (one row) or a list of rows. Required unless clear_values is true."`
	ValueInputOption string `json:"value_input_option,omitempty" jsonschema_description:"How to interpret input: RAW or USER_ENTERED (default USER_ENTERED)"`
	ClearValues      bool   `json:"clear_values,omitempty" jsonschema_description:"If true clears the range instead of writing values"`
}

func createModifySheetValuesHandler(d *deps) mcp.ToolHandlerFor[ModifySheetValuesInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ModifySheetValuesInput) (*mcp.CallToolResult, any, error) {
		rangeName, err := requireRange(input.RangeName)
		if err != nil {
			return fail(err)
		}
		if !input.ClearValues && input.Values == nil {
			return fail(apperr.Invalid("either values must be provided or clear_values must be true"))
		}
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}

		if input.ClearValues {
			d.logger.InfoContext(ctx, "modify_sheet_values", "operation", "clear", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "range", rangeName)
			result, err := srv.Spreadsheets.Values.Clear(input.SpreadsheetID, rangeName, &sheets.ClearValuesRequest{}).
				Context(ctx).Do()
			if err != nil {
				return fail(err)
			}

			rb := response.New()
			rb.Header("Values Cleared")
			rb.KeyValue("Spreadsheet", input.SpreadsheetID)
			rb.KeyValue("Range", orDefault(result.ClearedRange, rangeName))
			return rb.TextResult(), nil, nil
		}

		d.logger.InfoContext(ctx, "modify_sheet_values", "operation", "write", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "range", rangeName)
		result, err := d.updateValues(ctx, srv, input.SpreadsheetID, rangeName, input.Values, input.ValueInputOption)
		if err != nil {
			return fail(err)
		}
		return updateResult(input.SpreadsheetID, rangeName, result).TextResult(), nil, nil
	}
}

// --- create_spreadsheet ---

type CreateSpreadsheetInput struct {
	UserEmail  string   `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	Title      string   `json:"title" jsonschema:"required" jsonschema_description:"Title for the new spreadsheet"`
	SheetNames []string `json:"sheet_names,omitempty" jsonschema_description:"Sheet tab names to create (default: one sheet with the default name)"`
}

func createCreateSpreadsheetHandler(d *deps) mcp.ToolHandlerFor[CreateSpreadsheetInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateSpreadsheetInput) (*mcp.CallToolResult, any, error) {
		if err := validate.Email(input.UserEmail); err != nil {
			return fail(err)
		}
		if strings.TrimSpace(input.Title) == "" {
			return fail(apperr.Invalid("title is required"))
		}
		for _, name := range input.SheetNames {
			if err := validate.SheetName(name); err != nil {
				return fail(err)
			}
		}
		d.logger.InfoContext(ctx, "create_spreadsheet", "user", input.UserEmail, "title", input.Title)

		srv, err := d.provider.Sheets(ctx, input.UserEmail)
		if err != nil {
			return fail(err)
		}

		spreadsheet := &sheets.Spreadsheet{
			Properties: &sheets.SpreadsheetProperties{Title: input.Title},
		}
		for _, name := range input.SheetNames {
			spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
				Properties: &sheets.SheetProperties{Title: name},
			})
		}

		created, err := srv.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		rb := response.New()
		rb.Header("Spreadsheet Created")
		writeSpreadsheetProperties(rb, created)
		if len(created.Sheets) > 0 {
			rb.Blank()
			rb.Section("Sheets")
			for _, s := range created.Sheets {
				if s.Properties != nil {
					rb.Item("%s (ID: %d)", s.Properties.Title, s.Properties.SheetId)
				}
			}
		}

		d.logger.InfoContext(ctx, "created spreadsheet", "user", input.UserEmail, "spreadsheet", created.SpreadsheetId)
		return rb.TextResult(), nil, nil
	}
}
