// Package sheets implements the Google Sheets MCP tools. Every tool turns its
// arguments into one or two Sheets API calls and answers with plain text.
package sheets

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/ptr"
)

// ServiceProvider hands out authorized API clients for a user.
// *services.Factory satisfies it.
type ServiceProvider interface {
	Sheets(ctx context.Context, userEmail string) (*sheets.Service, error)
	Drive(ctx context.Context, userEmail string) (*drive.Service, error)
}

// Filter decides whether a tool is registered. A nil Filter keeps every tool.
type Filter func(name string, annotations *mcp.ToolAnnotations) bool

// deps is what every handler closes over.
type deps struct {
	provider ServiceProvider
	logger   *slog.Logger
}

var serviceIcons = []mcp.Icon{{
	Source:   "https://www.gstatic.com/images/branding/product/1x/sheets_2020q4_48dp.png",
	MIMEType: "image/png",
	Sizes:    []string{"48x48"},
}}

func readOnly(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{Title: title, ReadOnlyHint: true, OpenWorldHint: ptr.Bool(true)}
}

func writes(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{Title: title, OpenWorldHint: ptr.Bool(true)}
}

func idempotent(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{Title: title, IdempotentHint: true, OpenWorldHint: ptr.Bool(true)}
}

func destructive(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{Title: title, DestructiveHint: ptr.Bool(true), OpenWorldHint: ptr.Bool(true)}
}

func addTool[In any](server *mcp.Server, include Filter, tool *mcp.Tool, handler mcp.ToolHandlerFor[In, any]) {
	if include != nil && !include(tool.Name, tool.Annotations) {
		return
	}
	tool.Icons = serviceIcons
	mcp.AddTool(server, tool, handler)
}

// Register adds the Sheets tools accepted by include to the server.
func Register(server *mcp.Server, provider ServiceProvider, logger *slog.Logger, include Filter) {
	if logger == nil {
		logger = slog.Default()
	}
	d := &deps{provider: provider, logger: logger}

	// --- Core tools ---

	addTool(server, include, &mcp.Tool{
		Name:        "list_spreadsheets",
		Description: "List Google Spreadsheets the user can access, most recently modified first.",
		Annotations: readOnly("List Spreadsheets"),
	}, createListSpreadsheetsHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "get_spreadsheet_info",
		Description: "Get a spreadsheet's title and its sheets with IDs and grid sizes.",
		Annotations: readOnly("Get Spreadsheet Info"),
	}, createGetSpreadsheetInfoHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "read_sheet_values",
		Description: "Read cell values from a range in A1 notation (e.g. Sheet1!A1:D10). Shows up to 50 rows.",
		Annotations: readOnly("Read Sheet Values"),
	}, createReadSheetValuesHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "modify_sheet_values",
		Description: "Write values to a range, or clear it with clear_values. Values may be a single value, one row, or a 2D array.",
		Annotations: idempotent("Modify Sheet Values"),
	}, createModifySheetValuesHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "create_spreadsheet",
		Description: "Create a new Google Spreadsheet with optional sheet tab names.",
		Annotations: writes("Create Spreadsheet"),
	}, createCreateSpreadsheetHandler(d))

	// --- Extended tools ---

	addTool(server, include, &mcp.Tool{
		Name:        "update_sheet_values",
		Description: "Update values in a range. Values may be a single value, one row, or a 2D array.",
		Annotations: idempotent("Update Sheet Values"),
	}, createUpdateSheetValuesHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "batch_update_values",
		Description: "Update several ranges in one call. Each update has a range and values in any accepted shape.",
		Annotations: idempotent("Batch Update Values"),
	}, createBatchUpdateValuesHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "append_sheet_values",
		Description: "Append rows after the existing data of a table range (e.g. Sheet1!A:D).",
		Annotations: writes("Append Sheet Values"),
	}, createAppendSheetValuesHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "create_sheet",
		Description: "Add a new sheet tab to an existing spreadsheet.",
		Annotations: writes("Create Sheet Tab"),
	}, createCreateSheetHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "format_cells",
		Description: "Format a range: colors, font, bold/italic/underline/strikethrough, alignment, wrapping, number format and borders. Only the options given are changed.",
		Annotations: idempotent("Format Cells"),
	}, createFormatCellsHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "add_conditional_format_rule",
		Description: "Add a conditional formatting rule (custom formula, number, text, date or color gradient) to one or more ranges.",
		Annotations: writes("Add Conditional Format Rule"),
	}, createAddConditionalFormatRuleHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "list_conditional_format_rules",
		Description: "List conditional formatting rules with their index, ranges and condition, for one sheet or the whole spreadsheet.",
		Annotations: readOnly("List Conditional Format Rules"),
	}, createListConditionalFormatRulesHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "delete_conditional_format_rule",
		Description: "Delete a conditional formatting rule by index from a sheet.",
		Annotations: destructive("Delete Conditional Format Rule"),
	}, createDeleteConditionalFormatRuleHandler(d))

	// --- Complete tools ---

	addTool(server, include, &mcp.Tool{
		Name:        "update_conditional_format_rule",
		Description: "Replace the conditional formatting rule at rule_index with a new rule.",
		Annotations: idempotent("Update Conditional Format Rule"),
	}, createUpdateConditionalFormatRuleHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "read_sheet_formatting",
		Description: "Read cell formatting for ranges, per cell or as a pattern summary.",
		Annotations: readOnly("Read Sheet Formatting"),
	}, createReadSheetFormattingHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "get_spreadsheet_metadata",
		Description: "Get structural metadata: locale, time zone, default format, sheets, frozen panes, protected and named ranges.",
		Annotations: readOnly("Get Spreadsheet Metadata"),
	}, createGetSpreadsheetMetadataHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "read_cell_properties",
		Description: "Analyze selected format properties of a range: pattern summary plus sample cell details.",
		Annotations: readOnly("Read Cell Properties"),
	}, createReadCellPropertiesHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "get_data_boundaries",
		Description: "Find the range of a sheet that actually contains data.",
		Annotations: readOnly("Get Data Boundaries"),
	}, createGetDataBoundariesHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "apply_table_style",
		Description: "Style a range as a table: formatted header row, alternating row colors, borders and auto-sized columns.",
		Annotations: idempotent("Apply Table Style"),
	}, createApplyTableStyleHandler(d))

	addTool(server, include, &mcp.Tool{
		Name:        "reset_to_default_formatting",
		Description: "Remove all user formatting from a range. Values are kept.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Reset To Default Formatting",
			IdempotentHint:  true,
			DestructiveHint: ptr.Bool(true),
			OpenWorldHint:   ptr.Bool(true),
		},
	}, createResetToDefaultFormattingHandler(d))
}
