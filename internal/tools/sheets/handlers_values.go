package sheets

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
)

func (d *deps) updateValues(ctx context.Context, srv *sheets.Service, spreadsheetID, rangeName string, input any, valueInput string) (*sheets.UpdateValuesResponse, error) {
	opts, err := checkWriteOptions(valueInput, "")
	if err != nil {
		return nil, err
	}
	matrix, err := d.normalizeValues(ctx, rangeName, input)
	if err != nil {
		return nil, err
	}
	result, err := srv.Spreadsheets.Values.Update(spreadsheetID, rangeName, &sheets.ValueRange{Values: matrix}).
		ValueInputOption(opts.ValueInputOption).
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	d.logger.InfoContext(ctx, "updated values", "range", result.UpdatedRange, "cells", result.UpdatedCells)
	return result, nil
}

func updateResult(spreadsheetID, rangeName string, r *sheets.UpdateValuesResponse) *response.Builder {
	rb := response.New()
	rb.Header("Values Updated")
	rb.KeyValue("Spreadsheet", spreadsheetID)
	rb.KeyValue("Range", orDefault(r.UpdatedRange, rangeName))
	rb.KeyValue("Updated cells", r.UpdatedCells)
	rb.KeyValue("Updated rows", r.UpdatedRows)
	rb.KeyValue("Updated columns", r.UpdatedColumns)
	return rb
}

// --- update_sheet_values ---

type UpdateSheetValuesInput struct {
	UserEmail        string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID    string `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	Range            string `json:"range" jsonschema:"required" jsonschema_description:"A1 range to update (e.g. Sheet1!A1:C2)"`
	Values           any    `json:"values" jsonschema:"required" jsonschema_description:"A single value (\"100\"), one row ([\"A\",\"B\"]) or rows ([[\"A\",\"B\"],[\"C\",\"D\"]])"`
	ValueInputOption string `json:"value_input_option,omitempty" jsonschema_description:"RAW or USER_ENTERED (default USER_ENTERED)"`
}

func createUpdateSheetValuesHandler(d *deps) mcp.ToolHandlerFor[UpdateSheetValuesInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UpdateSheetValuesInput) (*mcp.CallToolResult, any, error) {
		rangeName, err := requireRange(input.Range)
		if err != nil {
			return fail(err)
		}
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		d.logger.InfoContext(ctx, "update_sheet_values", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "range", rangeName)

		result, err := d.updateValues(ctx, srv, input.SpreadsheetID, rangeName, input.Values, input.ValueInputOption)
		if err != nil {
			return fail(err)
		}
		return updateResult(input.SpreadsheetID, rangeName, result).TextResult(), nil, nil
	}
}

// --- batch_update_values ---

type ValueUpdate struct {
	Range  string `json:"range" jsonschema:"required" jsonschema_description:"A1 range to write"`
	Values any    `json:"values" jsonschema:"required" jsonschema_description:"Values in any accepted shape"`
}

type BatchUpdateValuesInput struct {
	UserEmail        string        `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID    string        `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	Updates          []ValueUpdate `json:"updates" jsonschema:"required" jsonschema_description:"Updates to apply, each with range and values"`
	ValueInputOption string        `json:"value_input_option,omitempty" jsonschema_description:"RAW or USER_ENTERED (default USER_ENTERED)"`
}

func createBatchUpdateValuesHandler(d *deps) mcp.ToolHandlerFor[BatchUpdateValuesInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input BatchUpdateValuesInput) (*mcp.CallToolResult, any, error) {
		if len(input.Updates) == 0 {
			return fail(apperr.Invalid("updates must contain at least one range"))
		}
		opts, err := checkWriteOptions(input.ValueInputOption, "")
		if err != nil {
			return fail(err)
		}

		data := make([]*sheets.ValueRange, 0, len(input.Updates))
		for i, u := range input.Updates {
			rangeName := strings.TrimSpace(u.Range)
			if rangeName == "" || u.Values == nil {
				return fail(apperr.Invalid("update %d must have both range and values", i))
			}
			matrix, err := d.normalizeValues(ctx, rangeName, u.Values)
			if err != nil {
				return fail(err)
			}
			data = append(data, &sheets.ValueRange{Range: rangeName, Values: matrix})
		}

		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		d.logger.InfoContext(ctx, "batch_update_values", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "ranges", len(data))

		result, err := srv.Spreadsheets.Values.BatchUpdate(input.SpreadsheetID, &sheets.BatchUpdateValuesRequest{
			ValueInputOption: opts.ValueInputOption,
			Data:             data,
		}).Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		rb := response.New()
		rb.Header("Batch Update Complete")
		rb.KeyValue("Spreadsheet", input.SpreadsheetID)
		rb.KeyValue("Ranges updated", len(result.Responses))
		rb.KeyValue("Total cells", result.TotalUpdatedCells)
		rb.KeyValue("Total rows", result.TotalUpdatedRows)
		rb.KeyValue("Total columns", result.TotalUpdatedColumns)
		rb.KeyValue("Sheets touched", result.TotalUpdatedSheets)
		rb.Blank()
		rb.Section("Updates")
		if len(result.Responses) == 0 {
			rb.Line("No details available")
		}
		for i, r := range result.Responses {
			name := r.UpdatedRange
			if name == "" && i < len(data) {
				name = data[i].Range
			}
			rb.Item("%s: %d cells", name, r.UpdatedCells)
		}

		d.logger.InfoContext(ctx, "batch updated values", "cells", result.TotalUpdatedCells, "ranges", len(result.Responses))
		return rb.TextResult(), nil, nil
	}
}

// --- append_sheet_values ---

type AppendSheetValuesInput struct {
	UserEmail        string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID    string `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	Range            string `json:"range" jsonschema:"required" jsonschema_description:"Range whose table is appended to (e.g. Sheet1!A:D)"`
	Values           any    `json:"values" jsonschema:"required" jsonschema_description:"A single value, one row, or a list of rows"`
	ValueInputOption string `json:"value_input_option,omitempty" jsonschema_description:"RAW or USER_ENTERED (default USER_ENTERED)"`
	InsertDataOption string `json:"insert_data_option,omitempty" jsonschema_description:"INSERT_ROWS or OVERWRITE (default INSERT_ROWS)"`
}

func createAppendSheetValuesHandler(d *deps) mcp.ToolHandlerFor[AppendSheetValuesInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AppendSheetValuesInput) (*mcp.CallToolResult, any, error) {
		rangeName, err := requireRange(input.Range)
		if err != nil {
			return fail(err)
		}
		opts, err := checkWriteOptions(input.ValueInputOption, input.InsertDataOption)
		if err != nil {
			return fail(err)
		}
		matrix, err := d.normalizeValues(ctx, rangeName, input.Values)
		if err != nil {
			return fail(err)
		}
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		d.logger.InfoContext(ctx, "append_sheet_values", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "range", rangeName)

		result, err := srv.Spreadsheets.Values.Append(input.SpreadsheetID, rangeName, &sheets.ValueRange{Values: matrix}).
			ValueInputOption(opts.ValueInputOption).
			InsertDataOption(opts.InsertDataOption).
			Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		updates := result.Updates
		if updates == nil {
			updates = &sheets.UpdateValuesResponse{}
		}

		rb := response.New()
		rb.Header("Values Appended")
		rb.KeyValue("Spreadsheet", input.SpreadsheetID)
		rb.KeyValue("Appended to range", orDefault(updates.UpdatedRange, "Unknown"))
		rb.KeyValue("Cells added", updates.UpdatedCells)
		rb.KeyValue("Rows added", updates.UpdatedRows)
		rb.KeyValue("Columns added", updates.UpdatedColumns)

		d.logger.InfoContext(ctx, "appended values", "range", updates.UpdatedRange, "rows", updates.UpdatedRows)
		return rb.TextResult(), nil, nil
	}
}
