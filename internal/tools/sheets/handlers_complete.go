package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/a1"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/cellformat"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/color"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/values"
)

const (
	defaultFormattingRange = "A1:Z100"
	maxDetailRows          = 10
	maxDetailColumns       = 10
	sampleSpan             = 5
	maxSampleCells         = 10
	maxProtectedShown      = 3
	maxNamedShown          = 5
)

const cellData = "sheets.data.rowData.values."

func indent(text, prefix string) string {
	if text == "" {
		return ""
	}
	return prefix + strings.ReplaceAll(text, "\n", "\n"+prefix)
}

// --- read_sheet_formatting ---

type ReadSheetFormattingInput struct {
	UserEmail       string   `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID   string   `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	Ranges          []string `json:"ranges,omitempty" jsonschema_description:"A1 ranges to read (default: A1:Z100 of the first sheet)"`
	IncludeValues   *bool    `json:"include_values,omitempty" jsonschema_description:"Include formatted cell values (default true)"`
	IncludeFormulas bool     `json:"include_formulas,omitempty" jsonschema_description:"Include cell formulas"`
	SummaryOnly     bool     `json:"summary_only,omitempty" jsonschema_description:"Return a pattern summary instead of per-cell details"`
}

func createReadSheetFormattingHandler(d *deps) mcp.ToolHandlerFor[ReadSheetFormattingInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ReadSheetFormattingInput) (*mcp.CallToolResult, any, error) {
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		ranges := make([]string, 0, len(input.Ranges))
		for _, r := range input.Ranges {
			r, err := requireRange(r)
			if err != nil {
				return fail(err)
			}
			ranges = append(ranges, r)
		}
		if len(ranges) == 0 {
			_, title, err := ResolveSheetID(ctx, srv, input.SpreadsheetID, "")
			if err != nil {
				return fail(err)
			}
			ranges = []string{a1.QuoteSheetName(title) + "!" + defaultFormattingRange}
		}
		includeValues := input.IncludeValues == nil || *input.IncludeValues
		d.logger.InfoContext(ctx, "read_sheet_formatting", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "ranges", ranges, "summaryOnly", input.SummaryOnly)

		fields := []string{"sheets.properties", "sheets.data.startRow", "sheets.data.startColumn"}
		if includeValues {
			fields = append(fields, cellData+"formattedValue")
		}
		if input.IncludeFormulas {
			fields = append(fields, cellData+"userEnteredValue")
		}
		fields = append(fields, cellData+"effectiveFormat", cellData+"userEnteredFormat")

		ss, err := srv.Spreadsheets.Get(input.SpreadsheetID).
			Ranges(ranges...).
			IncludeGridData(true).
			Fields(googleapi.Field(strings.Join(fields, ","))).
			Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		rb := response.New()
		if input.SummaryOnly {
			rb.Header("Formatting Summary")
		} else {
			rb.Header("Detailed Formatting")
		}
		rb.KeyValue("Spreadsheet", input.SpreadsheetID)
		rb.KeyValue("Ranges", strings.Join(ranges, ", "))

		blocks := 0
		for _, s := range ss.Sheets {
			if len(s.Data) == 0 {
				continue
			}
			title := ""
			if s.Properties != nil {
				title = s.Properties.Title
			}
			rb.Blank()
			rb.Section("Sheet: %s", title)
			for _, block := range s.Data {
				if len(block.RowData) == 0 {
					continue
				}
				blocks++
				if input.SummaryOnly {
					rb.Block(cellformat.AnalyzePatterns(block.RowData, nil).String())
					continue
				}
				writeDetailedBlock(rb, block, input.IncludeFormulas)
			}
		}
		if blocks == 0 {
			rb.Blank()
			rb.Line("No formatting data found.")
		}

		d.logger.InfoContext(ctx, "read sheet formatting", "blocks", blocks)
		return rb.TextResult(), nil, nil
	}
}

func writeDetailedBlock(rb *response.Builder, block *sheets.GridData, includeFormulas bool) {
	for r, row := range block.RowData {
		if r == maxDetailRows {
			break
		}
		if row == nil || len(row.Values) == 0 {
			continue
		}
		rowIndex := int(block.StartRow) + r
		rb.Line("  Row %d:", rowIndex+1)
		for c, cell := range row.Values {
			if c == maxDetailColumns {
				break
			}
			rb.Line("    %s:", a1.CellName(int(block.StartColumn)+c, rowIndex))
			if includeFormulas && cell != nil && cell.UserEnteredValue != nil && cell.UserEnteredValue.FormulaValue != nil {
				rb.Line("      Formula: %s", *cell.UserEnteredValue.FormulaValue)
			}
			rb.Block(indent(cellformat.DescribeCell(cell, nil), "  "))
		}
	}
	rb.More(maxDetailRows, len(block.RowData), "rows")
}

// --- get_spreadsheet_metadata ---

type GetSpreadsheetMetadataInput struct {
	UserEmail       string   `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID   string   `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	IncludeGridData bool     `json:"include_grid_data,omitempty" jsonschema_description:"Also load cell data (slower)"`
	Ranges          []string `json:"ranges,omitempty" jsonschema_description:"Ranges to load when include_grid_data is set"`
}

func createGetSpreadsheetMetadataHandler(d *deps) mcp.ToolHandlerFor[GetSpreadsheetMetadataInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetSpreadsheetMetadataInput) (*mcp.CallToolResult, any, error) {
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		d.logger.InfoContext(ctx, "get_spreadsheet_metadata", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "gridData", input.IncludeGridData)

		call := srv.Spreadsheets.Get(input.SpreadsheetID)
		if input.IncludeGridData {
			call = call.IncludeGridData(true)
			if len(input.Ranges) > 0 {
				call = call.Ranges(input.Ranges...)
			}
		}
		ss, err := call.Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		rb := response.New()
		rb.Header("Spreadsheet Metadata")
		writeSpreadsheetProperties(rb, ss)
		if p := ss.Properties; p != nil && p.DefaultFormat != nil {
			rb.Blank()
			rb.Section("Default Format")
			df := p.DefaultFormat
			rb.KeyValue("Background", orDefault(color.DisplaySheets(df.BackgroundColor, df.BackgroundColorStyle), "Default"))
			if tf := df.TextFormat; tf != nil {
				size := "Default"
				if tf.FontSize > 0 {
					size = fmt.Sprintf("%dpt", tf.FontSize)
				}
				rb.KeyValue("Font", orDefault(tf.FontFamily, "Default")+" "+size)
			}
		}

		titles := make(map[int64]string, len(ss.Sheets))
		rb.Blank()
		rb.Section("Sheets (%d)", len(ss.Sheets))
		for _, s := range ss.Sheets {
			p := s.Properties
			if p == nil {
				continue
			}
			titles[p.SheetId] = p.Title
			writeSheetMetadata(rb, s, input.IncludeGridData)
		}

		if len(ss.NamedRanges) > 0 {
			rb.Blank()
			rb.Section("Named Ranges (%d)", len(ss.NamedRanges))
			for i, nr := range ss.NamedRanges {
				if i == maxNamedShown {
					break
				}
				target := "no range"
				if nr.Range != nil {
					target = a1.FromGridRange(fromAPIGrid(nr.Range), titles[nr.Range.SheetId])
				}
				rb.Item("%s: %s", nr.Name, target)
			}
			rb.More(maxNamedShown, len(ss.NamedRanges), "named ranges")
		}
		if n := len(ss.DeveloperMetadata); n > 0 {
			rb.Blank()
			rb.KeyValue("Developer metadata", fmt.Sprintf("%d items", n))
		}

		return rb.TextResult(), nil, nil
	}
}

func writeSheetMetadata(rb *response.Builder, s *sheets.Sheet, gridData bool) {
	p := s.Properties
	rb.Blank()
	rb.Item("%q (ID: %d)", p.Title, p.SheetId)
	var g sheets.GridProperties
	if p.GridProperties != nil {
		g = *p.GridProperties
	}
	rb.Line("    Size: %dx%d", g.RowCount, g.ColumnCount)
	rb.Line("    Frozen: %d rows, %d cols", g.FrozenRowCount, g.FrozenColumnCount)
	if tab := color.DisplaySheets(p.TabColor, p.TabColorStyle); tab != "" {
		rb.Line("    Tab Color: %s", tab)
	}
	if n := len(s.ConditionalFormats); n > 0 {
		rb.Line("    Conditional Format Rules: %d", n)
	}
	if n := len(s.ProtectedRanges); n > 0 {
		rb.Line("    Protected Ranges: %d", n)
		for i, pr := range s.ProtectedRanges {
			if i == maxProtectedShown {
				break
			}
			rb.Line("      - %s", orDefault(pr.Description, "No description"))
		}
	}
	if s.BasicFilter != nil {
		rb.Line("    Basic Filter: Active")
	}
	if n := len(s.FilterViews); n > 0 {
		rb.Line("    Filter Views: %d", n)
	}
	if gridData {
		rows := 0
		for _, block := range s.Data {
			rows += len(block.RowData)
		}
		rb.Line("    Rows loaded: %d", rows)
	}
}

// --- read_cell_properties ---

var propertyFields = map[string][]string{
	cellformat.Background:   {"effectiveFormat.backgroundColor", "effectiveFormat.backgroundColorStyle"},
	cellformat.TextFormat:   {"effectiveFormat.textFormat"},
	cellformat.NumberFormat: {"effectiveFormat.numberFormat"},
	cellformat.Borders:      {"effectiveFormat.borders"},
	cellformat.Alignment:    {"effectiveFormat.horizontalAlignment", "effectiveFormat.verticalAlignment"},
	cellformat.Padding:      {"effectiveFormat.padding"},
	cellformat.Wrap:         {"effectiveFormat.wrapStrategy"},
}

type ReadCellPropertiesInput struct {
	UserEmail     string   `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID string   `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	Range         string   `json:"range" jsonschema:"required" jsonschema_description:"A1 range to analyze (e.g. Sheet1!A1:D10)"`
	Properties    []string `json:"properties,omitempty" jsonschema_description:"Any of background, text_format, number_format, borders, alignment, padding, wrap (default: all)"`
}

func cellPropertyFields(f cellformat.Filter) string {
	fields := []string{"sheets.properties", "sheets.data.startRow", "sheets.data.startColumn", cellData + "formattedValue"}
	if len(f) == 0 {
		fields = append(fields, cellData+"effectiveFormat", cellData+"userEnteredFormat")
		return strings.Join(fields, ",")
	}
	for _, p := range cellformat.Properties {
		if !f[p] {
			continue
		}
		for _, path := range propertyFields[p] {
			fields = append(fields, cellData+path)
		}
	}
	return strings.Join(fields, ",")
}

func createReadCellPropertiesHandler(d *deps) mcp.ToolHandlerFor[ReadCellPropertiesInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ReadCellPropertiesInput) (*mcp.CallToolResult, any, error) {
		rangeName, err := requireRange(input.Range)
		if err != nil {
			return fail(err)
		}
		filter, err := cellformat.NewFilter(input.Properties)
		if err != nil {
			return fail(err)
		}
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		d.logger.InfoContext(ctx, "read_cell_properties", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "range", rangeName)

		ss, err := srv.Spreadsheets.Get(input.SpreadsheetID).
			Ranges(rangeName).
			IncludeGridData(true).
			Fields(googleapi.Field(cellPropertyFields(filter))).
			Context(ctx).Do()
		if err != nil {
			return fail(err)
		}
		if len(ss.Sheets) == 0 || len(ss.Sheets[0].Data) == 0 {
			return response.New().Line("No cell data found for range %s.", rangeName).TextResult(), nil, nil
		}
		block := ss.Sheets[0].Data[0]

		rb := response.New()
		rb.Header("Cell Properties")
		rb.KeyValue("Spreadsheet", input.SpreadsheetID)
		rb.KeyValue("Range", rangeName)
		rb.Blank()
		rb.Block(cellformat.AnalyzePatterns(block.RowData, filter).String())
		rb.Blank()
		rb.Section("Sample Cells")

		samples := 0
	rows:
		for r, row := range block.RowData {
			if r == sampleSpan {
				break
			}
			if row == nil {
				continue
			}
			for c, cell := range row.Values {
				if c == sampleSpan {
					break
				}
				if samples == maxSampleCells {
					break rows
				}
				desc := cellformat.DescribeCell(cell, filter)
				if desc == "" {
					continue
				}
				rb.Line("  Cell %s:", a1.CellName(int(block.StartColumn)+c, int(block.StartRow)+r))
				rb.Block(desc)
				samples++
			}
		}
		if samples == 0 {
			rb.Line("  No formatted cells")
		}

		return rb.TextResult(), nil, nil
	}
}

// --- get_data_boundaries ---

type GetDataBoundariesInput struct {
	UserEmail     string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	SheetName     string `json:"sheet_name,omitempty" jsonschema_description:"Sheet to scan (default: first sheet)"`
}

// usedRange finds the smallest rectangle holding every non-blank value.
// Indexes are relative to the matrix; ok is false when all cells are blank.
func usedRange(m [][]any) (g a1.GridRange, ok bool) {
	for r, row := range m {
		for c, v := range row {
			if strings.TrimSpace(values.String(v)) == "" {
				continue
			}
			r, c := int64(r), int64(c)
			if !ok {
				g = a1.GridRange{StartRowIndex: r, EndRowIndex: r + 1, StartColumnIndex: c, EndColumnIndex: c + 1}
				ok = true
				continue
			}
			g.StartRowIndex = min(g.StartRowIndex, r)
			g.EndRowIndex = max(g.EndRowIndex, r+1)
			g.StartColumnIndex = min(g.StartColumnIndex, c)
			g.EndColumnIndex = max(g.EndColumnIndex, c+1)
		}
	}
	return g, ok
}

func createGetDataBoundariesHandler(d *deps) mcp.ToolHandlerFor[GetDataBoundariesInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetDataBoundariesInput) (*mcp.CallToolResult, any, error) {
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		d.logger.InfoContext(ctx, "get_data_boundaries", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "sheet", input.SheetName)

		sheetID, title, err := ResolveSheetID(ctx, srv, input.SpreadsheetID, strings.TrimSpace(input.SheetName))
		if err != nil {
			return fail(err)
		}
		vr, err := srv.Spreadsheets.Values.Get(input.SpreadsheetID, a1.SheetRange(title)).Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		used, ok := usedRange(vr.Values)
		if !ok {
			return response.New().Line("No data found in sheet '%s'.", title).TextResult(), nil, nil
		}
		// Values start at the top-left of the returned range, not always A1.
		if start, err := a1.Parse(vr.Range); err == nil {
			dr, dc := int64(start.Start.Row-1), int64(start.Start.ColumnIndex())
			used.StartRowIndex += dr
			used.EndRowIndex += dr
			used.StartColumnIndex += dc
			used.EndColumnIndex += dc
		} else {
			d.logger.DebugContext(ctx, "returned range unparsable, assuming A1 origin", "range", vr.Range)
		}
		used.SheetID = sheetID

		rb := response.New()
		rb.Header("Data Boundaries")
		rb.KeyValue("Sheet", title)
		rb.KeyValue("Data range", a1.FromGridRange(used, title))
		rb.KeyValue("Rows", used.Rows())
		rb.KeyValue("Columns", used.Columns())
		return rb.TextResult(), nil, nil
	}
}

// --- apply_table_style ---

const (
	defaultHeaderBackground = "#4285F4"
	defaultHeaderText       = "#FFFFFF"
	defaultFirstBand        = "#FFFFFF"
	defaultSecondBand       = "#F3F3F3"
	defaultTableBorder      = "#CCCCCC"
)

type tableStyle struct {
	HeaderBackgroundColor string
	HeaderTextColor       string
	FirstBandColor        string
	SecondBandColor       string
	BorderStyle           string
	BorderColor           string
}

type ApplyTableStyleInput struct {
	UserEmail             string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID         string `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	Range                 string `json:"range" jsonschema:"required" jsonschema_description:"Table range including its header row (e.g. Sheet1!A1:D20)"`
	HeaderBackgroundColor string `json:"header_background_color,omitempty" jsonschema_description:"Header fill (default #4285F4)"`
	HeaderTextColor       string `json:"header_text_color,omitempty" jsonschema_description:"Header text color (default #FFFFFF)"`
	FirstBandColor        string `json:"first_band_color,omitempty" jsonschema_description:"Odd row fill (default #FFFFFF)"`
	SecondBandColor       string `json:"second_band_color,omitempty" jsonschema_description:"Even row fill (default #F3F3F3)"`
	BorderStyle           string `json:"border_style,omitempty" jsonschema_description:"DOTTED, DASHED, SOLID, SOLID_MEDIUM, SOLID_THICK or DOUBLE (default SOLID)"`
	BorderColor           string `json:"border_color,omitempty" jsonschema_description:"Border color (default #CCCCCC)"`
	AutoResize            *bool  `json:"auto_resize,omitempty" jsonschema_description:"Fit column widths to content (default true)"`
}

func (in ApplyTableStyleInput) style() (tableStyle, error) {
	st := tableStyle{
		HeaderBackgroundColor: strings.TrimSpace(in.HeaderBackgroundColor),
		HeaderTextColor:       strings.TrimSpace(in.HeaderTextColor),
		FirstBandColor:        strings.TrimSpace(in.FirstBandColor),
		SecondBandColor:       strings.TrimSpace(in.SecondBandColor),
		BorderStyle:           upper(in.BorderStyle),
		BorderColor:           strings.TrimSpace(in.BorderColor),
	}
	if err := issuesError(tableStyleSchema.Validate(&st)); err != nil {
		return tableStyle{}, err
	}
	st.HeaderBackgroundColor = orDefault(st.HeaderBackgroundColor, defaultHeaderBackground)
	st.HeaderTextColor = orDefault(st.HeaderTextColor, defaultHeaderText)
	st.FirstBandColor = orDefault(st.FirstBandColor, defaultFirstBand)
	st.SecondBandColor = orDefault(st.SecondBandColor, defaultSecondBand)
	st.BorderColor = orDefault(st.BorderColor, defaultTableBorder)
	return st, nil
}

// tableRequests builds the header, border, banding and resize requests for
// a table at t. Existing bandings that overlap t are removed first so the
// style can be reapplied.
func tableRequests(st tableStyle, t Target, existing []*sheets.BandedRange, autoResize bool) ([]*sheets.Request, error) {
	toColor := func(hex string) (*sheets.Color, error) {
		c, err := color.HexToRGB(hex)
		if err != nil {
			return nil, err
		}
		return c.Sheets(), nil
	}
	headerBG, err := toColor(st.HeaderBackgroundColor)
	if err != nil {
		return nil, err
	}
	headerText, err := toColor(st.HeaderTextColor)
	if err != nil {
		return nil, err
	}
	first, err := toColor(st.FirstBandColor)
	if err != nil {
		return nil, err
	}
	second, err := toColor(st.SecondBandColor)
	if err != nil {
		return nil, err
	}
	border, err := newBorder(st.BorderStyle, st.BorderColor)
	if err != nil {
		return nil, err
	}

	var reqs []*sheets.Request
	for _, br := range existing {
		if br.Range != nil && fromAPIGrid(br.Range).Overlaps(t.Grid) {
			reqs = append(reqs, &sheets.Request{DeleteBanding: &sheets.DeleteBandingRequest{
				BandedRangeId:   br.BandedRangeId,
				ForceSendFields: []string{"BandedRangeId"},
			}})
		}
	}

	header := t.Grid
	header.EndRowIndex = header.StartRowIndex + 1
	reqs = append(reqs,
		&sheets.Request{RepeatCell: &sheets.RepeatCellRequest{
			Range: toAPIGrid(header),
			Cell: &sheets.CellData{UserEnteredFormat: &sheets.CellFormat{
				BackgroundColor: headerBG,
				TextFormat:      &sheets.TextFormat{ForegroundColor: headerText, Bold: true},
			}},
			Fields: "userEnteredFormat.backgroundColor,userEnteredFormat.textFormat.foregroundColor,userEnteredFormat.textFormat.bold",
		}},
		&sheets.Request{UpdateBorders: &sheets.UpdateBordersRequest{
			Range:           toAPIGrid(t.Grid),
			Top:             border,
			Bottom:          border,
			Left:            border,
			Right:           border,
			InnerHorizontal: border,
			InnerVertical:   border,
		}},
		&sheets.Request{AddBanding: &sheets.AddBandingRequest{BandedRange: &sheets.BandedRange{
			Range: toAPIGrid(t.Grid),
			RowProperties: &sheets.BandingProperties{
				HeaderColor:     headerBG,
				FirstBandColor:  first,
				SecondBandColor: second,
			},
		}}},
	)
	if autoResize {
		reqs = append(reqs, &sheets.Request{AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
			Dimensions: &sheets.DimensionRange{
				SheetId:    t.Grid.SheetID,
				Dimension:  "COLUMNS",
				StartIndex: t.Grid.StartColumnIndex,
				EndIndex:   t.Grid.EndColumnIndex,
			},
		}})
	}
	return reqs, nil
}

func sheetBandings(ss *sheets.Spreadsheet, sheetID int64) []*sheets.BandedRange {
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.SheetId == sheetID {
			return s.BandedRanges
		}
	}
	return nil
}

func createApplyTableStyleHandler(d *deps) mcp.ToolHandlerFor[ApplyTableStyleInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ApplyTableStyleInput) (*mcp.CallToolResult, any, error) {
		rangeName, err := requireRange(input.Range)
		if err != nil {
			return fail(err)
		}
		parsed, err := parseRefs([]string{rangeName})
		if err != nil {
			return fail(err)
		}
		st, err := input.style()
		if err != nil {
			return fail(err)
		}
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		d.logger.InfoContext(ctx, "apply_table_style", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "range", rangeName)

		ss, err := fetchSheetList(ctx, srv, input.SpreadsheetID, "sheets.bandedRanges(bandedRangeId,range)")
		if err != nil {
			return fail(err)
		}
		targets, err := targetsIn(ss, parsed)
		if err != nil {
			return fail(err)
		}
		t := targets[0]
		if t.Grid.Rows() < 2 {
			return fail(apperr.Invalid("range %s must span a header row and at least one data row", t.A1()))
		}

		autoResize := input.AutoResize == nil || *input.AutoResize
		reqs, err := tableRequests(st, t, sheetBandings(ss, t.Grid.SheetID), autoResize)
		if err != nil {
			return fail(err)
		}
		_, err = srv.Spreadsheets.BatchUpdate(input.SpreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{Requests: reqs}).Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		rb := response.New()
		rb.Header("Table Style Applied")
		rb.KeyValue("Spreadsheet", input.SpreadsheetID)
		rb.KeyValue("Range", t.A1())
		rb.KeyValue("Header", fmt.Sprintf("%s on %s, bold", st.HeaderTextColor, st.HeaderBackgroundColor))
		rb.KeyValue("Bands", st.FirstBandColor+" / "+st.SecondBandColor)
		rb.KeyValue("Borders", orDefault(st.BorderStyle, "SOLID")+" "+st.BorderColor)
		rb.KeyValue("Columns auto-sized", autoResize)

		d.logger.InfoContext(ctx, "applied table style", "range", t.A1(), "requests", len(reqs))
		return rb.TextResult(), nil, nil
	}
}

// --- reset_to_default_formatting ---

type ResetToDefaultFormattingInput struct {
	UserEmail     string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	Range         string `json:"range" jsonschema:"required" jsonschema_description:"A1 range to reset (e.g. Sheet1!A1:D20)"`
}

func createResetToDefaultFormattingHandler(d *deps) mcp.ToolHandlerFor[ResetToDefaultFormattingInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ResetToDefaultFormattingInput) (*mcp.CallToolResult, any, error) {
		rangeName, err := requireRange(input.Range)
		if err != nil {
			return fail(err)
		}
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		d.logger.InfoContext(ctx, "reset_to_default_formatting", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "range", rangeName)

		t, err := resolveTarget(ctx, srv, input.SpreadsheetID, rangeName)
		if err != nil {
			return fail(err)
		}
		_, err = srv.Spreadsheets.BatchUpdate(input.SpreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{RepeatCell: &sheets.RepeatCellRequest{
				Range:  toAPIGrid(t.Grid),
				Cell:   &sheets.CellData{},
				Fields: "userEnteredFormat",
			}}},
		}).Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		rb := response.New()
		rb.Header("Formatting Reset")
		rb.KeyValue("Spreadsheet", input.SpreadsheetID)
		rb.KeyValue("Range", t.A1())
		rb.Line("Values were kept; all user formatting was removed.")
		return rb.TextResult(), nil, nil
	}
}
