package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/a1"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/values"
)

const (
	testEmail       = "user@example.com"
	testSpreadsheet = "sheet-123"
)

// fakeSheet is one tab of the in-memory spreadsheet.
type fakeSheet struct {
	props   *sheets.SheetProperties
	values  [][]any
	formats map[[2]int]*sheets.CellFormat
	rules   []*sheets.ConditionalFormatRule
	bands   []*sheets.BandedRange
}

func (s *fakeSheet) cell(r, c int) any {
	if r >= len(s.values) || c >= len(s.values[r]) {
		return nil
	}
	return s.values[r][c]
}

func (s *fakeSheet) set(r, c int, v any) {
	for len(s.values) <= r {
		s.values = append(s.values, nil)
	}
	row := s.values[r]
	for len(row) <= c {
		row = append(row, "")
	}
	row[c] = v
	s.values[r] = row
}

// rect returns the half-open row and column bounds of a cell reference
// without sheet prefix. Whole columns ("A:D") and "" span the grid.
func (s *fakeSheet) rect(cells string) (r0, c0, r1, c1 int) {
	rows, cols := int(s.props.GridProperties.RowCount), int(s.props.GridProperties.ColumnCount)
	if r, ok := a1.ParseCellRange(cells); ok {
		g := r.Grid(0)
		return int(g.StartRowIndex), int(g.StartColumnIndex), int(g.EndRowIndex), int(g.EndColumnIndex)
	}
	if m := columnsRE.FindStringSubmatch(cells); m != nil {
		from, _ := a1.LetterToIndex(m[1])
		to, _ := a1.LetterToIndex(m[2])
		return 0, from, rows, to + 1
	}
	return 0, 0, rows, cols
}

var columnsRE = regexp.MustCompile(`^([A-Z]+):([A-Z]+)$`)

// fakeSheets serves the subset of the Sheets and Drive REST APIs the tools
// call, backed by in-memory state.
type fakeSheets struct {
	mu          sync.Mutex
	title       string
	tabs        []*fakeSheet
	nextSheetID int64
	nextBandID  int64
	files       []*drive.File
	driveQuery  string
	calls       []string
	batchBodies []string

	// decorate adds extra metadata to every spreadsheet read.
	decorate func(*sheets.Spreadsheet)
	// afterMetadata runs once, right after the next spreadsheet read.
	afterMetadata func(*fakeSheets)
	// trimLeading makes value reads start at the first non-empty cell.
	trimLeading bool
}

func newFakeSheets(titles ...string) *fakeSheets {
	if len(titles) == 0 {
		titles = []string{"Sheet1"}
	}
	f := &fakeSheets{title: "Budget", nextSheetID: 1000}
	for i, title := range titles {
		id := int64(0)
		if i > 0 {
			f.nextSheetID++
			id = f.nextSheetID
		}
		f.tabs = append(f.tabs, newFakeSheet(id, title, int64(i)))
	}
	return f
}

func newFakeSheet(id int64, title string, index int64) *fakeSheet {
	return &fakeSheet{
		props: &sheets.SheetProperties{
			SheetId:        id,
			Title:          title,
			Index:          index,
			GridProperties: &sheets.GridProperties{RowCount: 1000, ColumnCount: 26},
		},
		formats: map[[2]int]*sheets.CellFormat{},
	}
}

func (f *fakeSheets) sheet(title string) *fakeSheet {
	for _, s := range f.tabs {
		if title == "" || s.props.Title == title {
			return s
		}
	}
	return nil
}

func (f *fakeSheets) sheetByID(id int64) *fakeSheet {
	for _, s := range f.tabs {
		if s.props.SheetId == id {
			return s
		}
	}
	return nil
}

// put seeds rows starting at the top-left of ref.
func (f *fakeSheets) put(ref string, rows ...[]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, cells := f.locate(ref)
	r0, c0, _, _ := s.rect(cells)
	for r, row := range rows {
		for c, v := range row {
			s.set(r0+r, c0+c, v)
		}
	}
}

func (f *fakeSheets) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSheets) lastBatch() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.batchBodies) == 0 {
		return ""
	}
	return f.batchBodies[len(f.batchBodies)-1]
}

func (f *fakeSheets) batchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batchBodies)
}

// locate finds the sheet a reference points at. A bare name without "!"
// addresses the whole sheet.
func (f *fakeSheets) locate(ref string) (*fakeSheet, string) {
	name, cells := a1.SplitSheetAndRange(ref)
	if name == "" && !strings.Contains(ref, "!") {
		if _, ok := a1.ParseCellRange(cells); !ok && !columnsRE.MatchString(cells) {
			name, cells = unquoteSheet(ref), ""
		}
	}
	return f.sheet(name), cells
}

func unquoteSheet(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'") {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)

	if strings.HasPrefix(r.URL.Path, "/drive/v3/files") {
		f.driveQuery = r.URL.Query().Get("q")
		writeJSON(w, &drive.FileList{Files: f.files})
		return
	}
	rest, ok := strings.CutPrefix(r.URL.Path, "/v4/spreadsheets")
	if !ok {
		http.NotFound(w, r)
		return
	}
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" && r.Method == http.MethodPost {
		f.create(w, r)
		return
	}
	id := rest
	if i := strings.IndexAny(rest, "/:"); i >= 0 {
		id = rest[:i]
	}
	if id != testSpreadsheet {
		apiError(w, http.StatusNotFound, "Requested entity was not found.")
		return
	}

	switch {
	case rest == id+":batchUpdate":
		f.batchUpdate(w, r)
	case strings.HasSuffix(rest, "/values:batchUpdate"):
		f.batchValues(w, r)
	case strings.Contains(rest, "/values/"):
		_, ref, _ := strings.Cut(rest, "/values/")
		switch {
		case strings.HasSuffix(ref, ":clear"):
			f.clear(w, strings.TrimSuffix(ref, ":clear"))
		case strings.HasSuffix(ref, ":append"):
			f.appendValues(w, r, strings.TrimSuffix(ref, ":append"))
		case r.Method == http.MethodPut:
			f.update(w, r, ref)
		default:
			f.getValues(w, ref)
		}
	case rest == id && r.Method == http.MethodGet:
		f.getSpreadsheet(w, r)
	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func apiError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": code, "message": msg},
	})
}

func qualified(s *fakeSheet, r0, c0, r1, c1 int) string {
	return a1.QuoteSheetName(s.props.Title) + "!" + a1.CellName(c0, r0) + ":" + a1.CellName(c1-1, r1-1)
}

func isBlank(v any) bool {
	return strings.TrimSpace(values.String(v)) == ""
}

func trimRow(row []any) []any {
	for len(row) > 0 && isBlank(row[len(row)-1]) {
		row = row[:len(row)-1]
	}
	return row
}

func (f *fakeSheets) getValues(w http.ResponseWriter, ref string) {
	s, cells := f.locate(ref)
	if s == nil {
		apiError(w, http.StatusBadRequest, "Unable to parse range: "+ref)
		return
	}
	r0, c0, r1, c1 := s.rect(cells)
	var out [][]any
	for r := r0; r < r1 && r < len(s.values); r++ {
		var row []any
		for c := c0; c < c1 && c < len(s.values[r]); c++ {
			row = append(row, s.values[r][c])
		}
		out = append(out, trimRow(row))
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}

	if f.trimLeading && len(out) > 0 {
		for len(out[0]) == 0 {
			out = out[1:]
			r0++
		}
		skip := c1 - c0
		for _, row := range out {
			for c, v := range row {
				if !isBlank(v) {
					skip = min(skip, c)
					break
				}
			}
		}
		for i, row := range out {
			out[i] = row[min(skip, len(row)):]
		}
		c0 += skip
	}

	writeJSON(w, &sheets.ValueRange{
		Range:          qualified(s, r0, c0, r1, c1),
		MajorDimension: "ROWS",
		Values:         out,
	})
}

func (f *fakeSheets) write(s *fakeSheet, cells string, m [][]any) *sheets.UpdateValuesResponse {
	r0, c0, _, _ := s.rect(cells)
	return f.writeAt(s, r0, c0, m)
}

func (f *fakeSheets) writeAt(s *fakeSheet, r0, c0 int, m [][]any) *sheets.UpdateValuesResponse {
	rows, cols := values.Dimensions(m)
	for r, row := range m {
		for c, v := range row {
			s.set(r0+r, c0+c, v)
		}
	}
	resp := &sheets.UpdateValuesResponse{
		SpreadsheetId:  testSpreadsheet,
		UpdatedRows:    int64(rows),
		UpdatedColumns: int64(cols),
	}
	for _, row := range m {
		resp.UpdatedCells += int64(len(row))
	}
	if rows > 0 && cols > 0 {
		resp.UpdatedRange = qualified(s, r0, c0, r0+rows, c0+cols)
	}
	return resp
}

func (f *fakeSheets) update(w http.ResponseWriter, r *http.Request, ref string) {
	var vr sheets.ValueRange
	if err := json.NewDecoder(r.Body).Decode(&vr); err != nil {
		apiError(w, http.StatusBadRequest, err.Error())
		return
	}
	s, cells := f.locate(ref)
	if s == nil {
		apiError(w, http.StatusBadRequest, "Unable to parse range: "+ref)
		return
	}
	writeJSON(w, f.write(s, cells, vr.Values))
}

func (f *fakeSheets) clear(w http.ResponseWriter, ref string) {
	s, cells := f.locate(ref)
	if s == nil {
		apiError(w, http.StatusBadRequest, "Unable to parse range: "+ref)
		return
	}
	r0, c0, r1, c1 := s.rect(cells)
	for r := r0; r < r1 && r < len(s.values); r++ {
		for c := c0; c < c1 && c < len(s.values[r]); c++ {
			s.values[r][c] = ""
		}
	}
	writeJSON(w, &sheets.ClearValuesResponse{SpreadsheetId: testSpreadsheet, ClearedRange: qualified(s, r0, c0, r1, c1)})
}

func (f *fakeSheets) appendValues(w http.ResponseWriter, r *http.Request, ref string) {
	var vr sheets.ValueRange
	if err := json.NewDecoder(r.Body).Decode(&vr); err != nil {
		apiError(w, http.StatusBadRequest, err.Error())
		return
	}
	s, cells := f.locate(ref)
	if s == nil {
		apiError(w, http.StatusBadRequest, "Unable to parse range: "+ref)
		return
	}
	_, c0, _, _ := s.rect(cells)
	next := 0
	for i, row := range s.values {
		if len(trimRow(row)) > 0 {
			next = i + 1
		}
	}
	writeJSON(w, &sheets.AppendValuesResponse{
		SpreadsheetId: testSpreadsheet,
		Updates:       f.writeAt(s, next, c0, vr.Values),
	})
}

func (f *fakeSheets) batchValues(w http.ResponseWriter, r *http.Request) {
	var req sheets.BatchUpdateValuesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp := &sheets.BatchUpdateValuesResponse{SpreadsheetId: testSpreadsheet}
	touched := map[int64]bool{}
	for _, vr := range req.Data {
		s, cells := f.locate(vr.Range)
		if s == nil {
			apiError(w, http.StatusBadRequest, "Unable to parse range: "+vr.Range)
			return
		}
		u := f.write(s, cells, vr.Values)
		touched[s.props.SheetId] = true
		resp.Responses = append(resp.Responses, u)
		resp.TotalUpdatedCells += u.UpdatedCells
		resp.TotalUpdatedRows += u.UpdatedRows
		resp.TotalUpdatedColumns += u.UpdatedColumns
	}
	resp.TotalUpdatedSheets = int64(len(touched))
	writeJSON(w, resp)
}

func (f *fakeSheets) create(w http.ResponseWriter, r *http.Request) {
	var in sheets.Spreadsheet
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apiError(w, http.StatusBadRequest, err.Error())
		return
	}
	out := &sheets.Spreadsheet{
		SpreadsheetId:  "created-1",
		SpreadsheetUrl: "https://docs.google.com/spreadsheets/d/created-1/edit",
		Properties:     in.Properties,
	}
	for i, s := range in.Sheets {
		out.Sheets = append(out.Sheets, &sheets.Sheet{Properties: &sheets.SheetProperties{SheetId: int64(i), Title: s.Properties.Title, Index: int64(i)}})
	}
	if len(out.Sheets) == 0 {
		out.Sheets = []*sheets.Sheet{{Properties: &sheets.SheetProperties{Title: "Sheet1"}}}
	}
	writeJSON(w, out)
}

func (f *fakeSheets) getSpreadsheet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ss := &sheets.Spreadsheet{
		SpreadsheetId:  testSpreadsheet,
		SpreadsheetUrl: "https://docs.google.com/spreadsheets/d/" + testSpreadsheet + "/edit",
		Properties:     &sheets.SpreadsheetProperties{Title: f.title, Locale: "en_US", TimeZone: "Europe/Amsterdam"},
	}
	entries := map[*fakeSheet]*sheets.Sheet{}
	entry := func(s *fakeSheet) *sheets.Sheet {
		if e, ok := entries[s]; ok {
			return e
		}
		e := &sheets.Sheet{Properties: s.props, ConditionalFormats: s.rules, BandedRanges: s.bands}
		entries[s] = e
		ss.Sheets = append(ss.Sheets, e)
		return e
	}

	ranges := q["ranges"]
	if q.Get("includeGridData") == "true" && len(ranges) > 0 {
		for _, ref := range ranges {
			s, cells := f.locate(ref)
			if s == nil {
				apiError(w, http.StatusBadRequest, "Unable to parse range: "+ref)
				return
			}
			e := entry(s)
			e.Data = append(e.Data, f.gridData(s, cells))
		}
	} else {
		for _, s := range f.tabs {
			entry(s)
		}
	}
	if f.decorate != nil {
		f.decorate(ss)
	}
	writeJSON(w, ss)

	if hook := f.afterMetadata; hook != nil {
		f.afterMetadata = nil
		hook(f)
	}
}

// gridData renders the used part of a rectangle the way includeGridData does.
func (f *fakeSheets) gridData(s *fakeSheet, cells string) *sheets.GridData {
	r0, c0, r1, c1 := s.rect(cells)
	usedRows, usedCols := len(s.values), 0
	for _, row := range s.values {
		usedCols = max(usedCols, len(row))
	}
	for k := range s.formats {
		usedRows = max(usedRows, k[0]+1)
		usedCols = max(usedCols, k[1]+1)
	}
	r1, c1 = min(r1, usedRows), min(c1, usedCols)

	g := &sheets.GridData{StartRow: int64(r0), StartColumn: int64(c0)}
	for r := r0; r < r1; r++ {
		row := &sheets.RowData{}
		for c := c0; c < c1; c++ {
			cd := &sheets.CellData{FormattedValue: values.String(s.cell(r, c))}
			if cf := s.formats[[2]int{r, c}]; cf != nil {
				cd.EffectiveFormat = cf
				cd.UserEnteredFormat = cf
			}
			row.Values = append(row.Values, cd)
		}
		g.RowData = append(g.RowData, row)
	}
	return g
}

func (f *fakeSheets) batchUpdate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		apiError(w, http.StatusBadRequest, err.Error())
		return
	}
	f.batchBodies = append(f.batchBodies, string(body))
	var req sheets.BatchUpdateSpreadsheetRequest
	if err := json.Unmarshal(body, &req); err != nil {
		apiError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp := &sheets.BatchUpdateSpreadsheetResponse{SpreadsheetId: testSpreadsheet}
	for i, rq := range req.Requests {
		reply, err := f.apply(rq)
		if err != nil {
			apiError(w, http.StatusBadRequest, fmt.Sprintf("Invalid requests[%d].%v", i, err))
			return
		}
		resp.Replies = append(resp.Replies, reply)
	}
	writeJSON(w, resp)
}

func (f *fakeSheets) grid(g *sheets.GridRange, op string) (*fakeSheet, error) {
	if g == nil {
		return nil, fmt.Errorf("%s: range is required", op)
	}
	s := f.sheetByID(g.SheetId)
	if s == nil {
		return nil, fmt.Errorf("%s: No grid with id: %d", op, g.SheetId)
	}
	return s, nil
}

func (f *fakeSheets) apply(rq *sheets.Request) (*sheets.Response, error) {
	switch {
	case rq.AddSheet != nil:
		p := rq.AddSheet.Properties
		if f.sheet(p.Title) != nil && p.Title != "" {
			return nil, fmt.Errorf("addSheet: A sheet with the name %q already exists. Please enter another name.", p.Title)
		}
		f.nextSheetID++
		s := newFakeSheet(f.nextSheetID, p.Title, int64(len(f.tabs)))
		if p.Index > 0 && int(p.Index) < len(f.tabs) {
			s.props.Index = p.Index
			f.tabs = append(f.tabs[:p.Index], append([]*fakeSheet{s}, f.tabs[p.Index:]...)...)
		} else {
			f.tabs = append(f.tabs, s)
		}
		return &sheets.Response{AddSheet: &sheets.AddSheetResponse{Properties: s.props}}, nil

	case rq.RepeatCell != nil:
		rc := rq.RepeatCell
		s, err := f.grid(rc.Range, "repeatCell")
		if err != nil {
			return nil, err
		}
		var src *sheets.CellFormat
		if rc.Cell != nil {
			src = rc.Cell.UserEnteredFormat
		}
		g := rc.Range
		for r := g.StartRowIndex; r < g.EndRowIndex; r++ {
			for c := g.StartColumnIndex; c < g.EndColumnIndex; c++ {
				k := [2]int{int(r), int(c)}
				if merged := mergeFormat(s.formats[k], src, rc.Fields); merged != nil {
					s.formats[k] = merged
				} else {
					delete(s.formats, k)
				}
			}
		}
		return &sheets.Response{}, nil

	case rq.AddConditionalFormatRule != nil:
		add := rq.AddConditionalFormatRule
		if add.Rule == nil || len(add.Rule.Ranges) == 0 {
			return nil, fmt.Errorf("addConditionalFormatRule: rule must have ranges")
		}
		s, err := f.grid(add.Rule.Ranges[0], "addConditionalFormatRule")
		if err != nil {
			return nil, err
		}
		i := min(int(add.Index), len(s.rules))
		s.rules = append(s.rules[:i], append([]*sheets.ConditionalFormatRule{add.Rule}, s.rules[i:]...)...)
		return &sheets.Response{}, nil

	case rq.UpdateConditionalFormatRule != nil:
		u := rq.UpdateConditionalFormatRule
		if u.Rule == nil || len(u.Rule.Ranges) == 0 {
			return nil, fmt.Errorf("updateConditionalFormatRule: rule must have ranges")
		}
		s, err := f.grid(u.Rule.Ranges[0], "updateConditionalFormatRule")
		if err != nil {
			return nil, err
		}
		if int(u.Index) >= len(s.rules) {
			return nil, fmt.Errorf("updateConditionalFormatRule: No conditional format on sheet: %d at index: %d", s.props.SheetId, u.Index)
		}
		old := s.rules[u.Index]
		s.rules[u.Index] = u.Rule
		return &sheets.Response{UpdateConditionalFormatRule: &sheets.UpdateConditionalFormatRuleResponse{
			OldIndex: u.Index, OldRule: old, NewIndex: u.Index, NewRule: u.Rule,
		}}, nil

	case rq.DeleteConditionalFormatRule != nil:
		d := rq.DeleteConditionalFormatRule
		s := f.sheetByID(d.SheetId)
		if s == nil {
			return nil, fmt.Errorf("deleteConditionalFormatRule: No grid with id: %d", d.SheetId)
		}
		if int(d.Index) >= len(s.rules) {
			return nil, fmt.Errorf("deleteConditionalFormatRule: No conditional format on sheet: %d at index: %d", d.SheetId, d.Index)
		}
		removed := s.rules[d.Index]
		s.rules = append(s.rules[:d.Index], s.rules[d.Index+1:]...)
		return &sheets.Response{DeleteConditionalFormatRule: &sheets.DeleteConditionalFormatRuleResponse{Rule: removed}}, nil

	case rq.UpdateBorders != nil:
		if _, err := f.grid(rq.UpdateBorders.Range, "updateBorders"); err != nil {
			return nil, err
		}
		return &sheets.Response{}, nil

	case rq.AddBanding != nil:
		br := rq.AddBanding.BandedRange
		s, err := f.grid(br.Range, "addBanding")
		if err != nil {
			return nil, err
		}
		for _, existing := range s.bands {
			if fromAPIGrid(existing.Range).Overlaps(fromAPIGrid(br.Range)) {
				return nil, fmt.Errorf("addBanding: Cannot add alternating background colors to a range that already has alternating background colors.")
			}
		}
		f.nextBandID++
		br.BandedRangeId = f.nextBandID
		s.bands = append(s.bands, br)
		return &sheets.Response{AddBanding: &sheets.AddBandingResponse{BandedRange: br}}, nil

	case rq.DeleteBanding != nil:
		id := rq.DeleteBanding.BandedRangeId
		for _, s := range f.tabs {
			for i, br := range s.bands {
				if br.BandedRangeId == id {
					s.bands = append(s.bands[:i], s.bands[i+1:]...)
					return &sheets.Response{}, nil
				}
			}
		}
		return nil, fmt.Errorf("deleteBanding: No banded range with id: %d", id)

	case rq.AutoResizeDimensions != nil:
		dims := rq.AutoResizeDimensions.Dimensions
		if dims == nil || f.sheetByID(dims.SheetId) == nil {
			return nil, fmt.Errorf("autoResizeDimensions: No grid with id: %v", dims)
		}
		return &sheets.Response{}, nil
	}
	return nil, fmt.Errorf("unsupported request")
}

// mergeFormat applies the fields of src named by mask onto dst. A bare
// "userEnteredFormat" mask replaces the whole format.
func mergeFormat(dst, src *sheets.CellFormat, mask string) *sheets.CellFormat {
	if src == nil {
		src = &sheets.CellFormat{}
	}
	if mask == "userEnteredFormat" {
		if b, _ := json.Marshal(src); string(b) == "{}" {
			return nil
		}
		cp := *src
		return &cp
	}

	out := &sheets.CellFormat{}
	if dst != nil {
		cp := *dst
		out = &cp
		if dst.TextFormat != nil {
			tf := *dst.TextFormat
			out.TextFormat = &tf
		}
	}
	stf := src.TextFormat
	if stf == nil {
		stf = &sheets.TextFormat{}
	}
	for _, path := range strings.Split(mask, ",") {
		path = strings.TrimPrefix(strings.TrimSpace(path), "userEnteredFormat.")
		if field, ok := strings.CutPrefix(path, "textFormat."); ok {
			if out.TextFormat == nil {
				out.TextFormat = &sheets.TextFormat{}
			}
			tf := out.TextFormat
			switch field {
			case "bold":
				tf.Bold = stf.Bold
			case "italic":
				tf.Italic = stf.Italic
			case "underline":
				tf.Underline = stf.Underline
			case "strikethrough":
				tf.Strikethrough = stf.Strikethrough
			case "foregroundColor":
				tf.ForegroundColor = stf.ForegroundColor
			case "fontSize":
				tf.FontSize = stf.FontSize
			case "fontFamily":
				tf.FontFamily = stf.FontFamily
			}
			continue
		}
		switch path {
		case "backgroundColor":
			out.BackgroundColor = src.BackgroundColor
		case "horizontalAlignment":
			out.HorizontalAlignment = src.HorizontalAlignment
		case "verticalAlignment":
			out.VerticalAlignment = src.VerticalAlignment
		case "wrapStrategy":
			out.WrapStrategy = src.WrapStrategy
		case "numberFormat":
			out.NumberFormat = src.NumberFormat
		case "borders":
			out.Borders = src.Borders
		}
	}
	return out
}

// fakeProvider points API clients at the fake server.
type fakeProvider struct {
	url    string
	client *http.Client
}

func (p fakeProvider) Sheets(ctx context.Context, _ string) (*sheets.Service, error) {
	return sheets.NewService(ctx, option.WithEndpoint(p.url+"/"), option.WithHTTPClient(p.client))
}

func (p fakeProvider) Drive(ctx context.Context, _ string) (*drive.Service, error) {
	return drive.NewService(ctx, option.WithEndpoint(p.url+"/drive/v3/"), option.WithHTTPClient(p.client))
}

type testEnv struct {
	fake *fakeSheets
	deps *deps
	logs *bytes.Buffer
}

func newTestEnv(t *testing.T, sheetTitles ...string) *testEnv {
	t.Helper()
	f := newFakeSheets(sheetTitles...)
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return &testEnv{
		fake: f,
		deps: &deps{provider: fakeProvider{url: srv.URL, client: srv.Client()}, logger: logger},
		logs: logs,
	}
}

// run invokes a handler and returns its text.
func run[In any](t *testing.T, h mcp.ToolHandlerFor[In, any], in In) (string, error) {
	t.Helper()
	res, _, err := h(context.Background(), &mcp.CallToolRequest{}, in)
	if err != nil {
		return "", err
	}
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text, nil
}

func mustRun[In any](t *testing.T, h mcp.ToolHandlerFor[In, any], in In) string {
	t.Helper()
	text, err := run(t, h, in)
	require.NoError(t, err)
	return text
}
