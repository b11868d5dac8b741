package sheets

import (
	"context"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/a1"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
)

// Mutating tools that address cells by A1 reference run in two steps: read
// the sheet list to turn a sheet name into its numeric ID, then send the
// batchUpdate carrying that ID. Nothing holds the ID stable in between; if the
// sheet is deleted or renamed meanwhile the API rejects the stale ID and the
// error surfaces unchanged.

const sheetPropertiesFields = "spreadsheetId,properties.title,sheets.properties"

// Target is an A1 reference resolved against the spreadsheet's sheets.
type Target struct {
	SheetName string
	Grid      a1.GridRange
}

// A1 renders the target back to a sheet-qualified reference.
func (t Target) A1() string {
	return a1.FromGridRange(t.Grid, t.SheetName)
}

// ResolveSheetID returns the ID and title of the named sheet. An empty name
// selects the first sheet, the same sheet the API uses for unqualified A1.
func ResolveSheetID(ctx context.Context, srv *sheets.Service, spreadsheetID, sheetName string) (int64, string, error) {
	ss, err := fetchSheetList(ctx, srv, spreadsheetID)
	if err != nil {
		return 0, "", err
	}
	props, err := sheetByTitle(ss, sheetName)
	if err != nil {
		return 0, "", err
	}
	return props.SheetId, props.Title, nil
}

// fetchSheetList reads the sheet properties plus any extra partial-response
// fields the caller needs from the same metadata read.
func fetchSheetList(ctx context.Context, srv *sheets.Service, spreadsheetID string, extraFields ...string) (*sheets.Spreadsheet, error) {
	fields := append([]string{sheetPropertiesFields}, extraFields...)
	return srv.Spreadsheets.Get(spreadsheetID).
		Fields(googleapi.Field(strings.Join(fields, ","))).
		Context(ctx).Do()
}

func sheetByTitle(ss *sheets.Spreadsheet, title string) (*sheets.SheetProperties, error) {
	for _, s := range ss.Sheets {
		if s.Properties == nil {
			continue
		}
		if title == "" || s.Properties.Title == title {
			return s.Properties, nil
		}
	}
	if title == "" {
		return nil, apperr.NotFound("spreadsheet %s has no sheets", ss.SpreadsheetId)
	}
	return nil, apperr.NotFound("sheet %q not found in spreadsheet", title)
}

// parseRefs validates every reference before any remote call is made.
func parseRefs(refs []string) ([]a1.CellRange, error) {
	if len(refs) == 0 {
		return nil, apperr.Invalid("at least one range is required")
	}
	parsed := make([]a1.CellRange, 0, len(refs))
	for _, ref := range refs {
		r, err := a1.Parse(ref)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, r)
	}
	return parsed, nil
}

// resolveTargets parses refs and maps them onto sheet IDs with a single
// metadata read.
func resolveTargets(ctx context.Context, srv *sheets.Service, spreadsheetID string, refs ...string) ([]Target, error) {
	parsed, err := parseRefs(refs)
	if err != nil {
		return nil, err
	}
	ss, err := fetchSheetList(ctx, srv, spreadsheetID)
	if err != nil {
		return nil, err
	}
	return targetsIn(ss, parsed)
}

func targetsIn(ss *sheets.Spreadsheet, parsed []a1.CellRange) ([]Target, error) {
	targets := make([]Target, 0, len(parsed))
	for _, r := range parsed {
		props, err := sheetByTitle(ss, r.SheetName)
		if err != nil {
			return nil, err
		}
		targets = append(targets, Target{SheetName: props.Title, Grid: r.Grid(props.SheetId)})
	}
	return targets, nil
}

func resolveTarget(ctx context.Context, srv *sheets.Service, spreadsheetID, ref string) (Target, error) {
	targets, err := resolveTargets(ctx, srv, spreadsheetID, ref)
	if err != nil {
		return Target{}, err
	}
	return targets[0], nil
}

func toAPIGrid(g a1.GridRange) *sheets.GridRange {
	return &sheets.GridRange{
		SheetId:          g.SheetID,
		StartRowIndex:    g.StartRowIndex,
		EndRowIndex:      g.EndRowIndex,
		StartColumnIndex: g.StartColumnIndex,
		EndColumnIndex:   g.EndColumnIndex,
	}
}

func fromAPIGrid(g *sheets.GridRange) a1.GridRange {
	if g == nil {
		return a1.GridRange{}
	}
	return a1.GridRange{
		SheetID:          g.SheetId,
		StartRowIndex:    g.StartRowIndex,
		EndRowIndex:      g.EndRowIndex,
		StartColumnIndex: g.StartColumnIndex,
		EndColumnIndex:   g.EndColumnIndex,
	}
}
