package sheets

import (
	"context"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/a1"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/color"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/values"
)

var ruleTypes = []string{
	"custom_formula",
	"number_greater",
	"number_less",
	"number_between",
	"text_contains",
	"text_starts_with",
	"text_ends_with",
	"date_before",
	"date_after",
	"gradient",
}

var relativeDates = map[string]bool{
	"PAST_YEAR":  true,
	"PAST_MONTH": true,
	"PAST_WEEK":  true,
	"YESTERDAY":  true,
	"TODAY":      true,
	"TOMORROW":   true,
}

const (
	gradientMinDefault = "#FFFFFF"
	gradientMidDefault = "#FFFF00"
	gradientMaxDefault = "#FF0000"
)

// ruleSpec is a conditional rule as the add and update tools receive it.
type ruleSpec struct {
	RuleType         string
	Formula          string
	Value            any
	MinValue         any
	MaxValue         any
	BackgroundColor  string
	FontColor        string
	Bold             any
	Italic           any
	Underline        any
	Strikethrough    any
	GradientMinColor string
	GradientMidColor string
	GradientMaxColor string
	GradientMinValue *float64
	GradientMidValue *float64
	GradientMaxValue *float64
}

// buildRule validates spec and converts it into an API rule over ranges.
func buildRule(spec ruleSpec, ranges []*sheets.GridRange) (*sheets.ConditionalFormatRule, error) {
	spec.RuleType = strings.ToLower(strings.TrimSpace(spec.RuleType))
	if err := issuesError(conditionalRuleSchema.Validate(&spec)); err != nil {
		return nil, err
	}
	rule := &sheets.ConditionalFormatRule{Ranges: ranges}
	if spec.RuleType == "gradient" {
		g, err := gradientRule(spec)
		if err != nil {
			return nil, err
		}
		rule.GradientRule = g
		return rule, nil
	}

	cond, err := booleanCondition(spec)
	if err != nil {
		return nil, err
	}
	br := &sheets.BooleanRule{Condition: cond}
	cf, err := ruleFormat(spec)
	if err != nil {
		return nil, err
	}
	br.Format = cf
	rule.BooleanRule = br
	return rule, nil
}

func booleanCondition(spec ruleSpec) (*sheets.BooleanCondition, error) {
	cond := &sheets.BooleanCondition{Type: strings.ToUpper(spec.RuleType)}
	value := strings.TrimSpace(values.String(spec.Value))

	switch spec.RuleType {
	case "custom_formula":
		if strings.TrimSpace(spec.Formula) == "" {
			return nil, apperr.Invalid("formula is required for rule type custom_formula")
		}
		cond.Type = "CUSTOM_FORMULA"
		cond.Values = []*sheets.ConditionValue{{UserEnteredValue: spec.Formula}}
	case "number_greater", "number_less":
		if spec.Value == nil || value == "" {
			return nil, apperr.Invalid("value is required for rule type %s", spec.RuleType)
		}
		cond.Values = []*sheets.ConditionValue{{UserEnteredValue: value}}
	case "number_between":
		lo, hi := strings.TrimSpace(values.String(spec.MinValue)), strings.TrimSpace(values.String(spec.MaxValue))
		if lo == "" || hi == "" {
			return nil, apperr.Invalid("min_value and max_value are both required for rule type number_between")
		}
		cond.Values = []*sheets.ConditionValue{{UserEnteredValue: lo}, {UserEnteredValue: hi}}
	case "text_contains", "text_starts_with", "text_ends_with":
		if value == "" {
			return nil, apperr.Invalid("value is required for rule type %s", spec.RuleType)
		}
		cond.Values = []*sheets.ConditionValue{{UserEnteredValue: value}}
	case "date_before", "date_after":
		if value == "" {
			return nil, apperr.Invalid("value is required for rule type %s", spec.RuleType)
		}
		if kw := strings.ToUpper(value); relativeDates[kw] {
			cond.Values = []*sheets.ConditionValue{{RelativeDate: kw}}
		} else {
			cond.Values = []*sheets.ConditionValue{{UserEnteredValue: value}}
		}
	}
	return cond, nil
}

// ruleFormat returns the format applied when a boolean rule matches, or nil
// when the caller set none.
func ruleFormat(spec ruleSpec) (*sheets.CellFormat, error) {
	cf := &sheets.CellFormat{}
	set := false
	if spec.BackgroundColor != "" {
		c, err := color.HexToRGB(spec.BackgroundColor)
		if err != nil {
			return nil, err
		}
		cf.BackgroundColor = c.Sheets()
		set = true
	}
	tf := &sheets.TextFormat{}
	fields, err := textStyle{
		FontColor:     spec.FontColor,
		Bold:          spec.Bold,
		Italic:        spec.Italic,
		Underline:     spec.Underline,
		Strikethrough: spec.Strikethrough,
	}.apply(tf)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		cf.TextFormat = tf
		set = true
	}
	if !set {
		return nil, nil
	}
	return cf, nil
}

func gradientRule(spec ruleSpec) (*sheets.GradientRule, error) {
	point := func(typ string, value *float64, hex, fallback string) (*sheets.InterpolationPoint, error) {
		c, err := color.HexToRGB(orDefault(hex, fallback))
		if err != nil {
			return nil, err
		}
		p := &sheets.InterpolationPoint{Type: typ, Color: c.Sheets()}
		if value != nil {
			p.Value = strconv.FormatFloat(*value, 'f', -1, 64)
		}
		return p, nil
	}

	g := &sheets.GradientRule{}
	var err error
	if spec.GradientMinValue != nil && spec.GradientMaxValue != nil {
		if g.Minpoint, err = point("NUMBER", spec.GradientMinValue, spec.GradientMinColor, gradientMinDefault); err != nil {
			return nil, err
		}
		if g.Maxpoint, err = point("NUMBER", spec.GradientMaxValue, spec.GradientMaxColor, gradientMaxDefault); err != nil {
			return nil, err
		}
		if spec.GradientMidValue != nil {
			if g.Midpoint, err = point("NUMBER", spec.GradientMidValue, spec.GradientMidColor, gradientMidDefault); err != nil {
				return nil, err
			}
		}
		return g, nil
	}
	if g.Minpoint, err = point("MIN", nil, spec.GradientMinColor, gradientMinDefault); err != nil {
		return nil, err
	}
	if g.Maxpoint, err = point("MAX", nil, spec.GradientMaxColor, gradientMaxDefault); err != nil {
		return nil, err
	}
	return g, nil
}

// describeRule writes the index, kind, ranges and condition of one rule.
func describeRule(rb *response.Builder, index int, rule *sheets.ConditionalFormatRule, sheetName string) {
	kind, condition := "Unknown Rule", "Unknown"
	var vals []string
	switch {
	case rule.BooleanRule != nil:
		kind = "Boolean Rule"
		if c := rule.BooleanRule.Condition; c != nil {
			condition = orDefault(c.Type, "Unknown")
			for _, v := range c.Values {
				vals = append(vals, orDefault(v.UserEnteredValue, v.RelativeDate))
			}
		}
	case rule.GradientRule != nil:
		kind, condition = "Gradient Rule", "Gradient"
	}

	ranges := make([]string, 0, len(rule.Ranges))
	for _, g := range rule.Ranges {
		ranges = append(ranges, a1.FromGridRange(fromAPIGrid(g), sheetName))
	}

	rb.Line("  Rule %d: %s", index, kind)
	rb.Line("    Ranges: %s", strings.Join(ranges, ", "))
	rb.Line("    Condition: %s", condition)
	if len(vals) > 0 {
		rb.Line("    Values: %s", strings.Join(vals, ", "))
	}
}

// --- add_conditional_format_rule ---

type AddConditionalFormatRuleInput struct {
	UserEmail        string   `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID    string   `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	Ranges           []string `json:"ranges" jsonschema:"required" jsonschema_description:"A1 ranges the rule applies to (e.g. [\"A1:D10\", \"Sheet2!F1:F20\"])"`
	RuleType         string   `json:"rule_type" jsonschema:"required" jsonschema_description:"custom_formula, number_greater, number_less, number_between, text_contains, text_starts_with, text_ends_with, date_before, date_after or gradient"`
	Formula          string   `json:"formula,omitempty" jsonschema_description:"Formula for custom_formula (e.g. =$B1>100)"`
	Value            any      `json:"value,omitempty" jsonschema_description:"Comparison value for number, text and date rules. Dates accept PAST_YEAR, PAST_MONTH, PAST_WEEK, YESTERDAY, TODAY or TOMORROW"`
	MinValue         any      `json:"min_value,omitempty" jsonschema_description:"Lower bound for number_between"`
	MaxValue         any      `json:"max_value,omitempty" jsonschema_description:"Upper bound for number_between"`
	BackgroundColor  string   `json:"background_color,omitempty" jsonschema_description:"Background color when the condition holds (#RRGGBB)"`
	FontColor        string   `json:"font_color,omitempty" jsonschema_description:"Text color when the condition holds (#RRGGBB)"`
	Bold             any      `json:"bold,omitempty" jsonschema_description:"Bold text when the condition holds"`
	Italic           any      `json:"italic,omitempty" jsonschema_description:"Italic text when the condition holds"`
	Underline        any      `json:"underline,omitempty" jsonschema_description:"Underlined text when the condition holds"`
	Strikethrough    any      `json:"strikethrough,omitempty" jsonschema_description:"Strikethrough text when the condition holds"`
	GradientMinColor string   `json:"gradient_min_color,omitempty" jsonschema_description:"Gradient color at the minimum (default #FFFFFF)"`
	GradientMidColor string   `json:"gradient_mid_color,omitempty" jsonschema_description:"Gradient color at the midpoint (default #FFFF00)"`
	GradientMaxColor string   `json:"gradient_max_color,omitempty" jsonschema_description:"Gradient color at the maximum (default #FF0000)"`
	GradientMinValue *float64 `json:"gradient_min_value,omitempty" jsonschema_description:"Number at the gradient minimum; with gradient_max_value uses fixed points instead of MIN/MAX"`
	GradientMidValue *float64 `json:"gradient_mid_value,omitempty" jsonschema_description:"Number at the gradient midpoint"`
	GradientMaxValue *float64 `json:"gradient_max_value,omitempty" jsonschema_description:"Number at the gradient maximum"`
}

func (in AddConditionalFormatRuleInput) spec() ruleSpec {
	return ruleSpec{
		RuleType:         in.RuleType,
		Formula:          in.Formula,
		Value:            in.Value,
		MinValue:         in.MinValue,
		MaxValue:         in.MaxValue,
		BackgroundColor:  strings.TrimSpace(in.BackgroundColor),
		FontColor:        strings.TrimSpace(in.FontColor),
		Bold:             in.Bold,
		Italic:           in.Italic,
		Underline:        in.Underline,
		Strikethrough:    in.Strikethrough,
		GradientMinColor: strings.TrimSpace(in.GradientMinColor),
		GradientMidColor: strings.TrimSpace(in.GradientMidColor),
		GradientMaxColor: strings.TrimSpace(in.GradientMaxColor),
		GradientMinValue: in.GradientMinValue,
		GradientMidValue: in.GradientMidValue,
		GradientMaxValue: in.GradientMaxValue,
	}
}

// prepareRule checks the rule and every range, then maps the ranges onto
// sheet IDs. Nothing is sent when any part is invalid.
func prepareRule(ctx context.Context, srv *sheets.Service, spreadsheetID string, spec ruleSpec, refs []string) (*sheets.ConditionalFormatRule, []Target, error) {
	if _, err := buildRule(spec, nil); err != nil {
		return nil, nil, err
	}
	targets, err := resolveTargets(ctx, srv, spreadsheetID, refs...)
	if err != nil {
		return nil, nil, err
	}
	grids := make([]*sheets.GridRange, 0, len(targets))
	for _, t := range targets {
		grids = append(grids, toAPIGrid(t.Grid))
	}
	rule, err := buildRule(spec, grids)
	return rule, targets, err
}

func targetNames(targets []Target) string {
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.A1())
	}
	return strings.Join(names, ", ")
}

func createAddConditionalFormatRuleHandler(d *deps) mcp.ToolHandlerFor[AddConditionalFormatRuleInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AddConditionalFormatRuleInput) (*mcp.CallToolResult, any, error) {
		if _, err := parseRefs(input.Ranges); err != nil {
			return fail(err)
		}
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		d.logger.InfoContext(ctx, "add_conditional_format_rule", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "ruleType", input.RuleType)

		rule, targets, err := prepareRule(ctx, srv, input.SpreadsheetID, input.spec(), input.Ranges)
		if err != nil {
			return fail(err)
		}
		// New rules go first, which is where the API inserts without an index.
		_, err = srv.Spreadsheets.BatchUpdate(input.SpreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{AddConditionalFormatRule: &sheets.AddConditionalFormatRuleRequest{
				Rule:            rule,
				ForceSendFields: []string{"Index"},
			}}},
		}).Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		rb := response.New()
		rb.Header("Conditional Format Rule Added")
		rb.KeyValue("Spreadsheet", input.SpreadsheetID)
		rb.KeyValue("Rule index", 0)
		rb.KeyValue("Rule type", strings.ToLower(strings.TrimSpace(input.RuleType)))
		rb.KeyValue("Ranges", targetNames(targets))

		d.logger.InfoContext(ctx, "added conditional format rule", "ranges", len(targets))
		return rb.TextResult(), nil, nil
	}
}

// --- update_conditional_format_rule ---

type UpdateConditionalFormatRuleInput struct {
	UserEmail        string   `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID    string   `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	RuleIndex        int64    `json:"rule_index" jsonschema:"required" jsonschema_description:"Index of the rule to replace, as shown by list_conditional_format_rules"`
	Ranges           []string `json:"ranges" jsonschema:"required" jsonschema_description:"A1 ranges the new rule applies to; all on the rule's sheet"`
	RuleType         string   `json:"rule_type" jsonschema:"required" jsonschema_description:"custom_formula, number_greater, number_less, number_between, text_contains, text_starts_with, text_ends_with, date_before, date_after or gradient"`
	Formula          string   `json:"formula,omitempty" jsonschema_description:"Formula for custom_formula"`
	Value            any      `json:"value,omitempty" jsonschema_description:"Comparison value for number, text and date rules"`
	MinValue         any      `json:"min_value,omitempty" jsonschema_description:"Lower bound for number_between"`
	MaxValue         any      `json:"max_value,omitempty" jsonschema_description:"Upper bound for number_between"`
	BackgroundColor  string   `json:"background_color,omitempty" jsonschema_description:"Background color when the condition holds (#RRGGBB)"`
	FontColor        string   `json:"font_color,omitempty" jsonschema_description:"Text color when the condition holds (#RRGGBB)"`
	Bold             any      `json:"bold,omitempty" jsonschema_description:"Bold text when the condition holds"`
	Italic           any      `json:"italic,omitempty" jsonschema_description:"Italic text when the condition holds"`
	Underline        any      `json:"underline,omitempty" jsonschema_description:"Underlined text when the condition holds"`
	Strikethrough    any      `json:"strikethrough,omitempty" jsonschema_description:"Strikethrough text when the condition holds"`
	GradientMinColor string   `json:"gradient_min_color,omitempty" jsonschema_description:"Gradient color at the minimum (default #FFFFFF)"`
	GradientMidColor string   `json:"gradient_mid_color,omitempty" jsonschema_description:"Gradient color at the midpoint (default #FFFF00)"`
	GradientMaxColor string   `json:"gradient_max_color,omitempty" jsonschema_description:"Gradient color at the maximum (default #FF0000)"`
	GradientMinValue *float64 `json:"gradient_min_value,omitempty" jsonschema_description:"Number at the gradient minimum"`
	GradientMidValue *float64 `json:"gradient_mid_value,omitempty" jsonschema_description:"Number at the gradient midpoint"`
	GradientMaxValue *float64 `json:"gradient_max_value,omitempty" jsonschema_description:"Number at the gradient maximum"`
}

func (in UpdateConditionalFormatRuleInput) spec() ruleSpec {
	return AddConditionalFormatRuleInput{
		RuleType:         in.RuleType,
		Formula:          in.Formula,
		Value:            in.Value,
		MinValue:         in.MinValue,
		MaxValue:         in.MaxValue,
		BackgroundColor:  in.BackgroundColor,
		FontColor:        in.FontColor,
		Bold:             in.Bold,
		Italic:           in.Italic,
		Underline:        in.Underline,
		Strikethrough:    in.Strikethrough,
		GradientMinColor: in.GradientMinColor,
		GradientMidColor: in.GradientMidColor,
		GradientMaxColor: in.GradientMaxColor,
		GradientMinValue: in.GradientMinValue,
		GradientMidValue: in.GradientMidValue,
		GradientMaxValue: in.GradientMaxValue,
	}.spec()
}

func createUpdateConditionalFormatRuleHandler(d *deps) mcp.ToolHandlerFor[UpdateConditionalFormatRuleInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UpdateConditionalFormatRuleInput) (*mcp.CallToolResult, any, error) {
		if input.RuleIndex < 0 {
			return fail(apperr.Invalid("rule_index must not be negative"))
		}
		if _, err := parseRefs(input.Ranges); err != nil {
			return fail(err)
		}
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		d.logger.InfoContext(ctx, "update_conditional_format_rule", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "index", input.RuleIndex)

		rule, targets, err := prepareRule(ctx, srv, input.SpreadsheetID, input.spec(), input.Ranges)
		if err != nil {
			return fail(err)
		}
		sheetID := targets[0].Grid.SheetID
		for _, t := range targets[1:] {
			if t.Grid.SheetID != sheetID {
				return fail(apperr.Invalid("all ranges of a rule must be on one sheet; got %s", targetNames(targets)))
			}
		}

		result, err := srv.Spreadsheets.BatchUpdate(input.SpreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{UpdateConditionalFormatRule: &sheets.UpdateConditionalFormatRuleRequest{
				Index:           input.RuleIndex,
				Rule:            rule,
				ForceSendFields: []string{"Index"},
			}}},
		}).Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		rb := response.New()
		rb.Header("Conditional Format Rule Updated")
		rb.KeyValue("Spreadsheet", input.SpreadsheetID)
		rb.KeyValue("Rule index", input.RuleIndex)
		rb.KeyValue("Ranges", targetNames(targets))
		if len(result.Replies) > 0 && result.Replies[0].UpdateConditionalFormatRule != nil {
			if old := result.Replies[0].UpdateConditionalFormatRule.OldRule; old != nil {
				rb.Blank()
				rb.Section("Replaced rule")
				describeRule(rb, int(input.RuleIndex), old, targets[0].SheetName)
			}
		}

		d.logger.InfoContext(ctx, "updated conditional format rule", "index", input.RuleIndex)
		return rb.TextResult(), nil, nil
	}
}

// --- list_conditional_format_rules ---

type ListConditionalFormatRulesInput struct {
	UserEmail     string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	SheetName     string `json:"sheet_name,omitempty" jsonschema_description:"Only list rules of this sheet (default: all sheets)"`
}

func createListConditionalFormatRulesHandler(d *deps) mcp.ToolHandlerFor[ListConditionalFormatRulesInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListConditionalFormatRulesInput) (*mcp.CallToolResult, any, error) {
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		d.logger.InfoContext(ctx, "list_conditional_format_rules", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "sheet", input.SheetName)

		ss, err := srv.Spreadsheets.Get(input.SpreadsheetID).
			Fields(googleapi.Field("spreadsheetId,sheets(properties(sheetId,title),conditionalFormats)")).
			Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		name := strings.TrimSpace(input.SheetName)
		if name != "" {
			if _, err := sheetByTitle(ss, name); err != nil {
				return fail(err)
			}
		}

		rb := response.New()
		total := 0
		for _, s := range ss.Sheets {
			if s.Properties == nil || (name != "" && s.Properties.Title != name) || len(s.ConditionalFormats) == 0 {
				continue
			}
			if total == 0 {
				rb.Header("Conditional Format Rules")
				rb.KeyValue("Spreadsheet", input.SpreadsheetID)
			}
			rb.Blank()
			rb.Section("Sheet: %s", s.Properties.Title)
			for i, rule := range s.ConditionalFormats {
				describeRule(rb, i, rule, s.Properties.Title)
			}
			total += len(s.ConditionalFormats)
		}
		if total == 0 {
			return response.New().Line("No conditional formatting rules found in spreadsheet %s.", input.SpreadsheetID).TextResult(), nil, nil
		}

		d.logger.InfoContext(ctx, "listed conditional format rules", "count", total)
		return rb.TextResult(), nil, nil
	}
}

// --- delete_conditional_format_rule ---

type DeleteConditionalFormatRuleInput struct {
	UserEmail     string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address"`
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"required" jsonschema_description:"The ID of the spreadsheet"`
	RuleIndex     int64  `json:"rule_index" jsonschema:"required" jsonschema_description:"Index of the rule to delete, as shown by list_conditional_format_rules"`
	SheetName     string `json:"sheet_name" jsonschema:"required" jsonschema_description:"Sheet that holds the rule"`
}

func createDeleteConditionalFormatRuleHandler(d *deps) mcp.ToolHandlerFor[DeleteConditionalFormatRuleInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DeleteConditionalFormatRuleInput) (*mcp.CallToolResult, any, error) {
		if input.RuleIndex < 0 {
			return fail(apperr.Invalid("rule_index must not be negative"))
		}
		name := strings.TrimSpace(input.SheetName)
		if name == "" {
			return fail(apperr.Invalid("sheet_name is required"))
		}
		srv, err := d.open(ctx, input.UserEmail, input.SpreadsheetID)
		if err != nil {
			return fail(err)
		}
		d.logger.InfoContext(ctx, "delete_conditional_format_rule", "user", input.UserEmail, "spreadsheet", input.SpreadsheetID, "sheet", name, "index", input.RuleIndex)

		sheetID, title, err := ResolveSheetID(ctx, srv, input.SpreadsheetID, name)
		if err != nil {
			return fail(err)
		}
		_, err = srv.Spreadsheets.BatchUpdate(input.SpreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{DeleteConditionalFormatRule: &sheets.DeleteConditionalFormatRuleRequest{
				SheetId:         sheetID,
				Index:           input.RuleIndex,
				ForceSendFields: []string{"SheetId", "Index"},
			}}},
		}).Context(ctx).Do()
		if err != nil {
			return fail(err)
		}

		rb := response.New()
		rb.Header("Conditional Format Rule Deleted")
		rb.KeyValue("Spreadsheet", input.SpreadsheetID)
		rb.KeyValue("Sheet", title)
		rb.KeyValue("Rule index", input.RuleIndex)

		d.logger.InfoContext(ctx, "deleted conditional format rule", "sheet", title, "index", input.RuleIndex)
		return rb.TextResult(), nil, nil
	}
}
