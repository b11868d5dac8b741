package sheets

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	z "github.com/Oudwins/zog"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
)

var (
	hexColorRE = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)
	colorMsg   = z.Message("must be a hex color like #FF0000")
)

var (
	valueInputOptions    = []string{"RAW", "USER_ENTERED"}
	insertDataOptions    = []string{"INSERT_ROWS", "OVERWRITE"}
	horizontalAlignments = []string{"LEFT", "CENTER", "RIGHT"}
	verticalAlignments   = []string{"TOP", "MIDDLE", "BOTTOM"}
	wrapStrategies       = []string{"OVERFLOW_CELL", "WRAP", "CLIP"}
	numberFormatTypes    = []string{"TEXT", "NUMBER", "PERCENT", "CURRENCY", "DATE", "TIME", "DATE_TIME", "SCIENTIFIC"}
	borderStyles         = []string{"DOTTED", "DASHED", "SOLID", "SOLID_MEDIUM", "SOLID_THICK", "DOUBLE"}
)

func oneOf(values []string) string {
	return "must be one of " + strings.Join(values, ", ")
}

// writeOptions are the value-write enums shared by the write tools.
type writeOptions struct {
	ValueInputOption string
	InsertDataOption string
}

var writeOptionsSchema = z.Struct(z.Shape{
	"valueInputOption": z.String().OneOf(valueInputOptions, z.Message(oneOf(valueInputOptions))),
	"insertDataOption": z.String().OneOf(insertDataOptions, z.Message(oneOf(insertDataOptions))),
})

// checkWriteOptions upper-cases, validates and defaults the write enums.
func checkWriteOptions(valueInput, insertData string) (writeOptions, error) {
	opts := writeOptions{
		ValueInputOption: strings.ToUpper(strings.TrimSpace(valueInput)),
		InsertDataOption: strings.ToUpper(strings.TrimSpace(insertData)),
	}
	if err := issuesError(writeOptionsSchema.Validate(&opts)); err != nil {
		return writeOptions{}, err
	}
	if opts.ValueInputOption == "" {
		opts.ValueInputOption = "USER_ENTERED"
	}
	if opts.InsertDataOption == "" {
		opts.InsertDataOption = "INSERT_ROWS"
	}
	return opts, nil
}

var listSpreadsheetsSchema = z.Struct(z.Shape{
	"maxResults": z.Int().GTE(0, z.Message("must not be negative")).LTE(1000, z.Message("must be at most 1000")),
})

var formatOptionsSchema = z.Struct(z.Shape{
	"backgroundColor":     z.String().Match(hexColorRE, colorMsg),
	"fontColor":           z.String().Match(hexColorRE, colorMsg),
	"fontSize":            z.Ptr(z.Int().GTE(1, z.Message("must be at least 1")).LTE(400, z.Message("must be at most 400"))),
	"horizontalAlignment": z.String().OneOf(horizontalAlignments, z.Message(oneOf(horizontalAlignments))),
	"verticalAlignment":   z.String().OneOf(verticalAlignments, z.Message(oneOf(verticalAlignments))),
	"textWrap":            z.String().OneOf(wrapStrategies, z.Message(oneOf(wrapStrategies))),
	"numberFormat":        z.String().OneOf(numberFormatTypes, z.Message(oneOf(numberFormatTypes))),
	"borderStyle":         z.String().OneOf(borderStyles, z.Message(oneOf(borderStyles))),
	"borderColor":         z.String().Match(hexColorRE, colorMsg),
})

var conditionalRuleSchema = z.Struct(z.Shape{
	"ruleType":         z.String().Required(z.Message("is required")).OneOf(ruleTypes, z.Message(oneOf(ruleTypes))),
	"backgroundColor":  z.String().Match(hexColorRE, colorMsg),
	"fontColor":        z.String().Match(hexColorRE, colorMsg),
	"gradientMinColor": z.String().Match(hexColorRE, colorMsg),
	"gradientMidColor": z.String().Match(hexColorRE, colorMsg),
	"gradientMaxColor": z.String().Match(hexColorRE, colorMsg),
})

var tableStyleSchema = z.Struct(z.Shape{
	"headerBackgroundColor": z.String().Match(hexColorRE, colorMsg),
	"headerTextColor":       z.String().Match(hexColorRE, colorMsg),
	"firstBandColor":        z.String().Match(hexColorRE, colorMsg),
	"secondBandColor":       z.String().Match(hexColorRE, colorMsg),
	"borderStyle":           z.String().OneOf(borderStyles, z.Message(oneOf(borderStyles))),
	"borderColor":           z.String().Match(hexColorRE, colorMsg),
})

// issuesError flattens zog issues into one invalid-input error with
// snake_case argument names, sorted so the message is stable.
func issuesError(issues z.ZogIssueMap) error {
	if len(issues) == 0 {
		return nil
	}
	messages := z.Issues.SanitizeMap(issues)
	keys := make([]string, 0, len(messages))
	for k := range messages {
		if strings.HasPrefix(k, "$") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", snakeCase(k), strings.Join(messages[k], "; ")))
	}
	if len(parts) == 0 {
		return apperr.Invalid("invalid arguments")
	}
	return apperr.Invalid("%s", strings.Join(parts, "; "))
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
