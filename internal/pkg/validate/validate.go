// Package validate checks identifiers before they reach the Google APIs.
package validate

import (
	"regexp"
	"strings"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
)

// spreadsheetIDRE matches Drive file IDs, which is what a spreadsheet ID is.
var spreadsheetIDRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,128}$`)

// SpreadsheetID rejects IDs that would change the meaning of a request path
// or a Drive query.
func SpreadsheetID(id string) error {
	if !spreadsheetIDRE.MatchString(id) {
		return apperr.Invalid("spreadsheet ID %q must contain only letters, digits, hyphens and underscores; copy it from the URL between /d/ and /edit", id)
	}
	return nil
}

// emailRE matches basic email format: local@domain with at least one dot in domain.
var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validates that the given string looks like an email address.
func Email(email string) error {
	if len(email) > 254 {
		return apperr.Invalid("email address too long (max 254 characters)")
	}
	if !emailRE.MatchString(email) {
		return apperr.Invalid("invalid email address %q", email)
	}
	return nil
}

// SheetName rejects blank sheet titles.
func SheetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Invalid("sheet name must not be empty")
	}
	return nil
}

// QueryLiteral escapes s for use inside a single-quoted Drive query string.
func QueryLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
