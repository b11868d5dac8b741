package middleware

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"

	"github.com/evert/google-sheets-mcp-go/internal/pkg/apperr"
)

// statusHints maps HTTP status codes to the next step an agent should take.
// A hint containing %s receives the Google error message.
var statusHints = map[int]string{
	401: "authentication expired for this user: call start_google_auth tool to re-authenticate, " +
		"or verify the OAuth configuration is correct",
	403: "permission denied: the spreadsheet may not be shared with this user, or the server runs " +
		"with read-only scopes. Detail: %s",
	404: "spreadsheet not found: verify the spreadsheet_id (use list_spreadsheets) and that the user has access to it",
	409: "conflict: the spreadsheet was modified by another process. Retry with the latest version. Detail: %s",
	429: "rate limit exceeded for the Sheets API: wait 30-60 seconds before retrying this tool call",
}

// badRequestHints are matched in order against the message of a 400 response.
var badRequestHints = []struct {
	match func(msg string) bool
	hint  string
}{
	{
		match: func(msg string) bool { return strings.Contains(msg, "Unable to parse range") },
		hint:  "invalid range: use A1 notation such as Sheet1!A1:D10, and quote sheet names with spaces ('My Sheet'!A1). Detail: %s",
	},
	{
		match: func(msg string) bool { return strings.Contains(msg, "No grid with id") },
		hint: "the target sheet no longer exists; it may have been deleted or renamed since it was looked up. " +
			"Call get_spreadsheet_info and retry. Detail: %s",
	},
	{
		match: func(msg string) bool {
			return strings.Contains(msg, "Invalid requests") && strings.Contains(strings.ToLower(msg), "conditionalformat")
		},
		hint: "conditional format request rejected: check rule_index with list_conditional_format_rules. Detail: %s",
	},
}

// HandleGoogleAPIError translates Google API errors into agent-actionable messages.
// The two apperr classes get a suffix naming the next step; their sentinel
// stays reachable through errors.Is.
func HandleGoogleAPIError(err error) error {
	if err == nil {
		return nil
	}

	var googleErr *googleapi.Error
	if errors.As(err, &googleErr) {
		return translateStatus(googleErr.Code, googleErr.Message)
	}

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return fmt.Errorf("%w. Call get_spreadsheet_info to list the sheets that exist", err)
	case errors.Is(err, apperr.ErrInvalidInput):
		return fmt.Errorf("%w. Fix the arguments and call the tool again", err)
	}
	return err
}

func translateStatus(code int, msg string) error {
	if code == 400 {
		for _, h := range badRequestHints {
			if h.match(msg) {
				return fmt.Errorf(h.hint, msg)
			}
		}
		return fmt.Errorf("bad request: check that all required parameters are provided and valid. Detail: %s", msg)
	}
	if hint, ok := statusHints[code]; ok {
		if strings.Contains(hint, "%s") {
			return fmt.Errorf(hint, msg)
		}
		return errors.New(hint)
	}
	if code >= 500 && code <= 503 {
		return fmt.Errorf("Google API server error (%d): this is a transient issue, retry after a few seconds. Detail: %s", code, msg)
	}
	return fmt.Errorf("Google API error (%d): %s", code, msg)
}
