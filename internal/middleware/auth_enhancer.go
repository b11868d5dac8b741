package middleware

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/google-sheets-mcp-go/internal/auth"
)

// authErrorMarkers identify tool errors that a fresh OAuth grant would fix.
var authErrorMarkers = []string{
	"start_google_auth",
	"no credentials found",
	"authentication expired",
}

// AuthURLProvider builds the consent URL for a user.
type AuthURLProvider interface {
	GetAuthURL(userEmail string) string
}

var _ AuthURLProvider = (*auth.OAuthManager)(nil)

// AuthEnhancerMiddleware appends the OAuth consent URL to tool errors caused
// by missing or expired credentials, saving the agent a start_google_auth call.
func AuthEnhancerMiddleware(urls AuthURLProvider) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			result, err := next(ctx, method, req)
			if method != "tools/call" {
				return result, err
			}

			text := authErrorText(result)
			if text == nil {
				return result, err
			}
			if email := userEmailArg(req); email != "" {
				*text += "\n\nPlease authenticate by visiting this URL:\n" + urls.GetAuthURL(email)
			}
			return result, err
		}
	}
}

// authErrorText returns the first text block of an auth-related tool error,
// or nil when the result is anything else (including a typed nil).
func authErrorText(result mcp.Result) *string {
	toolResult, ok := result.(*mcp.CallToolResult)
	if !ok || toolResult == nil || !toolResult.IsError || len(toolResult.Content) == 0 {
		return nil
	}
	tc, ok := toolResult.Content[0].(*mcp.TextContent)
	if !ok || !isAuthRelatedError(tc.Text) {
		return nil
	}
	return &tc.Text
}

func isAuthRelatedError(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range authErrorMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// userEmailArg reads user_google_email from the raw tool arguments.
func userEmailArg(req mcp.Request) string {
	params, ok := req.GetParams().(*mcp.CallToolParamsRaw)
	if !ok || len(params.Arguments) == 0 {
		return ""
	}
	var args struct {
		UserEmail string `json:"user_google_email"`
	}
	if err := json.Unmarshal(params.Arguments, &args); err != nil {
		return ""
	}
	return strings.TrimSpace(args.UserEmail)
}
