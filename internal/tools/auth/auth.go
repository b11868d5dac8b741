// Package auth implements the start_google_auth MCP tool.
package auth

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	iauth "github.com/evert/google-sheets-mcp-go/internal/auth"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/ptr"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/response"
	"github.com/evert/google-sheets-mcp-go/internal/pkg/validate"
)

// ToolName is the registered name of the authentication tool.
const ToolName = "start_google_auth"

var serviceIcons = []mcp.Icon{{
	Source:   "https://www.gstatic.com/images/branding/product/1x/googleg_48dp.png",
	MIMEType: "image/png",
	Sizes:    []string{"48x48"},
}}

// Tool describes start_google_auth.
var Tool = &mcp.Tool{
	Name:        ToolName,
	Icons:       serviceIcons,
	Description: "Start the Google OAuth 2.0 flow for a user. Returns a URL the user must open to grant access to their Google Sheets. Tokens are stored by the server once the user completes consent, and every sheets tool can then act on their behalf.",
	Annotations: &mcp.ToolAnnotations{
		Title:         "Authenticate with Google",
		OpenWorldHint: ptr.Bool(true),
	},
}

// Register registers the start_google_auth tool with the MCP server.
func Register(server *mcp.Server, oauthMgr *iauth.OAuthManager) {
	mcp.AddTool(server, Tool, createStartAuthHandler(oauthMgr))
}

type StartAuthInput struct {
	UserEmail string `json:"user_google_email" jsonschema:"required" jsonschema_description:"The user's Google email address to authenticate"`
}

func createStartAuthHandler(oauthMgr *iauth.OAuthManager) mcp.ToolHandlerFor[StartAuthInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StartAuthInput) (*mcp.CallToolResult, any, error) {
		if err := validate.Email(input.UserEmail); err != nil {
			return nil, nil, err
		}

		rb := response.New()
		rb.Header("Google Authentication")
		rb.Line("Please visit the following URL to authenticate:")
		rb.Blank()
		rb.Line("%s", oauthMgr.GetAuthURL(input.UserEmail))
		rb.Blank()
		rb.Line("After granting access, the OAuth callback stores the credentials automatically.")
		rb.KeyValue("Authenticating as", input.UserEmail)

		return rb.TextResult(), nil, nil
	}
}
