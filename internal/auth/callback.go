package auth

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
)

// ClientInvalidator is called after successful OAuth to clear cached API clients.
type ClientInvalidator interface {
	InvalidateClient(userEmail string)
}

// OAuthCallbackHandler returns an http.HandlerFunc that completes the OAuth 2.0
// flow started by start_google_auth. The state parameter must be the signed
// email produced by GetAuthURL; anything else is rejected before the code is
// exchanged. Cached API clients for the user are evicted on success.
func OAuthCallbackHandler(oauthMgr *OAuthManager, invalidator ClientInvalidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		code, state, errMsg := q.Get("code"), q.Get("state"), q.Get("error")

		if errMsg != "" {
			slog.Error("OAuth callback error", "error", errMsg)
			writeFailure(w, http.StatusBadRequest, errMsg)
			return
		}
		if code == "" {
			slog.Error("OAuth callback missing code")
			writeFailure(w, http.StatusBadRequest, "No authorization code received from Google.")
			return
		}

		email, ok := oauthMgr.VerifyAndExtractEmail(state)
		if !ok {
			slog.Error("OAuth callback with invalid state")
			writeFailure(w, http.StatusBadRequest, "Invalid or missing OAuth state. Please restart the authentication from the MCP client.")
			return
		}

		if _, err := oauthMgr.ExchangeCode(r.Context(), code, email); err != nil {
			slog.Error("OAuth token exchange failed", "email", email, "error", err)
			writeFailure(w, http.StatusInternalServerError, fmt.Sprintf("Token exchange failed: %v", err))
			return
		}

		if invalidator != nil {
			invalidator.InvalidateClient(email)
			slog.Info("invalidated cached client after re-auth", "email", email)
		}

		slog.Info("OAuth authentication successful", "email", email)
		writePage(w, http.StatusOK, callbackPage{
			Title:  "Authentication Successful",
			OK:     true,
			Detail: email,
			Note:   "Your Google account is connected and the spreadsheet tools are available. You can close this window.",
		})
	}
}

// callbackPage is the data rendered by pageTemplate.
type callbackPage struct {
	Title  string
	OK     bool
	Detail string
	Note   string
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	writePage(w, status, callbackPage{
		Title:  "Authentication Failed",
		Detail: msg,
		Note:   "Please return to the MCP client and try again.",
	})
}

func writePage(w http.ResponseWriter, status int, page callbackPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, page); err != nil {
		slog.Error("rendering OAuth callback page", "error", err)
	}
}

var pageTemplate = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { font-family: system-ui, sans-serif; background: #1e1e1e; color: #ddd;
           min-height: 100vh; margin: 0; display: flex; align-items: center; justify-content: center; }
    .card { background: #2b2b2b; border: 1px solid #444; border-radius: 12px; padding: 40px;
            max-width: 460px; width: 90%; text-align: center; }
    h1 { font-size: 22px; color: #fff; margin: 0 0 16px; }
    .detail { font-size: 15px; padding: 12px; border-radius: 8px; word-break: break-word; }
    .ok .detail { color: #34a853; }
    .fail .detail { color: #ff6b6b; background: rgba(234, 67, 53, 0.1); }
    .note { font-size: 14px; color: #999; line-height: 1.5; margin-top: 20px; }
    .badge { display: inline-block; margin-top: 24px; font-size: 12px; color: #34a853;
             border: 1px solid #34a853; border-radius: 16px; padding: 4px 14px; text-transform: uppercase; }
  </style>
</head>
<body>
  <div class="card {{if .OK}}ok{{else}}fail{{end}}">
    <h1>{{.Title}}</h1>
    <div class="detail">{{.Detail}}</div>
    <p class="note">{{.Note}}</p>
    <span class="badge">Google Sheets MCP</span>
  </div>
</body>
</html>
`))
