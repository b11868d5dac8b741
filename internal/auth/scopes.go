package auth

// BaseScopes are always requested for user identity.
var BaseScopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"openid",
}

// Sheets scopes. Drive is only read, to discover spreadsheets.
const (
	ScopeSpreadsheets         = "https://www.googleapis.com/auth/spreadsheets"
	ScopeSpreadsheetsReadOnly = "https://www.googleapis.com/auth/spreadsheets.readonly"
	ScopeDriveReadOnly        = "https://www.googleapis.com/auth/drive.readonly"
)

// Scopes returns the scopes to request. With readOnly the spreadsheet scope
// is narrowed to read access.
func Scopes(readOnly bool) []string {
	sheetsScope := ScopeSpreadsheets
	if readOnly {
		sheetsScope = ScopeSpreadsheetsReadOnly
	}
	scopes := make([]string, 0, len(BaseScopes)+2)
	scopes = append(scopes, BaseScopes...)
	return append(scopes, sheetsScope, ScopeDriveReadOnly)
}
