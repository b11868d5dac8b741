package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuthManager handles OAuth2 configuration, signed state and token exchange.
type OAuthManager struct {
	config     *oauth2.Config
	tokenStore TokenStore
}

// NewOAuthManager creates an OAuth manager with the given credentials.
func NewOAuthManager(clientID, clientSecret, redirectURL string, scopes []string, store TokenStore) *OAuthManager {
	return &OAuthManager{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
		tokenStore: store,
	}
}

// GetAuthURL returns the consent URL for userEmail. The state parameter
// carries the email signed with the client secret so the callback can trust it.
func (m *OAuthManager) GetAuthURL(userEmail string) string {
	return m.config.AuthCodeURL(m.signState(userEmail), oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func (m *OAuthManager) signState(userEmail string) string {
	return userEmail + ":" + m.hmacSign(userEmail)
}

func (m *OAuthManager) hmacSign(msg string) string {
	mac := hmac.New(sha256.New, []byte(m.config.ClientSecret))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyAndExtractEmail checks a state value produced by GetAuthURL and
// returns the email it carries.
func (m *OAuthManager) VerifyAndExtractEmail(state string) (string, bool) {
	i := strings.LastIndexByte(state, ':')
	if i <= 0 || i == len(state)-1 {
		return "", false
	}
	email, sig := state[:i], state[i+1:]
	if !hmac.Equal([]byte(sig), []byte(m.hmacSign(email))) {
		return "", false
	}
	return email, true
}

// ExchangeCode exchanges an authorization code for a token and persists it.
func (m *OAuthManager) ExchangeCode(ctx context.Context, code, userEmail string) (*oauth2.Token, error) {
	token, err := m.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging auth code: %w", err)
	}
	if err := m.tokenStore.Save(userEmail, token); err != nil {
		return nil, fmt.Errorf("saving token for %s: %w", userEmail, err)
	}
	return token, nil
}

// Config returns the underlying oauth2.Config for building token sources.
func (m *OAuthManager) Config() *oauth2.Config {
	return m.config
}

// TokenStore returns the underlying token store.
func (m *OAuthManager) TokenStore() TokenStore {
	return m.tokenStore
}
