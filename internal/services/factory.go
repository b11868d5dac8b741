package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/evert/google-sheets-mcp-go/internal/auth"
)

// Factory manages authenticated Sheets and Drive clients per user email.
// HTTP clients are cached with ReuseTokenSource for concurrency-safe auto-refresh.
type Factory struct {
	oauthConfig       *oauth2.Config
	tokenStore        auth.TokenStore
	requestsPerMinute int

	mu      sync.RWMutex
	clients map[string]*http.Client
}

// Option configures a Factory.
type Option func(*Factory)

// WithRequestsPerMinute limits each user's outgoing API calls. Zero or a
// negative value means unlimited.
func WithRequestsPerMinute(n int) Option {
	return func(f *Factory) { f.requestsPerMinute = n }
}

// NewFactory creates a service factory backed by the given OAuth manager.
func NewFactory(oauthMgr *auth.OAuthManager, opts ...Option) *Factory {
	f := &Factory{
		oauthConfig: oauthMgr.Config(),
		tokenStore:  oauthMgr.TokenStore(),
		clients:     make(map[string]*http.Client),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// clientFor returns a cached, auto-refreshing HTTP client for the user.
// The token source is bound to context.Background() so it outlives any single
// request; each API call passes its own context via .Context(ctx).
func (f *Factory) clientFor(userEmail string) (*http.Client, error) {
	f.mu.RLock()
	client, ok := f.clients[userEmail]
	f.mu.RUnlock()
	if ok {
		return client, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if client, ok := f.clients[userEmail]; ok {
		return client, nil
	}

	token, err := f.tokenStore.Load(userEmail)
	if err != nil {
		return nil, err
	}

	bgCtx := context.Background()
	reuseSource := oauth2.ReuseTokenSource(token, &auth.PersistingTokenSource{
		Base:      f.oauthConfig.TokenSource(bgCtx, token),
		Store:     f.tokenStore,
		UserEmail: userEmail,
	})

	client = oauth2.NewClient(bgCtx, reuseSource)
	if f.requestsPerMinute > 0 {
		client.Transport = &limitedTransport{
			base:    client.Transport,
			limiter: rate.NewLimiter(rate.Limit(f.requestsPerMinute)/60, 1),
		}
	}
	f.clients[userEmail] = client
	return client, nil
}

// InvalidateClient drops the cached HTTP client for a user so the next call
// rebuilds it from the latest persisted token.
func (f *Factory) InvalidateClient(userEmail string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.clients, userEmail)
}

// Sheets returns a Sheets service client for the given user.
func (f *Factory) Sheets(ctx context.Context, userEmail string) (*sheets.Service, error) {
	client, err := f.clientFor(userEmail)
	if err != nil {
		return nil, fmt.Errorf("sheets client for %s: %w", userEmail, err)
	}
	return sheets.NewService(ctx, option.WithHTTPClient(client))
}

// Drive returns a Drive service client for the given user. Only used to
// discover spreadsheets.
func (f *Factory) Drive(ctx context.Context, userEmail string) (*drive.Service, error) {
	client, err := f.clientFor(userEmail)
	if err != nil {
		return nil, fmt.Errorf("drive client for %s: %w", userEmail, err)
	}
	return drive.NewService(ctx, option.WithHTTPClient(client))
}

// limitedTransport waits on a token bucket before every request. Waiting
// honours the request context, so a cancelled tool call stops queueing.
type limitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("waiting for request budget: %w", err)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
