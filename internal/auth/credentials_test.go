package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// storeFactories returns one constructor per TokenStore implementation.
func storeFactories() map[string]func(t *testing.T) TokenStore {
	return map[string]func(t *testing.T) TokenStore{
		"file": func(t *testing.T) TokenStore {
			s, err := NewFileTokenStore(t.TempDir())
			require.NoError(t, err)
			return s
		},
		"memory": func(*testing.T) TokenStore { return NewInMemoryTokenStore() },
	}
}

func TestTokenStore_Contract(t *testing.T) {
	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Run("round trip", func(t *testing.T) {
				store := newStore(t)
				expiry := time.Now().Add(time.Hour).Truncate(time.Second)
				require.NoError(t, store.Save("owner@example.com", &oauth2.Token{
					AccessToken:  "access",
					RefreshToken: "refresh",
					TokenType:    "Bearer",
					Expiry:       expiry,
				}))

				got, err := store.Load("owner@example.com")
				require.NoError(t, err)
				assert.Equal(t, "access", got.AccessToken)
				assert.Equal(t, "refresh", got.RefreshToken)
				assert.True(t, got.Expiry.Equal(expiry), "expiry %v, want %v", got.Expiry, expiry)
			})

			t.Run("missing user", func(t *testing.T) {
				_, err := newStore(t).Load("nobody@example.com")
				assert.ErrorIs(t, err, ErrNoCredentials)
				assert.Contains(t, err.Error(), "start_google_auth")
			})

			t.Run("overwrite and isolation", func(t *testing.T) {
				store := newStore(t)
				require.NoError(t, store.Save("a@example.com", &oauth2.Token{AccessToken: "a1"}))
				require.NoError(t, store.Save("b@example.com", &oauth2.Token{AccessToken: "b1"}))
				require.NoError(t, store.Save("a@example.com", &oauth2.Token{AccessToken: "a2"}))

				a, err := store.Load("a@example.com")
				require.NoError(t, err)
				b, err := store.Load("b@example.com")
				require.NoError(t, err)
				assert.Equal(t, "a2", a.AccessToken)
				assert.Equal(t, "b1", b.AccessToken)
			})

			t.Run("concurrent writers", func(t *testing.T) {
				store := newStore(t)
				var wg sync.WaitGroup
				for i := range 16 {
					wg.Add(1)
					go func() {
						defer wg.Done()
						assert.NoError(t, store.Save("race@example.com", &oauth2.Token{AccessToken: fmt.Sprintf("t-%d", i)}))
						_, _ = store.Load("race@example.com")
					}()
				}
				wg.Wait()

				got, err := store.Load("race@example.com")
				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(got.AccessToken, "t-"), "token %q", got.AccessToken)
			})
		})
	}
}

func TestFileTokenStore_OnDisk(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileTokenStore(dir)
	require.NoError(t, err)
	email := "disk@example.com"
	require.NoError(t, store.Save(email, &oauth2.Token{AccessToken: "x"}))

	path := store.tokenPath(email)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.NotContains(t, path, "disk", "email must not appear in the file name")
	assert.Len(t, strings.TrimSuffix(filepath.Base(path), ".json"), 64)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, err = os.Stat(path + ".lock")
	assert.NoError(t, err, "lock file sits next to the token")
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file left behind")
}

func TestFileTokenStore_CorruptFile(t *testing.T) {
	store, err := NewFileTokenStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.tokenPath("bad@example.com"), []byte("{not json"), 0o600))

	_, err = store.Load("bad@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCredentials)
	assert.Contains(t, err.Error(), "parsing token")
}

// countingStore records how often Save is called.
type countingStore struct {
	TokenStore
	saves int
}

func (c *countingStore) Save(email string, tok *oauth2.Token) error {
	c.saves++
	return c.TokenStore.Save(email, tok)
}

// sequenceSource hands out the given access tokens in order, repeating the last.
type sequenceSource struct {
	tokens []string
	i      int
}

func (s *sequenceSource) Token() (*oauth2.Token, error) {
	tok := &oauth2.Token{AccessToken: s.tokens[s.i], Expiry: time.Now().Add(time.Hour)}
	if s.i < len(s.tokens)-1 {
		s.i++
	}
	return tok, nil
}

func TestPersistingTokenSource_WritesOnlyOnChange(t *testing.T) {
	store := &countingStore{TokenStore: NewInMemoryTokenStore()}
	pts := &PersistingTokenSource{
		Base:      &sequenceSource{tokens: []string{"v1", "v1", "v2", "v2"}},
		Store:     store,
		UserEmail: "refresh@example.com",
	}

	var seen []string
	for range 4 {
		tok, err := pts.Token()
		require.NoError(t, err)
		seen = append(seen, tok.AccessToken)
	}

	assert.Equal(t, []string{"v1", "v1", "v2", "v2"}, seen)
	assert.Equal(t, 2, store.saves)
	persisted, err := store.Load("refresh@example.com")
	require.NoError(t, err)
	assert.Equal(t, "v2", persisted.AccessToken)
}
