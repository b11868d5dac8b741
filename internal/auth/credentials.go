package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"golang.org/x/oauth2"
)

// ErrNoCredentials is returned by Load when the user has never authenticated.
var ErrNoCredentials = errors.New("no credentials found")

// TokenStore handles persisting and loading OAuth tokens per user.
type TokenStore interface {
	Save(userEmail string, token *oauth2.Token) error
	Load(userEmail string) (*oauth2.Token, error)
}

// FileTokenStore stores tokens as JSON files on disk, one per user.
// Directory permissions: 0700. File permissions: 0600. Each file is guarded
// by a sibling .lock file so several server processes can share a directory.
type FileTokenStore struct {
	dir string
}

// NewFileTokenStore creates a token store at the given directory path.
// The directory is created with 0700 permissions if it doesn't exist.
func NewFileTokenStore(dir string) (*FileTokenStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating credentials directory %s: %w", dir, err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("checking credentials directory %s: %w", dir, err)
	}
	if perm := info.Mode().Perm(); perm != 0o700 {
		slog.Warn("credentials directory should be 0700",
			"dir", dir,
			"perm", fmt.Sprintf("%04o", perm),
		)
	}

	return &FileTokenStore{dir: dir}, nil
}

// Save persists a token for the given user email.
func (s *FileTokenStore) Save(userEmail string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshaling token: %w", err)
	}
	path := s.tokenPath(userEmail)

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking %s: %w", path, err)
	}
	defer unlock(lock)

	// Readers only ever see a complete file.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing token to %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing token %s: %w", path, err)
	}
	return nil
}

// Load reads a token for the given user email.
func (s *FileTokenStore) Load(userEmail string) (*oauth2.Token, error) {
	path := s.tokenPath(userEmail)

	lock := flock.New(path + ".lock")
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	defer unlock(lock)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, noCredentials(userEmail)
		}
		return nil, fmt.Errorf("reading token from %s: %w", path, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parsing token for %s: %w", userEmail, err)
	}
	return &token, nil
}

func (s *FileTokenStore) tokenPath(userEmail string) string {
	// Hashing the email keeps it out of the path entirely.
	hash := sha256.Sum256([]byte(userEmail))
	return filepath.Join(s.dir, hex.EncodeToString(hash[:])+".json")
}

func unlock(l *flock.Flock) {
	if err := l.Unlock(); err != nil {
		slog.Warn("failed to release token lock", "path", l.Path(), "error", err)
	}
}

func noCredentials(userEmail string) error {
	return fmt.Errorf("%w for %s; call start_google_auth to authenticate", ErrNoCredentials, userEmail)
}

// InMemoryTokenStore keeps tokens in process memory. Used by tests and
// short-lived deployments that authenticate on every start.
type InMemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]oauth2.Token
}

// NewInMemoryTokenStore creates an empty store.
func NewInMemoryTokenStore() *InMemoryTokenStore {
	return &InMemoryTokenStore{tokens: make(map[string]oauth2.Token)}
}

// Save stores a copy of token.
func (s *InMemoryTokenStore) Save(userEmail string, token *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userEmail] = *token
	return nil
}

// Load returns a copy of the stored token.
func (s *InMemoryTokenStore) Load(userEmail string) (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[userEmail]
	if !ok {
		return nil, noCredentials(userEmail)
	}
	return &token, nil
}

// PersistingTokenSource wraps an oauth2.TokenSource to persist refreshed tokens.
// It only writes when the access token actually changes.
type PersistingTokenSource struct {
	Base      oauth2.TokenSource
	Store     TokenStore
	UserEmail string

	mu              sync.Mutex
	lastAccessToken string
}

// Token returns a token, persisting it after a refresh.
func (p *PersistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := p.Base.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	changed := token.AccessToken != p.lastAccessToken
	if changed {
		p.lastAccessToken = token.AccessToken
	}
	p.mu.Unlock()

	if changed {
		if err := p.Store.Save(p.UserEmail, token); err != nil {
			slog.Warn("failed to persist refreshed token",
				"email", p.UserEmail,
				"error", err,
			)
		}
	}
	return token, nil
}
