package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Storage keys; the token and the user object are written together and
// removed together.
const (
	tokenFile = "admin_token"
	userFile  = "admin_user"
)

// User is the admin identity returned by the login endpoint.
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Session is an authenticated admin: an opaque bearer token plus the user
// it belongs to.
type Session struct {
	Token string
	User  User
}

// SessionStore persists the session across restarts in two files under a
// config directory.
type SessionStore struct {
	dir string
}

// NewSessionStore uses the given directory, creating it lazily on save.
func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{dir: dir}
}

// DefaultSessionStore persists under the user config directory.
func DefaultSessionStore() (*SessionStore, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	return NewSessionStore(filepath.Join(base, "gamectl")), nil
}

// Save writes both keys. The token file is readable only by the owner.
func (s *SessionStore) Save(session Session) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(session.Token), 0o600); err != nil {
		return fmt.Errorf("write session token: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), userJSON, 0o600); err != nil {
		// Keep the pair consistent: a token without a user is useless.
		_ = os.Remove(filepath.Join(s.dir, tokenFile))
		return fmt.Errorf("write session user: %w", err)
	}
	return nil
}

// Restore reinstates a persisted session. Both keys must be present and
// the user must parse; anything malformed counts as "no session" and the
// corrupt entries are cleared so the next start is clean.
func (s *SessionStore) Restore() *Session {
	token, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return nil
	}
	userJSON, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil
	}

	var user User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		logrus.WithError(err).Warn("Persisted session is corrupt, clearing it")
		s.Clear()
		return nil
	}
	if len(token) == 0 {
		s.Clear()
		return nil
	}
	return &Session{Token: string(token), User: user}
}

// Clear removes both keys unconditionally. There is no server-side token
// revocation; discarding the bearer token is the whole logout.
func (s *SessionStore) Clear() {
	_ = os.Remove(filepath.Join(s.dir, tokenFile))
	_ = os.Remove(filepath.Join(s.dir, userFile))
}
