// Package session holds the client's authentication state: at most one
// token and one user profile snapshot, persisted through an injectable
// backend so tests run against memory and the CLI against the OS keyring
// or a config file.
package session

import (
	"encoding/json"
	"errors"
)

// ErrNotFound is returned by backends when a key has no stored value.
var ErrNotFound = errors.New("session: not found")

// Stable storage keys. Token and user are always written and cleared as a
// pair by the store; the backend itself does not enforce that.
const (
	tokenKey = "token"
	userKey  = "user"
)

// RoleAdmin is the role string that grants administrative access. The
// comparison is exact and case-sensitive.
const RoleAdmin = "admin"

// UserSummary is the profile snapshot captured at login and replaced
// wholesale on each subsequent login.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Backend is the persistence layer under a Store.
type Backend interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store reads and writes the single session. It never returns errors to the
// auth helpers: missing or corrupt persisted data degrades to "logged out".
type Store struct {
	backend  Backend
	navigate func()
}

// Option configures a Store.
type Option func(*Store)

// WithNavigator installs the hook invoked exactly once by Logout to move the
// user back to the unauthenticated entry surface.
func WithNavigator(navigate func()) Option {
	return func(s *Store) {
		s.navigate = navigate
	}
}

// NewStore creates a Store over the given backend.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the stored token and whether one is present.
func (s *Store) Token() (string, bool) {
	token, err := s.backend.Get(tokenKey)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// IsAuthenticated reports whether a token is currently stored.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

// CurrentUser returns the stored profile, or nil if absent or if the stored
// value is not valid JSON. Corruption is treated as logged out, never as a
// crash.
func (s *Store) CurrentUser() *UserSummary {
	raw, err := s.backend.Get(userKey)
	if err != nil {
		return nil
	}

	var user UserSummary
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

// IsAdmin reports whether the stored profile carries the admin role.
func (s *Store) IsAdmin() bool {
	user := s.CurrentUser()
	return user != nil && user.Role == RoleAdmin
}

// RecordLogin persists the token and profile together. It is invoked only
// from the login/register response path, which guarantees the two fields
// never diverge from a single login event.
func (s *Store) RecordLogin(token string, user UserSummary) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if err := s.backend.Set(tokenKey, token); err != nil {
		return err
	}
	return s.backend.Set(userKey, string(raw))
}

// Logout clears both fields, even if only one was set, then triggers the
// navigation hook once. Backend delete failures are ignored: a best-effort
// clear still leaves the helpers reporting logged out.
func (s *Store) Logout() {
	_ = s.backend.Delete(tokenKey)
	_ = s.backend.Delete(userKey)

	if s.navigate != nil {
		s.navigate()
	}
}
