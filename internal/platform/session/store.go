// Package session persists the signed-in user's token and identity between
// command invocations.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const appDir = "care360"

// ErrNoSession is returned by Load when nobody is signed in.
var ErrNoSession = errors.New("no active session, sign in first")

// Session is the persisted login state.
type Session struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	SavedAt   time.Time `json:"savedAt"`
}

// Store reads and writes the session file.
type Store struct {
	path string
}

// NewStore places the session file under the user's config directory.
func NewStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	return NewStoreAt(filepath.Join(dir, appDir, "session.json")), nil
}

// NewStoreAt uses an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file's location.
func (s *Store) Path() string { return s.path }

// Save writes the session, creating the parent directory if needed. The file
// holds a bearer token, so permissions are owner-only.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	sess.SavedAt = time.Now().UTC()
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load reads the session, mapping a missing file or an empty token to
// ErrNoSession.
func (s *Store) Load() (Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	if sess.Token == "" {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// Clear removes the session file. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
