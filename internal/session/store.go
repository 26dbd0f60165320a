// Package session holds the authenticated identity and bearer token for
// the current user, persisted to disk so a restart does not force a new
// login. It is a constructor-injected dependency, never a singleton.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lshigami/Tamarin/internal/model"
	"github.com/rs/zerolog/log"
)

// TTL matches the 1-day cookie expiry of the web client.
const TTL = 24 * time.Hour

type record struct {
	Token     string      `json:"token"`
	User      *model.User `json:"user,omitempty"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Store is the durable session state. All methods are safe for
// concurrent use.
type Store struct {
	mu   sync.RWMutex
	path string
	rec  record
	now  func() time.Time
}

// NewStore loads any persisted session from path. An unreadable,
// malformed or expired file yields a logged-out store.
func NewStore(path string) *Store {
	s := &Store{path: path, now: time.Now}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("Could not read session file, starting logged out")
		}
		return s
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Malformed session file, starting logged out")
		return s
	}
	if s.now().After(rec.ExpiresAt) {
		log.Info().Str("path", path).Msg("Persisted session expired")
		return s
	}
	s.rec = rec
	return s
}

// Token returns the bearer token, empty when logged out or expired.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.expiredLocked() {
		return ""
	}
	return s.rec.Token
}

// CurrentUser returns the authenticated user, ok=false when logged out.
func (s *Store) CurrentUser() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.expiredLocked() || s.rec.User == nil {
		return model.User{}, false
	}
	return *s.rec.User, true
}

// LoggedIn reports whether a live token is held.
func (s *Store) LoggedIn() bool {
	return s.Token() != ""
}

// Login stores the identity and token with a fresh TTL and persists.
func (s *Store) Login(user model.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.rec = record{Token: token, User: &u, ExpiresAt: s.now().Add(TTL)}
	return s.persistLocked()
}

// Logout discards the session and removes the persisted file.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = record{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// UpdateUser replaces the stored profile without touching token or TTL.
func (s *Store) UpdateUser(user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec.Token == "" {
		return errors.New("no active session")
	}
	u := user
	s.rec.User = &u
	return s.persistLocked()
}

func (s *Store) expiredLocked() bool {
	return s.rec.Token == "" || s.now().After(s.rec.ExpiresAt)
}

func (s *Store) persistLocked() error {
	data, err := json.Marshal(s.rec)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o600)
}
