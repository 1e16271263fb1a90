// Package session persists the authentication session between erpdesk
// invocations. Login is the only way a session starts and Logout the only
// way it ends; nothing else reads or writes the token file.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/erpdesk/pkg/types"
)

// Store keeps one session in a YAML file.
type Store struct {
	mu   sync.Mutex
	path string
	sess *types.Session
	now  func() time.Time
}

// NewStore returns a store backed by the file at path. Nothing is read
// until Load.
func NewStore(path string) *Store {
	return &Store{path: path, sess: &types.Session{}, now: time.Now}
}

// Path returns the session file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the session file. A missing file yields an inactive session.
// The returned session is shared: Login and Logout update it in place, so a
// gateway holding it sees the change.
func (s *Store) Load() (*types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.sess.Clear()
		return s.sess, nil
	}
	if err != nil {
		return s.sess, fmt.Errorf("reading session: %w", err)
	}

	var loaded types.Session
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return s.sess, fmt.Errorf("decoding session %s: %w", s.path, err)
	}
	*s.sess = loaded
	return s.sess, nil
}

// Session returns the current session without touching the file.
func (s *Store) Session() *types.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess
}

// Login starts a session with the given tokens and persists it.
func (s *Store) Login(token, refreshToken, user string) (*types.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, types.ErrInvalidToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess.Token = token
	s.sess.RefreshToken = strings.TrimSpace(refreshToken)
	s.sess.User = user
	s.sess.StartedAt = s.now().UTC().Truncate(time.Second)
	if err := s.save(); err != nil {
		return nil, err
	}
	return s.sess, nil
}

// Logout clears both tokens, persists the cleared session, and returns the
// path the caller should redirect to. Logging out without a session returns
// ErrNotLoggedIn along with the redirect path.
func (s *Store) Logout() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	redirect := s.sess.RedirectPath()
	if !s.sess.Active() {
		return redirect, types.ErrNotLoggedIn
	}
	s.sess.Clear()
	if err := s.save(); err != nil {
		return redirect, err
	}
	return redirect, nil
}

// save writes the session atomically with owner-only permissions.
func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := yaml.Marshal(s.sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing session: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("setting session permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
