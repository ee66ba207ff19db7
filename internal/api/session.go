package api

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gopkg.in/ini.v1"
)

// TokenProvider supplies the bearer token attached to every API call.
// Injecting it keeps the transport testable with a fake provider.
type TokenProvider interface {
	Token() (string, error)
}

// Session is one authenticated server profile stored in the credentials file.
type Session struct {
	Server    string
	BaseURL   string
	Email     string
	BearerTok string
	IssuedAt  time.Time
}

// SessionStore manages sessions persisted in an ini credentials file,
// one section per server profile, e.g. ~/.config/sigap/credentials:
//
//	[default]
//	base_url = https://sigap.example.org
//	email    = staff@example.org
//	token    = eyJhb...
//	issued_at = 2026-08-12T09:30:00Z
type SessionStore struct {
	path   string
	active string
	mx     sync.RWMutex
}

// NewSessionStore creates a store backed by the given credentials file path.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path, active: "default"}
}

// SetActive selects the server profile used by Token and Current.
func (s *SessionStore) SetActive(server string) {
	s.mx.Lock()
	defer s.mx.Unlock()
	if server != "" {
		s.active = server
	}
}

// Active returns the selected server profile name.
func (s *SessionStore) Active() string {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return s.active
}

// Token implements TokenProvider for the active session.
func (s *SessionStore) Token() (string, error) {
	sess, err := s.Current()
	if err != nil {
		return "", err
	}
	if sess.BearerTok == "" {
		return "", ErrNoToken
	}
	return sess.BearerTok, nil
}

// Current loads the active session from disk.
func (s *SessionStore) Current() (*Session, error) {
	s.mx.RLock()
	name := s.active
	s.mx.RUnlock()
	return s.Get(name)
}

// Get loads the named session from disk.
func (s *SessionStore) Get(server string) (*Session, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, ErrNoSession
	}

	f, err := ini.Load(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials file: %w", err)
	}

	section, err := f.GetSection(server)
	if err != nil {
		return nil, ErrNoSession
	}

	sess := &Session{
		Server:    server,
		BaseURL:   section.Key("base_url").String(),
		Email:     section.Key("email").String(),
		BearerTok: section.Key("token").String(),
	}
	if raw := section.Key("issued_at").String(); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			sess.IssuedAt = t
		}
	}

	if sess.BaseURL == "" {
		return nil, ErrInvalidServer
	}
	return sess, nil
}

// Save writes the session under its server section, creating the file with
// owner-only permissions on first use.
func (s *SessionStore) Save(sess *Session) error {
	if sess == nil || sess.Server == "" {
		return fmt.Errorf("session requires a server name")
	}

	f := ini.Empty()
	if _, err := os.Stat(s.path); err == nil {
		if f, err = ini.Load(s.path); err != nil {
			return fmt.Errorf("failed to load credentials file: %w", err)
		}
	}

	section, err := f.NewSection(sess.Server)
	if err != nil {
		return err
	}
	section.Key("base_url").SetValue(sess.BaseURL)
	section.Key("email").SetValue(sess.Email)
	section.Key("token").SetValue(sess.BearerTok)
	section.Key("issued_at").SetValue(sess.IssuedAt.UTC().Format(time.RFC3339))

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if err := f.SaveTo(s.path); err != nil {
		return fmt.Errorf("failed to save credentials file: %w", err)
	}
	return os.Chmod(s.path, 0o600)
}

// Delete removes the named session section. Deleting a missing section is
// not an error.
func (s *SessionStore) Delete(server string) error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}

	f, err := ini.Load(s.path)
	if err != nil {
		return fmt.Errorf("failed to load credentials file: %w", err)
	}

	f.DeleteSection(server)
	return f.SaveTo(s.path)
}

// Servers returns all stored server profile names, sorted.
func (s *SessionStore) Servers() ([]string, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, nil
	}

	f, err := ini.Load(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials file: %w", err)
	}

	var names []string
	for _, section := range f.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		names = append(names, section.Name())
	}
	sort.Strings(names)
	return names, nil
}
