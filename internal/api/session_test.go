package api

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	store := NewSessionStore(path)

	sess := &Session{
		Server:    "default",
		BaseURL:   "https://sigap.example.org",
		Email:     "staff@example.org",
		BearerTok: "tok-abc",
		IssuedAt:  time.Date(2026, 8, 12, 9, 30, 0, 0, time.UTC),
	}
	if err := store.Save(sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got.BaseURL != sess.BaseURL || got.Email != sess.Email || got.BearerTok != sess.BearerTok {
		t.Errorf("loaded session mismatch: %#v", got)
	}
	if !got.IssuedAt.Equal(sess.IssuedAt) {
		t.Errorf("issued_at = %v", got.IssuedAt)
	}

	tok, err := store.Token()
	if err != nil || tok != "tok-abc" {
		t.Errorf("Token() = %q, %v", tok, err)
	}
}

func TestMissingCredentialsFileIsNoSession(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "credentials"))

	if _, err := store.Current(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	store := NewSessionStore(path)

	for _, name := range []string{"default", "staging"} {
		if err := store.Save(&Session{Server: name, BaseURL: "https://x", BearerTok: "t"}); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}

	if err := store.Delete("default"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get("default"); !errors.Is(err, ErrNoSession) {
		t.Errorf("deleted session still loads: %v", err)
	}

	servers, err := store.Servers()
	if err != nil {
		t.Fatalf("Servers: %v", err)
	}
	if len(servers) != 1 || servers[0] != "staging" {
		t.Errorf("Servers() = %v", servers)
	}
}
