package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	store := &FileTokenStore{Path: filepath.Join(t.TempDir(), "token.json")}

	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := store.Save(tok); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.AccessToken != "access" || loaded.RefreshToken != "refresh" {
		t.Errorf("unexpected token after round trip: %+v", loaded)
	}
	if !loaded.Expiry.Equal(tok.Expiry) {
		t.Errorf("expected expiry %v, got %v", tok.Expiry, loaded.Expiry)
	}
}

func TestFileTokenStoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	store := &FileTokenStore{Path: path}

	if err := store.Save(&oauth2.Token{AccessToken: "a"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("token file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}
}

func TestFileTokenStoreLoadMissing(t *testing.T) {
	store := &FileTokenStore{Path: filepath.Join(t.TempDir(), "token.json")}
	if _, err := store.Load(); !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}
