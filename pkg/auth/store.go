package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// TokenStore persists OAuth tokens between runs so the consent flow only has
// to happen once. The calendar importer takes it as an injected capability.
type TokenStore interface {
	Load() (*oauth2.Token, error)
	Save(tok *oauth2.Token) error
}

// FileTokenStore keeps the token as JSON under the agenda config directory.
type FileTokenStore struct {
	Path string
}

func NewFileTokenStore() (*FileTokenStore, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return &FileTokenStore{Path: filepath.Join(dir, TokenFile)}, nil
}

func (s *FileTokenStore) Load() (*oauth2.Token, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from %s: %w", s.Path, err)
	}
	return tok, nil
}

func (s *FileTokenStore) Save(tok *oauth2.Token) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	f, err := os.OpenFile(s.Path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open token file for writing: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}
