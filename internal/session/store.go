// Package session owns the persisted access token and the
// client-side authentication state derived from it.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// TokenStore is the persistence surface for the single credential token.
// Implementations must treat storage failures as a degraded but non-fatal
// condition: Get reports absent, Set and Clear are no-ops.
type TokenStore interface {
	// Get returns the stored token, or false if none is stored.
	Get() (string, bool)

	// Set stores the token, replacing any previous one.
	Set(token string)

	// Clear removes the stored token. Clearing an empty store is a no-op.
	Clear()
}

// FileStore persists the token as an OAuth2 token document on disk,
// surviving process restarts. The file is written with mode 0600.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get implements TokenStore.
func (s *FileStore) Get() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return "", false
	}
	if tok.AccessToken == "" {
		return "", false
	}
	return tok.AccessToken, true
}

// Set implements TokenStore.
func (s *FileStore) Set(token string) {
	tok := oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}
	data, err := json.MarshalIndent(&tok, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return
	}
	// Best effort; a failed write degrades to "not logged in".
	_ = os.WriteFile(s.path, data, 0600)
}

// Clear implements TokenStore.
func (s *FileStore) Clear() {
	_ = os.Remove(s.path)
}
