package apiclient

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// TokenStore holds the current token pair. Implementations must treat the
// pair as a unit: Clear drops both.
type TokenStore interface {
	Tokens() (access, refresh string)
	SetTokens(access, refresh string) error
	SetAccess(access string) error
	Clear() error
}

type storedTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// MemoryStore keeps tokens in process memory only.
type MemoryStore struct {
	mu     sync.Mutex
	tokens storedTokens
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens.AccessToken, s.tokens.RefreshToken
}

func (s *MemoryStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = storedTokens{AccessToken: access, RefreshToken: refresh}
	return nil
}

func (s *MemoryStore) SetAccess(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens.AccessToken = access
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = storedTokens{}
	return nil
}

// FileStore persists tokens as mode-0600 JSON so a session survives process
// restarts.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFileStore places the token file under the user config directory.
func DefaultFileStore() (*FileStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return NewFileStore(filepath.Join(dir, "taskflow", "tokens.json")), nil
}

func (s *FileStore) Tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tokens := s.read()
	return tokens.AccessToken, tokens.RefreshToken
}

func (s *FileStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(storedTokens{AccessToken: access, RefreshToken: refresh})
}

func (s *FileStore) SetAccess(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tokens := s.read()
	tokens.AccessToken = access
	return s.write(tokens)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FileStore) read() storedTokens {
	var tokens storedTokens
	data, err := os.ReadFile(s.path)
	if err != nil {
		return tokens
	}
	_ = json.Unmarshal(data, &tokens)
	return tokens
}

func (s *FileStore) write(tokens storedTokens) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
