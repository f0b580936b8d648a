package session

import (
	"errors"
	"sync"
	"time"
)

var ErrNoToken = errors.New("no saved session token")

// User is the identity held by the current session.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// State is a copy of the session state.
type State struct {
	User            *User
	IsAuthenticated bool
	IsLoading       bool
}

// TokenStore keeps the access token of the last sign-in so a later
// Initialize can restore the session.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// MemoryTokenStore is a TokenStore that lives as long as the process.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
