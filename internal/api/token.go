package api

import (
	"sync"

	"github.com/andy/invoicepro/internal/crypto"
)

// TokenStore holds the bearer credential for the session. There is a
// single writer sequence point (user-initiated login/logout) and many
// readers (every repository call). Requests already in flight when the
// token is cleared complete with the old credential and fail with
// ErrUnauthorized on the backend side.
type TokenStore struct {
	mu    sync.RWMutex
	token string
	ring  crypto.Keyring
}

// NewTokenStore creates a token store backed by the given keyring
func NewTokenStore(ring crypto.Keyring) *TokenStore {
	return &TokenStore{ring: ring}
}

// Load pulls a previously stored token from the keyring, if any.
// A missing token is not an error; Token simply stays empty.
func (s *TokenStore) Load() {
	token, err := s.ring.GetToken()
	if err != nil {
		return
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Token returns the current bearer token, or "" when logged out
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// HasToken reports whether a session token is present
func (s *TokenStore) HasToken() bool {
	return s.Token() != ""
}

// Set stores a new token in memory and in the keyring
func (s *TokenStore) Set(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	return s.ring.SetToken(token)
}

// Clear drops the token from memory and the keyring (logout)
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	return s.ring.DeleteToken()
}
