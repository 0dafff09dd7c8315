package auth

import (
	"sync"
	"time"

	"github.com/craftbase-io/cms-client/internal/constants"
)

// Token is the in-memory token state held by a Manager: the access token
// plus its computed absolute expiry. A zero ExpiresAt means no expiry is
// recorded (the externally managed token case).
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// Expired reports whether the token should be refreshed before use: true
// when no expiry is recorded, and true within TokenExpiryBuffer of the
// recorded expiry so a token is replaced before the exact moment it lapses.
func (t *Token) Expired() bool {
	if t == nil || t.ExpiresAt.IsZero() {
		return true
	}

	return !time.Now().Add(constants.TokenExpiryBuffer).Before(t.ExpiresAt)
}

// TokenStore is the single-writer state cell for the current token. The
// mutex keeps reads and writes untorn; it deliberately does not serialize
// refreshes, so overlapping refresh attempts race (see package cms docs).
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the current token, or nil when none is held.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the current token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the current token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}
