package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"sync"
	"time"
)

const (
	tokenRandLen     = 16
	tokenAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	maxTokenAttempts = 8
)

var errTokenCollision = errors.New("could not generate a unique session token")

// Store keeps live sessions in memory, keyed by token.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]int64
	now      func() time.Time
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]int64), now: time.Now}
}

// Create opens a session for userID and returns its token.
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for range maxTokenAttempts {
		token, err := s.newToken()
		if err != nil {
			return "", err
		}
		if _, taken := s.sessions[token]; taken {
			continue
		}
		s.sessions[token] = userID
		return token, nil
	}
	return "", errTokenCollision
}

// GetUserID resolves a token to its user. ok is false for unknown tokens.
func (s *Store) GetUserID(ctx context.Context, token string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.sessions[token]
	return id, ok
}

// Delete ends a session. Unknown tokens are ignored.
func (s *Store) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// newToken returns random alphanumerics followed by the current Unix time.
func (s *Store) newToken() (string, error) {
	b := make([]byte, tokenRandLen, tokenRandLen+12)
	alphabetLen := big.NewInt(int64(len(tokenAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("rand: %w", err)
		}
		b[i] = tokenAlphabet[n.Int64()]
	}
	b = strconv.AppendInt(b, s.now().UTC().Unix(), 10)
	return string(b), nil
}
