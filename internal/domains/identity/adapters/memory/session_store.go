package memory

import (
	"context"
	"sync"

	"github.com/femisayo-autos/autoshop-api/internal/domains/identity/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps session tokens in memory, keyed by profile id.
type SessionStore struct {
	mu     sync.RWMutex
	tokens map[string][]string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{tokens: map[string][]string{}}
}

func (s *SessionStore) Save(_ context.Context, profileID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[profileID] = append(s.tokens[profileID], token)
	return nil
}

func (s *SessionStore) Delete(_ context.Context, profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, profileID)
	return nil
}
