package memory

import (
	"context"
	"sync"
)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	sessions sync.Map
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(_ context.Context, email, token string) error {
	s.sessions.Store(email, token)
	return nil
}

func (s *SessionStore) Delete(_ context.Context, email string) error {
	s.sessions.Delete(email)
	return nil
}
