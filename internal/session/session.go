// Package session holds the explicit session state that identity operations
// read and write. A Store is owned by one caller: the HTTP layer builds one per
// request from the bearer token, a CLI keeps one for its lifetime.
package session

import (
	"sync"
	"time"
)

type Session struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	Token       string    `json:"token,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt,omitempty"`
}

type Store struct {
	mu  sync.RWMutex
	cur *Session
}

func NewStore() *Store {
	return &Store{}
}

// Current returns a copy of the active session.
func (s *Store) Current() (Session, bool) {
	if s == nil {
		return Session{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil || s.cur.UID == "" {
		return Session{}, false
	}
	return *s.cur, true
}

func (s *Store) Set(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = &sess
}

// Clear ends the session. Clearing an empty store is a no-op.
func (s *Store) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = nil
}

func (s *Store) Active() bool {
	_, ok := s.Current()
	return ok
}
