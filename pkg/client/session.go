package client

import (
	"sync"
	"time"
)

// Session is one immutable snapshot of the signed-in state. A zero
// User with a non-empty Token means the token has not been verified
// against the server yet.
type Session struct {
	User      User
	Token     string
	ExpiresAt time.Time
}

// SessionStore holds the current session and notifies subscribers on
// every change. Snapshots are replaced wholesale, never mutated, so a
// reader can hold one without locking.
type SessionStore struct {
	mu      sync.RWMutex
	current *Session
	subs    []func(Session, bool)
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Current returns the active session snapshot, if any.
func (s *SessionStore) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

func (s *SessionStore) Set(sess Session) {
	s.mu.Lock()
	s.current = &sess
	subs := append(([]func(Session, bool))(nil), s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(sess, true)
	}
}

func (s *SessionStore) Clear() {
	s.mu.Lock()
	s.current = nil
	subs := append(([]func(Session, bool))(nil), s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(Session{}, false)
	}
}

// Subscribe registers fn for session changes. The second argument is
// false when the session was cleared. fn runs on the goroutine that
// changed the session.
func (s *SessionStore) Subscribe(fn func(sess Session, active bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
