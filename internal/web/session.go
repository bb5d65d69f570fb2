package web

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionStore tracks gate sessions in process memory. Tokens are random
// UUIDs; a restart drops every session, which is acceptable for a
// cosmetic gate.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time // token -> expiry
	ttl      time.Duration
}

// NewSessionStore creates a session store whose sessions expire after ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	ss := &SessionStore{
		sessions: make(map[string]time.Time),
		ttl:      ttl,
	}
	go ss.cleanup()
	return ss
}

// Create mints a new session token.
func (ss *SessionStore) Create() string {
	token := uuid.NewString()
	ss.mu.Lock()
	ss.sessions[token] = time.Now().Add(ss.ttl)
	ss.mu.Unlock()
	return token
}

// Valid reports whether token names a live session.
func (ss *SessionStore) Valid(token string) bool {
	if token == "" {
		return false
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	expiry, ok := ss.sessions[token]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(ss.sessions, token)
		return false
	}
	return true
}

// Delete ends the session for token, if any.
func (ss *SessionStore) Delete(token string) {
	ss.mu.Lock()
	delete(ss.sessions, token)
	ss.mu.Unlock()
}

// cleanup sweeps expired sessions every few minutes.
func (ss *SessionStore) cleanup() {
	for {
		time.Sleep(5 * time.Minute)
		now := time.Now()
		ss.mu.Lock()
		for token, expiry := range ss.sessions {
			if now.After(expiry) {
				delete(ss.sessions, token)
			}
		}
		ss.mu.Unlock()
	}
}
