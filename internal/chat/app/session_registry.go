package app

import "sync"

// SessionRegistry maps a party id to its single live session. It is owned
// by the gateway and injected where needed; sessions are process memory
// only, a restart drops them all.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*ClientSession
}

// NewSessionRegistry create an empty SessionRegistry
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*ClientSession)}
}

// Register stores s as the party's live session, displacing any prior one.
// The displaced socket stays connected to its rooms; it just no longer
// receives direct pushes.
func (r *SessionRegistry) Register(partyID string, s *ClientSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[partyID] = s
}

// Unregister removes the party's entry only when it still points at s, so
// a stale disconnect never evicts a newer login.
func (r *SessionRegistry) Unregister(partyID string, s *ClientSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.sessions[partyID]; ok && current == s {
		delete(r.sessions, partyID)
	}
}

// Get returns the party's live session, or nil when offline.
func (r *SessionRegistry) Get(partyID string) *ClientSession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[partyID]
}
