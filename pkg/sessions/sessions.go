package sessions

import (
	"math/rand"
	"sync"
)

// Pusher delivers an encoded frame to one connected client.
// Implementations must not block on network I/O.
type Pusher interface {
	Push(b []byte) error
}

// Session is a registered client connection.
type Session struct {
	ID     uint32
	Pusher Pusher
}

// Registry tracks connected sessions. It is safe for concurrent use.
type Registry struct {
	sessions     map[uint32]Pusher
	sessionsLock sync.RWMutex
	nextID       func() uint32
}

// NewRegistry creates an empty Registry issuing random session IDs.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[uint32]Pusher),
		nextID:   rand.Uint32,
	}
}

// Register adds a session for pusher and returns its ID.
// IDs are never 0, which is reserved for messages originating from the server.
func (r *Registry) Register(pusher Pusher) uint32 {
	r.sessionsLock.Lock()
	defer r.sessionsLock.Unlock()

	id := r.generateUniqueID()
	r.sessions[id] = pusher
	return id
}

// Unregister removes a session. It returns false if the session was not registered.
func (r *Registry) Unregister(id uint32) bool {
	r.sessionsLock.Lock()
	defer r.sessionsLock.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

func (r *Registry) Exists(id uint32) bool {
	r.sessionsLock.RLock()
	defer r.sessionsLock.RUnlock()
	_, ok := r.sessions[id]
	return ok
}

// GetSessions returns a slice with a copy of all registered sessions.
func (r *Registry) GetSessions() []Session {
	r.sessionsLock.RLock()
	defer r.sessionsLock.RUnlock()
	sessions := make([]Session, 0, len(r.sessions))
	for id, pusher := range r.sessions {
		sessions = append(sessions, Session{ID: id, Pusher: pusher})
	}
	return sessions
}

func (r *Registry) Count() int {
	r.sessionsLock.RLock()
	defer r.sessionsLock.RUnlock()
	return len(r.sessions)
}

// generateUniqueID draws IDs until it finds a free, non-zero one.
// it reads from the sessions, so it needs to be locked before calling
func (r *Registry) generateUniqueID() uint32 {
	for {
		id := r.nextID()
		if id == 0 {
			continue
		}
		if _, ok := r.sessions[id]; !ok {
			return id
		}
	}
}
