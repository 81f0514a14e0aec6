package app

import (
	"context"
	"sync"

	"github.com/dkeye/WatchParty/internal/core"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Session is one live transport session known to the Registry.
type Session struct {
	ID   core.SessionID
	Conn core.SignalConnection

	cancel context.CancelFunc

	mu         sync.Mutex
	terminated bool
}

// With runs fn under the session lifecycle lock. fn is skipped and false
// returned once the session has been terminated.
func (s *Session) With(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminated {
		return false
	}
	fn()
	return true
}

// Terminate marks the session dead and runs fn under the lifecycle lock.
// Only the first call runs fn.
func (s *Session) Terminate(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminated {
		return false
	}
	s.terminated = true
	fn()
	return true
}

// Cancel asks the transport to shut down.
func (s *Session) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Registry tracks live connections by their server assigned identity.
// It is independent of room state.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*Session
	newID    func() core.SessionID
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*Session),
		newID:    func() core.SessionID { return core.SessionID(uuid.NewString()) },
	}
}

// Register allocates a fresh identity for conn. cancel, if set, tears the
// transport down when the session is kicked.
func (r *Registry) Register(conn core.SignalConnection, cancel context.CancelFunc) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	sid := r.newID()
	for _, taken := r.sessions[sid]; taken; _, taken = r.sessions[sid] {
		sid = r.newID()
	}
	s := &Session{ID: sid, Conn: conn, cancel: cancel}
	r.sessions[sid] = s
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Int("live", len(r.sessions)).Msg("registered session")
	return s
}

// Unregister drops sid. It returns false if sid is unknown or was already
// unregistered.
func (r *Registry) Unregister(sid core.SessionID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sid]
	if !ok {
		return nil, false
	}
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Int("live", len(r.sessions)).Msg("unregistered session")
	return s, true
}

func (r *Registry) Get(sid core.SessionID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sid]
	return s, ok
}

func (r *Registry) Conn(sid core.SessionID) (core.SignalConnection, bool) {
	s, ok := r.Get(sid)
	if !ok {
		return nil, false
	}
	return s.Conn, true
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Cancel asks the transport of sid to shut down.
func (r *Registry) Cancel(sid core.SessionID) bool {
	s, ok := r.Get(sid)
	if !ok {
		return false
	}
	s.Cancel()
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("canceled session")
	return true
}
