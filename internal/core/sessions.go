package core

// sessions.go keeps one Controller per browser session.
//
// Sessions are created on first use and identified by a random UUID. A
// janitor evicts sessions that have been idle longer than the configured
// timeout and closes their controllers so no debounce task outlives them.

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionIdleTimeout is how long an unused session is kept.
const DefaultSessionIdleTimeout = 30 * time.Minute

// Sessions maps session ids to controllers.
type Sessions struct {
	factory func() *Controller
	idle    time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*session
}

type session struct {
	ctrl     *Controller
	lastSeen time.Time
}

// NewSessions creates a registry that builds controllers with factory.
func NewSessions(factory func() *Controller, idle time.Duration) *Sessions {
	if idle <= 0 {
		idle = DefaultSessionIdleTimeout
	}
	return &Sessions{
		factory: factory,
		idle:    idle,
		now:     time.Now,
		entries: make(map[string]*session),
	}
}

// Get returns the controller for id, creating a new session when id is empty
// or unknown. The returned id is the one the caller should keep using.
func (s *Sessions) Get(id string) (string, *Controller) {
	if ctrl, ok := s.Lookup(id); ok {
		return id, ctrl
	}
	return s.Start()
}

// Lookup returns the controller for an existing session and marks it as seen.
func (s *Sessions) Lookup(id string) (*Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.entries[id]
	if !ok || id == "" {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.ctrl, true
}

// Start creates a new session and returns its id and controller.
func (s *Sessions) Start() (string, *Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.entries[id] = &session{ctrl: s.factory(), lastSeen: s.now()}
	return id, s.entries[id].ctrl
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep evicts idle sessions and returns how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idle)
	removed := 0
	for id, sess := range s.entries {
		if sess.lastSeen.Before(cutoff) {
			sess.ctrl.Close()
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// CloseAll closes every controller and empties the registry.
func (s *Sessions) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.entries {
		sess.ctrl.Close()
		delete(s.entries, id)
	}
}

// RunJanitor sweeps idle sessions every interval until ctx is cancelled.
func (s *Sessions) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	slog.Info("session janitor started", "idle_timeout", s.idle, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.CloseAll()
			slog.Info("session janitor stopped")
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Debug("evicted idle sessions", "count", n, "remaining", s.Len())
			}
		}
	}
}
