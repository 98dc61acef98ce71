// Package server tracks the console sessions running on one host and fans
// their frames out to spectators.
package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/pewpew/internal/loop"
	"github.com/tomz197/pewpew/internal/loop/config"
)

// Publisher receives session frames, e.g. the spectator hub.
type Publisher interface {
	Publish(session, username string, f loop.Frame)
}

// Session is one registered console.
type Session struct {
	ID       string
	Username string
	Started  time.Time

	cancel      context.CancelFunc
	frame       loop.Frame // Guarded by Registry.mu
	lastPublish time.Time
}

// Registry holds every live session. Each session runs its own engine; the
// registry only sees the frames they present.
type Registry struct {
	sessions  map[string]*Session
	snapshot  atomic.Pointer[Snapshot]
	publisher Publisher
	logger    *log.Logger
	mu        sync.RWMutex
}

// NewRegistry creates an empty registry. pub may be nil.
func NewRegistry(pub Publisher, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	r := &Registry{
		sessions:  make(map[string]*Session),
		publisher: pub,
		logger:    logger,
	}
	r.snapshot.Store(&Snapshot{Sessions: []SessionInfo{}, TopScores: []ScoreEntry{}})
	return r
}

// Register adds a session for username. The returned context is cancelled
// when the session is unregistered or the registry shuts down.
func (r *Registry) Register(ctx context.Context, username string) (*Session, context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		ID:       uuid.NewString(),
		Username: username,
		Started:  time.Now(),
		cancel:   cancel,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.refreshLocked()
	r.mu.Unlock()

	r.logger.Info("Session registered", "id", s.ID, "user", username)
	return s, ctx
}

// Unregister removes a session and cancels its context.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		s.cancel()
		delete(r.sessions, id)
		r.refreshLocked()
	}
	r.mu.Unlock()

	if ok {
		r.logger.Info("Session unregistered", "id", id, "user", s.Username, "score", s.frame.Score)
	}
}

// Observer returns the frame hook for a session's client.
func (r *Registry) Observer(s *Session) func(loop.Frame) {
	return func(f loop.Frame) {
		r.update(s, f, time.Now())
	}
}

// update records the latest frame and publishes it at most once per
// SpectateInterval.
func (r *Registry) update(s *Session, f loop.Frame, now time.Time) {
	r.mu.Lock()
	s.frame = f
	publish := now.Sub(s.lastPublish) >= config.SpectateInterval
	if publish {
		s.lastPublish = now
		r.refreshLocked()
	}
	r.mu.Unlock()

	if publish && r.publisher != nil {
		r.publisher.Publish(s.ID, s.Username, f)
	}
}

// Frame returns the latest frame presented by a session.
func (r *Registry) Frame(id string) (loop.Frame, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return loop.Frame{}, false
	}
	return s.frame, true
}

// Snapshot returns the current session summary.
func (r *Registry) Snapshot() *Snapshot {
	return r.snapshot.Load()
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Shutdown cancels every session so each shows its quit screen, then waits
// for them to unregister (up to the given timeout).
func (r *Registry) Shutdown(timeout time.Duration) {
	r.mu.RLock()
	for _, s := range r.sessions {
		s.cancel()
	}
	r.mu.RUnlock()

	// Wait for all sessions to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(config.ShutdownPoll)
	defer ticker.Stop()

	for {
		if r.Len() == 0 {
			return
		}
		select {
		case <-deadline:
			r.logger.Warn("Shutdown timed out", "remaining", r.Len())
			return
		case <-ticker.C:
		}
	}
}

// refreshLocked rebuilds the snapshot. Must be called with lock held.
func (r *Registry) refreshLocked() {
	r.snapshot.Store(buildSnapshot(r.sessions))
}
