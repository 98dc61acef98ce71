package client

import (
	"time"

	"github.com/tomz197/pewpew/internal/loop/config"
)

// State holds the per-session bookkeeping around the engine.
// Each client has its own instance, managed by the Client.
type State struct {
	Running   bool      // Client loop running
	Frames    uint64    // Frames presented
	lastInput time.Time // Last byte or line activity
	idle      bool      // Inactivity warning given
	quitAt    time.Time // When the quit screen first went up
}

// NewState creates a running session state.
func NewState(now time.Time) *State {
	return &State{
		Running:   true,
		lastInput: now,
	}
}

// touch records player activity.
func (s *State) touch(now time.Time) {
	s.lastInput = now
	s.idle = false
}

// idleFor returns how long the player has been inactive.
func (s *State) idleFor(now time.Time) time.Duration {
	return now.Sub(s.lastInput)
}

// lingerDone reports whether the quit screen has been shown long enough.
// The first call starts the timer.
func (s *State) lingerDone(now time.Time) bool {
	if s.quitAt.IsZero() {
		s.quitAt = now
		return false
	}
	return now.Sub(s.quitAt) >= config.QuitScreenLinger
}
