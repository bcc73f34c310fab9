// Package state holds the agent's shared application state. Components
// receive it explicitly and mutate it only through its typed setters.
package state

import (
	"sync"
	"time"
)

// State carries the handful of values the CLI renders between operations:
// the pending-sync count and the elevation mirror.
//
// The elevation flag is a UI convenience only. It mirrors a server-issued
// claim and can go stale; privileged calls are always re-validated by the
// server regardless of what this mirror says.
type State struct {
	mu            sync.Mutex
	pending       int
	elevatedUntil time.Time
}

func New() *State {
	return &State{}
}

// SetPending records the pending-sync count. Callers recompute it from the
// queue's true contents rather than incrementing, so it cannot drift.
func (s *State) SetPending(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = n
}

func (s *State) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// SetElevated records the local mirror of a granted root session and its
// expected expiry.
func (s *State) SetElevated(until time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elevatedUntil = until
}

// DropElevation clears the mirror, e.g. after the server reports the claim
// expired.
func (s *State) DropElevation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elevatedUntil = time.Time{}
}

// Elevated reports whether the mirror believes a root session is active.
// Expired mirrors read as false without requiring an explicit drop.
func (s *State) Elevated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.elevatedUntil.IsZero() && time.Now().Before(s.elevatedUntil)
}
