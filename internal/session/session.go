// Package session holds the signed-in owner for the lifetime of a sign-in.
// It never authenticates; it only carries the identifier handed to it and
// reports when that identifier is no longer valid.
package session

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrSignedOut   = errors.New("session: signed out")
	ErrOwnerNeeded = errors.New("session: owner id is required")
)

type Session struct {
	mu          sync.RWMutex
	ownerID     string
	displayName string
	active      bool
	onSignOut   []func()
}

func New(ownerID, displayName string) (*Session, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrOwnerNeeded
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = ownerID
	}
	return &Session{ownerID: ownerID, displayName: displayName, active: true}, nil
}

// OwnerID returns the current owner, or ErrSignedOut once SignOut has run.
func (s *Session) OwnerID() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.active {
		return "", ErrSignedOut
	}
	return s.ownerID, nil
}

func (s *Session) DisplayName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.displayName
}

func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// OnSignOut registers fn to run once when the session is invalidated.
func (s *Session) OnSignOut(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSignOut = append(s.onSignOut, fn)
}

// SignOut invalidates the session and runs the sign-out hooks in
// registration order. Calling it again does nothing.
func (s *Session) SignOut() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	hooks := s.onSignOut
	s.onSignOut = nil
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
