// Package session tracks per-visitor authentication state for each identity
// class and keeps it in lockstep with the credential store.
package session

import (
	"sync"
	"time"

	"github.com/spec-kit/hotel-front/internal/identity"
)

// classState is the reactive view of one identity class within a session:
// an authenticated flag plus the profile it implies.
type classState struct {
	authenticated bool
	profile       *identity.Profile
}

// Session is one visitor's authentication state, covering both identity
// classes independently. All mutation flows through the Registry so that
// flag changes and credential-store writes happen under the same lock; the
// exported methods are read-only.
type Session struct {
	id string

	mu       sync.RWMutex
	lastSeen time.Time
	states   map[identity.ClassName]*classState
}

func newSession(id string) *Session {
	return &Session{
		id:       id,
		lastSeen: time.Now(),
		states: map[identity.ClassName]*classState{
			identity.ClassStaff:    {},
			identity.ClassCustomer: {},
		},
	}
}

// touch records visitor activity so the registry sweep keeps live sessions.
func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// ID returns the opaque session identifier carried in the visitor's cookie.
func (s *Session) ID() string {
	return s.id
}

// Authenticated reports whether the class holds a live credential.
func (s *Session) Authenticated(class identity.Class) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[class.Name].authenticated
}

// Profile returns the authenticated profile for the class, or nil.
// Authenticated(class) == true implies a non-nil profile.
func (s *Session) Profile(class identity.Class) *identity.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[class.Name].profile
}

// markAuthenticated and markLoggedOut are the only writers. Callers must
// hold s.mu.
func (s *Session) markAuthenticated(class identity.Class, profile identity.Profile) {
	st := s.states[class.Name]
	st.authenticated = true
	st.profile = &profile
}

func (s *Session) markLoggedOut(class identity.Class) {
	st := s.states[class.Name]
	st.authenticated = false
	st.profile = nil
}
