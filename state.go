package cookieauth

import (
	"sync"

	"github.com/google/uuid"
)

// State holds the per-session authentication state machine. The host owns one
// State per user session and passes it to every Login, Logout and
// ResolveCookie call for that session.
//
// A State serializes its own transitions: concurrent calls against the same
// State are safe and resolve in some order, with the first successful
// submission winning.
type State struct {
	mu sync.Mutex

	// sessionKey identifies this session in audit events.
	sessionKey string

	status   Status
	username string
	message  string

	// loggedOut pins the session out of passive cookie reauthentication
	// after an explicit logout, even while the token is still valid.
	loggedOut bool

	// cookieResolved records that the one-time passive cookie check ran.
	cookieResolved bool
}

// NewState returns a fresh unauthenticated session state.
func NewState() *State {
	return &State{
		sessionKey: uuid.NewString(),
	}
}

// SessionKey returns the stable identifier for this session.
func (s *State) SessionKey() string {
	if s == nil {
		return ""
	}
	return s.sessionKey
}

// Status returns the current session status.
func (s *State) Status() Status {
	if s == nil {
		return StatusUnauthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Username returns the authenticated username, or empty.
func (s *State) Username() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}
