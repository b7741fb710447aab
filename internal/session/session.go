// Package session identifies who is performing an operation. The Actor
// value is passed explicitly into every mutating call; the Session holder
// exists only so the UI shell has one place to keep the logged-in actor
// between screens.
package session

import (
	"sync"

	"github.com/MrJamesThe3rd/tilly/internal/user"
)

// Actor is the authenticated identity attached to mutating operations.
// The zero value is the unauthenticated "system" actor with id 0.
type Actor struct {
	ID       int64
	Username string
	Role     user.Role
}

// System is the sentinel actor used when no one is logged in.
var System = Actor{ID: 0, Username: "system"}

func FromUser(u *user.User) Actor {
	return Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}

func (a Actor) IsAdmin() bool { return a.Role == user.RoleAdmin }

func (a Actor) CanManageUsers() bool { return a.IsAdmin() }

func (a Actor) CanViewAuditLog() bool { return a.IsAdmin() }

func (a Actor) CanManageProducts() bool {
	return a.Role == user.RoleAdmin || a.Role == user.RoleManager
}

// Session holds at most one actor for the lifetime of the process.
type Session struct {
	mu    sync.Mutex
	actor *Actor
}

func (s *Session) SetCurrent(a Actor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actor = &a
}

// Current returns the logged-in actor, or the system actor when no one
// is authenticated.
func (s *Session) Current() (Actor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.actor == nil {
		return System, false
	}

	return *s.actor, true
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actor = nil
}
