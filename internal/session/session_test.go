package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/tilly/internal/session"
	"github.com/MrJamesThe3rd/tilly/internal/user"
)

func TestActor_Permissions(t *testing.T) {
	admin := session.Actor{ID: 1, Role: user.RoleAdmin}
	manager := session.Actor{ID: 2, Role: user.RoleManager}
	cashier := session.Actor{ID: 3, Role: user.RoleCashier}

	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.CanManageUsers())
	assert.True(t, admin.CanViewAuditLog())
	assert.True(t, admin.CanManageProducts())

	assert.False(t, manager.IsAdmin())
	assert.False(t, manager.CanManageUsers())
	assert.False(t, manager.CanViewAuditLog())
	assert.True(t, manager.CanManageProducts())

	assert.False(t, cashier.CanManageUsers())
	assert.False(t, cashier.CanManageProducts())
}

func TestSession_Lifecycle(t *testing.T) {
	var s session.Session

	actor, ok := s.Current()
	assert.False(t, ok)
	assert.Equal(t, session.System, actor)

	s.SetCurrent(session.Actor{ID: 5, Username: "amy", Role: user.RoleCashier})

	actor, ok = s.Current()
	assert.True(t, ok)
	assert.Equal(t, "amy", actor.Username)

	s.Clear()

	actor, ok = s.Current()
	assert.False(t, ok)
	assert.Equal(t, session.System, actor)
}

func TestFromUser(t *testing.T) {
	u := &user.User{ID: 7, Username: "bob", Role: user.RoleManager}

	actor := session.FromUser(u)
	assert.Equal(t, int64(7), actor.ID)
	assert.Equal(t, "bob", actor.Username)
	assert.Equal(t, user.RoleManager, actor.Role)
}
