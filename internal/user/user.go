package user

import "errors"

// Role determines which screens and operations a user may reach.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is an operator account. Password holds a bcrypt hash, except for
// legacy rows created before hashing was introduced; those are migrated
// in place on their next successful login.
type User struct {
	ID       int64
	Username string
	Password string
	Role     Role
}
