package types

import "time"

// Role represents a user's authorization level
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is a known value
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is a read-only snapshot of an authenticated identity.
// The authentication service owns the record; the core holds the
// snapshot for the lifetime of one unlocked session.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
