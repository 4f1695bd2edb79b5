package user

import "time"

// Role is the closed set of account roles.
type Role string

// Account roles.
const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is a directory account.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Update carries the fields a profile update may change. Nil fields are left
// untouched.
type Update struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
	Role  *Role   `json:"role"`
}
