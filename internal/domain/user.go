package domain

import "time"

type UserRole string

const (
	RoleClient UserRole = "client"
	RoleChef   UserRole = "chef"
	RoleAdmin  UserRole = "admin"
)

// User mirrors the auth provider's user record. Credentials never live here.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email" validate:"required,email"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the authenticated caller, resolved from a verified token and
// handed explicitly to services.
type Identity struct {
	UserID string
	Email  string
	Role   UserRole
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
