package user

import (
	"github.com/adminkit/useradmin/pkg/role"
	"github.com/google/uuid"
)

// User represents a user in the system. PasswordHash never leaves the
// service layer in plaintext form and is stripped from the public view.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	LastName     string      `json:"lastName"`
	Age          int32       `json:"age"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Roles        []role.Role `json:"roles"`
}

// CreateUserParams contains parameters for creating a new user
type CreateUserParams struct {
	Username string
	LastName string
	Age      int32
	Email    string
	Password string
}

// UpdateUserParams contains parameters for updating a user. An empty
// Password keeps the stored hash unchanged.
type UpdateUserParams struct {
	Username string
	LastName string
	Age      int32
	Email    string
	Password string
}

// RoleView is the public projection of a role
type RoleView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UserView is the public projection of a user. It never carries the
// password hash.
type UserView struct {
	ID       uuid.UUID  `json:"id"`
	Username string     `json:"username"`
	LastName string     `json:"lastName"`
	Age      int32      `json:"age"`
	Email    string     `json:"email"`
	Roles    []RoleView `json:"roles"`
}
