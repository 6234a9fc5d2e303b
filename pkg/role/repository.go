package role

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoleName = errors.New("role name cannot be empty")
	ErrRoleNotFound  = errors.New("role not found")
)

// Role names follow the ROLE_<NAME> convention.
const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"
)

// Role represents a role in the system
type Role struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// RoleRepository defines the storage contract for roles
type RoleRepository interface {
	// GetRoleById retrieves a role by ID
	GetRoleById(ctx context.Context, id uuid.UUID) (Role, error)

	// GetRoleByName retrieves a role by its unique name
	GetRoleByName(ctx context.Context, name string) (Role, error)

	// CreateRole creates a new role with the given name
	CreateRole(ctx context.Context, name string) (Role, error)

	// FindRoles returns all roles ordered by name
	FindRoles(ctx context.Context) ([]Role, error)
}
