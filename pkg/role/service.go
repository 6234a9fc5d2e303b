package role

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

// RoleService provides methods for role management
type RoleService struct {
	repo RoleRepository
}

func NewRoleService(repo RoleRepository) *RoleService {
	return &RoleService{
		repo: repo,
	}
}

// FindRoles returns all roles ordered by name
func (s *RoleService) FindRoles(ctx context.Context) ([]Role, error) {
	return s.repo.FindRoles(ctx)
}

// GetRole retrieves a role by ID
func (s *RoleService) GetRole(ctx context.Context, id uuid.UUID) (Role, error) {
	return s.repo.GetRoleById(ctx, id)
}

// EnsureRole returns the role with the given name, creating it if it does
// not exist yet. Used by the bootstrap seed so restarts never duplicate rows.
func (s *RoleService) EnsureRole(ctx context.Context, name string) (Role, error) {
	if name == "" {
		return Role{}, ErrEmptyRoleName
	}

	role, err := s.repo.GetRoleByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, ErrRoleNotFound) {
		return Role{}, err
	}

	role, err = s.repo.CreateRole(ctx, name)
	if err != nil {
		return Role{}, err
	}
	slog.Info("Created role", "roleId", role.ID, "name", role.Name)
	return role, nil
}
