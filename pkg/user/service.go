package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/adminkit/useradmin/pkg/login"
	"github.com/adminkit/useradmin/pkg/role"
	"github.com/google/uuid"
)

// UserService orchestrates validation, role resolution, password hashing and
// persistence of users. All dependencies are injected at construction.
type UserService struct {
	repo     UserRepository
	roleRepo role.RoleRepository
	hasher   login.PasswordHasher
}

// NewUserService creates a new user service
func NewUserService(repo UserRepository, roleRepo role.RoleRepository, hasher login.PasswordHasher) *UserService {
	return &UserService{
		repo:     repo,
		roleRepo: roleRepo,
		hasher:   hasher,
	}
}

// CreateUser validates uniqueness of username and email, hashes the
// password, resolves the role set and persists the new user. Nothing is
// persisted when any step fails.
func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams, roleIDs []uuid.UUID) (User, error) {
	if params.Password == "" {
		return User{}, ErrPasswordRequired
	}

	if err := s.checkUsernameFree(ctx, params.Username); err != nil {
		return User{}, err
	}
	_, err := s.repo.FindUserByEmail(ctx, params.Email)
	if err == nil {
		return User{}, ErrEmailAlreadyExists{Email: params.Email}
	}
	if !errors.Is(err, ErrUserNotFound) {
		return User{}, fmt.Errorf("failed to check email: %w", err)
	}

	roles, err := s.resolveRoles(ctx, roleIDs)
	if err != nil {
		return User{}, err
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	u := User{
		Username:     params.Username,
		LastName:     params.LastName,
		Age:          params.Age,
		Email:        params.Email,
		PasswordHash: hash,
		Roles:        roles,
	}

	created, err := s.repo.SaveUser(ctx, u)
	if err != nil {
		return User{}, err
	}
	slog.Info("Created user", "userId", created.ID, "username", created.Username)
	return created, nil
}

// UpdateUser applies the patch to an existing user. The username is
// re-checked for uniqueness only when it changes; the email is not
// re-validated. An empty password keeps the stored hash. The role set is
// replaced, never merged.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams, roleIDs []uuid.UUID) (User, error) {
	existing, err := s.repo.GetUserById(ctx, id)
	if err != nil {
		return User{}, err
	}

	if params.Username != existing.Username {
		if err := s.checkUsernameFree(ctx, params.Username); err != nil {
			return User{}, err
		}
	}

	roles, err := s.resolveRoles(ctx, roleIDs)
	if err != nil {
		return User{}, err
	}

	existing.Username = params.Username
	existing.LastName = params.LastName
	existing.Age = params.Age
	existing.Email = params.Email
	if params.Password != "" {
		hash, err := s.hasher.Hash(params.Password)
		if err != nil {
			return User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		existing.PasswordHash = hash
	}
	existing.Roles = roles

	updated, err := s.repo.SaveUser(ctx, existing)
	if err != nil {
		return User{}, err
	}
	slog.Info("Updated user", "userId", updated.ID, "username", updated.Username)
	return updated, nil
}

// GetUser retrieves a user by id; absence is ErrUserNotFound
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.GetUserById(ctx, id)
}

// DeleteUser hard-deletes a user; deleting a nonexistent id fails
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	exists, err := s.repo.ExistsById(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	slog.Info("Deleted user", "userId", id)
	return nil
}

// FindUserByUsername retrieves a user by username; used for identity lookup
// and uniqueness checks. Absence is ErrUserNotFound, not a failure.
func (s *UserService) FindUserByUsername(ctx context.Context, username string) (User, error) {
	return s.repo.FindUserByUsername(ctx, username)
}

// FindUsers returns all users with their roles
func (s *UserService) FindUsers(ctx context.Context) ([]User, error) {
	return s.repo.FindUsers(ctx)
}

// ToUserView projects a user to its public view, stripping the password
// hash and flattening roles. A nil user projects to nil.
func (s *UserService) ToUserView(u *User) *UserView {
	if u == nil {
		return nil
	}

	roles := make([]RoleView, len(u.Roles))
	for i, ro := range u.Roles {
		roles[i] = RoleView{ID: ro.ID, Name: ro.Name}
	}
	return &UserView{
		ID:       u.ID,
		Username: u.Username,
		LastName: u.LastName,
		Age:      u.Age,
		Email:    u.Email,
		Roles:    roles,
	}
}

func (s *UserService) checkUsernameFree(ctx context.Context, username string) error {
	_, err := s.repo.FindUserByUsername(ctx, username)
	if err == nil {
		return ErrUsernameAlreadyExists{Username: username}
	}
	if !errors.Is(err, ErrUserNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	return nil
}

// resolveRoles resolves the full role set for a mutation. An empty set and
// any unknown id abort the operation before anything is persisted.
func (s *UserService) resolveRoles(ctx context.Context, roleIDs []uuid.UUID) ([]role.Role, error) {
	if len(roleIDs) == 0 {
		return nil, ErrRolesRequired
	}

	seen := make(map[uuid.UUID]bool, len(roleIDs))
	roles := make([]role.Role, 0, len(roleIDs))
	for _, id := range roleIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		ro, err := s.roleRepo.GetRoleById(ctx, id)
		if err != nil {
			if errors.Is(err, role.ErrRoleNotFound) {
				return nil, ErrUnknownRole{ID: id}
			}
			return nil, fmt.Errorf("failed to resolve role %s: %w", id, err)
		}
		roles = append(roles, ro)
	}
	return roles, nil
}
