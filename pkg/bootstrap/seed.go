package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/adminkit/useradmin/pkg/config"
	"github.com/adminkit/useradmin/pkg/role"
	"github.com/adminkit/useradmin/pkg/user"
	"github.com/google/uuid"
)

// Seed ensures the baseline roles and accounts exist. It is idempotent, so
// running it on every startup never duplicates rows.
func Seed(ctx context.Context, roleService *role.RoleService, userService *user.UserService, cfg config.SeedConfig) error {
	adminRole, err := roleService.EnsureRole(ctx, role.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to ensure admin role: %w", err)
	}
	userRole, err := roleService.EnsureRole(ctx, role.RoleUser)
	if err != nil {
		return fmt.Errorf("failed to ensure user role: %w", err)
	}

	if err := ensureUser(ctx, userService, user.CreateUserParams{
		Username: "admin",
		LastName: "Admin",
		Age:      30,
		Email:    "admin@mail.com",
		Password: cfg.AdminPassword,
	}, []uuid.UUID{adminRole.ID}); err != nil {
		return err
	}

	return ensureUser(ctx, userService, user.CreateUserParams{
		Username: "user",
		LastName: "User",
		Age:      25,
		Email:    "user@mail.com",
		Password: cfg.UserPassword,
	}, []uuid.UUID{userRole.ID})
}

func ensureUser(ctx context.Context, userService *user.UserService, params user.CreateUserParams, roleIDs []uuid.UUID) error {
	_, err := userService.FindUserByUsername(ctx, params.Username)
	if err == nil {
		slog.Debug("Seed user already exists", "username", params.Username)
		return nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return fmt.Errorf("failed to check seed user %s: %w", params.Username, err)
	}

	created, err := userService.CreateUser(ctx, params, roleIDs)
	if err != nil {
		return fmt.Errorf("failed to create seed user %s: %w", params.Username, err)
	}
	slog.Info("Created seed user", "userId", created.ID, "username", created.Username)
	return nil
}
