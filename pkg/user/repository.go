package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the storage contract for users. Implementations
// persist the user row and its role set together: a save either commits all
// of it or none of it.
type UserRepository interface {
	// GetUserById retrieves a user with roles, or ErrUserNotFound
	GetUserById(ctx context.Context, id uuid.UUID) (User, error)

	// FindUserByUsername retrieves a user by username, or ErrUserNotFound
	FindUserByUsername(ctx context.Context, username string) (User, error)

	// FindUserByEmail retrieves a user by email, or ErrUserNotFound
	FindUserByEmail(ctx context.Context, email string) (User, error)

	// ExistsById reports whether a user with the given id exists
	ExistsById(ctx context.Context, id uuid.UUID) (bool, error)

	// SaveUser inserts the user when its ID is nil, otherwise updates it.
	// The stored role set is replaced by u.Roles in the same operation.
	// A username collision surfaces as ErrUsernameAlreadyExists.
	SaveUser(ctx context.Context, u User) (User, error)

	// DeleteUser hard-deletes a user and its role assignments
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// FindUsers returns all users with their roles
	FindUsers(ctx context.Context) ([]User, error)
}
