package user

import (
	"context"
	"sort"
	"sync"

	"github.com/adminkit/useradmin/pkg/role"
	"github.com/google/uuid"
)

// InMemoryUserRepository implements UserRepository using in-memory storage.
// It enforces the same username uniqueness the database constraint does, so
// check-then-act races surface the same way in tests as in production.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
}

// NewInMemoryUserRepository creates a new in-memory user repository
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[uuid.UUID]User),
	}
}

// GetUserById retrieves a user by ID
func (r *InMemoryUserRepository) GetUserById(ctx context.Context, id uuid.UUID) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return copyUser(u), nil
}

// FindUserByUsername retrieves a user by username
func (r *InMemoryUserRepository) FindUserByUsername(ctx context.Context, username string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return User{}, ErrUserNotFound
}

// FindUserByEmail retrieves a user by email
func (r *InMemoryUserRepository) FindUserByEmail(ctx context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return User{}, ErrUserNotFound
}

// ExistsById reports whether a user with the given id exists
func (r *InMemoryUserRepository) ExistsById(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[id]
	return ok, nil
}

// SaveUser inserts or updates a user together with its role set
func (r *InMemoryUserRepository) SaveUser(ctx context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Uniqueness constraint on username, as the database enforces it
	for _, existing := range r.users {
		if existing.Username == u.Username && existing.ID != u.ID {
			return User{}, ErrUsernameAlreadyExists{Username: u.Username}
		}
	}

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	} else if _, ok := r.users[u.ID]; !ok {
		return User{}, ErrUserNotFound
	}

	r.users[u.ID] = copyUser(u)
	return copyUser(u), nil
}

// DeleteUser hard-deletes a user
func (r *InMemoryUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// FindUsers returns all users ordered by username
func (r *InMemoryUserRepository) FindUsers(ctx context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})
	return users, nil
}

// copyUser clones the role slice so callers cannot mutate stored state
func copyUser(u User) User {
	roles := make([]role.Role, len(u.Roles))
	copy(roles, u.Roles)
	u.Roles = roles
	return u
}
