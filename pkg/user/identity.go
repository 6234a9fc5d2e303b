package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/adminkit/useradmin/pkg/login"
)

// IdentityAdapter exposes users to the authentication layer in its read-only
// Identity shape. The full entity never crosses into credential handling.
type IdentityAdapter struct {
	service *UserService
}

// NewIdentityAdapter creates a login.IdentityLookup backed by the user service
func NewIdentityAdapter(service *UserService) *IdentityAdapter {
	return &IdentityAdapter{
		service: service,
	}
}

// FindIdentity implements login.IdentityLookup
func (a *IdentityAdapter) FindIdentity(ctx context.Context, username string) (login.Identity, error) {
	u, err := a.service.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return login.Identity{}, login.ErrIdentityNotFound
		}
		return login.Identity{}, fmt.Errorf("failed to find identity: %w", err)
	}

	roles := make([]string, len(u.Roles))
	for i, ro := range u.Roles {
		roles[i] = ro.Name
	}
	return login.Identity{
		UserID:       u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Roles:        roles,
	}, nil
}
