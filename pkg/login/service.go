package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// ErrInvalidCredentials covers both an unknown username and a wrong password,
// so callers cannot probe which usernames exist.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Identity is the read-only authentication shape of a user. It carries only
// what credential verification needs, not the full entity.
type Identity struct {
	UserID       uuid.UUID
	Username     string
	PasswordHash string
	Roles        []string
}

// IdentityLookup resolves a username to its authentication identity.
// ErrIdentityNotFound signals normal absence.
type IdentityLookup interface {
	FindIdentity(ctx context.Context, username string) (Identity, error)
}

// ErrIdentityNotFound is returned by IdentityLookup implementations when no
// identity exists for a username.
var ErrIdentityNotFound = errors.New("identity not found")

// AuthUser is the authenticated principal produced by a successful login.
type AuthUser struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

func (u AuthUser) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("user", u.UserID),
		slog.String("username", u.Username),
		slog.Any("roles", u.Roles),
	)
}

// LoginService verifies credentials against the identity lookup
type LoginService struct {
	lookup IdentityLookup
	hasher PasswordHasher
}

func NewLoginService(lookup IdentityLookup, hasher PasswordHasher) *LoginService {
	return &LoginService{
		lookup: lookup,
		hasher: hasher,
	}
}

// Login verifies the username/password pair and returns the authenticated
// principal. Unknown usernames and wrong passwords are indistinguishable.
func (s *LoginService) Login(ctx context.Context, username, password string) (AuthUser, error) {
	identity, err := s.lookup.FindIdentity(ctx, username)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			slog.Debug("Login attempt for unknown username", "username", username)
			return AuthUser{}, ErrInvalidCredentials
		}
		return AuthUser{}, fmt.Errorf("failed to look up identity: %w", err)
	}

	valid, err := s.hasher.Verify(password, identity.PasswordHash)
	if err != nil {
		return AuthUser{}, fmt.Errorf("error checking password: %w", err)
	}
	if !valid {
		slog.Debug("Login attempt with wrong password", "username", username)
		return AuthUser{}, ErrInvalidCredentials
	}

	return AuthUser{
		UserID:   identity.UserID.String(),
		Username: identity.Username,
		Roles:    identity.Roles,
	}, nil
}
