package user

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound signals normal absence of a user; the boundary maps
	// it to a 404, it is not a process-level failure.
	ErrUserNotFound = errors.New("user not found")

	// ErrRolesRequired is returned when a create or update carries an
	// empty role id set.
	ErrRolesRequired = errors.New("roles are required")

	// ErrPasswordRequired is returned when a create carries no password.
	ErrPasswordRequired = errors.New("password is required")
)

// ErrUsernameAlreadyExists is returned when a create or a username-changing
// update targets a username that is already taken
type ErrUsernameAlreadyExists struct {
	Username string
}

func (e ErrUsernameAlreadyExists) Error() string {
	return fmt.Sprintf("username already exists: %s", e.Username)
}

// ErrEmailAlreadyExists is returned when a create targets an email that is
// already taken. Emails are not re-validated on update.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already exists: %s", e.Email)
}

// ErrUnknownRole is returned when a referenced role id does not exist; it
// aborts the whole create or update.
type ErrUnknownRole struct {
	ID uuid.UUID
}

func (e ErrUnknownRole) Error() string {
	return fmt.Sprintf("role not found: %s", e.ID)
}
