package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/adminkit/useradmin/pkg/role"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is an interface that allows us to use either a connection pool or a
// single connection. Begin is needed because a save commits the user row and
// its role set in one transaction.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db DBTX
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

const userColumns = `id, username, last_name, age, email, password_hash`

func (r *PostgresUserRepository) getUser(ctx context.Context, where string, arg interface{}) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)

	var u User
	err := row.Scan(&u.ID, &u.Username, &u.LastName, &u.Age, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("failed to get user: %w", err)
	}

	u.Roles, err = r.getUserRoles(ctx, u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) getUserRoles(ctx context.Context, userID uuid.UUID) ([]role.Role, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}
	defer rows.Close()

	var roles []role.Role
	for rows.Next() {
		var ro role.Role
		if err := rows.Scan(&ro.ID, &ro.Name); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, ro)
	}
	return roles, rows.Err()
}

// GetUserById retrieves a user with roles by ID
func (r *PostgresUserRepository) GetUserById(ctx context.Context, id uuid.UUID) (User, error) {
	return r.getUser(ctx, `id = $1`, id)
}

// FindUserByUsername retrieves a user with roles by username
func (r *PostgresUserRepository) FindUserByUsername(ctx context.Context, username string) (User, error) {
	return r.getUser(ctx, `username = $1`, username)
}

// FindUserByEmail retrieves a user with roles by email
func (r *PostgresUserRepository) FindUserByEmail(ctx context.Context, email string) (User, error) {
	return r.getUser(ctx, `email = $1`, email)
}

// ExistsById reports whether a user with the given id exists
func (r *PostgresUserRepository) ExistsById(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// SaveUser inserts or updates a user and replaces its role set in one
// transaction. Nothing is persisted when any part fails.
func (r *PostgresUserRepository) SaveUser(ctx context.Context, u User) (User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if u.ID == uuid.Nil {
		row := tx.QueryRow(ctx, `
			INSERT INTO users (username, last_name, age, email, password_hash)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			u.Username, u.LastName, u.Age, u.Email, u.PasswordHash)
		if err := row.Scan(&u.ID); err != nil {
			return User{}, mapSaveError(err, u.Username)
		}
	} else {
		tag, err := tx.Exec(ctx, `
			UPDATE users
			SET username = $1, last_name = $2, age = $3, email = $4, password_hash = $5
			WHERE id = $6`,
			u.Username, u.LastName, u.Age, u.Email, u.PasswordHash, u.ID)
		if err != nil {
			return User{}, mapSaveError(err, u.Username)
		}
		if tag.RowsAffected() == 0 {
			return User{}, ErrUserNotFound
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, u.ID); err != nil {
		return User{}, fmt.Errorf("failed to clear user roles: %w", err)
	}
	for _, ro := range u.Roles {
		if _, err := tx.Exec(ctx, `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, u.ID, ro.ID); err != nil {
			return User{}, fmt.Errorf("failed to assign role: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return User{}, fmt.Errorf("failed to commit user save: %w", err)
	}
	return u, nil
}

// mapSaveError surfaces the username uniqueness constraint as the domain
// error, so a lost check-then-act race still fails like a duplicate.
func mapSaveError(err error, username string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrUsernameAlreadyExists{Username: username}
	}
	return fmt.Errorf("failed to save user: %w", err)
}

// DeleteUser hard-deletes a user; user_roles rows go with it via cascade
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// FindUsers returns all users with their roles, ordered by username
func (r *PostgresUserRepository) FindUsers(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer rows.Close()

	var users []User
	byID := make(map[uuid.UUID]int)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.LastName, &u.Age, &u.Email, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		byID[u.ID] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	roleRows, err := r.db.Query(ctx, `
		SELECT ur.user_id, r.id, r.name
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		ORDER BY r.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to find user roles: %w", err)
	}
	defer roleRows.Close()

	for roleRows.Next() {
		var userID uuid.UUID
		var ro role.Role
		if err := roleRows.Scan(&userID, &ro.ID, &ro.Name); err != nil {
			return nil, fmt.Errorf("failed to scan user role: %w", err)
		}
		if i, ok := byID[userID]; ok {
			users[i].Roles = append(users[i].Roles, ro)
		}
	}
	return users, roleRows.Err()
}
