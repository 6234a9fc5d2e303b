package role

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// PostgresRoleRepository implements RoleRepository using PostgreSQL
type PostgresRoleRepository struct {
	db DBTX
}

// NewPostgresRoleRepository creates a new PostgreSQL role repository
func NewPostgresRoleRepository(db DBTX) *PostgresRoleRepository {
	return &PostgresRoleRepository{
		db: db,
	}
}

// GetRoleById retrieves a role by ID
func (r *PostgresRoleRepository) GetRoleById(ctx context.Context, id uuid.UUID) (Role, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name FROM roles WHERE id = $1`, id)

	var role Role
	err := row.Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrRoleNotFound
		}
		return Role{}, fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

// GetRoleByName retrieves a role by name
func (r *PostgresRoleRepository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name FROM roles WHERE name = $1`, name)

	var role Role
	err := row.Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrRoleNotFound
		}
		return Role{}, fmt.Errorf("failed to get role by name: %w", err)
	}
	return role, nil
}

// CreateRole creates a new role
func (r *PostgresRoleRepository) CreateRole(ctx context.Context, name string) (Role, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO roles (name) VALUES ($1) RETURNING id, name`, name)

	var role Role
	err := row.Scan(&role.ID, &role.Name)
	if err != nil {
		return Role{}, fmt.Errorf("failed to create role: %w", err)
	}
	return role, nil
}

// FindRoles returns all roles ordered by name
func (r *PostgresRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to find roles: %w", err)
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
