package role

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new role record. The unique constraint on name is the
// backstop for concurrent creates; a violation maps to ErrRoleExists.
func (r *PostgresRepository) Create(ctx context.Context, role *Role) error {
	query := `
		INSERT INTO roles (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, role.Name).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrRoleExists
		}
		return fmt.Errorf("inserting role: %w", err)
	}

	return nil
}

// GetByID retrieves a single role by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Role, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM roles
		WHERE id = $1`

	return r.queryOne(ctx, query, id)
}

// GetByName retrieves a single role by its unique name.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*Role, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM roles
		WHERE name = $1`

	return r.queryOne(ctx, query, name)
}

// List retrieves all roles ordered by name.
func (r *PostgresRepository) List(ctx context.Context) ([]Role, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM roles
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning role row: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating role rows: %w", err)
	}

	if roles == nil {
		roles = []Role{}
	}

	return roles, nil
}

func (r *PostgresRepository) queryOne(ctx context.Context, query string, arg any) (*Role, error) {
	var role Role
	err := r.pool.QueryRow(ctx, query, arg).Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("querying role: %w", err)
	}

	return &role, nil
}
