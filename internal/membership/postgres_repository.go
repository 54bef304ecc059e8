package membership

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecore/roles/internal/role"
)

const selectColumns = `
	m.id, m.user_id, m.team_id, m.created_at,
	r.id, r.name, r.created_at, r.updated_at`

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new membership record. The (user_id, team_id) unique
// constraint is the backstop for concurrent assigns; a violation maps to
// ErrMembershipExists.
func (r *PostgresRepository) Create(ctx context.Context, m *Membership) error {
	query := `
		INSERT INTO memberships (role_id, user_id, team_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query, m.Role.ID, m.UserID, m.TeamID).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrMembershipExists
		}
		return fmt.Errorf("inserting membership: %w", err)
	}

	return nil
}

// GetByUserIDAndTeamID retrieves the single membership for a (user, team) pair.
func (r *PostgresRepository) GetByUserIDAndTeamID(ctx context.Context, userID, teamID uuid.UUID) (*Membership, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM memberships m
		JOIN roles r ON r.id = m.role_id
		WHERE m.user_id = $1 AND m.team_id = $2`

	var m Membership
	m.Role = &role.Role{}
	err := r.pool.QueryRow(ctx, query, userID, teamID).Scan(
		&m.ID, &m.UserID, &m.TeamID, &m.CreatedAt,
		&m.Role.ID, &m.Role.Name, &m.Role.CreatedAt, &m.Role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("querying membership: %w", err)
	}

	return &m, nil
}

// ListByRoleID retrieves all memberships referencing the given role.
func (r *PostgresRepository) ListByRoleID(ctx context.Context, roleID uuid.UUID) ([]Membership, error) {
	return r.list(ctx, "m.role_id", roleID)
}

// ListByUserID retrieves all memberships of the given user across teams.
func (r *PostgresRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]Membership, error) {
	return r.list(ctx, "m.user_id", userID)
}

// ListByTeamID retrieves all memberships within the given team.
func (r *PostgresRepository) ListByTeamID(ctx context.Context, teamID uuid.UUID) ([]Membership, error) {
	return r.list(ctx, "m.team_id", teamID)
}

func (r *PostgresRepository) list(ctx context.Context, column string, id uuid.UUID) ([]Membership, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM memberships m
		JOIN roles r ON r.id = m.role_id
		WHERE ` + column + ` = $1
		ORDER BY m.created_at ASC`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("listing memberships: %w", err)
	}
	defer rows.Close()

	var memberships []Membership
	for rows.Next() {
		var m Membership
		m.Role = &role.Role{}
		err := rows.Scan(
			&m.ID, &m.UserID, &m.TeamID, &m.CreatedAt,
			&m.Role.ID, &m.Role.Name, &m.Role.CreatedAt, &m.Role.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning membership row: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating membership rows: %w", err)
	}

	if memberships == nil {
		memberships = []Membership{}
	}

	return memberships, nil
}
