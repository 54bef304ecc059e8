package role

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrRoleNotFound is returned when a role record is not found.
var ErrRoleNotFound = errors.New("role not found")

// ErrRoleExists is returned when a role with the same name already exists.
var ErrRoleExists = errors.New("role already exists")

// Repository provides access to the roles table. Roles are created once and
// never updated or deleted, so there is no update path.
type Repository interface {
	Create(ctx context.Context, r *Role) error
	GetByID(ctx context.Context, id uuid.UUID) (*Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
	List(ctx context.Context) ([]Role, error)
}
