package membership

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrMembershipNotFound is returned when no membership exists for a lookup.
var ErrMembershipNotFound = errors.New("membership not found")

// ErrMembershipExists is returned when a membership already exists for the
// same (user, team) pair.
var ErrMembershipExists = errors.New("membership already exists")

// Repository provides access to the memberships table. Memberships returned
// by lookups always carry their full Role record.
type Repository interface {
	Create(ctx context.Context, m *Membership) error
	GetByUserIDAndTeamID(ctx context.Context, userID, teamID uuid.UUID) (*Membership, error)
	ListByRoleID(ctx context.Context, roleID uuid.UUID) ([]Membership, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]Membership, error)
	ListByTeamID(ctx context.Context, teamID uuid.UUID) ([]Membership, error)
}
