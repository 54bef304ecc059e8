package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecore/roles/internal/client"
	"github.com/ecore/roles/internal/membership"
	"github.com/ecore/roles/internal/role"
)

// Memberships implements the membership business operations.
type Memberships struct {
	memberships membership.Repository
	roles       role.Repository
	directory   client.TeamsUsers
}

// NewMemberships creates a new Memberships service.
func NewMemberships(memberships membership.Repository, roles role.Repository, directory client.TeamsUsers) *Memberships {
	return &Memberships{
		memberships: memberships,
		roles:       roles,
		directory:   directory,
	}
}

// AssignRoleToMembership validates and persists a user-role-team assignment.
// The guards run in a fixed order; each failure is distinct and callers rely
// on the precedence when several preconditions are violated at once:
//
//  1. the membership must reference a role by ID (ErrRoleRequired)
//  2. no membership may exist for the (user, team) pair (ErrMembershipExists)
//  3. the role record must exist (role.ErrRoleNotFound)
//  4. the team must exist in the Team service (ErrTeamNotFound)
//  5. the user must be the team lead or one of its members (ErrUserNotInTeam)
//  6. the user must exist in the User service (ErrUserNotFound)
//
// On success m is populated with its generated ID, creation time and the
// full role record.
func (s *Memberships) AssignRoleToMembership(ctx context.Context, m *membership.Membership) error {
	if m.Role == nil || m.Role.ID == uuid.Nil {
		return ErrRoleRequired
	}

	_, err := s.memberships.GetByUserIDAndTeamID(ctx, m.UserID, m.TeamID)
	if err == nil {
		return membership.ErrMembershipExists
	}
	if !errors.Is(err, membership.ErrMembershipNotFound) {
		return fmt.Errorf("checking existing membership: %w", err)
	}

	r, err := s.roles.GetByID(ctx, m.Role.ID)
	if err != nil {
		return err
	}

	team, err := s.directory.GetTeam(ctx, m.TeamID)
	if err != nil {
		return fmt.Errorf("fetching team %s: %w", m.TeamID, err)
	}
	if team == nil {
		return ErrTeamNotFound
	}
	if !isUserInTeam(m.UserID, team) {
		return ErrUserNotInTeam
	}

	user, err := s.directory.GetUser(ctx, m.UserID)
	if err != nil {
		return fmt.Errorf("fetching user %s: %w", m.UserID, err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	m.Role = r
	return s.memberships.Create(ctx, m)
}

// GetMembershipsByRoleID retrieves all memberships referencing the given
// role ID. The role itself is not checked for existence; an unknown role
// simply yields an empty list.
func (s *Memberships) GetMembershipsByRoleID(ctx context.Context, roleID uuid.UUID) ([]membership.Membership, error) {
	return s.memberships.ListByRoleID(ctx, roleID)
}

// isUserInTeam reports whether the user leads the team or appears in its
// member set. An empty member set means "not a member", not an error.
func isUserInTeam(userID uuid.UUID, team *client.Team) bool {
	if userID == team.TeamLeadID {
		return true
	}
	for _, memberID := range team.TeamMemberIDs {
		if memberID == userID {
			return true
		}
	}
	return false
}
