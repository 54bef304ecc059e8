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

// Roles implements the role business operations on top of the role and
// membership repositories and the external Team/User services.
type Roles struct {
	roles       role.Repository
	memberships membership.Repository
	directory   client.TeamsUsers
}

// NewRoles creates a new Roles service.
func NewRoles(roles role.Repository, memberships membership.Repository, directory client.TeamsUsers) *Roles {
	return &Roles{
		roles:       roles,
		memberships: memberships,
		directory:   directory,
	}
}

// CreateRole persists a new role. Returns role.ErrRoleExists when a role with
// the same name is already present.
func (s *Roles) CreateRole(ctx context.Context, r *role.Role) error {
	_, err := s.roles.GetByName(ctx, r.Name)
	if err == nil {
		return role.ErrRoleExists
	}
	if !errors.Is(err, role.ErrRoleNotFound) {
		return fmt.Errorf("checking role name: %w", err)
	}

	return s.roles.Create(ctx, r)
}

// GetRole retrieves a role by ID. Returns role.ErrRoleNotFound when absent.
func (s *Roles) GetRole(ctx context.Context, id uuid.UUID) (*role.Role, error) {
	return s.roles.GetByID(ctx, id)
}

// GetRoles retrieves all roles.
func (s *Roles) GetRoles(ctx context.Context) ([]role.Role, error) {
	return s.roles.List(ctx)
}

// GetRoleByUserIDAndTeamID resolves the role a user holds within a team.
// The team and user are verified against their owning services before the
// membership lookup, so callers learn about a missing team or user rather
// than a missing membership when several are absent at once.
func (s *Roles) GetRoleByUserIDAndTeamID(ctx context.Context, userID, teamID uuid.UUID) (*role.Role, error) {
	if err := s.requireTeam(ctx, teamID); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	m, err := s.memberships.GetByUserIDAndTeamID(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}

	return m.Role, nil
}

// GetRolesByFilters retrieves roles narrowed by optional user and team
// filters. With no filters it is GetRoles; with both it is the single role
// from GetRoleByUserIDAndTeamID; with one it collects the roles across that
// user's or team's memberships, de-duplicated by role ID in order of first
// occurrence.
func (s *Roles) GetRolesByFilters(ctx context.Context, userID, teamID *uuid.UUID) ([]role.Role, error) {
	if userID == nil && teamID == nil {
		return s.GetRoles(ctx)
	}
	if userID != nil && teamID != nil {
		r, err := s.GetRoleByUserIDAndTeamID(ctx, *userID, *teamID)
		if err != nil {
			return nil, err
		}
		return []role.Role{*r}, nil
	}

	var memberships []membership.Membership
	var err error

	if userID != nil {
		if err := s.requireUser(ctx, *userID); err != nil {
			return nil, err
		}
		memberships, err = s.memberships.ListByUserID(ctx, *userID)
	} else {
		if err := s.requireTeam(ctx, *teamID); err != nil {
			return nil, err
		}
		memberships, err = s.memberships.ListByTeamID(ctx, *teamID)
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(memberships))
	roles := make([]role.Role, 0, len(memberships))
	for _, m := range memberships {
		if _, ok := seen[m.Role.ID]; ok {
			continue
		}
		seen[m.Role.ID] = struct{}{}
		roles = append(roles, *m.Role)
	}

	return roles, nil
}

func (s *Roles) requireTeam(ctx context.Context, teamID uuid.UUID) error {
	team, err := s.directory.GetTeam(ctx, teamID)
	if err != nil {
		return fmt.Errorf("fetching team %s: %w", teamID, err)
	}
	if team == nil {
		return ErrTeamNotFound
	}
	return nil
}

func (s *Roles) requireUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.directory.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("fetching user %s: %w", userID, err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}
