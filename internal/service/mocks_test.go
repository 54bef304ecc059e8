package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecore/roles/internal/client"
	"github.com/ecore/roles/internal/membership"
	"github.com/ecore/roles/internal/role"
)

// --- Mock Role Repository ---

type mockRoleRepo struct {
	createFn    func(ctx context.Context, r *role.Role) error
	getByIDFn   func(ctx context.Context, id uuid.UUID) (*role.Role, error)
	getByNameFn func(ctx context.Context, name string) (*role.Role, error)
	listFn      func(ctx context.Context) ([]role.Role, error)
}

func (m *mockRoleRepo) Create(ctx context.Context, r *role.Role) error {
	if m.createFn != nil {
		return m.createFn(ctx, r)
	}
	r.ID = uuid.New()
	return nil
}

func (m *mockRoleRepo) GetByID(ctx context.Context, id uuid.UUID) (*role.Role, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, role.ErrRoleNotFound
}

func (m *mockRoleRepo) GetByName(ctx context.Context, name string) (*role.Role, error) {
	if m.getByNameFn != nil {
		return m.getByNameFn(ctx, name)
	}
	return nil, role.ErrRoleNotFound
}

func (m *mockRoleRepo) List(ctx context.Context) ([]role.Role, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []role.Role{}, nil
}

// --- Mock Membership Repository ---

type mockMembershipRepo struct {
	createFn               func(ctx context.Context, m *membership.Membership) error
	getByUserIDAndTeamIDFn func(ctx context.Context, userID, teamID uuid.UUID) (*membership.Membership, error)
	listByRoleIDFn         func(ctx context.Context, roleID uuid.UUID) ([]membership.Membership, error)
	listByUserIDFn         func(ctx context.Context, userID uuid.UUID) ([]membership.Membership, error)
	listByTeamIDFn         func(ctx context.Context, teamID uuid.UUID) ([]membership.Membership, error)
}

func (r *mockMembershipRepo) Create(ctx context.Context, m *membership.Membership) error {
	if r.createFn != nil {
		return r.createFn(ctx, m)
	}
	m.ID = uuid.New()
	return nil
}

func (r *mockMembershipRepo) GetByUserIDAndTeamID(ctx context.Context, userID, teamID uuid.UUID) (*membership.Membership, error) {
	if r.getByUserIDAndTeamIDFn != nil {
		return r.getByUserIDAndTeamIDFn(ctx, userID, teamID)
	}
	return nil, membership.ErrMembershipNotFound
}

func (r *mockMembershipRepo) ListByRoleID(ctx context.Context, roleID uuid.UUID) ([]membership.Membership, error) {
	if r.listByRoleIDFn != nil {
		return r.listByRoleIDFn(ctx, roleID)
	}
	return []membership.Membership{}, nil
}

func (r *mockMembershipRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]membership.Membership, error) {
	if r.listByUserIDFn != nil {
		return r.listByUserIDFn(ctx, userID)
	}
	return []membership.Membership{}, nil
}

func (r *mockMembershipRepo) ListByTeamID(ctx context.Context, teamID uuid.UUID) ([]membership.Membership, error) {
	if r.listByTeamIDFn != nil {
		return r.listByTeamIDFn(ctx, teamID)
	}
	return []membership.Membership{}, nil
}

// --- Mock Team/User Directory ---

type mockDirectory struct {
	getTeamFn func(ctx context.Context, id uuid.UUID) (*client.Team, error)
	getUserFn func(ctx context.Context, id uuid.UUID) (*client.User, error)
}

func (m *mockDirectory) GetTeam(ctx context.Context, id uuid.UUID) (*client.Team, error) {
	if m.getTeamFn != nil {
		return m.getTeamFn(ctx, id)
	}
	return nil, nil
}

func (m *mockDirectory) GetUser(ctx context.Context, id uuid.UUID) (*client.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, id)
	}
	return nil, nil
}

// --- Helpers ---

// knownTeam builds a directory whose single team has the given lead and
// members and which recognizes every user.
func knownTeam(teamID, leadID uuid.UUID, memberIDs ...uuid.UUID) *mockDirectory {
	return &mockDirectory{
		getTeamFn: func(_ context.Context, id uuid.UUID) (*client.Team, error) {
			if id != teamID {
				return nil, nil
			}
			return &client.Team{
				ID:            teamID,
				Name:          "Ordinary Coral Lynx",
				TeamLeadID:    leadID,
				TeamMemberIDs: memberIDs,
			}, nil
		},
		getUserFn: func(_ context.Context, id uuid.UUID) (*client.User, error) {
			return &client.User{ID: id}, nil
		},
	}
}

func developerRole() *role.Role {
	return &role.Role{ID: uuid.New(), Name: "Developer"}
}
