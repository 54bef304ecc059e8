// Package client provides read-only access to the external Team and User
// services. Teams and users are owned by those services; this application
// only ever fetches them by ID.
package client

import (
	"context"

	"github.com/google/uuid"
)

// Team is the external team record as served by the Team service.
type Team struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	TeamLeadID    uuid.UUID   `json:"teamLeadId"`
	TeamMemberIDs []uuid.UUID `json:"teamMemberIds"`
}

// User is the external user record as served by the User service.
type User struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl"`
	Location    string    `json:"location"`
}

// TeamsUsers fetches teams and users from their owning services.
// A nil record with a nil error means the entity does not exist; callers
// never see the difference between "absent" and "upstream failed".
type TeamsUsers interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*Team, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
}
