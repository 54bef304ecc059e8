package role

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRole is the role assumed when none is specified.
const DefaultRole = "Developer"

// Role represents a row in the roles table. The name is unique; a role is
// immutable once created.
type Role struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
