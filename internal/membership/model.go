package membership

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecore/roles/internal/role"
)

// Membership associates one external user with one role inside one external
// team. At most one membership may exist per (UserID, TeamID) pair; the
// composite unique constraint in the store enforces this under concurrency.
type Membership struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TeamID    uuid.UUID
	Role      *role.Role
	CreatedAt time.Time
}
