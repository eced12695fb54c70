package shared

import (
	"time"

	"github.com/google/uuid"
)

// Roles recognised by the access-control gate.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the authenticated caller, resolved fresh from the user
// directory on every request. Lives here instead of the user domain to
// avoid import cycles between middleware and domain packages.
type Identity struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	UserName string    `json:"userName"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"createdAt"`
}

// IsAdmin reports whether the identity may author content on behalf of
// another user.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
