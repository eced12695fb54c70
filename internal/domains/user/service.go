package user

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/shared"
)

// Service is the credential & session service plus profile operations.
type Service interface {
	// Register validates input, stores the password as a bcrypt digest,
	// creates the account and issues a 24-hour session token.
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, string, error)

	// Login verifies credentials and issues a fresh session token.
	// Unknown email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, req LoginRequest) (*UserDTO, string, error)

	// ResolveSession verifies the token and loads the subject fresh from
	// the directory so a deleted account is rejected immediately.
	ResolveSession(ctx context.Context, token string) (*shared.Identity, error)

	// UpdateProfile applies the name/username allow-list.
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)

	// Delete removes the caller's own account.
	Delete(ctx context.Context, id uuid.UUID) error
}
