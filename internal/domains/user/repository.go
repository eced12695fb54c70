package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the user directory data access contract.
type Repository interface {
	// Create persists a new user. Returns ErrEmailAlreadyExists or
	// ErrUserNameAlreadyExists on unique violations.
	Create(ctx context.Context, u *User) error

	// FindByID looks up a user by id. Returns ErrUserNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail looks up a user by email. Returns ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// UpdateProfile applies the name/username fields that are non-nil and
	// returns the updated record. Returns ErrUserNotFound when absent.
	UpdateProfile(ctx context.Context, id uuid.UUID, name, userName *string) (*User, error)

	// Delete removes the account. Owned posts go with it (FK cascade).
	Delete(ctx context.Context, id uuid.UUID) error
}
