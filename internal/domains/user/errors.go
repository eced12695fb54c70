package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound = errors.New("user not found")

	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUserNameAlreadyExists = errors.New("username already exists")
)

// Service-level errors
var (
	// Intentionally identical for unknown email and wrong password so
	// the response never reveals which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
