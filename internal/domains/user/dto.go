package user

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"blog-backend/internal/shared"
)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest creates an account and opens a session.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	UserName string `json:"userName" binding:"required"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 128).Error("password must be at least 6 characters"),
		),
		validation.Field(&r.UserName,
			validation.Required.Error("username is required"),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// ========================================
// PROFILE DTOs
// ========================================

// UserDTO is the public view of an account. No password material, ever.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UserName  string    `json:"userName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToDTO converts a User entity to its public view.
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		UserName:  u.UserName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToIdentity converts a User entity to the request-scoped identity the
// access-control gate attaches to the context.
func (u *User) ToIdentity() shared.Identity {
	return shared.Identity{
		ID:       u.ID,
		Name:     u.Name,
		UserName: u.UserName,
		Email:    u.Email,
		Role:     u.Role,
		JoinedAt: u.CreatedAt,
	}
}

// UpdateProfileRequest is the allow-list for profile updates: only name
// and username. Email and password submitted here are not part of the
// DTO and are therefore dropped before they reach the repository.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	UserName *string `json:"userName,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil,
				validation.Required.Error("name cannot be empty"),
			),
		),
		validation.Field(&r.UserName,
			validation.When(r.UserName != nil,
				validation.Required.Error("username cannot be empty"),
			),
		),
	)
}
