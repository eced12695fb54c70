package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/domains/user"
	"blog-backend/internal/shared"
	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/jwt"
)

// userService implements user.Service.
type userService struct {
	repo       user.Repository
	jwtManager *jwt.Manager
}

// NewUserService creates the service instance.
func NewUserService(repo user.Repository, jwtManager *jwt.Manager) user.Service {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register creates an account and opens a session for it.
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, string, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	// 2. HASH PASSWORD
	// bcrypt cost 12; the plaintext is never stored anywhere.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	// 3. CREATE USER ENTITY
	now := time.Now()
	newUser := &user.User{
		ID:           uuid.New(),
		Name:         req.Name,
		UserName:     req.UserName,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         shared.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 4. PERSIST
	// Uniqueness is enforced by the database, not a pre-check: a
	// check-then-insert would race with concurrent registrations.
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, "", err
	}

	// 5. ISSUE SESSION TOKEN
	token, err := s.jwtManager.GenerateSessionToken(newUser.ID.String(), newUser.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}

	dto := newUser.ToDTO()
	return &dto, token, nil
}

// Login verifies credentials and issues a session token.
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.UserDTO, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Same failure as a wrong password: the caller must not learn
		// whether the email exists.
		return nil, "", user.ErrInvalidCredentials
	}

	// bcrypt.CompareHashAndPassword is a constant-time comparison.
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", user.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateSessionToken(u.ID.String(), u.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}

	dto := u.ToDTO()
	return &dto, token, nil
}

// ResolveSession verifies the token and loads the subject fresh from
// the user directory. Token claims alone are not trusted: a deleted or
// altered account must be reflected immediately.
func (s *userService) ResolveSession(ctx context.Context, token string) (*shared.Identity, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	subjectID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid subject id in token: %w", err)
	}

	u, err := s.repo.FindByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, middleware.ErrSessionSubjectGone
		}
		return nil, fmt.Errorf("resolve session subject: %w", err)
	}

	identity := u.ToIdentity()
	return &identity, nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req user.UpdateProfileRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.UpdateProfile(ctx, id, req.Name, req.UserName)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
