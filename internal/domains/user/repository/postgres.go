package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/user"
	"blog-backend/pkg/cache"
)

// userCacheTTL bounds staleness of cached directory lookups. The gate
// resolves the session subject on every request, so these entries are
// hot.
const userCacheTTL = 10 * time.Minute

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository returns the Postgres-backed user directory.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) user.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func userCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

// mapUniqueViolation converts a Postgres unique violation (23505) into
// the matching domain error, or returns nil when err is something else.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return user.ErrEmailAlreadyExists
		}
		if strings.Contains(pgErr.ConstraintName, "user_name") {
			return user.ErrUserNameAlreadyExists
		}
	}
	return nil
}

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, name, user_name, email, password_hash, role,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID,
		u.Name,
		u.UserName,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.CreatedAt,
		u.UpdatedAt,
	)

	if err != nil {
		if domainErr := mapUniqueViolation(err); domainErr != nil {
			return domainErr
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// FindByID looks up a user with a cache-aside read. The auth gate calls
// this on every authenticated request.
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	cacheKey := userCacheKey(id)

	var cached user.User
	found, err := r.cache.Get(ctx, cacheKey, &cached)
	if err == nil && found {
		return &cached, nil
	}

	query := `
		SELECT id, name, user_name, email, password_hash, role,
			created_at, updated_at
		FROM users
		WHERE id = $1
	`

	u := &user.User{}
	err = r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Name,
		&u.UserName,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Best effort: a cache write failure must not fail the read.
	_ = r.cache.Set(ctx, cacheKey, u, userCacheTTL)

	return u, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, name, user_name, email, password_hash, role,
			created_at, updated_at
		FROM users
		WHERE email = $1
	`

	u := &user.User{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Name,
		&u.UserName,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return u, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, userName *string) (*user.User, error) {
	query := `
		UPDATE users
		SET
			name = COALESCE($2, name),
			user_name = COALESCE($3, user_name),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, user_name, email, password_hash, role,
			created_at, updated_at
	`

	u := &user.User{}
	err := r.pool.QueryRow(ctx, query, id, name, userName).Scan(
		&u.ID,
		&u.Name,
		&u.UserName,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		if domainErr := mapUniqueViolation(err); domainErr != nil {
			return nil, domainErr
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	// Stale profile must not survive in cache past the update.
	_ = r.cache.Delete(ctx, userCacheKey(id))

	return u, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	_ = r.cache.Delete(ctx, userCacheKey(id))

	return nil
}
