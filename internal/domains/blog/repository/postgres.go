package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"blog-backend/internal/domains/blog"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns the Postgres-backed blog store.
func NewPostgresRepository(pool *pgxpool.Pool) blog.Repository {
	return &postgresRepository{pool: pool}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, b *blog.Blog) error {
	query := `
		INSERT INTO blogs (
			id, title, content, tags, author_id, blog_type,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		b.ID,
		b.Title,
		b.Content,
		pq.Array(b.Tags),
		b.AuthorID,
		b.BlogType,
		b.CreatedAt,
		b.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}

	return nil
}

// =====================================================
// GET BY ID (OWNER-SCOPED)
// =====================================================

func (r *postgresRepository) FindByIDAndAuthor(ctx context.Context, id, authorID uuid.UUID) (*blog.BlogWithAuthorPreview, error) {
	query := `
		SELECT
			b.id, b.title, b.content, b.tags, b.author_id, b.blog_type,
			b.created_at, b.updated_at,
			u.user_name, u.created_at
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.id = $1 AND b.author_id = $2
	`

	item := &blog.BlogWithAuthorPreview{}
	var tags []string

	err := r.pool.QueryRow(ctx, query, id, authorID).Scan(
		&item.ID,
		&item.Title,
		&item.Content,
		pq.Array(&tags),
		&item.AuthorID,
		&item.BlogType,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.Author.UserName,
		&item.Author.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}

	item.Tags = tags
	return item, nil
}

// =====================================================
// LIST BY AUTHOR
// =====================================================

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]blog.BlogWithAuthor, int, error) {
	query := `
		SELECT
			b.id, b.title, b.content, b.tags, b.author_id, b.blog_type,
			b.created_at, b.updated_at,
			u.id, u.name, u.user_name, u.email, u.role,
			u.created_at, u.updated_at
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.author_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, authorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	var blogs []blog.BlogWithAuthor
	for rows.Next() {
		var item blog.BlogWithAuthor
		var tags []string

		err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Content,
			pq.Array(&tags),
			&item.AuthorID,
			&item.BlogType,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.Author.ID,
			&item.Author.Name,
			&item.Author.UserName,
			&item.Author.Email,
			&item.Author.Role,
			&item.Author.CreatedAt,
			&item.Author.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan blog: %w", err)
		}

		item.Tags = tags
		blogs = append(blogs, item)
	}

	// Count total
	countQuery := `SELECT COUNT(*) FROM blogs WHERE author_id = $1`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, authorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}

	return blogs, total, nil
}

// =====================================================
// LIST PUBLIC
// =====================================================

func (r *postgresRepository) ListPublic(ctx context.Context, limit, offset int) ([]blog.BlogWithAuthorPreview, int, error) {
	query := `
		SELECT
			b.id, b.title, b.content, b.tags, b.author_id, b.blog_type,
			b.created_at, b.updated_at,
			u.user_name, u.created_at
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.blog_type = 'public'
		ORDER BY b.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list public blogs: %w", err)
	}
	defer rows.Close()

	var blogs []blog.BlogWithAuthorPreview
	for rows.Next() {
		var item blog.BlogWithAuthorPreview
		var tags []string

		err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Content,
			pq.Array(&tags),
			&item.AuthorID,
			&item.BlogType,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.Author.UserName,
			&item.Author.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan blog: %w", err)
		}

		item.Tags = tags
		blogs = append(blogs, item)
	}

	countQuery := `SELECT COUNT(*) FROM blogs WHERE blog_type = 'public'`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count public blogs: %w", err)
	}

	return blogs, total, nil
}

// =====================================================
// UPDATE (ATOMIC ID+OWNER MATCH)
// =====================================================

func (r *postgresRepository) Update(ctx context.Context, id, authorID uuid.UUID, patch blog.UpdateBlogRequest) (*blog.Blog, error) {
	// One statement matches ownership and applies the patch; a post that
	// exists but belongs to someone else falls out as zero rows, same as
	// a post that does not exist.
	query := `
		UPDATE blogs
		SET
			title = COALESCE($3, title),
			content = COALESCE($4, content),
			tags = COALESCE($5, tags),
			blog_type = COALESCE($6, blog_type),
			updated_at = NOW()
		WHERE id = $1 AND author_id = $2
		RETURNING id, title, content, tags, author_id, blog_type,
			created_at, updated_at
	`

	var tagsArg interface{}
	if patch.Tags != nil {
		tagsArg = pq.Array(*patch.Tags)
	}

	b := &blog.Blog{}
	var tags []string

	err := r.pool.QueryRow(ctx, query,
		id,
		authorID,
		patch.Title,
		patch.Content,
		tagsArg,
		patch.BlogType,
	).Scan(
		&b.ID,
		&b.Title,
		&b.Content,
		pq.Array(&tags),
		&b.AuthorID,
		&b.BlogType,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}

	b.Tags = tags
	return b, nil
}

// =====================================================
// DELETE (OWNER-SCOPED)
// =====================================================

func (r *postgresRepository) Delete(ctx context.Context, id, authorID uuid.UUID) (*blog.Blog, error) {
	query := `
		DELETE FROM blogs
		WHERE id = $1 AND author_id = $2
		RETURNING id, title, content, tags, author_id, blog_type,
			created_at, updated_at
	`

	b := &blog.Blog{}
	var tags []string

	err := r.pool.QueryRow(ctx, query, id, authorID).Scan(
		&b.ID,
		&b.Title,
		&b.Content,
		pq.Array(&tags),
		&b.AuthorID,
		&b.BlogType,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to delete blog: %w", err)
	}

	b.Tags = tags
	return b, nil
}
