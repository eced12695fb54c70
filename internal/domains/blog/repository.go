package blog

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the blog store contract. Every operation is a single
// logical request to the store; ownership-scoped mutations match id and
// author in one atomic statement.
type Repository interface {
	// Create persists a new post.
	Create(ctx context.Context, b *Blog) error

	// FindByIDAndAuthor returns the post only when it is owned by
	// authorID, with the reduced author view. Returns ErrBlogNotFound
	// otherwise.
	FindByIDAndAuthor(ctx context.Context, id, authorID uuid.UUID) (*BlogWithAuthorPreview, error)

	// ListByAuthor returns authorID's posts newest first with the full
	// author profile expanded, plus the total matching count.
	ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]BlogWithAuthor, int, error)

	// ListPublic returns public posts across all authors newest first
	// with the reduced author view, plus the total matching count.
	ListPublic(ctx context.Context, limit, offset int) ([]BlogWithAuthorPreview, int, error)

	// Update applies the non-nil fields in a single atomic
	// find-and-update matching id AND author. Returns ErrBlogNotFound
	// when nothing matches both.
	Update(ctx context.Context, id, authorID uuid.UUID, patch UpdateBlogRequest) (*Blog, error)

	// Delete removes the post matching id AND author and returns the
	// removed record. Returns ErrBlogNotFound when nothing matches.
	Delete(ctx context.Context, id, authorID uuid.UUID) (*Blog, error)
}
