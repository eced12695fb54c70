package blog

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/shared"
	"blog-backend/internal/shared/pagination"
)

// Service is the blog repository business logic.
type Service interface {
	// Create makes a post authored by the caller. Admin callers may set
	// createdBy to author on another user's behalf.
	Create(ctx context.Context, identity shared.Identity, req CreateBlogRequest) (*Blog, error)

	// GetDetail returns the caller's own post by id. The route is scoped
	// to the caller's posts; someone else's post is ErrBlogNotFound.
	GetDetail(ctx context.Context, id uuid.UUID, identity shared.Identity) (*BlogWithAuthorPreview, error)

	// ListOwn returns the caller's posts, newest first, paginated.
	ListOwn(ctx context.Context, identity shared.Identity, p pagination.Params) (*ListOwnResponse, error)

	// ListPublic returns public posts across all authors, paginated.
	ListPublic(ctx context.Context, p pagination.Params) (*ListPublicResponse, error)

	// Update partially updates the caller's own post.
	Update(ctx context.Context, id uuid.UUID, identity shared.Identity, req UpdateBlogRequest) (*Blog, error)

	// Delete removes the caller's own post and returns it.
	Delete(ctx context.Context, id uuid.UUID, identity shared.Identity) (*Blog, error)
}
