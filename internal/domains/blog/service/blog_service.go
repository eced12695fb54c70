package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"blog-backend/internal/domains/blog"
	"blog-backend/internal/shared"
	"blog-backend/internal/shared/pagination"
)

// blogService implements blog.Service.
type blogService struct {
	repo blog.Repository
}

// NewBlogService creates the service instance.
func NewBlogService(repo blog.Repository) blog.Service {
	return &blogService{repo: repo}
}

// Create makes a new post. The author is the caller, unless an admin
// explicitly sets createdBy to publish on another user's behalf.
func (s *blogService) Create(ctx context.Context, identity shared.Identity, req blog.CreateBlogRequest) (*blog.Blog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	authorID := identity.ID
	if identity.IsAdmin() && req.CreatedBy != "" {
		parsed, err := uuid.Parse(req.CreatedBy)
		if err == nil {
			authorID = parsed
		}
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	blogType := req.BlogType
	if blogType == "" {
		blogType = blog.TypePublic
	}

	now := time.Now()
	b := &blog.Blog{
		ID:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Tags:      tags,
		AuthorID:  authorID,
		BlogType:  blogType,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetDetail is an owner-only lookup: the route is scoped to the
// caller's own posts.
func (s *blogService) GetDetail(ctx context.Context, id uuid.UUID, identity shared.Identity) (*blog.BlogWithAuthorPreview, error) {
	return s.repo.FindByIDAndAuthor(ctx, id, identity.ID)
}

func (s *blogService) ListOwn(ctx context.Context, identity shared.Identity, p pagination.Params) (*blog.ListOwnResponse, error) {
	blogs, total, err := s.repo.ListByAuthor(ctx, identity.ID, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}

	if blogs == nil {
		blogs = []blog.BlogWithAuthor{}
	}

	return &blog.ListOwnResponse{
		Blogs:      blogs,
		TotalPages: pagination.TotalPages(total, p.Limit),
	}, nil
}

func (s *blogService) ListPublic(ctx context.Context, p pagination.Params) (*blog.ListPublicResponse, error) {
	blogs, total, err := s.repo.ListPublic(ctx, p.Limit, p.Offset())
	if err != nil {
		return nil, err
	}

	if blogs == nil {
		blogs = []blog.BlogWithAuthorPreview{}
	}

	return &blog.ListPublicResponse{
		Blogs:      blogs,
		TotalPages: pagination.TotalPages(total, p.Limit),
	}, nil
}

func (s *blogService) Update(ctx context.Context, id uuid.UUID, identity shared.Identity, req blog.UpdateBlogRequest) (*blog.Blog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, identity.ID, req)
}

// Delete enforces ownership, matching Update: only the owning author
// can remove a post.
func (s *blogService) Delete(ctx context.Context, id uuid.UUID, identity shared.Identity) (*blog.Blog, error) {
	return s.repo.Delete(ctx, id, identity.ID)
}
