package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/blog"
	"blog-backend/internal/shared"
	"blog-backend/internal/shared/pagination"
)

// memBlogRepo is an in-memory blog.Repository with the same pagination
// and ownership semantics as the Postgres implementation.
type memBlogRepo struct {
	blogs map[uuid.UUID]*blog.Blog
}

func newMemBlogRepo() *memBlogRepo {
	return &memBlogRepo{blogs: make(map[uuid.UUID]*blog.Blog)}
}

func (m *memBlogRepo) Create(_ context.Context, b *blog.Blog) error {
	clone := *b
	m.blogs[b.ID] = &clone
	return nil
}

func (m *memBlogRepo) FindByIDAndAuthor(_ context.Context, id, authorID uuid.UUID) (*blog.BlogWithAuthorPreview, error) {
	b, ok := m.blogs[id]
	if !ok || b.AuthorID != authorID {
		return nil, blog.ErrBlogNotFound
	}
	return &blog.BlogWithAuthorPreview{Blog: *b}, nil
}

func (m *memBlogRepo) sortedMatches(match func(*blog.Blog) bool) []*blog.Blog {
	var matches []*blog.Blog
	for _, b := range m.blogs {
		if match(b) {
			matches = append(matches, b)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches
}

func page(matches []*blog.Blog, limit, offset int) []*blog.Blog {
	if offset >= len(matches) {
		return nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end]
}

func (m *memBlogRepo) ListByAuthor(_ context.Context, authorID uuid.UUID, limit, offset int) ([]blog.BlogWithAuthor, int, error) {
	matches := m.sortedMatches(func(b *blog.Blog) bool { return b.AuthorID == authorID })

	var out []blog.BlogWithAuthor
	for _, b := range page(matches, limit, offset) {
		out = append(out, blog.BlogWithAuthor{Blog: *b})
	}
	return out, len(matches), nil
}

func (m *memBlogRepo) ListPublic(_ context.Context, limit, offset int) ([]blog.BlogWithAuthorPreview, int, error) {
	matches := m.sortedMatches(func(b *blog.Blog) bool { return b.BlogType == blog.TypePublic })

	var out []blog.BlogWithAuthorPreview
	for _, b := range page(matches, limit, offset) {
		out = append(out, blog.BlogWithAuthorPreview{Blog: *b})
	}
	return out, len(matches), nil
}

func (m *memBlogRepo) Update(_ context.Context, id, authorID uuid.UUID, patch blog.UpdateBlogRequest) (*blog.Blog, error) {
	b, ok := m.blogs[id]
	if !ok || b.AuthorID != authorID {
		return nil, blog.ErrBlogNotFound
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Content != nil {
		b.Content = *patch.Content
	}
	if patch.Tags != nil {
		b.Tags = *patch.Tags
	}
	if patch.BlogType != nil {
		b.BlogType = *patch.BlogType
	}
	b.UpdatedAt = time.Now()
	clone := *b
	return &clone, nil
}

func (m *memBlogRepo) Delete(_ context.Context, id, authorID uuid.UUID) (*blog.Blog, error) {
	b, ok := m.blogs[id]
	if !ok || b.AuthorID != authorID {
		return nil, blog.ErrBlogNotFound
	}
	delete(m.blogs, id)
	clone := *b
	return &clone, nil
}

func testIdentity(role string) shared.Identity {
	return shared.Identity{
		ID:       uuid.New(),
		Name:     "Alice",
		UserName: "alice",
		Email:    "alice@example.com",
		Role:     role,
		JoinedAt: time.Now(),
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc := NewBlogService(newMemBlogRepo())
	identity := testIdentity(shared.RoleUser)

	b, err := svc.Create(context.Background(), identity, blog.CreateBlogRequest{
		Title:   "T",
		Content: "CCCC",
	})
	require.NoError(t, err)

	assert.Equal(t, blog.TypePublic, b.BlogType, "visibility defaults to public")
	assert.NotNil(t, b.Tags)
	assert.Empty(t, b.Tags, "tags default to empty")
	assert.Equal(t, identity.ID, b.AuthorID, "author is the caller")
}

func TestCreateValidationSummarizesAllFailures(t *testing.T) {
	svc := NewBlogService(newMemBlogRepo())

	_, err := svc.Create(context.Background(), testIdentity(shared.RoleUser), blog.CreateBlogRequest{
		Title:   "",
		Content: "ab",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "content")
}

func TestCreateAdminMayAuthorOnBehalf(t *testing.T) {
	svc := NewBlogService(newMemBlogRepo())

	target := uuid.New()

	admin := testIdentity(shared.RoleAdmin)
	b, err := svc.Create(context.Background(), admin, blog.CreateBlogRequest{
		Title:     "T",
		Content:   "CCCC",
		CreatedBy: target.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, target, b.AuthorID)

	// Non-admins cannot redirect authorship.
	regular := testIdentity(shared.RoleUser)
	b, err = svc.Create(context.Background(), regular, blog.CreateBlogRequest{
		Title:     "T",
		Content:   "CCCC",
		CreatedBy: target.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, regular.ID, b.AuthorID)
}

func TestVisibilityLifecycle(t *testing.T) {
	repo := newMemBlogRepo()
	svc := NewBlogService(repo)
	ctx := context.Background()
	identity := testIdentity(shared.RoleUser)
	p := pagination.Params{Page: 1, Limit: 10}

	created, err := svc.Create(ctx, identity, blog.CreateBlogRequest{Title: "T", Content: "CCCC"})
	require.NoError(t, err)

	// Default public: appears on both listings.
	own, err := svc.ListOwn(ctx, identity, p)
	require.NoError(t, err)
	require.Len(t, own.Blogs, 1)
	assert.Equal(t, "T", own.Blogs[0].Title)

	pub, err := svc.ListPublic(ctx, p)
	require.NoError(t, err)
	require.Len(t, pub.Blogs, 1)

	// Flip to private: gone from the public listing, still owned.
	private := blog.TypePrivate
	_, err = svc.Update(ctx, created.ID, identity, blog.UpdateBlogRequest{BlogType: &private})
	require.NoError(t, err)

	pub, err = svc.ListPublic(ctx, p)
	require.NoError(t, err)
	assert.Empty(t, pub.Blogs)
	assert.Equal(t, 0, pub.TotalPages)

	own, err = svc.ListOwn(ctx, identity, p)
	require.NoError(t, err)
	assert.Len(t, own.Blogs, 1)

	// Delete, then the detail lookup misses.
	_, err = svc.Delete(ctx, created.ID, identity)
	require.NoError(t, err)

	_, err = svc.GetDetail(ctx, created.ID, identity)
	assert.ErrorIs(t, err, blog.ErrBlogNotFound)
}

func TestListPagination(t *testing.T) {
	repo := newMemBlogRepo()
	svc := NewBlogService(repo)
	ctx := context.Background()
	identity := testIdentity(shared.RoleUser)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		b := &blog.Blog{
			ID:        uuid.New(),
			Title:     fmt.Sprintf("post %d", i),
			Content:   "CCCC",
			Tags:      []string{},
			AuthorID:  identity.ID,
			BlogType:  blog.TypePublic,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			UpdatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Create(ctx, b))
	}

	res, err := svc.ListPublic(ctx, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, res.Blogs, 10)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, "post 24", res.Blogs[0].Title, "newest first")

	res, err = svc.ListPublic(ctx, pagination.Params{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, res.Blogs, 5)

	// Past the end: empty list, not an error.
	res, err = svc.ListPublic(ctx, pagination.Params{Page: 4, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, res.Blogs)
	assert.Equal(t, 3, res.TotalPages)

	own, err := svc.ListOwn(ctx, identity, pagination.Params{Page: 2, Limit: 7})
	require.NoError(t, err)
	assert.Len(t, own.Blogs, 7)
	assert.Equal(t, 4, own.TotalPages)
}

func TestUpdateOwnershipIndistinguishableFromMissing(t *testing.T) {
	repo := newMemBlogRepo()
	svc := NewBlogService(repo)
	ctx := context.Background()
	owner := testIdentity(shared.RoleUser)
	stranger := testIdentity(shared.RoleUser)

	created, err := svc.Create(ctx, owner, blog.CreateBlogRequest{Title: "T", Content: "CCCC"})
	require.NoError(t, err)

	title := "hijacked"
	_, errOther := svc.Update(ctx, created.ID, stranger, blog.UpdateBlogRequest{Title: &title})
	_, errMissing := svc.Update(ctx, uuid.New(), owner, blog.UpdateBlogRequest{Title: &title})

	assert.ErrorIs(t, errOther, blog.ErrBlogNotFound)
	assert.ErrorIs(t, errMissing, blog.ErrBlogNotFound)
	assert.Equal(t, errOther.Error(), errMissing.Error())
}

func TestUpdateNeverChangesAuthorOrID(t *testing.T) {
	repo := newMemBlogRepo()
	svc := NewBlogService(repo)
	ctx := context.Background()
	identity := testIdentity(shared.RoleUser)

	created, err := svc.Create(ctx, identity, blog.CreateBlogRequest{Title: "T", Content: "CCCC"})
	require.NoError(t, err)

	title := "renamed"
	updated, err := svc.Update(ctx, created.ID, identity, blog.UpdateBlogRequest{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.AuthorID, updated.AuthorID)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "CCCC", updated.Content, "absent fields stay untouched")
}

func TestDeleteRequiresOwnership(t *testing.T) {
	repo := newMemBlogRepo()
	svc := NewBlogService(repo)
	ctx := context.Background()
	owner := testIdentity(shared.RoleUser)
	stranger := testIdentity(shared.RoleUser)

	created, err := svc.Create(ctx, owner, blog.CreateBlogRequest{Title: "T", Content: "CCCC"})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, created.ID, stranger)
	assert.ErrorIs(t, err, blog.ErrBlogNotFound)

	deleted, err := svc.Delete(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
}
