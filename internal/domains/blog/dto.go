package blog

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"blog-backend/internal/domains/user"
)

// ========================================
// REQUEST DTOs
// ========================================

// CreateBlogRequest creates a post. CreatedBy is an explicit,
// admin-only field: when the caller's role is admin it sets the post's
// author, letting privileged callers publish on another user's behalf.
// For everyone else it is ignored.
type CreateBlogRequest struct {
	Title     string   `json:"title" binding:"required"`
	Content   string   `json:"content" binding:"required"`
	Tags      []string `json:"tags,omitempty"`
	BlogType  string   `json:"blogType,omitempty"`
	CreatedBy string   `json:"createdBy,omitempty"`
}

func (r CreateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(4, 0).Error("content must be at least 4 characters"),
		),
		validation.Field(&r.BlogType,
			validation.In(TypePublic, TypePrivate).Error("blogType must be public or private"),
		),
		validation.Field(&r.CreatedBy,
			validation.When(r.CreatedBy != "", is.UUID.Error("createdBy must be a valid id")),
		),
	)
}

// UpdateBlogRequest is a partial update: nil fields stay untouched.
// Author and id are not part of the DTO, so they can never change
// through this path no matter what the payload carries.
type UpdateBlogRequest struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	BlogType *string   `json:"blogType,omitempty"`
}

func (r UpdateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil,
				validation.Required.Error("title cannot be empty"),
			),
		),
		validation.Field(&r.Content,
			validation.When(r.Content != nil,
				validation.Required.Error("content cannot be empty"),
				validation.Length(4, 0).Error("content must be at least 4 characters"),
			),
		),
		validation.Field(&r.BlogType,
			validation.When(r.BlogType != nil,
				validation.In(TypePublic, TypePrivate).Error("blogType must be public or private"),
			),
		),
	)
}

// ========================================
// VIEW DTOs
// ========================================

// AuthorPreview is the reduced author view used on the public listing
// and the detail route: username and account-creation date only, never
// the full profile.
type AuthorPreview struct {
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlogWithAuthor expands the author reference to the full public
// profile. Used for the owner's own listing.
type BlogWithAuthor struct {
	Blog
	Author user.UserDTO `json:"author"`
}

// BlogWithAuthorPreview carries the reduced author view.
type BlogWithAuthorPreview struct {
	Blog
	Author AuthorPreview `json:"author"`
}

// ListOwnResponse is the paginated own-posts result.
type ListOwnResponse struct {
	Blogs      []BlogWithAuthor `json:"blogs"`
	TotalPages int              `json:"totalPages"`
}

// ListPublicResponse is the paginated public-posts result.
type ListPublicResponse struct {
	Blogs      []BlogWithAuthorPreview `json:"blogs"`
	TotalPages int                     `json:"totalPages"`
}
