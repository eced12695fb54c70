package blog

import (
	"time"

	"github.com/google/uuid"
)

// Visibility states. A post is always in exactly one of them.
const (
	TypePublic  = "public"
	TypePrivate = "private"
)

// Blog is the post record. Every post has exactly one owning author.
type Blog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Tags      []string  `json:"tags" db:"tags"`
	AuthorID  uuid.UUID `json:"authorId" db:"author_id"`
	BlogType  string    `json:"blogType" db:"blog_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
