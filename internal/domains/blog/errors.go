package blog

import "errors"

var (
	// ErrBlogNotFound covers both a missing post and a post owned by
	// someone else; the two are deliberately indistinguishable so
	// existence never leaks.
	ErrBlogNotFound = errors.New("blog not found")
)
