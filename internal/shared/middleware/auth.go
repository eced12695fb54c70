package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared"
	"blog-backend/internal/shared/response"
)

// AccessTokenCookie is the credential carrier: sessions travel in an
// HTTP-only cookie, never in a header the client script can reach.
const AccessTokenCookie = "access_token"

// IdentityKey is the gin context key the resolved identity is stored
// under.
const IdentityKey = "identity"

// ErrSessionSubjectGone is returned by resolvers when the token is
// valid but its subject no longer exists in the user directory.
var ErrSessionSubjectGone = errors.New("session subject no longer exists")

// SessionResolver turns a raw session token into a live identity. The
// lookup must hit the user directory, not just the token claims, so a
// deleted account is rejected immediately.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*shared.Identity, error)
}

// RequireAuth is the access-control gate. Every protected route mounts
// it; on failure the request short-circuits and no repository operation
// executes.
func RequireAuth(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AccessTokenCookie)
		if err != nil || token == "" {
			response.Unauthorized(c, "access token not found")
			c.Abort()
			return
		}

		identity, err := resolver.ResolveSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, ErrSessionSubjectGone) {
				response.NotFound(c, "user not found")
			} else {
				response.Unauthorized(c, "invalid or expired token")
			}
			c.Abort()
			return
		}

		c.Set(IdentityKey, *identity)
		c.Next()
	}
}

// GetIdentity reads the identity stored by RequireAuth.
func GetIdentity(c *gin.Context) (shared.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return shared.Identity{}, false
	}
	identity, ok := v.(shared.Identity)
	return identity, ok
}
