package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/shared"
)

type stubResolver struct {
	identity *shared.Identity
	err      error
	gotToken string
}

func (s *stubResolver) ResolveSession(_ context.Context, token string) (*shared.Identity, error) {
	s.gotToken = token
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func gateRequest(t *testing.T, resolver *stubResolver, cookie string) (*httptest.ResponseRecorder, *shared.Identity) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var captured *shared.Identity
	r := gin.New()
	r.GET("/protected", RequireAuth(resolver), func(c *gin.Context) {
		if identity, ok := GetIdentity(c); ok {
			captured = &identity
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, captured
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequireAuthMissingCookie(t *testing.T) {
	resolver := &stubResolver{}
	w, captured := gateRequest(t, resolver, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, captured, "handler must not run")
	assert.Empty(t, resolver.gotToken, "resolver must not be consulted")

	body := decodeEnvelope(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "access token not found", body["message"])
}

func TestRequireAuthBadToken(t *testing.T) {
	resolver := &stubResolver{err: errors.New("token is malformed")}
	w, captured := gateRequest(t, resolver, "garbage")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, captured)
	assert.Equal(t, "garbage", resolver.gotToken)

	body := decodeEnvelope(t, w)
	assert.Equal(t, "invalid or expired token", body["message"])
}

func TestRequireAuthDeletedSubject(t *testing.T) {
	resolver := &stubResolver{err: ErrSessionSubjectGone}
	w, captured := gateRequest(t, resolver, "valid-but-orphaned")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Nil(t, captured)

	body := decodeEnvelope(t, w)
	assert.Equal(t, "user not found", body["message"])
}

func TestRequireAuthSuccessExposesIdentity(t *testing.T) {
	want := shared.Identity{
		ID:       uuid.New(),
		Name:     "Alice",
		UserName: "alice",
		Email:    "alice@example.com",
		Role:     shared.RoleUser,
		JoinedAt: time.Now(),
	}
	resolver := &stubResolver{identity: &want}
	w, captured := gateRequest(t, resolver, "session-token")

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured)
	assert.Equal(t, want.ID, captured.ID)
	assert.Equal(t, want.UserName, captured.UserName)
	assert.Equal(t, "session-token", resolver.gotToken)
}

func TestGetIdentityWithoutGate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetIdentity(c)
	assert.False(t, ok)
}
