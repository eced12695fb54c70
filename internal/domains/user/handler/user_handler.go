package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/domains/user"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/logger"
)

// sessionMaxAge matches the token expiry: 24 hours, in seconds.
const sessionMaxAge = 24 * 3600

// UserHandler handles HTTP requests for the user domain.
type UserHandler struct {
	service      user.Service
	cookieSecure bool
}

// NewUserHandler creates the handler. cookieSecure should be true
// everywhere except local development over plain HTTP.
func NewUserHandler(service user.Service, cookieSecure bool) *UserHandler {
	return &UserHandler{
		service:      service,
		cookieSecure: cookieSecure,
	}
}

// setSessionCookie stores the session token in the HTTP-only cookie the
// gate reads. SameSite=Strict keeps it off cross-site requests.
func (h *UserHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessTokenCookie, token, sessionMaxAge, "/", "", h.cookieSecure, true)
}

func (h *UserHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.cookieSecure, true)
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register handles POST /user/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	dto, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	response.Created(c, dto, "User created successfully")
}

// Login handles POST /user/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	dto, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	response.Success(c, dto, "Logged in successfully")
}

// Logout handles POST /user/logout. Sessions are stateless server-side;
// logging out means telling the client to discard the cookie.
func (h *UserHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	response.Success(c, nil, "Logged out successfully")
}

// ========================================
// PROFILE ENDPOINTS
// ========================================

// GetCurrent handles GET /user/me. The gate already resolved the
// identity; this cannot fail past it.
func (h *UserHandler) GetCurrent(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "access token not found")
		return
	}

	response.Success(c, identity, "User retrieved successfully")
}

// Update handles PATCH /user/update. Only name and username pass the
// allow-list; anything else in the payload is dropped.
func (h *UserHandler) Update(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "access token not found")
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	dto, err := h.service.UpdateProfile(c.Request.Context(), identity.ID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, dto, "User updated successfully")
}

// Delete handles DELETE /user/delete, removing the caller's account.
func (h *UserHandler) Delete(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "access token not found")
		return
	}

	if err := h.service.Delete(c.Request.Context(), identity.ID); err != nil {
		h.handleError(c, err)
		return
	}

	h.clearSessionCookie(c)
	response.Success(c, nil, "User deleted successfully")
}

// ========================================
// ERROR MAPPING
// ========================================

// handleError maps domain errors to HTTP responses. Nothing leaves this
// handler as an unformatted fault.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.BadRequestWithDetails(c, "Validation failed", verrs)
		return
	}

	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, user.ErrEmailAlreadyExists),
		errors.Is(err, user.ErrUserNameAlreadyExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("user handler error", err)
		response.InternalServerError(c, "something went wrong")
	}
}
