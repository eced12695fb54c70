package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blog-backend/internal/domains/blog"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/response"
	"blog-backend/internal/shared/utils"
	"blog-backend/pkg/logger"
)

// BlogHandler handles HTTP requests for the blog domain.
type BlogHandler struct {
	service blog.Service
}

// NewBlogHandler creates the handler instance.
func NewBlogHandler(service blog.Service) *BlogHandler {
	return &BlogHandler{service: service}
}

// Create handles POST /blog.
func (h *BlogHandler) Create(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "access token not found")
		return
	}

	var req blog.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), identity, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, b, "Blog created successfully")
}

// ListOwn handles GET /blog — the caller's posts, paginated.
func (h *BlogHandler) ListOwn(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "access token not found")
		return
	}

	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	result, err := h.service.ListOwn(c.Request.Context(), identity, p)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, result, "Blogs fetched successfully")
}

// ListPublic handles GET /blog/all — public posts across all authors.
func (h *BlogHandler) ListPublic(c *gin.Context) {
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	result, err := h.service.ListPublic(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, result, "Blogs fetched successfully")
}

// GetDetail handles GET /blog/:id — owner-scoped lookup.
func (h *BlogHandler) GetDetail(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "access token not found")
		return
	}

	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.BadRequest(c, "invalid blog id")
		return
	}

	b, err := h.service.GetDetail(c.Request.Context(), id, identity)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, b, "Blog fetched successfully")
}

// Update handles PATCH /blog/:id.
func (h *BlogHandler) Update(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "access token not found")
		return
	}

	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.BadRequest(c, "invalid blog id")
		return
	}

	var req blog.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, identity, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, b, "Blog updated successfully")
}

// Delete handles DELETE /blog/:id.
func (h *BlogHandler) Delete(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "access token not found")
		return
	}

	id := utils.ParseStringToUUID(c.Param("id"))
	if id == uuid.Nil {
		response.BadRequest(c, "invalid blog id")
		return
	}

	b, err := h.service.Delete(c.Request.Context(), id, identity)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, b, "Blog removed successfully")
}

// handleError maps domain errors to HTTP responses.
func (h *BlogHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.BadRequestWithDetails(c, "Validation failed", verrs)
		return
	}

	switch {
	case errors.Is(err, blog.ErrBlogNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("blog handler error", err)
		response.InternalServerError(c, "something went wrong")
	}
}
