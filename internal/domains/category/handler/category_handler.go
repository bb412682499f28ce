package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/domains/category"
	"blog-backend/internal/domains/post"
	"blog-backend/internal/shared/response"
)

// Handler exposes the category endpoints.
type Handler struct {
	service category.Service
}

func NewHandler(service category.Service) *Handler {
	return &Handler{service: service}
}

// List - GET /v1/categories
func (h *Handler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, categories)
}

// Create - POST /v1/categories (admin)
func (h *Handler) Create(c *gin.Context) {
	var req category.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// Get - GET /v1/categories/:slug
func (h *Handler) Get(c *gin.Context) {
	cat, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cat)
}

// Posts - GET /v1/categories/:slug/posts
func (h *Handler) Posts(c *gin.Context) {
	posts, err := h.service.PostsBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, post.ToResponseList(posts))
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", validationErrs)
		return
	}
	response.ErrorResponse(c, category.ToHTTPStatus(err), category.ToErrorCode(err), err.Error())
}
