package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/post"
	"blog-backend/internal/shared/response"
)

// Handler exposes the author profile endpoints.
type Handler struct {
	service     author.Service
	postService post.Service
}

func NewHandler(service author.Service, postService post.Service) *Handler {
	return &Handler{
		service:     service,
		postService: postService,
	}
}

// List - GET /v1/authors
func (h *Handler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, authors)
}

// Get - GET /v1/authors/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, a)
}

// Posts - GET /v1/authors/:id/posts
// Public author page: published posts only. Drafts are reachable solely by
// their owner through GET /v1/posts/mine.
func (h *Handler) Posts(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	posts, err := h.postService.ListVisibleByAuthor(c.Request.Context(), id)
	if err != nil {
		response.InternalServerError(c, "failed to list posts")
		return
	}

	response.Success(c, http.StatusOK, post.ToResponseList(posts))
}

// Update - PUT /v1/authors/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}
	actorID := c.MustGet("userID").(uuid.UUID)

	var req author.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), actorID, id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Delete - DELETE /v1/authors/:id (admin)
// Cascades: the author's posts go first, then the profile.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	if err := h.service.DeleteCascade(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	h.postService.EvictAuthorPosts(id)

	response.Success(c, http.StatusOK, gin.H{"deleted": id.String()})
}

// Statistics - GET /v1/admin/authors/statistics (admin)
func (h *Handler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", validationErrs)
		return
	}
	response.ErrorResponse(c, author.ToHTTPStatus(err), author.ToErrorCode(err), err.Error())
}
