package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blog-backend/internal/domains/post"
	"blog-backend/internal/domains/user"
	"blog-backend/internal/shared/response"
	"blog-backend/internal/shared/utils"
)

// Handler exposes the post endpoints.
type Handler struct {
	service post.Service
}

func NewHandler(service post.Service) *Handler {
	return &Handler{service: service}
}

// List - GET /v1/posts
// Public feed: published posts with reachable slugs, newest first, served
// from the in-process list cache.
func (h *Handler) List(c *gin.Context) {
	posts, err := h.service.ListVisible(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, post.ToResponseList(posts))
}

// Refetch - POST /v1/posts/refetch
// Forces the list cache to reload from the store.
func (h *Handler) Refetch(c *gin.Context) {
	posts, err := h.service.Refetch(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, post.ToResponseList(posts))
}

// GetBySlug - GET /v1/posts/slug/:slug
func (h *Handler) GetBySlug(c *gin.Context) {
	p, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p.ToResponse())
}

// Mine - GET /v1/posts/mine
// The caller's own posts, drafts included.
func (h *Handler) Mine(c *gin.Context) {
	authorID := c.MustGet("userID").(uuid.UUID)

	posts, err := h.service.ListByAuthor(c.Request.Context(), authorID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, post.ToResponseList(posts))
}

// RecordView - POST /v1/posts/:id/views
// Public and best-effort: the response is 202 regardless of whether the
// increment eventually lands.
func (h *Handler) RecordView(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}

	viewerIP := utils.StringPtr(c.ClientIP())
	userAgent := utils.StringPtr(c.Request.UserAgent())
	h.service.RecordView(c.Request.Context(), id, viewerIP, userAgent)

	response.Success(c, http.StatusAccepted, gin.H{"recorded": true})
}

// Create - POST /v1/posts
func (h *Handler) Create(c *gin.Context) {
	authorID := c.MustGet("userID").(uuid.UUID)

	var req post.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), authorID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created.ToResponse())
}

// Update - PUT /v1/posts/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	actorID := c.MustGet("userID").(uuid.UUID)

	var req post.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), actorID, id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated.ToResponse())
}

// Delete - DELETE /v1/posts/:id
// The owner can delete their own post; an admin can delete anyone's.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	actorID := c.MustGet("userID").(uuid.UUID)
	admin := c.GetString("role") == user.RoleAdmin

	if err := h.service.Delete(c.Request.Context(), actorID, id, admin); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id.String()})
}

// Search - GET /v1/search?q=
func (h *Handler) Search(c *gin.Context) {
	results, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, results)
}

// UpdateReadingProgress - PUT /v1/posts/:id/progress
func (h *Handler) UpdateReadingProgress(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	userID := c.MustGet("userID").(uuid.UUID)

	var req post.UpdateReadingProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.service.UpdateReadingProgress(c.Request.Context(), userID, id, req.ProgressPercentage); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"progress_percentage": req.ProgressPercentage})
}

// Statistics - GET /v1/admin/posts/statistics (admin)
func (h *Handler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// Export - GET /v1/admin/posts/export (admin)
// Streams the statistics workbook as an .xlsx download.
func (h *Handler) Export(c *gin.Context) {
	f, err := h.service.ExportToExcel(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	filename := fmt.Sprintf("posts_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		response.InternalServerError(c, "failed to write workbook")
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", validationErrs)
		return
	}
	response.ErrorResponse(c, post.ToHTTPStatus(err), post.ToErrorCode(err), err.Error())
}
