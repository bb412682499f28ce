package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/media"
	"blog-backend/internal/shared/response"
)

// Handler exposes the image upload endpoint.
type Handler struct {
	service media.Service
}

func NewHandler(service media.Service) *Handler {
	return &Handler{service: service}
}

// Upload - POST /v1/uploads/images
// Multipart form with a single "file" part.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "unreadable file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.InternalServerError(c, "failed to read file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := h.service.UploadImage(c.Request.Context(), fileHeader.Filename, contentType, data)
	if err != nil {
		response.ErrorResponse(c, media.ToHTTPStatus(err), media.ToErrorCode(err), err.Error())
		return
	}

	response.Success(c, http.StatusCreated, result)
}
