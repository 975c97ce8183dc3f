package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coursehub/admin-api/internal/service"
	"coursehub/admin-api/internal/storage"
)

// MediaHandler drives the public image library: unsigned objects served
// straight from the CDN, distinct from the signed video flow.
type MediaHandler struct {
	mediaService service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

type DeleteMediaRequest struct {
	FileName string `json:"fileName" binding:"required"`
}

// List handles GET /api/media/list.
func (h *MediaHandler) List(c *gin.Context) {
	objects, err := h.mediaService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list media files.")
		return
	}
	if objects == nil {
		objects = []storage.MediaObject{}
	}
	c.JSON(http.StatusOK, gin.H{"files": objects})
}

// Upload handles POST /api/media/upload (multipart form, field "file").
func (h *MediaHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "A file is required.")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to read uploaded file.")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	object, err := h.mediaService.Upload(c.Request.Context(), fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to upload file.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "file": object})
}

// Delete handles DELETE /api/media/delete (body {fileName}).
func (h *MediaHandler) Delete(c *gin.Context) {
	var req DeleteMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "A fileName is required.")
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), req.FileName); err != nil {
		if errors.Is(err, service.ErrMediaFileRequired) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete file.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
