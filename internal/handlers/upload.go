package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/Verm1lion/SwarmOPS/internal/errors"
	"github.com/Verm1lion/SwarmOPS/internal/middleware"
	"github.com/Verm1lion/SwarmOPS/internal/services"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadService *services.UploadService
}

func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// Upload stores one attachment for a project and returns its URL. The URL
// is appended to a task's media_urls by a follow-up task patch.
func (h *UploadHandler) Upload(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "A file field is required")
		return
	}

	url, err := h.uploadService.Save(project.ID, header)
	if err != nil {
		if errors.Is(err, services.ErrEmptyUpload) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to store upload")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url": url,
	})
}
