package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/refugee-innovation-hub/internal/config"
	"github.com/refugee-innovation-hub/internal/service"
	"github.com/rs/zerolog"
)

// UploadHandler handles standalone image uploads
type UploadHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /api/upload with a multipart "image" field
func (h *UploadHandler) Upload(c *gin.Context) {
	limitBody(c, h.cfg.Upload.MaxUploadSize)

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded or upload error occurred"})
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	defer file.Close()

	result, err := h.services.Upload.StoreImage(c.Request.Context(), &service.ImageFile{
		Name:    header.Filename,
		Size:    header.Size,
		Content: file,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"url":      result.URL,
		"filename": result.Filename,
		"message":  "File uploaded successfully",
	})
}
