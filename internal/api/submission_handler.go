package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/refugee-innovation-hub/internal/config"
	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/service"
	"github.com/rs/zerolog"
)

// SubmissionHandler handles public submissions and their review
type SubmissionHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "submission").Logger(),
	}
}

// Submit handles POST /api/submissions. The form arrives as JSON or as
// multipart with an optional "image" file.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var in models.SubmissionInput
	var image *service.ImageFile

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		limitBody(c, h.cfg.Upload.MaxUploadSize)
		if err := c.ShouldBind(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
			return
		}
		if header, err := c.FormFile("image"); err == nil {
			file, err := header.Open()
			if err != nil {
				h.log.Warn().Err(err).Msg("Failed to open submission image")
			} else {
				defer file.Close()
				image = &service.ImageFile{Name: header.Filename, Size: header.Size, Content: file}
			}
		}
	} else if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sub, err := h.services.Submission.Submit(c.Request.Context(), &in, image)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      sub.ID,
		"message": "Submission received successfully",
	})
}

// List handles GET /api/submissions?status=
func (h *SubmissionHandler) List(c *gin.Context) {
	subs, err := h.services.Submission.List(c.Request.Context(), models.SubmissionStatus(c.Query("status")))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// SetStatus handles PUT /api/submissions?id=
func (h *SubmissionHandler) SetStatus(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}

	var req models.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.services.Submission.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	resp := gin.H{"message": "Submission updated successfully"}
	if result.StoryID != 0 {
		resp["story_id"] = result.StoryID
	}
	if result.Unchanged {
		resp["unchanged"] = true
	}
	c.JSON(http.StatusOK, resp)
}

// limitBody caps a multipart body at twice the image limit so oversized
// images still reach the size check instead of failing to parse
func limitBody(c *gin.Context, maxUpload int64) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*maxUpload+1<<20)
}
