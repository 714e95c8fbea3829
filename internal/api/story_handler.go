package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/service"
	"github.com/rs/zerolog"
)

// StoryHandler handles the story catalog endpoints
type StoryHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewStoryHandler creates a new story handler
func NewStoryHandler(services *service.Services, log zerolog.Logger) *StoryHandler {
	return &StoryHandler{
		services: services,
		log:      log.With().Str("handler", "story").Logger(),
	}
}

// Get handles GET /api/stories. With ?id= it returns one story and counts the view,
// otherwise it lists stories filtered by featured, region and theme.
func (h *StoryHandler) Get(c *gin.Context) {
	if c.Query("id") != "" {
		id, ok := queryID(c)
		if !ok {
			return
		}
		story, err := h.services.Story.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, story)
		return
	}

	filter := models.StoryFilter{
		Region: c.Query("region"),
		Theme:  c.Query("theme"),
	}
	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "featured must be 1, 0, true or false"})
			return
		}
		filter.Featured = &featured
	}

	stories, err := h.services.Story.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stories)
}

// Create handles POST /api/stories
func (h *StoryHandler) Create(c *gin.Context) {
	var in models.StoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	story, err := h.services.Story.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      story.ID,
		"message": "Story created successfully",
	})
}

// Replace handles PUT /api/stories?id=
func (h *StoryHandler) Replace(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}

	var in models.StoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.services.Story.Replace(c.Request.Context(), id, &in); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Story updated successfully"})
}

// Patch handles PATCH /api/stories?id=, changing only the fields present in the body
func (h *StoryHandler) Patch(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}

	var patch models.StoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	story, err := h.services.Story.Patch(c.Request.Context(), id, &patch)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Story updated successfully",
		"story":   story,
	})
}

// Delete handles DELETE /api/stories?id=
func (h *StoryHandler) Delete(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}

	if err := h.services.Story.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Story deleted successfully"})
}
