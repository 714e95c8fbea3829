package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/service"
	"github.com/rs/zerolog"
)

// AnalyticsHandler handles the usage event log
type AnalyticsHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(services *service.Services, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		services: services,
		log:      log.With().Str("handler", "analytics").Logger(),
	}
}

// Record handles POST /api/analytics
func (h *AnalyticsHandler) Record(c *gin.Context) {
	var in models.AnalyticsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	event, err := h.services.Analytics.Record(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":      event.ID,
		"message": "Analytics tracked",
	})
}

// List handles GET /api/analytics?event_type=&story_id=&limit=
func (h *AnalyticsHandler) List(c *gin.Context) {
	filter := models.AnalyticsFilter{EventType: c.Query("event_type")}

	if raw := c.Query("story_id"); raw != "" {
		storyID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "story_id must be an integer"})
			return
		}
		filter.StoryID = &storyID
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		filter.Limit = limit
	}

	events, err := h.services.Analytics.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
