package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/refugee-innovation-hub/internal/service"
	"github.com/rs/zerolog"
)

// StatsHandler serves the dashboard counters
type StatsHandler struct {
	services *service.Services
	log      zerolog.Logger
}

func NewStatsHandler(services *service.Services, log zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		services: services,
		log:      log.With().Str("handler", "stats").Logger(),
	}
}

// Get handles GET /api/stats
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.services.Stats.Get(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
