package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/refugee-innovation-hub/internal/apperror"
	"github.com/rs/zerolog"
)

// respondError writes {"error": message} with the status mapped from err.
// Server-side failures are logged with the real cause and answered generically.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	status, msg := apperror.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}
	c.JSON(status, gin.H{"error": msg})
}

// queryID reads the positive ?id= parameter
func queryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid id is required"})
		return 0, false
	}
	return id, true
}
