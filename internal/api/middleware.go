package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/refugee-innovation-hub/internal/apperror"
	"github.com/refugee-innovation-hub/internal/auth"
	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/service"
	"github.com/rs/zerolog"
)

const sessionKey = "session"

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS. The request origin is echoed so the session cookie can be sent cross-origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		if origin := c.GetHeader("Origin"); origin != "" {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		} else {
			h.Set("Access-Control-Allow-Origin", "*")
		}
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// sessionMiddleware resolves the session cookie, if any, for the rest of the chain
func sessionMiddleware(authSvc service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(cookieName); err == nil && id != "" {
			if sess := authSvc.CurrentSession(c.Request.Context(), id); sess != nil {
				c.Set(sessionKey, sess)
			}
		}
		c.Next()
	}
}

// requireCapability rejects the request before the handler runs unless the
// session role holds capability
func requireCapability(policy auth.Policy, capability auth.Capability, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		if sess == nil {
			respondError(c, log, apperror.ErrUnauthorized)
			c.Abort()
			return
		}
		if !policy.Allows(sess.Role, capability) {
			log.Warn().Int64("user_id", sess.UserID).Str("role", string(sess.Role)).
				Str("capability", string(capability)).Msg("Capability denied")
			respondError(c, log, apperror.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *models.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*models.Session)
	return sess
}
