package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/refugee-innovation-hub/internal/apperror"
	"github.com/refugee-innovation-hub/internal/config"
	"github.com/refugee-innovation-hub/internal/models"
	"github.com/refugee-innovation-hub/internal/service"
	"github.com/rs/zerolog"
)

// AuthHandler handles dashboard sign-in
type AuthHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Handle dispatches POST /api/auth?action=login|logout|check. The action defaults to login.
func (h *AuthHandler) Handle(c *gin.Context) {
	switch c.DefaultQuery("action", "login") {
	case "login":
		h.login(c)
	case "logout":
		h.logout(c)
	case "check":
		h.check(c)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	}
}

func (h *AuthHandler) login(c *gin.Context) {
	var req models.LoginRequest
	// a malformed body is reported as missing credentials
	_ = c.ShouldBindJSON(&req)

	sess, user, err := h.services.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.setCookie(c, sess.ID, int(h.cfg.Session.TTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"message": "Login successful",
	})
}

func (h *AuthHandler) logout(c *gin.Context) {
	sess := sessionFrom(c)
	if sess == nil {
		respondError(c, h.log, apperror.ErrUnauthorized)
		return
	}

	if err := h.services.Auth.Logout(c.Request.Context(), sess.ID); err != nil {
		respondError(c, h.log, err)
		return
	}

	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *AuthHandler) check(c *gin.Context) {
	user, err := h.services.Auth.Check(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          user,
	})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Session.CookieName, value, maxAge, "/", "", h.cfg.Session.Secure, true)
}
