package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/refugee-innovation-hub/internal/auth"
	"github.com/refugee-innovation-hub/internal/config"
	"github.com/refugee-innovation-hub/internal/service"
	"github.com/rs/zerolog"
)

// healthTimeout bounds the database ping behind /health
const healthTimeout = 2 * time.Second

// HealthChecker reports whether the database is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, policy auth.Policy, db HealthChecker, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = cfg.Upload.MaxUploadSize + 1<<20

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(sessionMiddleware(services.Auth, cfg.Session.CookieName))

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	// Handlers
	storyHandler := NewStoryHandler(services, log)
	submissionHandler := NewSubmissionHandler(services, cfg, log)
	analyticsHandler := NewAnalyticsHandler(services, log)
	authHandler := NewAuthHandler(services, cfg, log)
	uploadHandler := NewUploadHandler(services, cfg, log)
	statsHandler := NewStatsHandler(services, log)

	require := func(capability auth.Capability) gin.HandlerFunc {
		return requireCapability(policy, capability, log)
	}

	router.GET("/health", healthCheck(db, log))

	if cfg.Upload.Backend == config.UploadBackendLocal {
		router.Static(cfg.Upload.PublicPath, cfg.Upload.Dir)
	}

	api := router.Group("/api")
	{
		api.GET("/stories", storyHandler.Get)
		api.POST("/stories", require(auth.StoriesWrite), storyHandler.Create)
		api.PUT("/stories", require(auth.StoriesWrite), storyHandler.Replace)
		api.PATCH("/stories", require(auth.StoriesWrite), storyHandler.Patch)
		api.DELETE("/stories", require(auth.StoriesWrite), storyHandler.Delete)

		api.GET("/submissions", require(auth.SubmissionsReview), submissionHandler.List)
		api.POST("/submissions", submissionHandler.Submit)
		api.PUT("/submissions", require(auth.SubmissionsReview), submissionHandler.SetStatus)

		api.GET("/analytics", require(auth.AnalyticsRead), analyticsHandler.List)
		api.POST("/analytics", analyticsHandler.Record)

		api.POST("/auth", authHandler.Handle)

		api.POST("/upload", uploadHandler.Upload)

		api.GET("/stats", require(auth.StatsRead), statsHandler.Get)
	}

	return router
}

// healthCheck returns the health status, 503 when the database does not answer
func healthCheck(db HealthChecker, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		resp := gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "refugee-innovation-hub",
		}
		if err := db.HealthCheck(ctx); err != nil {
			log.Error().Err(err).Msg("Health check failed")
			resp["status"] = "unhealthy"
			resp["error"] = "database unavailable"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
