package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pirxey/timetrack-api/internal/config"
	"github.com/pirxey/timetrack-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	importHandler := NewImportHandler(services, cfg, log)
	exportHandler := NewExportHandler(services, log)
	entryHandler := NewEntryHandler(services, log)
	catalogHandler := NewCatalogHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)

	// API v1, all routes require an identified user
	v1 := router.Group("/v1")
	v1.Use(identifyUser(services, log))
	{
		v1.GET("/capabilities", catalogHandler.Capabilities)

		imports := v1.Group("/imports")
		{
			imports.POST("", importHandler.Import)
			imports.POST("/validate", importHandler.Validate)
			imports.GET("/template", importHandler.Template)
		}

		v1.GET("/exports", exportHandler.Export)
		v1.GET("/reports", exportHandler.Report)

		entries := v1.Group("/time-entries")
		{
			entries.GET("", entryHandler.List)
			entries.POST("", entryHandler.Create)
			entries.PUT("/:id", entryHandler.Update)
			entries.DELETE("/:id", entryHandler.Delete)
		}

		projects := v1.Group("/projects")
		{
			projects.GET("", catalogHandler.ListProjects)
			projects.POST("", catalogHandler.CreateProject)
			projects.PUT("/:id", catalogHandler.UpdateProject)
			projects.DELETE("/:id", catalogHandler.DeleteProject)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", catalogHandler.ListTags)
			tags.POST("", catalogHandler.CreateTag)
			tags.DELETE("/:id", catalogHandler.DeleteTag)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", catalogHandler.ListCategories)
			categories.POST("", catalogHandler.CreateCategory)
			categories.PUT("/:id", catalogHandler.UpdateCategory)
			categories.DELETE("/:id", catalogHandler.DeleteCategory)
		}

		clients := v1.Group("/clients")
		{
			clients.GET("", catalogHandler.ListClients)
			clients.POST("", catalogHandler.CreateClient)
			clients.DELETE("/:id", catalogHandler.DeleteClient)
		}

		v1.GET("/teams", catalogHandler.ListTeams)
		v1.GET("/members", catalogHandler.ListMembers)
		v1.POST("/members", catalogHandler.InviteMember)
		v1.PUT("/members/:id", catalogHandler.UpdateMember)
		v1.DELETE("/members/:id", catalogHandler.RemoveMember)

		v1.GET("/settings", catalogHandler.GetSettings)
		v1.PUT("/settings", catalogHandler.UpdateSettings)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "timetrack-api",
	})
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
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

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
