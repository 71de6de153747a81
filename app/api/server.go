package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/luisjesusbernal/Geek-News/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	// Uploaded article images
	r.Static("/uploads", cfg.Get().UploadsDir)

	// Health and status endpoints
	r.GET("/health", handler.GetHealth)
	r.GET("/stats", handler.GetStats)

	// Published-article feed
	r.GET("/rss", handler.GetRSS)

	// Public API
	r.POST("/api/register", handler.Register)
	r.POST("/api/login", handler.Login)
	r.GET("/api/me", handler.GetMe)
	r.POST("/api/logout", handler.Logout)
	r.POST("/api/subscribe", handler.Subscribe)
	r.GET("/api/sections", handler.ListSections)
	r.GET("/api/news", handler.ListPublishedArticles)
	r.GET("/api/news/:id", handler.GetPublishedArticle)

	// Session-gated API
	authed := r.Group("/api")
	authed.Use(handler.authService.RequireAuth())
	{
		authed.GET("/favorites", handler.ListFavorites)
		authed.POST("/favorites/:id", handler.ToggleFavorite)
	}

	// Admin-gated API
	admin := r.Group("/api")
	admin.Use(handler.authService.RequireAdmin())
	{
		admin.POST("/news", handler.CreateArticle)
		admin.DELETE("/news/:id", handler.DeleteArticle)
		admin.POST("/upload-image", handler.UploadImage)
		admin.GET("/admin/news", handler.ListAllArticles)
		admin.GET("/admin/subscribers", handler.ListSubscribers)
		admin.DELETE("/admin/subscribers/:id", handler.DeleteSubscriber)
		admin.POST("/admin/campaigns", handler.CreateCampaign)
		admin.GET("/admin/campaigns", handler.ListCampaigns)
		admin.POST("/admin/campaigns/:id/send", handler.SendCampaign)
		admin.GET("/admin/campaigns/:id/logs", handler.ListCampaignLogs)
		admin.POST("/admin/import", handler.ImportFeed)
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "Geek News",
			"version":     cfg.Get().Version,
			"description": "News portal with favorites and a newsletter",
			"endpoints": map[string]string{
				"news":      "/api/news?section=<name>&limit=<n>",
				"article":   "/api/news/<id>",
				"sections":  "/api/sections",
				"rss":       "/rss",
				"subscribe": "/api/subscribe (POST)",
				"health":    "/health",
				"stats":     "/stats",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
