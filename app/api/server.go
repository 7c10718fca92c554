package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

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
		SkipPaths: []string{"/health"},
	}))

	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, apiAccessKey)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	r.GET("/feeds/:category", handler.GetFeed)
	r.GET("/reports/latest", handler.GetLatestReport)

	r.GET("/health", handler.GetHealth)
	r.GET("/stats", handler.GetStats)

	api := r.Group("/api")
	{
		api.POST("/chat", handler.PostChat)
		api.GET("/items", handler.GetItems)
		api.GET("/subscriptions", handler.ListSubscriptions)
		api.GET("/alerts", handler.GetAlerts)
	}

	// Mutating endpoints are protected only when a key is configured
	protected := r.Group("/api")
	if apiAccessKey != "" {
		protected.Use(authMiddleware(apiAccessKey))
		slog.Info("API authentication enabled for mutating endpoints")
	} else {
		slog.Warn("API authentication disabled (API_ACCESS_KEY not set)")
	}
	{
		protected.POST("/subscriptions", handler.CreateSubscription)
		protected.DELETE("/subscriptions/:id", handler.DeleteSubscription)
		protected.POST("/collect", handler.PostCollect)
		protected.POST("/reload", handler.PostReloadConfig)
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "StellarPulse",
			"version":     handler.version,
			"description": "Tech news monitor for AI, robotics and space with chat queries and keyword alerts",
			"endpoints": map[string]string{
				"feeds":         "/feeds/<ai|robotics|space>",
				"report":        "/reports/latest",
				"health":        "/health",
				"stats":         "/stats",
				"chat":          "/api/chat (POST)",
				"items":         "/api/items?category=&q=&order=&limit=",
				"subscriptions": "/api/subscriptions (GET, POST, DELETE /<id>)",
				"alerts":        "/api/alerts?limit=",
				"collect":       "/api/collect (POST)",
				"reload":        "/api/reload (POST)",
			},
			"api_status": map[string]interface{}{
				"auth_required": apiAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
