package http

import (
	"github.com/gin-gonic/gin"

	"github.com/plateup/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(NewIPRateLimiter(cfg.RateLimit.PerIP)))
	{
		icons := v1.Group("/icons")
		{
			icons.GET("/resolve", handler.ResolveIcon)
			icons.POST("/resolve", handler.ResolveIcons)
			icons.GET("/table", handler.GlyphTable)
		}

		meals := v1.Group("/meals")
		{
			meals.POST("/icons", handler.MealIcons)
		}
	}

	return router
}
