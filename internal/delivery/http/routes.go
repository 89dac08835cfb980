package http

import (
	"github.com/gin-gonic/gin"
	"github.com/joystick-informer/backend/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, authMiddleware gin.HandlerFunc) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Operational endpoints
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		// Accounts and sessions
		api.POST("/users", handler.Register)
		auth := api.Group("/auth")
		{
			auth.POST("/login", handler.Login)
			auth.POST("/refresh", authMiddleware, handler.RefreshToken)
		}

		// Game catalog
		games := api.Group("/games")
		{
			games.GET("/search/:search", handler.SearchGames)
			games.GET("/:id", handler.GetGame)
		}

		// Cross-marketplace price reconciliation
		api.POST("/pricing", handler.ComparePrices)

		// Watchlist dashboard (protected)
		api.GET("/dashboard", authMiddleware, handler.GetDashboard)
		api.PUT("/dashboard", authMiddleware, handler.UpdateDashboard)
	}

	return router
}
