package api

import (
	"github.com/gin-gonic/gin"
	"github.com/timmy/imagen/internal/api/handler"
	"github.com/timmy/imagen/internal/api/middleware"
	"github.com/timmy/imagen/internal/logger"
	"github.com/timmy/imagen/internal/service"
)

// RouterConfig carries the router's runtime options.
type RouterConfig struct {
	Mode string // release, test, debug
	CORS middleware.CORSConfig
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	commands *service.CommandService,
	queries *service.QueryService,
	log *logger.Logger,
	cfg RouterConfig,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cfg.CORS))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	imageHandler := handler.NewImageHandler(commands, queries)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Commands
		v1.POST("/images/generate", imageHandler.Generate)
		v1.POST("/images/classify", imageHandler.Classify)

		// Queries
		v1.GET("/images/classified/:id", imageHandler.GetClassifiedImage)
		v1.GET("/images/:id", imageHandler.GetImage)
		v1.GET("/images/:id/base64", imageHandler.GetImageBase64)
	}

	return r
}
