package restapi

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"octav_mcp/internal/config"
)

// SetupRouter wires the tool routes, health check and metrics endpoint.
func SetupRouter(toolHandler *ToolHandler, cfg config.ServerConfig, metricsHandler http.Handler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowOrigins) == 0 || slices.Contains(cfg.AllowOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.Use(ZapLoggerMiddleware(logger.Named("HTTP")))
	router.Use(gin.Recovery())

	router.GET("/healthz", HealthHandler)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	v1 := router.Group("/api/v1")
	if cfg.RateLimit > 0 {
		burst := cfg.BurstLimit
		if burst <= 0 {
			burst = 1
		}
		v1.Use(RateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)))
	}
	{
		v1.GET("/tools", toolHandler.ListToolsHandler)
		v1.POST("/tools/:name", toolHandler.CallToolHandler)
	}

	return router
}
