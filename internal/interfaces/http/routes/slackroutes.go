package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pulse-inc/pulse/internal/interfaces/http/handlers"
	"github.com/pulse-inc/pulse/internal/interfaces/http/middleware"
)

// SlackRouteConfig holds dependencies for Slack integration routes.
type SlackRouteConfig struct {
	SlackHandler *handlers.SlackHandler
	RateLimiter  *middleware.RateLimiter
	// EnableDebug registers /api/tokens/test. Never set in production.
	EnableDebug bool
}

// SetupSlackRoutes configures the Slack connect, exchange and status routes.
func SetupSlackRoutes(engine *gin.Engine, cfg *SlackRouteConfig) {
	slack := engine.Group("/api/slack")
	{
		slack.GET("/connect", cfg.RateLimiter.Limit(), cfg.SlackHandler.Connect)
		slack.GET("/callback", cfg.SlackHandler.Callback)
		slack.POST("/oauth", cfg.RateLimiter.Limit(), cfg.SlackHandler.ExchangeCode)
		slack.GET("/status", cfg.SlackHandler.Status)
	}

	if cfg.EnableDebug {
		engine.GET("/api/tokens/test", cfg.SlackHandler.ListTokens)
	}
}
