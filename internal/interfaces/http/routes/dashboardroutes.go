package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pulse-inc/pulse/internal/interfaces/http/handlers"
)

// DashboardRouteConfig holds dependencies for dashboard routes.
type DashboardRouteConfig struct {
	DashboardHandler *handlers.DashboardHandler
}

// SetupDashboardRoutes configures the read-only dashboard routes.
func SetupDashboardRoutes(engine *gin.Engine, cfg *DashboardRouteConfig) {
	api := engine.Group("/api")
	{
		api.GET("/dashboard", cfg.DashboardHandler.GetDashboard)
		api.GET("/integrations", cfg.DashboardHandler.ListIntegrations)
	}
}
