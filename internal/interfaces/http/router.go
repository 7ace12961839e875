package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/pulse-inc/pulse/internal/infrastructure/metrics"
	"github.com/pulse-inc/pulse/internal/interfaces/http/middleware"
	"github.com/pulse-inc/pulse/internal/interfaces/http/routes"

	_ "github.com/pulse-inc/pulse/docs"
)

// SetupRoutes configures middleware and all HTTP routes.
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.GetAllowedOrigins()))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(metrics.HTTPMiddleware(c.recorder))

	c.engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)

	if c.registry != nil {
		c.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})))
	}

	if !c.cfg.Server.IsProduction() {
		c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes.SetupSlackRoutes(c.engine, &routes.SlackRouteConfig{
		SlackHandler: c.hdlrs.slackHandler,
		RateLimiter:  c.hdlrs.oauthRateLimiter,
		EnableDebug:  !c.cfg.Server.IsProduction(),
	})

	routes.SetupDashboardRoutes(c.engine, &routes.DashboardRouteConfig{
		DashboardHandler: c.hdlrs.dashboardHandler,
	})
}
