package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pulse-inc/pulse/internal/interfaces/dto"
	"github.com/pulse-inc/pulse/internal/shared/constants"
	"github.com/pulse-inc/pulse/internal/shared/logger"
)

const healthCheckTimeout = 3 * time.Second

// DatabasePinger reports whether the grant store is reachable. A nil pinger
// means grants live in process memory.
type DatabasePinger func(ctx context.Context) error

type HealthHandler struct {
	ping     DatabasePinger
	statusUC connectionStatusUseCase
	logger   logger.Interface
}

func NewHealthHandler(ping DatabasePinger, statusUC connectionStatusUseCase, logger logger.Interface) *HealthHandler {
	return &HealthHandler{
		ping:     ping,
		statusUC: statusUC,
		logger:   logger,
	}
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports database reachability and the number of active Slack grants
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 500 {object} dto.HealthErrorResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	database := "memory"
	if h.ping != nil {
		database = "connected"
		if err := h.ping(ctx); err != nil {
			h.logger.Errorw("health check: database unreachable", "error", err)
			c.JSON(http.StatusInternalServerError, dto.HealthErrorResponse{Status: "unhealthy", Error: err.Error()})
			return
		}
	}

	result, err := h.statusUC.Execute(ctx, constants.ProviderSlack)
	if err != nil {
		h.logger.Errorw("health check: grant count failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.HealthErrorResponse{Status: "unhealthy", Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:       "healthy",
		Database:     database,
		ActiveTokens: result.ActiveCount,
	})
}
