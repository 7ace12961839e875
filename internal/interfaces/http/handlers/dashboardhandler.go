package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pulse-inc/pulse/internal/application/feedback/usecases"
	"github.com/pulse-inc/pulse/internal/shared/errors"
	"github.com/pulse-inc/pulse/internal/shared/logger"
	"github.com/pulse-inc/pulse/internal/shared/utils"
)

type DashboardHandler struct {
	dashboardUC    getDashboardUseCase
	integrationsUC listIntegrationsUseCase
	logger         logger.Interface
}

func NewDashboardHandler(dashboardUC getDashboardUseCase, integrationsUC listIntegrationsUseCase, logger logger.Interface) *DashboardHandler {
	return &DashboardHandler{
		dashboardUC:    dashboardUC,
		integrationsUC: integrationsUC,
		logger:         logger,
	}
}

// GetDashboard godoc
// @Summary Feedback dashboard
// @Description Metric cards, daily trend and feedback list for the last N days of data
// @Tags dashboard
// @Produce json
// @Param days query int false "Window in days (1-90)"
// @Success 200 {object} utils.APIResponse{data=dto.DashboardDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	var query usecases.GetDashboardQuery
	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("days must be an integer"))
			return
		}
		query.Days = days
	}

	result, err := h.dashboardUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListIntegrations godoc
// @Summary Integrations overview
// @Description Lists the integrations shown on the settings page with their connection state
// @Tags dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]dto.IntegrationDTO}
// @Failure 500 {object} utils.APIResponse
// @Router /api/integrations [get]
func (h *DashboardHandler) ListIntegrations(c *gin.Context) {
	result, err := h.integrationsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
