package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulse-inc/pulse/internal/application/integration/usecases"
	"github.com/pulse-inc/pulse/internal/interfaces/dto"
	"github.com/pulse-inc/pulse/internal/shared/constants"
	"github.com/pulse-inc/pulse/internal/shared/errors"
	"github.com/pulse-inc/pulse/internal/shared/logger"
	"github.com/pulse-inc/pulse/internal/shared/utils"
)

type SlackHandler struct {
	exchangeUC     exchangeOAuthCodeUseCase
	statusUC       connectionStatusUseCase
	connectUC      initiateOAuthConnectUseCase
	listGrantsUC   listGrantsUseCase
	sanitizer      textSanitizer
	allowedOrigins []string
	logger         logger.Interface
}

func NewSlackHandler(
	exchangeUC exchangeOAuthCodeUseCase,
	statusUC connectionStatusUseCase,
	connectUC initiateOAuthConnectUseCase,
	listGrantsUC listGrantsUseCase,
	sanitizer textSanitizer,
	allowedOrigins []string,
	logger logger.Interface,
) *SlackHandler {
	return &SlackHandler{
		exchangeUC:     exchangeUC,
		statusUC:       statusUC,
		connectUC:      connectUC,
		listGrantsUC:   listGrantsUC,
		sanitizer:      sanitizer,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// ExchangeCode godoc
// @Summary Exchange a Slack authorization code
// @Description Exchanges the code returned by Slack for tokens and stores the grant
// @Tags slack
// @Accept json
// @Produce json
// @Param request body dto.SlackOAuthRequest true "Authorization code"
// @Success 200 {object} dto.SlackOAuthResponse
// @Failure 400 {object} dto.SlackOAuthErrorResponse "Invalid request or state"
// @Failure 500 {object} dto.SlackOAuthErrorResponse "Exchange failed"
// @Router /api/slack/oauth [post]
func (h *SlackHandler) ExchangeCode(c *gin.Context) {
	var req dto.SlackOAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for slack oauth", "error", err)
		c.JSON(http.StatusBadRequest, dto.SlackOAuthErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		h.oauthError(c, err)
		return
	}

	result, err := h.exchangeUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		h.oauthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSlackOAuthResponse(result))
}

// oauthError writes the {success:false, error, details} shape. State and
// validation failures are 400; everything else is a generic 500.
func (h *SlackHandler) oauthError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		h.logger.Errorw("slack oauth exchange failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.SlackOAuthErrorResponse{
			Error: constants.ErrMsgExchangeFailed,
		})
		return
	}

	switch appErr.Type {
	case errors.ErrorTypeStateMismatch:
		c.JSON(http.StatusBadRequest, dto.SlackOAuthErrorResponse{
			Error:   string(errors.ErrorTypeStateMismatch),
			Details: appErr.Message,
		})
	case errors.ErrorTypeValidation:
		c.JSON(http.StatusBadRequest, dto.SlackOAuthErrorResponse{
			Error:   appErr.Message,
			Details: appErr.Details,
		})
	default:
		details := appErr.Details
		if details == "" {
			details = appErr.Message
		}
		c.JSON(http.StatusInternalServerError, dto.SlackOAuthErrorResponse{
			Error:   constants.ErrMsgExchangeFailed,
			Details: details,
		})
	}
}

// Status godoc
// @Summary Slack connection status
// @Description Reports whether at least one unexpired Slack grant exists
// @Tags slack
// @Produce json
// @Success 200 {object} dto.SlackStatusResponse
// @Failure 500 {object} dto.StatusErrorResponse
// @Router /api/slack/status [get]
func (h *SlackHandler) Status(c *gin.Context) {
	result, err := h.statusUC.Execute(c.Request.Context(), constants.ProviderSlack)
	if err != nil {
		details := err.Error()
		if appErr := errors.GetAppError(err); appErr != nil && appErr.Details != "" {
			details = appErr.Details
		}
		c.JSON(http.StatusInternalServerError, dto.StatusErrorResponse{
			Error:   constants.ErrMsgStatusFailed,
			Details: details,
		})
		return
	}

	c.JSON(http.StatusOK, dto.SlackStatusResponse{Connected: result.Connected})
}

// Connect godoc
// @Summary Start a Slack connection
// @Description Issues a CSRF state and returns the Slack authorize URL to open in a popup
// @Tags slack
// @Produce json
// @Param redirect_uri query string false "Redirect URI registered with Slack"
// @Success 200 {object} utils.APIResponse{data=dto.SlackConnectResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /api/slack/connect [get]
func (h *SlackHandler) Connect(c *gin.Context) {
	result, err := h.connectUC.Execute(c.Request.Context(), usecases.InitiateOAuthConnectCommand{
		Provider:    constants.ProviderSlack,
		RedirectURI: c.Query("redirect_uri"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.SlackConnectResponse{
		URL:         result.AuthURL,
		State:       result.State,
		RedirectURI: result.RedirectURI,
	})
}

// ListTokens godoc
// @Summary List stored Slack grants (debug)
// @Description Only registered outside production. Tokens are masked.
// @Tags debug
// @Produce json
// @Success 200 {object} dto.TokenListResponse
// @Failure 500 {object} dto.SlackOAuthErrorResponse
// @Router /api/tokens/test [get]
func (h *SlackHandler) ListTokens(c *gin.Context) {
	grants, err := h.listGrantsUC.Execute(c.Request.Context(), constants.ProviderSlack)
	if err != nil {
		h.logger.Errorw("failed to list grants", "error", err)
		c.JSON(http.StatusInternalServerError, dto.SlackOAuthErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.TokenListResponse{
		Success: true,
		Tokens:  grants,
		Count:   len(grants),
	})
}
