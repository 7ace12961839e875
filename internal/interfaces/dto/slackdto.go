package dto

import (
	"github.com/pulse-inc/pulse/internal/application/integration/usecases"
	"github.com/pulse-inc/pulse/internal/shared/constants"
)

// SlackOAuthRequest is the body of POST /api/slack/oauth.
type SlackOAuthRequest struct {
	Code        string `json:"code" validate:"required,slackcode"`
	RedirectURI string `json:"redirect_uri" validate:"omitempty,httpurl"`
	State       string `json:"state" validate:"omitempty,max=2048"`
}

func (r *SlackOAuthRequest) ToCommand() usecases.ExchangeOAuthCodeCommand {
	return usecases.ExchangeOAuthCodeCommand{
		Provider:    constants.ProviderSlack,
		Code:        r.Code,
		RedirectURI: r.RedirectURI,
		State:       r.State,
	}
}

type TeamInfo struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type UserInfo struct {
	ID string `json:"id"`
}

// SlackOAuthResponse keeps the shape the dashboard frontend already reads.
type SlackOAuthResponse struct {
	Success bool     `json:"success"`
	Team    TeamInfo `json:"team"`
	User    UserInfo `json:"user"`
}

func NewSlackOAuthResponse(r *usecases.ExchangeOAuthCodeResult) SlackOAuthResponse {
	return SlackOAuthResponse{
		Success: true,
		Team:    TeamInfo{ID: r.TeamID, Name: r.TeamName},
		User:    UserInfo{ID: r.UserID},
	}
}

// SlackOAuthErrorResponse is the failure shape of POST /api/slack/oauth and
// GET /api/tokens/test.
type SlackOAuthErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type SlackStatusResponse struct {
	Connected bool `json:"connected"`
}

type StatusErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SlackConnectResponse is the data of GET /api/slack/connect.
type SlackConnectResponse struct {
	URL         string `json:"url"`
	State       string `json:"state"`
	RedirectURI string `json:"redirect_uri"`
}

type TokenListResponse struct {
	Success bool `json:"success"`
	Tokens  any  `json:"tokens"`
	Count   int  `json:"count"`
}

type HealthResponse struct {
	Status       string `json:"status"`
	Database     string `json:"database,omitempty"`
	ActiveTokens int64  `json:"activeTokens"`
}

type HealthErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}
