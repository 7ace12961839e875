package dto

import (
	"time"

	"github.com/pulse-inc/pulse/internal/domain/integration"
	"github.com/pulse-inc/pulse/internal/shared/utils"
)

// GrantDTO is the debug view of a stored grant. Tokens are always masked.
type GrantDTO struct {
	ID          string            `json:"id"`
	Provider    string            `json:"provider"`
	TeamID      string            `json:"team_id"`
	TeamName    string            `json:"team_name,omitempty"`
	UserID      string            `json:"user_id"`
	Scope       string            `json:"scope"`
	AccessToken string            `json:"access_token"`
	BotToken    string            `json:"bot_token,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Active      bool              `json:"active"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	ExpiresAt   time.Time         `json:"expires_at"`
}

func ToGrantDTO(g *integration.OAuthGrant, now time.Time) *GrantDTO {
	if g == nil {
		return nil
	}
	return &GrantDTO{
		ID:          g.SID(),
		Provider:    g.Provider(),
		TeamID:      g.TeamID(),
		TeamName:    g.TeamName(),
		UserID:      g.UserID(),
		Scope:       g.Scope(),
		AccessToken: utils.MaskToken(g.AccessToken()),
		BotToken:    utils.MaskToken(g.BotToken()),
		Metadata:    g.Metadata(),
		Active:      g.IsActive(now),
		CreatedAt:   g.CreatedAt(),
		UpdatedAt:   g.UpdatedAt(),
		ExpiresAt:   g.ExpiresAt(),
	}
}

func ToGrantDTOList(grants []*integration.OAuthGrant, now time.Time) []*GrantDTO {
	result := make([]*GrantDTO, 0, len(grants))
	for _, g := range grants {
		result = append(result, ToGrantDTO(g, now))
	}
	return result
}

// IntegrationDTO is one row of the settings page.
type IntegrationDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Connected   bool   `json:"connected"`
	// Available is false for integrations that have no backend yet.
	Available bool `json:"available"`
}
