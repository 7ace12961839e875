package usecases

import (
	"context"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pulse-inc/pulse/internal/application/integration/dto"
	"github.com/pulse-inc/pulse/internal/shared/constants"
	"github.com/pulse-inc/pulse/internal/shared/logger"
)

type integrationEntry struct {
	id          string
	description string
}

// catalog is the settings page order. Only slack has a backend.
var catalog = []integrationEntry{
	{id: "zoom", description: "Analyze customer calls and meetings automatically"},
	{id: "zendesk", description: "Import and analyze support ticket conversations"},
	{id: constants.ProviderSlack, description: "Monitor customer feedback channels in real-time"},
}

type ListIntegrationsUseCase struct {
	status *GetConnectionStatusUseCase
	logger logger.Interface
}

func NewListIntegrationsUseCase(status *GetConnectionStatusUseCase, logger logger.Interface) *ListIntegrationsUseCase {
	return &ListIntegrationsUseCase{
		status: status,
		logger: logger,
	}
}

func (uc *ListIntegrationsUseCase) Execute(ctx context.Context) ([]*dto.IntegrationDTO, error) {
	// Casers are stateful and not safe to share between requests.
	title := cases.Title(language.English)
	result := make([]*dto.IntegrationDTO, 0, len(catalog))
	for _, entry := range catalog {
		item := &dto.IntegrationDTO{
			ID:          entry.id,
			Name:        title.String(entry.id),
			Description: entry.description,
		}
		if entry.id == constants.ProviderSlack {
			status, err := uc.status.Execute(ctx, entry.id)
			if err != nil {
				return nil, err
			}
			item.Connected = status.Connected
			item.Available = true
		}
		result = append(result, item)
	}
	return result, nil
}
