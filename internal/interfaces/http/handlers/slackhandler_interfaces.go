package handlers

import (
	"context"

	feedbackDto "github.com/pulse-inc/pulse/internal/application/feedback/dto"
	feedbackUsecases "github.com/pulse-inc/pulse/internal/application/feedback/usecases"
	integrationDto "github.com/pulse-inc/pulse/internal/application/integration/dto"
	"github.com/pulse-inc/pulse/internal/application/integration/usecases"
)

// Use case interfaces for the handlers - enable unit testing with mocks.

type exchangeOAuthCodeUseCase interface {
	Execute(ctx context.Context, cmd usecases.ExchangeOAuthCodeCommand) (*usecases.ExchangeOAuthCodeResult, error)
}

type connectionStatusUseCase interface {
	Execute(ctx context.Context, provider string) (*usecases.GetConnectionStatusResult, error)
}

type initiateOAuthConnectUseCase interface {
	Execute(ctx context.Context, cmd usecases.InitiateOAuthConnectCommand) (*usecases.InitiateOAuthConnectResult, error)
}

type listGrantsUseCase interface {
	Execute(ctx context.Context, provider string) ([]*integrationDto.GrantDTO, error)
}

type listIntegrationsUseCase interface {
	Execute(ctx context.Context) ([]*integrationDto.IntegrationDTO, error)
}

type getDashboardUseCase interface {
	Execute(ctx context.Context, query feedbackUsecases.GetDashboardQuery) (*feedbackDto.DashboardDTO, error)
}

// textSanitizer strips markup from provider supplied text shown on the callback page.
type textSanitizer interface {
	StripTags(s string) string
}
