package usecases

import (
	"context"
	"fmt"

	"github.com/pulse-inc/pulse/internal/domain/integration"
	"github.com/pulse-inc/pulse/internal/shared/biztime"
	"github.com/pulse-inc/pulse/internal/shared/errors"
	"github.com/pulse-inc/pulse/internal/shared/logger"
	"github.com/pulse-inc/pulse/internal/shared/utils"
)

type InitiateOAuthConnectCommand struct {
	Provider string
	// RedirectURI falls back to the configured one when empty.
	RedirectURI string
}

type InitiateOAuthConnectResult struct {
	AuthURL     string
	State       string
	RedirectURI string
}

type InitiateOAuthConnectUseCase struct {
	provider           OAuthProvider
	stateStore         StateStore
	defaultRedirectURI string
	logger             logger.Interface
}

func NewInitiateOAuthConnectUseCase(
	provider OAuthProvider,
	stateStore StateStore,
	defaultRedirectURI string,
	logger logger.Interface,
) *InitiateOAuthConnectUseCase {
	return &InitiateOAuthConnectUseCase{
		provider:           provider,
		stateStore:         stateStore,
		defaultRedirectURI: defaultRedirectURI,
		logger:             logger,
	}
}

func (uc *InitiateOAuthConnectUseCase) Execute(ctx context.Context, cmd InitiateOAuthConnectCommand) (*InitiateOAuthConnectResult, error) {
	redirectURI := cmd.RedirectURI
	if redirectURI == "" {
		redirectURI = uc.defaultRedirectURI
	}
	if !utils.IsHTTPURL(redirectURI) {
		return nil, errors.NewValidationError("redirect_uri must be an absolute http(s) URL")
	}

	state, err := uc.stateStore.Issue(ctx, integration.StateInfo{
		Provider:    cmd.Provider,
		RedirectURI: redirectURI,
		CreatedAt:   biztime.NowUTC(),
	})
	if err != nil {
		uc.logger.Errorw("failed to issue oauth state", "provider", cmd.Provider, "error", err)
		return nil, fmt.Errorf("failed to issue state: %w", err)
	}

	uc.logger.Infow("oauth connect initiated", "provider", cmd.Provider, "redirect_uri", redirectURI)

	return &InitiateOAuthConnectResult{
		AuthURL:     uc.provider.AuthURL(state, redirectURI),
		State:       state,
		RedirectURI: redirectURI,
	}, nil
}
