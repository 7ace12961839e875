package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/pulse-inc/pulse/internal/domain/integration"
	"github.com/pulse-inc/pulse/internal/shared/biztime"
	"github.com/pulse-inc/pulse/internal/shared/errors"
	"github.com/pulse-inc/pulse/internal/shared/id"
	"github.com/pulse-inc/pulse/internal/shared/logger"
)

type ExchangeOAuthCodeCommand struct {
	Provider    string
	Code        string
	RedirectURI string
	// State is optional. When set it must verify before the provider is called.
	State string
}

type ExchangeOAuthCodeResult struct {
	GrantID  string
	TeamID   string
	TeamName string
	UserID   string
}

type ExchangeOAuthCodeUseCase struct {
	provider      OAuthProvider
	stateStore    StateStore
	grantRepo     integration.GrantRepository
	identityScope integration.IdentityScope
	grantTTL      time.Duration
	recorder      Recorder
	logger        logger.Interface
	now           func() time.Time
}

func NewExchangeOAuthCodeUseCase(
	provider OAuthProvider,
	stateStore StateStore,
	grantRepo integration.GrantRepository,
	identityScope integration.IdentityScope,
	grantTTL time.Duration,
	recorder Recorder,
	logger logger.Interface,
) *ExchangeOAuthCodeUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &ExchangeOAuthCodeUseCase{
		provider:      provider,
		stateStore:    stateStore,
		grantRepo:     grantRepo,
		identityScope: identityScope,
		grantTTL:      grantTTL,
		recorder:      recorder,
		logger:        logger,
		now:           biztime.NowUTC,
	}
}

func (uc *ExchangeOAuthCodeUseCase) Execute(ctx context.Context, cmd ExchangeOAuthCodeCommand) (*ExchangeOAuthCodeResult, error) {
	if cmd.Code == "" {
		return nil, errors.NewValidationError("code is required")
	}

	if cmd.State != "" {
		if err := uc.verifyState(ctx, cmd); err != nil {
			uc.recorder.RecordExchange(cmd.Provider, string(errors.ErrorTypeStateMismatch))
			return nil, err
		}
	}

	uc.logger.Infow("exchanging oauth code", "provider", cmd.Provider)

	pg, err := uc.provider.ExchangeCode(ctx, cmd.Code, cmd.RedirectURI)
	if err != nil {
		uc.recorder.RecordExchange(cmd.Provider, outcomeOf(err, errors.ErrorTypeProviderUnreachable))
		uc.logger.Warnw("oauth code exchange failed", "provider", cmd.Provider, "error", err)
		return nil, err
	}

	params, err := grantParamsFrom(cmd.Provider, pg)
	if err != nil {
		uc.recorder.RecordExchange(cmd.Provider, string(errors.ErrorTypeMalformedResponse))
		uc.logger.Warnw("provider returned malformed token response", "provider", cmd.Provider, "error", err)
		return nil, err
	}

	grantID, err := id.NewGrantID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate grant id: %w", err)
	}

	grant, err := integration.NewOAuthGrant(grantID, uc.identityScope, params, uc.now(), uc.grantTTL)
	if err != nil {
		uc.recorder.RecordExchange(cmd.Provider, string(errors.ErrorTypeMalformedResponse))
		return nil, errors.NewMalformedResponseError("invalid grant", err.Error())
	}

	if err := uc.grantRepo.Upsert(ctx, grant); err != nil {
		uc.recorder.RecordExchange(cmd.Provider, string(errors.ErrorTypeStorageUnavailable))
		uc.logger.Errorw("failed to store oauth grant", "provider", cmd.Provider, "error", err)
		return nil, errors.NewStorageUnavailableError("failed to store token", err.Error())
	}

	uc.recorder.RecordExchange(cmd.Provider, "success")
	uc.logger.Infow("oauth grant stored",
		"provider", cmd.Provider,
		"grant_id", grant.SID(),
		"team_id", grant.TeamID(),
		"user_id", grant.UserID(),
		"expires_at", grant.ExpiresAt(),
	)

	return &ExchangeOAuthCodeResult{
		GrantID:  grant.SID(),
		TeamID:   grant.TeamID(),
		TeamName: grant.TeamName(),
		UserID:   grant.UserID(),
	}, nil
}

func (uc *ExchangeOAuthCodeUseCase) verifyState(ctx context.Context, cmd ExchangeOAuthCodeCommand) error {
	if uc.stateStore == nil {
		return errors.NewStateMismatchError("state verification is not configured")
	}
	info, err := uc.stateStore.Verify(ctx, cmd.State)
	if err != nil {
		uc.logger.Warnw("oauth state rejected", "provider", cmd.Provider, "error", err)
		return errors.NewStateMismatchError("invalid or expired state")
	}
	if info.Provider != "" && info.Provider != cmd.Provider {
		return errors.NewStateMismatchError("state was issued for another provider")
	}
	if info.RedirectURI != "" && cmd.RedirectURI != "" && info.RedirectURI != cmd.RedirectURI {
		return errors.NewStateMismatchError("redirect_uri does not match the connect request")
	}
	return nil
}

// grantParamsFrom picks the tokens to store and rejects responses missing
// team id, user id or any access token.
func grantParamsFrom(provider string, pg *ProviderGrant) (integration.GrantParams, error) {
	if pg == nil {
		return integration.GrantParams{}, errors.NewMalformedResponseError("empty token response")
	}

	var missing []string
	if pg.TeamID == "" {
		missing = append(missing, "team.id")
	}
	if pg.UserID == "" {
		missing = append(missing, "authed_user.id")
	}
	if pg.AccessToken == "" && pg.UserAccessToken == "" {
		missing = append(missing, "access_token")
	}
	if len(missing) > 0 {
		return integration.GrantParams{}, errors.NewMalformedResponseError("token response is missing required fields", fmt.Sprint(missing))
	}

	accessToken := pg.UserAccessToken
	scope := pg.UserScope
	if accessToken == "" {
		accessToken = pg.AccessToken
	}
	if scope == "" {
		scope = pg.Scope
	}

	var botToken string
	if pg.TokenType == "bot" {
		botToken = pg.AccessToken
	}

	metadata := map[string]string{}
	for k, v := range map[string]string{
		"token_type":    pg.TokenType,
		"app_id":        pg.AppID,
		"bot_user_id":   pg.BotUserID,
		"enterprise_id": pg.EnterpriseID,
		"bot_scope":     pg.Scope,
	} {
		if v != "" {
			metadata[k] = v
		}
	}

	return integration.GrantParams{
		Provider:    provider,
		AccessToken: accessToken,
		BotToken:    botToken,
		Scope:       scope,
		TeamID:      pg.TeamID,
		TeamName:    pg.TeamName,
		UserID:      pg.UserID,
		Metadata:    metadata,
	}, nil
}

func outcomeOf(err error, fallback errors.ErrorType) string {
	if appErr := errors.GetAppError(err); appErr != nil {
		return string(appErr.Type)
	}
	return string(fallback)
}
