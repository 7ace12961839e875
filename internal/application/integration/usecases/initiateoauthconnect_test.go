package usecases

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pulse-inc/pulse/internal/domain/integration"
	"github.com/pulse-inc/pulse/internal/shared/errors"
	"github.com/pulse-inc/pulse/internal/shared/logger"
)

func TestInitiateOAuthConnect_DefaultRedirect(t *testing.T) {
	ctx := context.Background()
	provider := new(mockProvider)
	states := new(mockStateStore)

	states.On("Issue", ctx, mock.MatchedBy(func(info integration.StateInfo) bool {
		return info.Provider == "slack" && info.RedirectURI == "http://localhost:5173/settings"
	})).Return("state-1", nil)
	provider.On("AuthURL", "state-1", "http://localhost:5173/settings").Return("https://slack.com/oauth/v2/authorize?state=state-1")

	uc := NewInitiateOAuthConnectUseCase(provider, states, "http://localhost:5173/settings", logger.NewNopLogger())
	result, err := uc.Execute(ctx, InitiateOAuthConnectCommand{Provider: "slack"})

	require.NoError(t, err)
	assert.Equal(t, "state-1", result.State)
	assert.Equal(t, "http://localhost:5173/settings", result.RedirectURI)
	assert.Contains(t, result.AuthURL, "state=state-1")
	states.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestInitiateOAuthConnect_InvalidRedirect(t *testing.T) {
	states := new(mockStateStore)
	uc := NewInitiateOAuthConnectUseCase(new(mockProvider), states, "", logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), InitiateOAuthConnectCommand{Provider: "slack", RedirectURI: "javascript:alert(1)"})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	states.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestInitiateOAuthConnect_StateStoreFailure(t *testing.T) {
	ctx := context.Background()
	states := new(mockStateStore)
	states.On("Issue", ctx, mock.Anything).Return("", stderrors.New("redis down"))

	uc := NewInitiateOAuthConnectUseCase(new(mockProvider), states, "http://localhost:5173/settings", logger.NewNopLogger())
	_, err := uc.Execute(ctx, InitiateOAuthConnectCommand{Provider: "slack"})

	assert.ErrorContains(t, err, "redis down")
}
