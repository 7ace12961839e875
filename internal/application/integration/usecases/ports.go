package usecases

import (
	"context"

	"github.com/pulse-inc/pulse/internal/domain/integration"
)

// ProviderGrant is the subset of a provider token response the exchange needs.
// Fields are copied verbatim; presence is checked by the use case.
type ProviderGrant struct {
	AccessToken     string
	UserAccessToken string
	TokenType       string
	Scope           string
	UserScope       string
	TeamID          string
	TeamName        string
	UserID          string
	AppID           string
	BotUserID       string
	EnterpriseID    string
}

// OAuthProvider talks to the provider's authorize and token endpoints.
type OAuthProvider interface {
	AuthURL(state, redirectURI string) string
	ExchangeCode(ctx context.Context, code, redirectURI string) (*ProviderGrant, error)
}

// StateStore issues and verifies CSRF states.
type StateStore interface {
	Issue(ctx context.Context, info integration.StateInfo) (string, error)
	// Verify consumes state where the backend supports single use.
	Verify(ctx context.Context, state string) (*integration.StateInfo, error)
}

// Recorder receives exchange and status outcomes for metrics.
type Recorder interface {
	RecordExchange(provider, outcome string)
	RecordStatus(provider string, activeCount int64)
}

type nopRecorder struct{}

func (nopRecorder) RecordExchange(string, string) {}
func (nopRecorder) RecordStatus(string, int64)    {}
