package auth

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"golang.org/x/oauth2"

	"github.com/pulse-inc/pulse/internal/application/integration/usecases"
	"github.com/pulse-inc/pulse/internal/shared/errors"
)

// SlackEndpoint is the OAuth v2 endpoint pair of Slack.
var SlackEndpoint = oauth2.Endpoint{
	AuthURL:   "https://slack.com/oauth/v2/authorize",
	TokenURL:  "https://slack.com/api/oauth.v2.access",
	AuthStyle: oauth2.AuthStyleInParams,
}

type SlackOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	UserScopes   []string
	// Timeout bounds the whole token exchange round trip.
	Timeout time.Duration
}

// SlackOAuthClient builds consent URLs and performs the oauth.v2.access exchange.
type SlackOAuthClient struct {
	config     *oauth2.Config
	scopes     string
	userScopes string
	httpClient *http.Client
}

func NewSlackOAuthClient(cfg SlackOAuthConfig, httpClient *http.Client) *SlackOAuthClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.Timeout > 0 {
		clone := *httpClient
		clone.Timeout = cfg.Timeout
		httpClient = &clone
	}

	return &SlackOAuthClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     SlackEndpoint,
		},
		// Slack wants comma separated scopes, oauth2 would join with spaces
		scopes:     strings.Join(cfg.Scopes, ","),
		userScopes: strings.Join(cfg.UserScopes, ","),
		httpClient: httpClient,
	}
}

// AuthURL returns the consent URL. An empty redirectURI keeps the configured one.
func (c *SlackOAuthClient) AuthURL(state, redirectURI string) string {
	var opts []oauth2.AuthCodeOption
	if redirectURI != "" {
		opts = append(opts, oauth2.SetAuthURLParam("redirect_uri", redirectURI))
	}
	if c.scopes != "" {
		opts = append(opts, oauth2.SetAuthURLParam("scope", c.scopes))
	}
	if c.userScopes != "" {
		opts = append(opts, oauth2.SetAuthURLParam("user_scope", c.userScopes))
	}
	return c.config.AuthCodeURL(state, opts...)
}

// ExchangeCode posts the code to oauth.v2.access once. ok:false becomes a
// provider rejected error carrying Slack's error code; transport failures
// and timeouts become provider unreachable errors.
func (c *SlackOAuthClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*usecases.ProviderGrant, error) {
	if redirectURI == "" {
		redirectURI = c.config.RedirectURL
	}

	resp, err := slack.GetOAuthV2ResponseContext(ctx, c.httpClient, c.config.ClientID, c.config.ClientSecret, code, redirectURI)
	if err != nil {
		var slackErr slack.SlackErrorResponse
		if stderrors.As(err, &slackErr) {
			return nil, errors.NewProviderRejectedError("slack rejected the authorization code", slackErr.Err)
		}
		var statusErr slack.StatusCodeError
		if stderrors.As(err, &statusErr) {
			return nil, errors.NewProviderUnreachableError("slack token endpoint returned an error status", statusErr.Error())
		}
		return nil, errors.NewProviderUnreachableError("failed to reach slack token endpoint", err.Error())
	}
	if resp == nil {
		return nil, errors.NewMalformedResponseError("empty response from slack")
	}
	if !resp.Ok {
		return nil, errors.NewProviderRejectedError("slack rejected the authorization code", resp.Error)
	}

	return &usecases.ProviderGrant{
		AccessToken:     resp.AccessToken,
		UserAccessToken: resp.AuthedUser.AccessToken,
		TokenType:       resp.TokenType,
		Scope:           resp.Scope,
		UserScope:       resp.AuthedUser.Scope,
		TeamID:          resp.Team.ID,
		TeamName:        resp.Team.Name,
		UserID:          resp.AuthedUser.ID,
		AppID:           resp.AppID,
		BotUserID:       resp.BotUserID,
		EnterpriseID:    resp.Enterprise.ID,
	}, nil
}
