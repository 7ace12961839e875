package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"

	ContextKeyRequestID = "request_id"

	// ProviderSlack is the only provider with a backend today.
	ProviderSlack = "slack"

	TableOAuthGrants = "oauth_grants"

	// Identity scopes for grant uniqueness
	IdentityScopeUser     = "user"
	IdentityScopeTeamUser = "team_user"

	// PostMessage type the callback page sends to its opener
	CallbackMessageType = "slack-oauth"

	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgExchangeFailed      = "Failed to exchange OAuth code"
	ErrMsgStatusFailed        = "Failed to check status"
)
