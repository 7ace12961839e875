package integration

import (
	"fmt"
	"time"
)

// OAuthGrant is the credential obtained from one successful code exchange.
// One live grant exists per provider and identity key. A later exchange for
// the same identity replaces tokens, scope and expiry in place.
type OAuthGrant struct {
	id          uint
	sid         string
	provider    string
	identityKey string
	accessToken string
	botToken    string
	scope       string
	teamID      string
	teamName    string
	userID      string
	metadata    map[string]string
	createdAt   time.Time
	updatedAt   time.Time
	expiresAt   time.Time
}

// GrantParams carries the validated fields of a provider response.
type GrantParams struct {
	Provider    string
	AccessToken string
	BotToken    string
	Scope       string
	TeamID      string
	TeamName    string
	UserID      string
	Metadata    map[string]string
}

// NewOAuthGrant builds a grant that expires ttl after now. The expiry is a
// fixed window and ignores any lifetime the provider reports.
func NewOAuthGrant(sid string, scope IdentityScope, p GrantParams, now time.Time, ttl time.Duration) (*OAuthGrant, error) {
	if p.Provider == "" {
		return nil, fmt.Errorf("provider is required")
	}
	if p.AccessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}
	if p.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if scope == IdentityScopeTeamUser && p.TeamID == "" {
		return nil, fmt.Errorf("team id is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("grant ttl must be positive")
	}

	metadata := p.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	now = now.UTC()
	return &OAuthGrant{
		sid:         sid,
		provider:    p.Provider,
		identityKey: scope.Key(p.TeamID, p.UserID),
		accessToken: p.AccessToken,
		botToken:    p.BotToken,
		scope:       p.Scope,
		teamID:      p.TeamID,
		teamName:    p.TeamName,
		userID:      p.UserID,
		metadata:    metadata,
		createdAt:   now,
		updatedAt:   now,
		expiresAt:   now.Add(ttl),
	}, nil
}

// ReconstructOAuthGrant rebuilds a grant from persistence without validation.
func ReconstructOAuthGrant(
	id uint,
	sid, provider, identityKey string,
	accessToken, botToken, scope string,
	teamID, teamName, userID string,
	metadata map[string]string,
	createdAt, updatedAt, expiresAt time.Time,
) *OAuthGrant {
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &OAuthGrant{
		id:          id,
		sid:         sid,
		provider:    provider,
		identityKey: identityKey,
		accessToken: accessToken,
		botToken:    botToken,
		scope:       scope,
		teamID:      teamID,
		teamName:    teamName,
		userID:      userID,
		metadata:    metadata,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		expiresAt:   expiresAt,
	}
}

func (g *OAuthGrant) ID() uint                    { return g.id }
func (g *OAuthGrant) SID() string                 { return g.sid }
func (g *OAuthGrant) Provider() string            { return g.provider }
func (g *OAuthGrant) IdentityKey() string         { return g.identityKey }
func (g *OAuthGrant) AccessToken() string         { return g.accessToken }
func (g *OAuthGrant) BotToken() string            { return g.botToken }
func (g *OAuthGrant) Scope() string               { return g.scope }
func (g *OAuthGrant) TeamID() string              { return g.teamID }
func (g *OAuthGrant) TeamName() string            { return g.teamName }
func (g *OAuthGrant) UserID() string              { return g.userID }
func (g *OAuthGrant) Metadata() map[string]string { return g.metadata }
func (g *OAuthGrant) CreatedAt() time.Time        { return g.createdAt }
func (g *OAuthGrant) UpdatedAt() time.Time        { return g.updatedAt }
func (g *OAuthGrant) ExpiresAt() time.Time        { return g.expiresAt }

// MarkPersisted syncs the identity of the stored row after an upsert, which
// keeps the id, public id and creation time of an earlier grant.
func (g *OAuthGrant) MarkPersisted(id uint, sid string, createdAt time.Time) {
	g.id = id
	g.sid = sid
	g.createdAt = createdAt
}

// IsActive reports whether the grant counts toward a connected status at now.
// Expired grants are kept but never counted.
func (g *OAuthGrant) IsActive(now time.Time) bool {
	return g.expiresAt.After(now)
}

// Replace copies the mutable fields of next into g, keeping the identity,
// the public id and the original creation time.
func (g *OAuthGrant) Replace(next *OAuthGrant) {
	g.accessToken = next.accessToken
	g.botToken = next.botToken
	g.scope = next.scope
	g.teamID = next.teamID
	g.teamName = next.teamName
	g.userID = next.userID
	g.metadata = next.metadata
	g.updatedAt = next.updatedAt
	g.expiresAt = next.expiresAt
}
