package integration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() GrantParams {
	return GrantParams{
		Provider:    "slack",
		AccessToken: "xoxb-1",
		Scope:       "a,b",
		TeamID:      "T1",
		UserID:      "U1",
	}
}

func TestNewOAuthGrant(t *testing.T) {
	now := time.Date(2024, 2, 26, 10, 0, 0, 0, time.UTC)

	grant, err := NewOAuthGrant("grt_1", IdentityScopeTeamUser, validParams(), now, 90*24*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, "T1:U1", grant.IdentityKey())
	assert.Equal(t, "a,b", grant.Scope())
	assert.Equal(t, now.Add(90*24*time.Hour), grant.ExpiresAt())
	assert.True(t, grant.IsActive(now))
	assert.False(t, grant.IsActive(grant.ExpiresAt()))
}

func TestNewOAuthGrant_Validation(t *testing.T) {
	now := time.Now()
	ttl := time.Hour

	tests := []struct {
		name   string
		scope  IdentityScope
		mutate func(p *GrantParams)
		ttl    time.Duration
	}{
		{name: "missing token", scope: IdentityScopeTeamUser, mutate: func(p *GrantParams) { p.AccessToken = "" }, ttl: ttl},
		{name: "missing user", scope: IdentityScopeTeamUser, mutate: func(p *GrantParams) { p.UserID = "" }, ttl: ttl},
		{name: "missing team for team scope", scope: IdentityScopeTeamUser, mutate: func(p *GrantParams) { p.TeamID = "" }, ttl: ttl},
		{name: "non positive ttl", scope: IdentityScopeUser, mutate: func(p *GrantParams) {}, ttl: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			_, err := NewOAuthGrant("grt_1", tt.scope, p, now, tt.ttl)
			assert.Error(t, err)
		})
	}
}

func TestIdentityScope_Key(t *testing.T) {
	assert.Equal(t, "U1", IdentityScopeUser.Key("T1", "U1"))
	assert.Equal(t, "T1:U1", IdentityScopeTeamUser.Key("T1", "U1"))

	scope, err := ParseIdentityScope("")
	require.NoError(t, err)
	assert.Equal(t, IdentityScopeTeamUser, scope)

	_, err = ParseIdentityScope("workspace")
	assert.Error(t, err)
}

func TestOAuthGrant_Replace(t *testing.T) {
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)

	existing, err := NewOAuthGrant("grt_old", IdentityScopeTeamUser, validParams(), first, time.Hour)
	require.NoError(t, err)

	p := validParams()
	p.AccessToken = "xoxp-2"
	p.Scope = "a,b,c"
	p.TeamID = "T2"
	p.TeamName = "Team Two"
	next, err := NewOAuthGrant("grt_new", IdentityScopeUser, p, second, time.Hour)
	require.NoError(t, err)

	existing.Replace(next)

	assert.Equal(t, "grt_old", existing.SID())
	assert.Equal(t, first, existing.CreatedAt())
	assert.Equal(t, "xoxp-2", existing.AccessToken())
	assert.Equal(t, "a,b,c", existing.Scope())
	assert.Equal(t, "T2", existing.TeamID())
	assert.Equal(t, "Team Two", existing.TeamName())
	assert.Equal(t, second.Add(time.Hour), existing.ExpiresAt())
}
